package attendant

import (
	"context"
	"encoding/json"

	stderrors "bistro-attendant/internal/common/errors"
	"bistro-attendant/internal/common/logger"
	"bistro-attendant/internal/common/validation"
	"bistro-attendant/internal/models"
)

const extractFunctionName = "classificar_pergunta"

// intentSchema validates the extraction payload before it is trusted.
// The same schema is sent to the model as the function's parameters.
const intentSchema = `{
	"type": "object",
	"properties": {
		"data_ou_periodo": {
			"type": "string",
			"description": "Dia, data ou período citado na pergunta, exatamente como o cliente escreveu. Vazio se não houver."
		},
		"periodo_generico": {
			"type": "boolean",
			"description": "Verdadeiro quando o período é vago, como 'durante a semana' ou 'qualquer dia'."
		},
		"informacao": {
			"type": "string",
			"description": "Assunto perguntado: um programa (fondue, café da manhã) ou uma informação (estacionamento, cardápio). Vazio se não houver."
		},
		"informacao_generica": {
			"type": "boolean",
			"description": "Verdadeiro quando o assunto é genérico, como 'o que vocês servem'."
		},
		"visao_geral": {
			"type": "boolean",
			"description": "Verdadeiro quando o cliente quer uma visão geral do funcionamento."
		},
		"periodo_referencial": {
			"type": "boolean",
			"description": "Verdadeiro quando o período depende do momento atual: hoje, agora, amanhã."
		}
	},
	"required": ["data_ou_periodo", "periodo_generico", "informacao", "informacao_generica", "visao_geral", "periodo_referencial"],
	"additionalProperties": false
}`

const classifierSystemPrompt = "Você é o classificador de perguntas do Bistrô da Casa. " +
	"Extraia da mensagem do cliente os campos da função classificar_pergunta. " +
	"Não responda a pergunta, apenas classifique. " +
	"Copie expressões de tempo exatamente como o cliente escreveu."

// Extractor is the structured-extraction side of the text-generation API.
type Extractor interface {
	Extract(ctx context.Context, systemPrompt, userPrompt, functionName string, parameters json.RawMessage) (json.RawMessage, error)
}

// Classifier extracts a ClassifiedIntent from a free-form question.
type Classifier struct {
	client Extractor
	log    logger.Logger
}

func NewClassifier(client Extractor, log logger.Logger) *Classifier {
	return &Classifier{client: client, log: log}
}

// Classify runs the extraction call and validates the payload against the
// schema. Any failure is returned as a classification error; the service
// layer decides the fallback.
func (c *Classifier) Classify(ctx context.Context, prompt string) (models.ClassifiedIntent, error) {
	var intent models.ClassifiedIntent

	payload, err := c.client.Extract(ctx, classifierSystemPrompt, prompt,
		extractFunctionName, json.RawMessage(intentSchema))
	if err != nil {
		return intent, stderrors.NewClassificationError(err)
	}

	if err := validation.ValidateJSON(intentSchema, payload); err != nil {
		c.log.Warn("extraction payload failed schema validation", map[string]interface{}{
			"payload": string(payload),
		})
		return intent, stderrors.NewClassificationError(err)
	}

	if err := json.Unmarshal(payload, &intent); err != nil {
		return intent, stderrors.NewClassificationError(err)
	}
	return intent, nil
}
