package attendant

import (
	"context"
	"strings"

	"bistro-attendant/internal/common/logger"
	"bistro-attendant/internal/common/metrics"
)

const humanizerSystemPrompt = "Você é o atendente virtual do Bistrô da Casa. " +
	"Reescreva o rascunho abaixo em tom caloroso e direto, em português. " +
	"Use somente as informações do rascunho. Não invente horários, valores nem links. " +
	"Mantenha links e horários exatamente como estão."

// Rewriter is the free-text side of the text-generation API.
type Rewriter interface {
	Rewrite(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Humanizer rewrites a factual draft in the house voice. The draft is the
// source of truth: when the rewrite fails or comes back empty, the draft
// itself is the answer.
type Humanizer struct {
	client Rewriter
	log    logger.Logger
}

func NewHumanizer(client Rewriter, log logger.Logger) *Humanizer {
	return &Humanizer{client: client, log: log}
}

func (h *Humanizer) Humanize(ctx context.Context, draft string) string {
	rewritten, err := h.client.Rewrite(ctx, humanizerSystemPrompt, draft)
	if err != nil {
		h.log.WithError(err).Warn("humanization failed, serving draft", nil)
		metrics.HumanizationFallbacksTotal.Inc()
		return draft
	}
	rewritten = strings.TrimSpace(rewritten)
	if rewritten == "" {
		metrics.HumanizationFallbacksTotal.Inc()
		return draft
	}
	return rewritten
}
