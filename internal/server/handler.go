package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	stderrors "bistro-attendant/internal/common/errors"
	"bistro-attendant/internal/common/logger"
)

const warmingUpMessage = "Estamos nos organizando por aqui, tenta de novo em instantes?"

const maxPromptLength = 2000

type chatRequest struct {
	Prompt string `json:"prompt"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type chatHandler struct {
	service Answerer
	log     logger.Logger
}

func (h *chatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	requestID := uuid.NewString()
	log := h.log.WithFields(map[string]interface{}{"request_id": requestID})

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "prompt is required"})
		return
	}
	if len(req.Prompt) > maxPromptLength {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "prompt too long"})
		return
	}

	answer, err := h.service.Answer(r.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, stderrors.ErrCatalogNotReady) {
			log.Warn("chat request while catalog not ready", nil)
			writeJSON(w, http.StatusServiceUnavailable, chatResponse{Answer: warmingUpMessage})
			return
		}
		log.WithError(err).Error("chat request failed", nil)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	log.Info("chat request answered", map[string]interface{}{
		"prompt_len": len(req.Prompt),
		"answer_len": len(answer),
	})
	writeJSON(w, http.StatusOK, chatResponse{Answer: answer})
}

func (h *chatHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *chatHandler) handleReady(w http.ResponseWriter, _ *http.Request) {
	if !h.service.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "warming"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
