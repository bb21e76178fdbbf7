package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/vitalsync/vitalsync/internal/advisor"
	"github.com/vitalsync/vitalsync/internal/llm"
)

type AdvisorHandler struct {
	svc *advisor.Service
}

func NewAdvisorHandler(svc *advisor.Service) *AdvisorHandler {
	return &AdvisorHandler{svc: svc}
}

type symptomCheckRequest struct {
	Symptoms []string `json:"symptoms"`
}

// SymptomCheck returns probable conditions for a set of symptoms. The
// answer is advisory prose, never a diagnosis.
func (h *AdvisorHandler) SymptomCheck(w http.ResponseWriter, r *http.Request) {
	var req symptomCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	symptoms := make([]string, 0, len(req.Symptoms))
	for _, s := range req.Symptoms {
		if s = strings.TrimSpace(s); s != "" {
			symptoms = append(symptoms, s)
		}
	}
	if len(symptoms) == 0 {
		writeError(w, http.StatusBadRequest, "symptoms must be a non-empty array of strings")
		return
	}

	answer, err := h.svc.IdentifyConditions(r.Context(), symptoms)
	if err != nil {
		writeErrorDetails(w, http.StatusBadGateway, "symptom check failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"conditions": answer})
}

type chatRequest struct {
	Message string        `json:"message"`
	History []llm.Message `json:"history,omitempty"`
	Stream  bool          `json:"stream,omitempty"`
}

// Chat continues a health conversation. With stream=true the reply is sent
// as server-sent events, otherwise as a single JSON object.
func (h *AdvisorHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	if req.Stream {
		h.chatStream(w, r, req)
		return
	}

	reply, err := h.svc.Chat(r.Context(), req.History, req.Message)
	if err != nil {
		writeErrorDetails(w, http.StatusBadGateway, "chat failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (h *AdvisorHandler) chatStream(w http.ResponseWriter, r *http.Request, req chatRequest) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	chunks, err := h.svc.ChatStream(r.Context(), req.History, req.Message)
	if err != nil {
		writeErrorDetails(w, http.StatusBadGateway, "chat failed", err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for chunk := range chunks {
		if chunk.Error != nil {
			fmt.Fprintf(w, "event: error\ndata: %s\n\n", chunk.Error.Error())
			flusher.Flush()
			return
		}
		if chunk.Done {
			fmt.Fprint(w, "data: [DONE]\n\n")
			flusher.Flush()
			return
		}
		data, _ := json.Marshal(map[string]string{"content": chunk.Content})
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}
}
