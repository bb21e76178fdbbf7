// Package advisor groups the LLM-backed assistance features: the symptom
// checker, the health chat, and the medicine identifier.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/vitalsync/vitalsync/internal/llm"
)

const chatPersona = "You are a helpful and knowledgeable health assistant. " +
	"Provide concise and accurate information related to general health and symptoms. " +
	"Do not provide medical diagnoses or replace professional medical advice. " +
	"Always recommend consulting a doctor for definitive diagnosis and treatment."

type Service struct {
	gateway llm.Gateway
	model   string
	triage  *Triage
}

func NewService(gateway llm.Gateway, model string) *Service {
	return &Service{gateway: gateway, model: model, triage: NewTriage()}
}

// IdentifyConditions asks the model for probable conditions given a list of
// symptoms. The answer is advisory prose, surfaced to the user as-is; a
// red-flag symptom prepends an urgent-care warning.
func (s *Service) IdentifyConditions(ctx context.Context, symptoms []string) (string, error) {
	if len(symptoms) == 0 {
		return "", fmt.Errorf("at least one symptom is required")
	}

	triage := s.triage.Check(symptoms)

	prompt := fmt.Sprintf(
		"Given the following symptoms: '%s'. As a highly knowledgeable medical AI, "+
			"list the most probable diseases or conditions, and provide a brief explanation for each. "+
			"Also, suggest if professional medical attention is advised. "+
			"Always preface your response with 'Based on the symptoms provided, here are some possible conditions:'",
		strings.Join(symptoms, ", "),
	)

	resp, err := s.gateway.Chat(ctx, llm.ChatRequest{
		Model:       s.model,
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", fmt.Errorf("identify conditions: %w", err)
	}

	if triage.Urgent {
		return triage.Warning + "\n\n" + resp.Content, nil
	}
	return resp.Content, nil
}

// Chat continues a conversation. History comes from the client; the system
// persona is prepended unless the history already carries one.
func (s *Service) Chat(ctx context.Context, history []llm.Message, message string) (string, error) {
	msgs := buildChatMessages(history, message)

	resp, err := s.gateway.Chat(ctx, llm.ChatRequest{
		Model:       s.model,
		Messages:    msgs,
		Temperature: 0.7,
		MaxTokens:   512,
	})
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return resp.Content, nil
}

func (s *Service) ChatStream(ctx context.Context, history []llm.Message, message string) (<-chan llm.StreamChunk, error) {
	msgs := buildChatMessages(history, message)

	return s.gateway.ChatStream(ctx, llm.ChatRequest{
		Model:       s.model,
		Messages:    msgs,
		Temperature: 0.7,
		MaxTokens:   512,
	})
}

func buildChatMessages(history []llm.Message, message string) []llm.Message {
	hasSystem := false
	for _, m := range history {
		if m.Role == "system" {
			hasSystem = true
			break
		}
	}

	var msgs []llm.Message
	if !hasSystem {
		msgs = append(msgs, llm.Message{Role: "system", Content: chatPersona})
	}
	msgs = append(msgs, history...)
	msgs = append(msgs, llm.Message{Role: "user", Content: message})
	return msgs
}
