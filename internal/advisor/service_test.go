package advisor

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalsync/vitalsync/internal/llm"
)

type stubGateway struct {
	reply    string
	err      error
	requests []llm.ChatRequest
}

func (s *stubGateway) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return &llm.ChatResponse{Content: s.reply}, nil
}

func (s *stubGateway) ChatStream(context.Context, llm.ChatRequest) (<-chan llm.StreamChunk, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubGateway) Provider(string) (llm.Provider, error) { return nil, fmt.Errorf("none") }
func (s *stubGateway) ListModels() []llm.ModelInfo           { return nil }

func TestIdentifyConditions(t *testing.T) {
	t.Run("passes symptoms to the model", func(t *testing.T) {
		gw := &stubGateway{reply: "Based on the symptoms provided, here are some possible conditions: ..."}
		svc := NewService(gw, "test-model")

		answer, err := svc.IdentifyConditions(context.Background(), []string{"headache", "fever"})

		require.NoError(t, err)
		assert.Contains(t, answer, "possible conditions")
		require.Len(t, gw.requests, 1)
		assert.Contains(t, gw.requests[0].Messages[0].Content, "headache, fever")
	})

	t.Run("rejects an empty symptom list", func(t *testing.T) {
		svc := NewService(&stubGateway{}, "test-model")

		_, err := svc.IdentifyConditions(context.Background(), nil)

		require.Error(t, err)
	})

	t.Run("urgent symptoms prepend the warning", func(t *testing.T) {
		gw := &stubGateway{reply: "model answer"}
		svc := NewService(gw, "test-model")

		answer, err := svc.IdentifyConditions(context.Background(), []string{"chest pain"})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(answer, urgentWarning))
		assert.Contains(t, answer, "model answer")
	})
}

func TestChat(t *testing.T) {
	t.Run("prepends the persona when history has none", func(t *testing.T) {
		gw := &stubGateway{reply: "hello"}
		svc := NewService(gw, "test-model")

		_, err := svc.Chat(context.Background(), nil, "hi")

		require.NoError(t, err)
		require.Len(t, gw.requests, 1)
		msgs := gw.requests[0].Messages
		require.Len(t, msgs, 2)
		assert.Equal(t, "system", msgs[0].Role)
		assert.Equal(t, chatPersona, msgs[0].Content)
	})

	t.Run("keeps a client-supplied system prompt", func(t *testing.T) {
		gw := &stubGateway{reply: "hello"}
		svc := NewService(gw, "test-model")
		history := []llm.Message{
			{Role: "system", Content: "custom persona"},
			{Role: "user", Content: "earlier"},
			{Role: "assistant", Content: "earlier answer"},
		}

		_, err := svc.Chat(context.Background(), history, "hi")

		require.NoError(t, err)
		msgs := gw.requests[0].Messages
		require.Len(t, msgs, 4)
		assert.Equal(t, "custom persona", msgs[0].Content)
		assert.Equal(t, "hi", msgs[3].Content)
	})
}
