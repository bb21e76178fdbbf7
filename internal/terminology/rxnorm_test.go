package terminology

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalsync/vitalsync/internal/config"
)

func newTestClient(baseURL string) *RxNormClient {
	return NewRxNormClient(config.TerminologyConfig{
		BaseURL:        baseURL,
		MinScore:       80,
		RequestTimeout: 2 * time.Second,
	})
}

func TestRxNormNormalize(t *testing.T) {
	t.Run("high-score match resolves to the canonical name", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/approximateTerm.json":
				assert.Equal(t, "Amoxicilin", r.URL.Query().Get("term"))
				assert.Equal(t, "1", r.URL.Query().Get("maxEntries"))
				fmt.Fprint(w, `{"approximateGroup":{"candidate":[{"rxcui":"723","score":"85"}]}}`)
			case "/rxcui/723/properties.json":
				fmt.Fprint(w, `{"properties":{"rxcui":"723","name":"Amoxicillin"}}`)
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))
		defer srv.Close()

		res, err := newTestClient(srv.URL).Normalize(context.Background(), "Amoxicilin")

		require.NoError(t, err)
		assert.Equal(t, "Amoxicillin", res.Name)
		assert.Equal(t, 85, res.Score)
		assert.True(t, res.Corrected())
	})

	t.Run("sub-threshold score keeps the input", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"approximateGroup":{"candidate":[{"rxcui":"723","score":"60"}]}}`)
		}))
		defer srv.Close()

		res, err := newTestClient(srv.URL).Normalize(context.Background(), "Xyzzy")

		require.NoError(t, err)
		assert.Equal(t, "Xyzzy", res.Name)
		assert.False(t, res.Corrected())
	})

	t.Run("no candidates keeps the input", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"approximateGroup":{}}`)
		}))
		defer srv.Close()

		res, err := newTestClient(srv.URL).Normalize(context.Background(), "Take twice daily")

		require.NoError(t, err)
		assert.Equal(t, "Take twice daily", res.Name)
	})

	t.Run("server error degrades silently", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		res, err := newTestClient(srv.URL).Normalize(context.Background(), "Paracetamol")

		require.NoError(t, err, "service failures must not surface")
		assert.Equal(t, "Paracetamol", res.Name)
	})

	t.Run("unreachable service degrades silently", func(t *testing.T) {
		res, err := newTestClient("http://127.0.0.1:1").Normalize(context.Background(), "Paracetamol")

		require.NoError(t, err)
		assert.Equal(t, "Paracetamol", res.Name)
	})

	t.Run("properties failure after a match degrades silently", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/approximateTerm.json" {
				fmt.Fprint(w, `{"approximateGroup":{"candidate":[{"rxcui":"723","score":"90"}]}}`)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		res, err := newTestClient(srv.URL).Normalize(context.Background(), "Amoxicilin")

		require.NoError(t, err)
		assert.Equal(t, "Amoxicilin", res.Name)
		assert.False(t, res.Corrected())
	})
}
