package terminology

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vitalsync/vitalsync/internal/config"
)

// RxNormClient implements Lookup against the RxNav REST API. Normalization
// is two sequential calls: an approximate-term match returning scored
// candidates, then a properties lookup by RxCUI for the canonical name.
type RxNormClient struct {
	baseURL  string
	minScore int
	client   *http.Client
}

func NewRxNormClient(cfg config.TerminologyConfig) *RxNormClient {
	return &RxNormClient{
		baseURL:  cfg.BaseURL,
		minScore: cfg.MinScore,
		client:   &http.Client{Timeout: cfg.RequestTimeout},
	}
}

type approximateGroup struct {
	ApproximateGroup struct {
		Candidate []struct {
			RxCUI string `json:"rxcui"`
			Score string `json:"score"`
		} `json:"candidate"`
	} `json:"approximateGroup"`
}

type propertiesResponse struct {
	Properties struct {
		RxCUI string `json:"rxcui"`
		Name  string `json:"name"`
	} `json:"properties"`
}

// Normalize never returns an error for service failures: an unreachable or
// disagreeing vocabulary must not block prescription processing, so every
// failure path degrades to the unchanged input.
func (c *RxNormClient) Normalize(ctx context.Context, term string) (Result, error) {
	unchanged := Result{Input: term, Name: term}

	var group approximateGroup
	q := url.Values{"term": {term}, "maxEntries": {"1"}}
	if err := c.getJSON(ctx, "/approximateTerm.json?"+q.Encode(), &group); err != nil {
		slog.Debug("rxnorm approximate match failed", "term", term, "error", err)
		return unchanged, nil
	}

	candidates := group.ApproximateGroup.Candidate
	if len(candidates) == 0 {
		return unchanged, nil
	}

	score, err := strconv.Atoi(candidates[0].Score)
	if err != nil || score < c.minScore {
		return unchanged, nil
	}

	var props propertiesResponse
	path := fmt.Sprintf("/rxcui/%s/properties.json", url.PathEscape(candidates[0].RxCUI))
	if err := c.getJSON(ctx, path, &props); err != nil {
		slog.Debug("rxnorm properties lookup failed", "rxcui", candidates[0].RxCUI, "error", err)
		return unchanged, nil
	}

	if props.Properties.Name == "" {
		return unchanged, nil
	}

	return Result{Input: term, Name: props.Properties.Name, Score: score}, nil
}

func (c *RxNormClient) getJSON(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("rxnorm request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rxnorm status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
