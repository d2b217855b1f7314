// Package challenge produces skill-challenge prose, normally from an external
// text service, with a static fallback so a room can never deadlock on it.
package challenge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aaronzipp/serpents-and-stairways/internal/models"
)

// Context describes the game moment the generator writes for
type Context struct {
	Theme        string   `json:"theme"`
	ActivePlayer string   `json:"activePlayer"`
	OtherPlayers []string `json:"otherPlayers"`
	Leader       string   `json:"leader"`
}

// Result is a generated challenge plus the penalty for giving up
type Result struct {
	Text    string         `json:"text"`
	Penalty models.Penalty `json:"penalty"`
}

// Generator is the external collaborator boundary
type Generator interface {
	Generate(ctx context.Context, gc Context) (Result, error)
}

// HTTPGenerator calls a JSON endpoint that wraps the text service
type HTTPGenerator struct {
	url    string
	client *http.Client
}

// NewHTTP builds a generator against the given endpoint. An empty url yields
// a generator that always errors, pushing callers onto the fallback table.
func NewHTTP(url string, timeout time.Duration) *HTTPGenerator {
	return &HTTPGenerator{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Generate posts the game context and decodes {text, penalty}. The caller's
// context bounds the wait; there is no mid-flight cancellation beyond that.
func (g *HTTPGenerator) Generate(ctx context.Context, gc Context) (Result, error) {
	if g.url == "" {
		return Result{}, fmt.Errorf("challenge generator not configured")
	}

	body, err := json.Marshal(gc)
	if err != nil {
		return Result{}, fmt.Errorf("encoding challenge request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("building challenge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("calling challenge generator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("challenge generator returned %d", resp.StatusCode)
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("decoding challenge response: %w", err)
	}
	if res.Text == "" {
		return Result{}, fmt.Errorf("challenge generator returned empty text")
	}
	if res.Penalty.Type != models.PenaltySteps && res.Penalty.Type != models.PenaltySkipTurn {
		res.Penalty = DefaultPenalty()
	}
	if res.Penalty.Value <= 0 {
		res.Penalty = DefaultPenalty()
	}
	return res, nil
}
