package source

import (
	"fmt"
	"io"
	"net/http"

	"github.com/wallact/wallact/pkg/models"
	"github.com/wallact/wallact/pkg/parser"
)

// Wallos fetches the subscription list from a running Wallos instance using
// its API-key authenticated export endpoint.
type Wallos struct {
	baseURL string
	apiKey  string
	client  *http.Client
	parser  *parser.Parser
}

func NewWallos(baseURL, apiKey string, p *parser.Parser) *Wallos {
	return &Wallos{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  http.DefaultClient,
		parser:  p,
	}
}

func (w *Wallos) Subscriptions() ([]models.Subscription, error) {
	req, err := http.NewRequest(http.MethodGet, w.baseURL+"/api/subscriptions", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build wallos request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscriptions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("wallos returned %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read wallos response: %w", err)
	}

	raws, err := decodeRecords(data, "subscriptions", "data")
	if err != nil {
		return nil, err
	}

	return w.parser.NormalizeAll(raws), nil
}
