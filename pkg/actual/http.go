package actual

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wallact/wallact/pkg/models"
)

// HTTPClient implements Client against an Actual REST bridge. All budget
// scoped calls require OpenBudget to have been called first.
type HTTPClient struct {
	baseURL  string
	password string
	dataDir  string
	budgetID string
	client   *http.Client
	logger   *log.Logger
}

// DefaultServerURL is used when ACTUAL_SERVER_URL is not set, matching the
// port a locally run bridge listens on.
const DefaultServerURL = "http://localhost:5006"

func NewHTTPClient(serverURL, password, dataDir string, logger *log.Logger) *HTTPClient {
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	return &HTTPClient{
		baseURL:  strings.TrimSuffix(serverURL, "/"),
		password: password,
		dataDir:  dataDir,
		client:   http.DefaultClient,
		logger:   logger,
	}
}

// Connect prepares the local data directory and verifies the server answers.
func (c *HTTPClient) Connect() error {
	if err := os.MkdirAll(c.dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir %s: %w", c.dataDir, err)
	}
	if err := c.do(http.MethodGet, "/info", nil, nil); err != nil {
		return fmt.Errorf("failed to connect to actual server %s: %w", c.baseURL, err)
	}
	c.logger.Debug("connected to actual", "server", c.baseURL, "data_dir", c.dataDir)
	return nil
}

func (c *HTTPClient) Budgets() ([]Budget, error) {
	var out struct {
		Data []Budget `json:"data"`
	}
	if err := c.do(http.MethodGet, "/v1/budgets", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return out.Data, nil
}

func (c *HTTPClient) OpenBudget(id string) error {
	if id == "" {
		return fmt.Errorf("budget id is empty")
	}
	c.budgetID = id
	return nil
}

func (c *HTTPClient) Payees() ([]Payee, error) {
	var out struct {
		Data []Payee `json:"data"`
	}
	if err := c.do(http.MethodGet, c.budgetPath("payees"), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list payees: %w", err)
	}
	return out.Data, nil
}

func (c *HTTPClient) Accounts() ([]models.Account, error) {
	var out struct {
		Data []models.Account `json:"data"`
	}
	if err := c.do(http.MethodGet, c.budgetPath("accounts"), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return out.Data, nil
}

func (c *HTTPClient) CreatePayee(name string) (string, error) {
	body := map[string]any{"payee": map[string]string{"name": name}}
	var out struct {
		Data string `json:"data"`
	}
	if err := c.do(http.MethodPost, c.budgetPath("payees"), body, &out); err != nil {
		return "", fmt.Errorf("failed to create payee %q: %w", name, err)
	}
	return out.Data, nil
}

func (c *HTTPClient) CreateSchedule(s Schedule) (string, error) {
	body := map[string]any{"schedule": s}
	var out struct {
		Data string `json:"data"`
	}
	if err := c.do(http.MethodPost, c.budgetPath("schedules"), body, &out); err != nil {
		return "", fmt.Errorf("failed to create schedule %q: %w", s.Name, err)
	}
	return out.Data, nil
}

func (c *HTTPClient) Sync() error {
	if err := c.do(http.MethodPost, c.budgetPath("sync"), nil, nil); err != nil {
		return fmt.Errorf("failed to sync budget: %w", err)
	}
	return nil
}

func (c *HTTPClient) Shutdown() error {
	c.client.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) budgetPath(suffix string) string {
	return fmt.Sprintf("/v1/budgets/%s/%s", c.budgetID, suffix)
}

func (c *HTTPClient) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.password != "" {
		req.Header.Set("x-api-key", c.password)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("actual server returned %s for %s %s", resp.Status, method, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
