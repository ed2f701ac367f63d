package util

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	v1 "github.com/kiosk404/roster/internal/rosterd/handler/v1"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/service"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/validation"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/pkg/errno"
	"github.com/kiosk404/roster/pkg/logger"
	"github.com/kiosk404/roster/pkg/utils/json"
	"github.com/kiosk404/roster/pkg/version"
)

const (
	agentsPath  = "/v1/agents"
	watchPath   = "/v1/agents/watch"
	versionPath = "/version"

	defaultRequestTimeout = 30 * time.Second
	defaultWatchRetry     = 2 * time.Second
)

// APIError is a gateway error response that has no domain meaning on the
// client side.
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway returned %d (code %d): %s", e.Status, e.Code, e.Message)
}

// Client talks to a rosterd gateway and implements service.AgentService, so
// commands work the same against a remote gateway as against local storage.
type Client struct {
	baseURL    string
	httpClient *http.Client
	// streamClient has no overall timeout; the watch stream is long-lived.
	streamClient *http.Client
	watchRetry   time.Duration
}

var _ service.AgentService = (*Client)(nil)

// NewClient creates a gateway client for baseURL, e.g. http://127.0.0.1:8080.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: defaultRequestTimeout},
		streamClient: &http.Client{},
		watchRetry:   defaultWatchRetry,
	}
}

func (c *Client) ListAgents(ctx context.Context) ([]*entity.Agent, error) {
	var resp v1.ListAgentsResponse
	if err := c.do(ctx, http.MethodGet, agentsPath, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) GetAgent(ctx context.Context, id int64) (*entity.Agent, error) {
	agent := &entity.Agent{}
	if err := c.do(ctx, http.MethodGet, agentPath(id), nil, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

func (c *Client) CreateAgent(ctx context.Context, in *entity.AgentInput) (*entity.Agent, error) {
	agent := &entity.Agent{}
	if err := c.do(ctx, http.MethodPost, agentsPath, in, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

func (c *Client) UpdateAgent(ctx context.Context, id int64, in *entity.AgentInput) (*entity.Agent, error) {
	agent := &entity.Agent{}
	if err := c.do(ctx, http.MethodPut, agentPath(id), in, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

func (c *Client) DeleteAgent(ctx context.Context, id int64) error {
	var resp v1.DeleteAgentResponse
	return c.do(ctx, http.MethodDelete, agentPath(id), nil, &resp)
}

func (c *Client) ReplaceAgents(ctx context.Context, agents []*entity.Agent) error {
	body, err := entity.EncodeSnapshot(agents)
	if err != nil {
		return err
	}
	var resp v1.ListAgentsResponse
	return c.doRaw(ctx, http.MethodPut, agentsPath, body, &resp)
}

// ServerVersion asks the gateway which version it runs.
func (c *Client) ServerVersion(ctx context.Context) (version.Info, error) {
	var info version.Info
	err := c.do(ctx, http.MethodGet, versionPath, nil, &info)
	return info, err
}

// Subscribe follows the gateway watch stream until cancel is called,
// reconnecting after failures. Every snapshot the gateway sends, on the first
// connect and after each reconnect, is delivered as a reloaded event so
// changes made while the stream was down are not lost.
func (c *Client) Subscribe(fn func(entity.ChangeEvent)) (cancel func()) {
	ctx, cancelFunc := context.WithCancel(context.Background())
	go c.watchLoop(ctx, fn)
	return cancelFunc
}

func (c *Client) watchLoop(ctx context.Context, fn func(entity.ChangeEvent)) {
	for {
		err := c.watch(ctx, func(event string, data []byte) {
			switch event {
			case v1.EventSnapshot:
				var resp v1.ListAgentsResponse
				if err := json.Unmarshal(data, &resp); err != nil {
					logger.Warn("[Client] bad snapshot event: %v", err)
					return
				}
				fn(entity.ChangeEvent{Kind: entity.ChangeReloaded, Agents: resp.Data, At: time.Now()})
			case v1.EventChange:
				var ev entity.ChangeEvent
				if err := json.Unmarshal(data, &ev); err != nil {
					logger.Warn("[Client] bad change event: %v", err)
					return
				}
				fn(ev)
			}
		})
		if ctx.Err() != nil {
			return
		}
		logger.Warn("[Client] watch stream ended (%v), reconnecting in %s", err, c.watchRetry)
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.watchRetry):
		}
	}
}

// watch reads one SSE connection, calling onEvent per dispatched event.
func (c *Client) watch(ctx context.Context, onEvent func(event string, data []byte)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+watchPath, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	// Events carry the whole collection, so lines have no size bound.
	reader := bufio.NewReaderSize(resp.Body, 64*1024)

	var event string
	var data bytes.Buffer
	for {
		raw, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return io.EOF
			}
			return fmt.Errorf("failed to read stream: %w", err)
		}
		line := strings.TrimRight(raw, "\r\n")
		switch {
		case line == "":
			if data.Len() > 0 {
				onEvent(event, data.Bytes())
			}
			event = ""
			data.Reset()
		case strings.HasPrefix(line, ":"):
			// comment
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}
	return c.doRaw(ctx, method, path, body, out)
}

func (c *Client) doRaw(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type errResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details,omitempty"`
}

// decodeError turns a gateway error body back into the domain errors the
// local service would have returned.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	var er errResponse
	if err := json.Unmarshal(data, &er); err != nil {
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}

	switch er.Code {
	case v1.ErrAgentNotFound:
		return fmt.Errorf("%s: %w", er.Message, errno.ErrAgentNotFound)
	case v1.ErrAgentDuplicateID:
		return fmt.Errorf("%s: %w", er.Message, errno.ErrDuplicateID)
	case v1.ErrValidation:
		var verrs validation.Errors
		if len(er.Details) > 0 && json.Unmarshal(er.Details, &verrs) == nil && len(verrs) > 0 {
			return fmt.Errorf("%w: %w", errno.ErrInvalidAgent, verrs)
		}
		return fmt.Errorf("%w: %s", errno.ErrInvalidAgent, er.Message)
	}
	return &APIError{Status: resp.StatusCode, Code: er.Code, Message: er.Message}
}

func agentPath(id int64) string {
	return fmt.Sprintf("%s/%d", agentsPath, id)
}

// IsAPIError reports whether err is a gateway error without domain meaning.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
