package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/internal/domain/student"
	"github.com/feehub/student-fee-portal/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREDENTIAL CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// ClientConfig contains configuration for the credential endpoint client.
type ClientConfig struct {
	// BaseURL is the credential endpoint base URL.
	BaseURL string

	// Timeout is the HTTP request timeout.
	Timeout time.Duration

	// Logger for structured logging.
	Logger *logger.Logger
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(baseURL string) ClientConfig {
	return ClientConfig{
		BaseURL: baseURL,
		Timeout: 15 * time.Second,
	}
}

// Client talks to the credential HTTP endpoint. It implements
// student.CredentialGateway. Requests carry no stored token; the two
// operations are exactly the unauthenticated sign-up and login exchanges.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	logger     *logger.Logger
}

var _ student.CredentialGateway = (*Client)(nil)

// NewClient creates a credential endpoint client.
func NewClient(config ClientConfig) *Client {
	if config.Logger == nil {
		config.Logger = logger.Default()
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: config.Logger.With(logger.Component("credential_client")),
	}
}

// SignUp registers a new student and returns the issued token and identifier.
func (c *Client) SignUp(ctx context.Context, input student.SignUpInput) (*student.Credentials, error) {
	body := signUpRequestDTO{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	}

	var response authResponseDTO
	if err := c.post(ctx, "/auth/signup", body, &response); err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	c.logger.Info("signed up", logger.StudentID(response.UserID))
	return credentialsFromDTO(response), nil
}

// Login exchanges an identifier and password for a token.
func (c *Client) Login(ctx context.Context, identifier, password string) (*student.Credentials, error) {
	body := loginRequestDTO{
		ID:       identifier,
		Password: password,
	}

	var response authResponseDTO
	if err := c.post(ctx, "/auth/login", body, &response); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	c.logger.Info("logged in", logger.StudentID(response.UserID))
	return credentialsFromDTO(response), nil
}

// post performs a single JSON POST. A transport failure maps to connectivity;
// a non-2xx status with a message body maps to a server rejection. There is
// no retry on either.
func (c *Client) post(ctx context.Context, path string, body, result any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return shared.WrapError("gateway", "post", shared.ErrConnectivity,
			"credential endpoint unreachable", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return shared.WrapError("gateway", "post", shared.ErrConnectivity,
			"read response", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := apiErrorDTO{}
		_ = json.Unmarshal(respBody, &apiErr)
		if apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("status %d", resp.StatusCode)
		}
		c.logger.Warn("credential request rejected",
			logger.String("path", path),
			logger.Int("status", resp.StatusCode),
			logger.String("message", apiErr.Message))
		return shared.WrapError("gateway", "post", shared.ErrServerRejected, apiErr.Message, &apiErr)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
