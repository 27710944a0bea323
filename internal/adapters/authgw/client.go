package authgw

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rollcall/internal/crypto"
)

// ErrInvalidCredentials is returned when the gateway answers with an empty
// body, which is how the auth endpoint signals a bad username or password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Operator is the authenticated user whose ID stamps attendance records.
type Operator struct {
	ID       int
	FullName string
}

// Gateway is the interface to the remote authentication endpoint.
type Gateway interface {
	Authenticate(ctx context.Context, username, password string) (Operator, error)
}

// Ensure HTTPGateway implements Gateway.
var _ Gateway = (*HTTPGateway)(nil)

// HTTPGateway authenticates against the remote endpoint. Credentials travel
// encrypted with the shared credential cipher; the endpoint answers with an
// "id,name" line, or an empty body for bad credentials.
type HTTPGateway struct {
	url    string
	cipher *crypto.Cipher
	client *http.Client
}

// NewHTTPGateway creates an authentication gateway client.
// PRE: endpoint is the auth URL; cipher matches the endpoint's key material
// POST: Returns a gateway whose calls time out after the given duration
func NewHTTPGateway(endpoint string, cipher *crypto.Cipher, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		url:    endpoint,
		cipher: cipher,
		client: &http.Client{Timeout: timeout},
	}
}

// Authenticate verifies the operator's credentials.
// POST: Returns the operator, ErrInvalidCredentials, or a transport error
func (g *HTTPGateway) Authenticate(ctx context.Context, username, password string) (Operator, error) {
	encUser, err := g.cipher.EncryptString(username)
	if err != nil {
		return Operator{}, fmt.Errorf("encrypt username: %w", err)
	}
	encPass, err := g.cipher.EncryptString(password)
	if err != nil {
		return Operator{}, fmt.Errorf("encrypt password: %w", err)
	}

	q := url.Values{}
	q.Set("username", encUser)
	q.Set("password", encPass)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url+"?"+q.Encode(), nil)
	if err != nil {
		return Operator{}, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		slog.Warn("auth_event", "event", "gateway_unreachable", "error", err)
		return Operator{}, fmt.Errorf("authenticate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Operator{}, fmt.Errorf("authenticate: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Operator{}, fmt.Errorf("authenticate: %w", err)
	}

	line := strings.TrimSpace(string(body))
	if line == "" {
		return Operator{}, ErrInvalidCredentials
	}

	parts := strings.SplitN(line, ",", 2)
	if len(parts) != 2 {
		return Operator{}, fmt.Errorf("authenticate: malformed response %q", line)
	}
	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Operator{}, fmt.Errorf("authenticate: malformed operator id %q", parts[0])
	}

	return Operator{ID: id, FullName: strings.TrimSpace(parts[1])}, nil
}
