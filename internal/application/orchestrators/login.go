package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"rollcall/internal/adapters/authgw"
)

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult carries the authenticated operator.
type LoginResult struct {
	OperatorID int
	FullName   string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Gateway authgw.Gateway
}

// ErrInvalidCredentials mirrors the gateway's bad-credentials answer.
var ErrInvalidCredentials = authgw.ErrInvalidCredentials

// ExecuteLogin authenticates the operator against the remote gateway.
// PRE: Gateway is wired
// POST: Returns the operator whose ID stamps attendance records
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Username == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	op, err := deps.Gateway.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		if errors.Is(err, authgw.ErrInvalidCredentials) {
			slog.Info("auth_event", "event", "login_failed", "username", input.Username, "reason", "bad_credentials")
			return LoginResult{}, ErrInvalidCredentials
		}
		slog.Warn("auth_event", "event", "login_failed", "username", input.Username, "error", err)
		return LoginResult{}, err
	}

	slog.Info("auth_event", "event", "login_success", "operator_id", op.ID)
	return LoginResult{OperatorID: op.ID, FullName: op.FullName}, nil
}
