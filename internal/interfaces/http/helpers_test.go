package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"kopilka/internal/shared/middleware"
)

// MockAuthorizer implements budget.Authorizer for testing
type MockAuthorizer struct {
	AuthorizeFunc func(ctx context.Context, userID, budgetID string) error
}

func (m *MockAuthorizer) Authorize(ctx context.Context, userID, budgetID string) error {
	if m.AuthorizeFunc != nil {
		return m.AuthorizeFunc(ctx, userID, budgetID)
	}
	return nil
}

func allowAll() *MockAuthorizer {
	return &MockAuthorizer{}
}

// authed attaches an authenticated user to the request context
func authed(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

// decodeErrorKind extracts the error kind from an envelope response
func decodeErrorKind(t *testing.T, body []byte) string {
	t.Helper()
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("failed to decode error envelope: %v (body %s)", err, body)
	}
	return envelope.Error.Kind
}
