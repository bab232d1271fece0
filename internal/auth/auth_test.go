package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
)

func TestParseStaticTokens(t *testing.T) {
	a, err := ParseStaticTokens("s3cret:user_123, other:user_456")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	req := httptest.NewRequest("GET", "/payments", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	user, err := a.UserID(req)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user != "user_123" {
		t.Fatalf("user = %q", user)
	}
}

func TestParseStaticTokensRejectsBadSpecs(t *testing.T) {
	for _, spec := range []string{"", "nocolon", "token:", ":user", " , "} {
		if _, err := ParseStaticTokens(spec); err == nil {
			t.Fatalf("expected error for %q", spec)
		}
	}
}

func TestUserIDUnauthenticated(t *testing.T) {
	a, err := ParseStaticTokens("s3cret:user_123")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic s3cret"},
		{"unknown token", "Bearer nope"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/payments", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if _, err := a.UserID(req); !errors.Is(err, ErrUnauthenticated) {
				t.Fatalf("expected ErrUnauthenticated, got %v", err)
			}
		})
	}
}
