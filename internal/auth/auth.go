// Package auth is the boundary to the external session provider. Handlers
// only ever see the opaque user id it resolves; nothing in a request body is
// trusted for identity.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthenticated means no valid caller identity could be established.
var ErrUnauthenticated = errors.New("not authenticated")

// Authenticator resolves the calling user from a request.
type Authenticator interface {
	UserID(r *http.Request) (string, error)
}

// StaticTokens maps bearer tokens to user ids, configured from the
// environment. It stands in for a real session provider in deployments of
// this single-user dashboard.
type StaticTokens struct {
	users map[string]string
}

// ParseStaticTokens parses "token:user" pairs separated by commas, e.g.
// "s3cret:user_123,other:user_456".
func ParseStaticTokens(spec string) (*StaticTokens, error) {
	users := make(map[string]string)
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		token, user, ok := strings.Cut(pair, ":")
		if !ok || strings.TrimSpace(token) == "" || strings.TrimSpace(user) == "" {
			return nil, fmt.Errorf("invalid token pair %q: want token:user", pair)
		}
		users[strings.TrimSpace(token)] = strings.TrimSpace(user)
	}
	if len(users) == 0 {
		return nil, errors.New("no auth tokens configured")
	}
	return &StaticTokens{users: users}, nil
}

func (s *StaticTokens) UserID(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", ErrUnauthenticated
	}
	user, ok := s.users[strings.TrimSpace(token)]
	if !ok {
		return "", ErrUnauthenticated
	}
	return user, nil
}
