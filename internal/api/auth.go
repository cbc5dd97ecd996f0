package api

import (
	"context"
	"net/http"
	"strings"

	"stockmentor/pkg/stockmentor"
)

type contextKey string

const userContextKey contextKey = "user"

// requireAuth rejects requests without a valid bearer session token.
func (h *handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.userFromRequest(r)
		if err != nil {
			writeCoreError(w, err)
			return
		}
		if user == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}

// optionalAuth attaches the user when a valid token is present but lets
// anonymous requests through.
func (h *handler) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.userFromRequest(r)
		if err == nil && user != nil {
			r = r.WithContext(context.WithValue(r.Context(), userContextKey, user))
		}
		next.ServeHTTP(w, r)
	})
}

// userFromRequest resolves the bearer token. A missing header yields
// (nil, nil); an invalid or expired token yields an error.
func (h *handler) userFromRequest(r *http.Request) (*stockmentor.User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, nil
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" || token == header {
		return nil, stockmentor.NewError(stockmentor.ErrCodeUnauthorized, "malformed authorization header")
	}
	return h.core.UserBySession(token)
}

func requestUser(r *http.Request) *stockmentor.User {
	user, _ := r.Context().Value(userContextKey).(*stockmentor.User)
	return user
}
