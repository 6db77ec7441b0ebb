package mw

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const SessionCtxKey contextKey = "session_id"

const sessionClaim = "sid"

// Session attaches a cart session id to the request. The id travels as a
// signed bearer token; requests without a valid token get a fresh session
// and the new token in the Authorization response header.
func Session(secret string, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, err := parseSessionToken(r.Header.Get("Authorization"), secret)
			if err != nil {
				sessionID = uuid.NewString()
				token, err := IssueSessionToken(secret, sessionID, ttl)
				if err != nil {
					slog.Error("session token generation failed", "error", err)
					http.Error(w, "token generation failed", http.StatusInternalServerError)
					return
				}
				w.Header().Set("Authorization", "Bearer "+token)
			}

			ctx := context.WithValue(r.Context(), SessionCtxKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionCtxKey).(string)
	return id, ok && id != ""
}

func IssueSessionToken(secret, sessionID string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		sessionClaim: sessionID,
		"exp":        jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	return token.SignedString([]byte(secret))
}

func parseSessionToken(authHeader, secret string) (string, error) {
	if authHeader == "" {
		return "", errors.New("no session token")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("invalid token format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid or expired token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sessionID, ok := claims[sessionClaim].(string)
	if !ok || sessionID == "" {
		return "", errors.New("session id not found in token")
	}
	return sessionID, nil
}
