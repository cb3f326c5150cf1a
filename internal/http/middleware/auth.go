package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"service-pickup/internal/domain"
	"service-pickup/internal/http/middleware/ratelimit"
	"service-pickup/internal/logx"
)

type actorKey struct{}

// WithActor returns a copy of ctx carrying a.
func WithActor(ctx context.Context, a domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the actor stored by Authenticate.
func ActorFrom(ctx context.Context) (domain.Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(domain.Actor)
	return a, ok
}

// Authenticate reads the bearer token and stores the actor of valid claims
// in the request context. It never rejects: operations decide whether an
// identity is required.
func Authenticate(secret []byte, logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			a, err := ParseToken(secret, raw)
			if err != nil {
				logger.Debug("rejecting identity claims",
					logx.String("req_id", reqID(r)),
					logx.Err(err),
				)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), a)))
		})
	}
}

// CallerKey names the rate limit budget of a request: the actor when
// Authenticate found one, the client IP otherwise.
func CallerKey(r *http.Request) string {
	if a, ok := ActorFrom(r.Context()); ok {
		return "actor:" + a.ID
	}
	return "ip:" + ratelimit.ClientIP(r)
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}

// ParseToken verifies an HS256 token and extracts the sub and role claims.
func ParseToken(secret []byte, raw string) (domain.Actor, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Actor{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Actor{}, fmt.Errorf("unexpected claims type %T", token.Claims)
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	a := domain.Actor{ID: sub, Role: domain.Role(role)}
	if a.ID == "" {
		return domain.Actor{}, fmt.Errorf("missing sub claim")
	}
	if !a.Role.Valid() {
		return domain.Actor{}, fmt.Errorf("invalid role claim %q", role)
	}
	return a, nil
}

// IssueToken signs an HS256 token for a. Used by tooling and tests.
func IssueToken(secret []byte, a domain.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  a.ID,
		"role": string(a.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
