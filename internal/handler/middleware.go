package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const authClaimsKey contextKey = "authClaims"

// AuthClaims is the caller identity carried by the Bearer token.
type AuthClaims struct {
	UserID  int
	GroupID int
	Token   string
}

// JWTClaimsMiddleware parses the Bearer token when present and injects the
// caller's claims into the context. Auth is a relay boundary here: a missing
// header passes through (the handler validates ids from the body), but a
// malformed or badly signed token is rejected.
func JWTClaimsMiddleware(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("auth: invalid token format",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "Formato de token inválido")
				return
			}

			tokenString := parts[1]
			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("auth: invalid or expired token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
				writeError(w, http.StatusUnauthorized, "Token inválido ou expirado")
				return
			}

			claims := AuthClaims{Token: tokenString}
			if mapClaims, ok := token.Claims.(jwt.MapClaims); ok {
				claims.UserID = intClaim(mapClaims, "user_id", "sub")
				claims.GroupID = intClaim(mapClaims, "group_id")
			}

			ctx := context.WithValue(r.Context(), authClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts the authenticated caller claims, zero when the
// request carried no token.
func ClaimsFromContext(ctx context.Context) AuthClaims {
	v, _ := ctx.Value(authClaimsKey).(AuthClaims)
	return v
}

// intClaim reads the first numeric claim among the given names. JWT numbers
// decode as float64.
func intClaim(claims jwt.MapClaims, names ...string) int {
	for _, name := range names {
		if raw, ok := claims[name]; ok {
			if f, ok := raw.(float64); ok {
				return int(f)
			}
		}
	}
	return 0
}
