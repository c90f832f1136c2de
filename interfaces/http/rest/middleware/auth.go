package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"peersphere-backend/pkg/auth"

	"go.uber.org/zap"
)

// Authenticate creates an authentication middleware with JWT validation
// and per-IP / per-user rate limiting. In Lambda, API Gateway has
// already validated the token and the adapter forwards the identity in
// headers, so only the header path runs there.
func Authenticate(validator *auth.JWTValidator, userLimiter auth.RateLimiter, logger *zap.Logger, requestsPerMinute int) func(next http.Handler) http.Handler {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		return authenticateForLambda(userLimiter, logger, requestsPerMinute)
	}

	ipLimiter := auth.NewIPRateLimiter(requestsPerMinute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)

			allowed, _ := ipLimiter.Allow(r.Context(), clientIP)
			if !allowed {
				respondWithError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}

			token := extractToken(r)
			if token == "" {
				respondUnauthorized(w, "Missing authentication token")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("Invalid token",
					zap.Error(err),
					zap.String("ip", clientIP),
					zap.String("path", r.URL.Path),
				)

				switch {
				case errors.Is(err, auth.ErrExpiredToken):
					respondUnauthorized(w, "Token has expired")
				case errors.Is(err, auth.ErrInvalidSignature):
					respondUnauthorized(w, "Invalid token signature")
				default:
					respondUnauthorized(w, "Invalid token")
				}
				return
			}

			allowed, _ = userLimiter.Allow(r.Context(), claims.UserID)
			if !allowed {
				respondWithError(w, http.StatusTooManyRequests, "User rate limit exceeded")
				return
			}

			ctx := auth.SetUserInContext(r.Context(), &auth.UserContext{
				UserID:   claims.UserID,
				Email:    claims.Email,
				Username: claims.Username,
				Roles:    claims.Roles,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthenticate attaches the caller's identity when a valid
// token is present but lets anonymous requests through. Public read
// endpoints use this so a signed-in viewer sees their own vote state.
func OptionalAuthenticate(validator *auth.JWTValidator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				// Anonymous access is still fine; a bad token just
				// gets no viewer identity
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.SetUserInContext(r.Context(), &auth.UserContext{
				UserID:   claims.UserID,
				Email:    claims.Email,
				Username: claims.Username,
				Roles:    claims.Roles,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ThrottleWrites applies a tighter per-user limit on reputation-bearing
// writes. Mount it after Authenticate on vote and accept routes.
func ThrottleWrites(throttle *auth.WriteThrottle) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.GetUserFromContext(r.Context())
			if err != nil {
				respondUnauthorized(w, "Unauthorized")
				return
			}

			allowed, _ := throttle.Allow(r.Context(), user.UserID)
			if !allowed {
				respondWithError(w, http.StatusTooManyRequests, "Write rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// authenticateForLambda trusts the identity headers the Lambda adapter
// sets after API Gateway's JWT authorizer has run. The user limiter is
// the DynamoDB-backed one there, since invocation memory is not shared.
func authenticateForLambda(userLimiter auth.RateLimiter, logger *zap.Logger, requestsPerMinute int) func(next http.Handler) http.Handler {
	ipLimiter := auth.NewIPRateLimiter(requestsPerMinute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)

			allowed, _ := ipLimiter.Allow(r.Context(), clientIP)
			if !allowed {
				respondWithError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}

			if r.Header.Get("X-API-Gateway-Authorized") != "true" {
				respondUnauthorized(w, "Request not authorized by API Gateway")
				return
			}

			userID := r.Header.Get("X-User-ID")
			if userID == "" {
				logger.Warn("Pre-authorized request without user identity",
					zap.String("path", r.URL.Path),
				)
				respondUnauthorized(w, "Missing user context from API Gateway")
				return
			}

			allowed, _ = userLimiter.Allow(r.Context(), userID)
			if !allowed {
				respondWithError(w, http.StatusTooManyRequests, "User rate limit exceeded")
				return
			}

			roles := []string{"authenticated"}
			if userRoles := r.Header.Get("X-User-Roles"); userRoles != "" {
				roles = strings.Split(userRoles, ",")
			}

			ctx := auth.SetUserInContext(r.Context(), &auth.UserContext{
				UserID:   userID,
				Email:    r.Header.Get("X-User-Email"),
				Username: r.Header.Get("X-User-Name"),
				Roles:    roles,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the JWT token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
		return authHeader
	}

	if cookie, err := r.Cookie("auth_token"); err == nil {
		return cookie.Value
	}

	return ""
}

// getClientIP extracts the client IP address
func getClientIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	respondWithError(w, http.StatusUnauthorized, message)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    code,
	})
}
