package middleware

import (
	"net/http"

	"bookstore-be/internal/auth"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/metrics"
	"bookstore-be/internal/utils"

	"go.uber.org/zap"
)

const (
	msgTokenRequired = "Authentication token is required."
	msgTokenRejected = "Token expired or invalid. Please sign in again."
)

// AuthMiddleware is the access gate. A missing bearer token is 401, a token
// that fails verification is 403. Verified identity lands in the context.
func AuthMiddleware(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromCtx(r.Context()).With(
				zap.String("layer", "middleware"),
				zap.String("method", "AuthMiddleware"),
			)

			tokenStr, ok := auth.ExtractBearerToken(r)
			if !ok {
				metrics.RecordTokenRejection("missing")
				log.Debug("missing bearer token", zap.String("path", r.URL.Path))
				utils.WriteJSONError(w, msgTokenRequired, http.StatusUnauthorized)
				return
			}

			identity, err := verifier.Verify(tokenStr)
			if err != nil {
				reason := auth.Reason(err)
				metrics.RecordTokenRejection(reason)
				log.Info("token rejected", zap.String("reason", reason), zap.Error(err))
				utils.WriteJSONError(w, msgTokenRejected, http.StatusForbidden)
				return
			}

			ctx := utils.SetUserContext(r.Context(), identity.ID, identity.Role)
			ctx = logger.WithUserID(ctx, identity.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
