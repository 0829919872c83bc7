package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/karmakarsharmila40/idea-publishing-platform/config"
	"github.com/karmakarsharmila40/idea-publishing-platform/utils"
)

const (
	// AuthHeader carries the signed identity token.
	AuthHeader = "x-auth-token"
	// ContextUserIDKey stores the authenticated user's hex ObjectID in the
	// Gin context.
	ContextUserIDKey = "user_id"
	// ContextUsernameKey stores the username in the Gin context.
	ContextUsernameKey = "username"
)

// AuthRequired ensures the request carries a valid, unrevoked token in the
// x-auth-token header. A missing server-side secret is a 500, not a 401.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if config.Get().JWTSecret == "" {
			utils.Fail(ctx, http.StatusInternalServerError, "JWT_SECRET not configured")
			ctx.Abort()
			return
		}

		token := strings.TrimSpace(ctx.GetHeader(AuthHeader))
		if token == "" {
			utils.Fail(ctx, http.StatusUnauthorized, "No token, authorization denied")
			ctx.Abort()
			return
		}

		if utils.IsTokenBlacklisted(token) {
			utils.Fail(ctx, http.StatusUnauthorized, "Token is not valid")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Fail(ctx, http.StatusUnauthorized, "Token is not valid")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUsernameKey, claims.Username)
		ctx.Next()
	}
}
