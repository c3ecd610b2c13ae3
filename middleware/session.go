package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkpress/inkpress/session"
	"github.com/inkpress/inkpress/utils"
)

// SessionResolver resolves the session cookie into an identity and stores
// it in the request context. Requests without a live session stay
// anonymous; a session-store outage is logged and treated as anonymous
// rather than failing every page.
func SessionResolver(sessions *session.Manager, cookieName string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cookie, err := ctx.Cookie(cookieName)
		if err != nil {
			ctx.Next()
			return
		}

		identity, err := sessions.Resolve(cookie)
		if err != nil {
			utils.Sugar.Warnf("session resolve failed: %v", err)
			ctx.Next()
			return
		}
		if identity != nil {
			ctx.Set(utils.ContextIdentityKey, identity)
		}
		ctx.Next()
	}
}

// LoginRequired redirects anonymous requests to the login page.
func LoginRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if utils.CurrentIdentity(ctx) == nil {
			ctx.Redirect(http.StatusFound, "/login")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
