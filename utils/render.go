package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkpress/inkpress/session"
)

// ContextIdentityKey is the gin context key under which the session
// middleware stores the resolved *session.Identity.
const ContextIdentityKey = "identity"

// CurrentIdentity returns the authenticated identity for the request, or
// nil for anonymous requests.
func CurrentIdentity(ctx *gin.Context) *session.Identity {
	v, ok := ctx.Get(ContextIdentityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*session.Identity)
	return identity
}

// HTML renders a template with the current identity merged into the data,
// so every page can show login state without each handler passing it.
func HTML(ctx *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["CurrentUser"]; !ok {
		data["CurrentUser"] = CurrentIdentity(ctx)
	}
	ctx.HTML(status, name, data)
}

// NotFound renders the shared 404 page.
func NotFound(ctx *gin.Context) {
	HTML(ctx, http.StatusNotFound, "404.html", gin.H{"Title": "Not Found"})
}
