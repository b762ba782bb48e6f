package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/roomtalk/internal/domain"
	"github.com/immxrtalbeast/roomtalk/internal/service"
)

const userContextKey = "acting_user"

// SessionMiddleware resolves the acting user from the session cookie and
// makes it available to handlers as a request-scoped value.
type SessionMiddleware struct {
	auth       service.AuthInteractor
	cookieName string
}

func NewSessionMiddleware(auth service.AuthInteractor, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{auth: auth, cookieName: cookieName}
}

// Resolve loads the acting user if a valid session cookie is present. It
// never rejects the request; gated routes add Require on top.
func (m *SessionMiddleware) Resolve() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(m.cookieName)
		if err == nil && token != "" {
			if user, err := m.auth.UserFromToken(ctx.Request.Context(), token); err == nil {
				ctx.Set(userContextKey, user)
			}
		}
		ctx.Next()
	}
}

// Require redirects unauthenticated requests to the login page.
func (m *SessionMiddleware) Require() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if currentUser(ctx) == nil {
			ctx.Redirect(http.StatusFound, "/login")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func currentUser(ctx *gin.Context) *domain.User {
	v, ok := ctx.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}
