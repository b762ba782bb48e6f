package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/roomtalk/internal/repository"
	"github.com/immxrtalbeast/roomtalk/internal/service"
)

const minPasswordLength = 8

type AuthController struct {
	auth       service.AuthInteractor
	cookieName string
	cookieTTL  time.Duration
}

func NewAuthController(auth service.AuthInteractor, cookieName string, cookieTTL time.Duration) *AuthController {
	return &AuthController{auth: auth, cookieName: cookieName, cookieTTL: cookieTTL}
}

func (c *AuthController) setSession(ctx *gin.Context, token string) {
	ctx.SetCookie(c.cookieName, token, int(c.cookieTTL.Seconds()), "/", "", false, true)
}

func (c *AuthController) clearSession(ctx *gin.Context) {
	ctx.SetCookie(c.cookieName, "", -1, "/", "", false, true)
}

// LoginPage renders the login form context, redirecting users who already
// have a session.
func (c *AuthController) LoginPage(ctx *gin.Context) {
	if currentUser(ctx) != nil {
		ctx.Redirect(http.StatusFound, "/")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"page": "login"})
}

func (c *AuthController) Login(ctx *gin.Context) {
	if currentUser(ctx) != nil {
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	type request struct {
		Username string `form:"username" binding:"required"`
		Password string `form:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"page": "login", "error": "Username and password are required"})
		return
	}

	_, token, err := c.auth.Login(ctx.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		ctx.JSON(http.StatusOK, gin.H{"page": "login", "error": "User does not exist"})
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		ctx.JSON(http.StatusOK, gin.H{"page": "login", "error": "Username or password incorrect"})
		return
	case err != nil:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.setSession(ctx, token)
	ctx.Redirect(http.StatusSeeOther, "/")
}

func (c *AuthController) Logout(ctx *gin.Context) {
	c.clearSession(ctx)
	ctx.Redirect(http.StatusFound, "/")
}

func (c *AuthController) RegisterPage(ctx *gin.Context) {
	if currentUser(ctx) != nil {
		ctx.Redirect(http.StatusFound, "/")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"page": "register"})
}

func (c *AuthController) Register(ctx *gin.Context) {
	type request struct {
		Username  string `form:"username" binding:"required"`
		Password1 string `form:"password1" binding:"required"`
		Password2 string `form:"password2" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{
			"page":   "register",
			"errors": gin.H{"form": "all fields are required"},
		})
		return
	}

	fieldErrors := gin.H{}
	if len(req.Password1) < minPasswordLength {
		fieldErrors["password1"] = fmt.Sprintf("password must be at least %d characters", minPasswordLength)
	}
	if req.Password1 != req.Password2 {
		fieldErrors["password2"] = "passwords do not match"
	}
	if len(fieldErrors) > 0 {
		ctx.JSON(http.StatusOK, gin.H{"page": "register", "errors": fieldErrors})
		return
	}

	_, token, err := c.auth.Register(ctx.Request.Context(), req.Username, req.Password1)
	switch {
	case errors.Is(err, repository.ErrUsernameTaken):
		ctx.JSON(http.StatusOK, gin.H{
			"page":   "register",
			"errors": gin.H{"username": "username already taken"},
		})
		return
	case err != nil:
		ctx.JSON(http.StatusOK, gin.H{
			"page":   "register",
			"errors": gin.H{"form": err.Error()},
		})
		return
	}

	c.setSession(ctx, token)
	ctx.Redirect(http.StatusSeeOther, "/")
}
