package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/immxrtalbeast/roomtalk/internal/api/http/converter"
	"github.com/immxrtalbeast/roomtalk/internal/repository"
	"github.com/immxrtalbeast/roomtalk/internal/service"
)

type UserController struct {
	users service.UserInteractor
}

func NewUserController(users service.UserInteractor) *UserController {
	return &UserController{users: users}
}

// Profile renders a user's page: their rooms, messages and the topic list.
func (c *UserController) Profile(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("userID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	profile, err := c.users.Profile(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":          converter.UserToApi(profile.User),
		"rooms":         converter.RoomsToApi(profile.Rooms),
		"room_messages": converter.MessagesToApi(profile.Messages),
		"topics":        converter.TopicsToApi(profile.Topics),
	})
}

// UpdateProfileForm returns the acting user's current fields for the form.
func (c *UserController) UpdateProfileForm(ctx *gin.Context) {
	user := currentUser(ctx)
	ctx.JSON(http.StatusOK, gin.H{"form": gin.H{
		"username": user.Username,
		"email":    user.Email,
		"bio":      user.Bio,
	}})
}

func (c *UserController) UpdateProfile(ctx *gin.Context) {
	type request struct {
		Username string `form:"username" binding:"required"`
		Email    string `form:"email" binding:"omitempty,email"`
		Bio      string `form:"bio"`
	}

	var req request
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"errors": gin.H{"form": "username is required and email must be valid"}})
		return
	}

	user, err := c.users.UpdateProfile(ctx.Request.Context(), currentUser(ctx), req.Username, req.Email, req.Bio)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			ctx.JSON(http.StatusOK, gin.H{"errors": gin.H{"username": "username already taken"}})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"errors": gin.H{"form": err.Error()}})
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/profile/"+user.ID.String())
}
