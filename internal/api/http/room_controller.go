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

// homeTopicLimit caps the topic preview on the home page.
const homeTopicLimit = 4

type RoomController struct {
	rooms service.RoomInteractor
}

func NewRoomController(rooms service.RoomInteractor) *RoomController {
	return &RoomController{rooms: rooms}
}

// Home lists rooms, a topic preview and the recent-message feed, all
// filtered by the q query parameter.
func (c *RoomController) Home(ctx *gin.Context) {
	q := ctx.Query("q")

	rooms, err := c.rooms.SearchRooms(ctx.Request.Context(), q)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	topics, err := c.rooms.ListTopics(ctx.Request.Context(), "", homeTopicLimit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	feed, err := c.rooms.MessageFeed(ctx.Request.Context(), q)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"rooms":         converter.RoomsToApi(rooms),
		"room_count":    len(rooms),
		"topics":        converter.TopicsToApi(topics),
		"room_messages": converter.MessagesToApi(feed),
	})
}

// Room renders the room detail: the room, its messages newest first, and
// the participant list.
func (c *RoomController) Room(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("roomID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	room, messages, err := c.rooms.GetRoom(ctx.Request.Context(), id)
	if err != nil {
		c.roomError(ctx, err)
		return
	}

	resp := converter.RoomToApi(room)
	ctx.JSON(http.StatusOK, gin.H{
		"room":          resp,
		"room_messages": converter.MessagesToApi(messages),
		"participants":  resp.Participants,
	})
}

// PostMessage inserts a message into the room and records the author as a
// participant, then redirects back to the room.
func (c *RoomController) PostMessage(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("roomID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	type request struct {
		Body string `form:"body" binding:"required"`
	}
	var req request
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"error": "message body is required"})
		return
	}

	if _, err := c.rooms.PostMessage(ctx.Request.Context(), currentUser(ctx), id, req.Body); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/room/"+id.String())
}

func (c *RoomController) CreateRoomForm(ctx *gin.Context) {
	topics, err := c.rooms.ListTopics(ctx.Request.Context(), "", 0)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"form": gin.H{}, "topics": converter.TopicsToApi(topics)})
}

func (c *RoomController) CreateRoom(ctx *gin.Context) {
	type request struct {
		Topic       string `form:"topic" binding:"required"`
		Name        string `form:"name" binding:"required"`
		Description string `form:"description"`
	}

	var req request
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"errors": gin.H{"form": "topic and name are required"}})
		return
	}

	if _, err := c.rooms.CreateRoom(ctx.Request.Context(), currentUser(ctx), req.Topic, req.Name, req.Description); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"errors": gin.H{"form": err.Error()}})
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/")
}

func (c *RoomController) UpdateRoomForm(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("roomID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	room, _, err := c.rooms.GetRoom(ctx.Request.Context(), id)
	if err != nil {
		c.roomError(ctx, err)
		return
	}
	if !room.HostedBy(currentUser(ctx).ID) {
		ctx.String(http.StatusForbidden, "You cannot edit this room")
		return
	}

	topics, err := c.rooms.ListTopics(ctx.Request.Context(), "", 0)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"room":   converter.RoomToApi(room),
		"topics": converter.TopicsToApi(topics),
	})
}

func (c *RoomController) UpdateRoom(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("roomID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	type request struct {
		Topic       string `form:"topic" binding:"required"`
		Name        string `form:"name" binding:"required"`
		Description string `form:"description"`
	}

	var req request
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"errors": gin.H{"form": "topic and name are required"}})
		return
	}

	_, err = c.rooms.UpdateRoom(ctx.Request.Context(), currentUser(ctx), id, req.Topic, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrNotAllowed) {
			ctx.String(http.StatusForbidden, "You cannot edit this room")
			return
		}
		c.roomError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/")
}

// DeleteRoomConfirm returns the confirmation prompt context.
func (c *RoomController) DeleteRoomConfirm(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("roomID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	room, _, err := c.rooms.GetRoom(ctx.Request.Context(), id)
	if err != nil {
		c.roomError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"obj": room.Name, "type": "room"})
}

func (c *RoomController) DeleteRoom(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("roomID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	if err := c.rooms.DeleteRoom(ctx.Request.Context(), currentUser(ctx), id); err != nil {
		if errors.Is(err, service.ErrNotAllowed) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "only the host can delete this room"})
			return
		}
		c.roomError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/")
}

func (c *RoomController) DeleteMessageConfirm(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("messageID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	message, err := c.rooms.GetMessage(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"obj": message.Body, "type": "message"})
}

func (c *RoomController) DeleteMessage(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("messageID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	if err := c.rooms.DeleteMessage(ctx.Request.Context(), currentUser(ctx), id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotAllowed):
			ctx.JSON(http.StatusForbidden, gin.H{"error": "you cannot delete this message"})
		case errors.Is(err, repository.ErrMessageNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/")
}

func (c *RoomController) Topics(ctx *gin.Context) {
	topics, err := c.rooms.ListTopics(ctx.Request.Context(), ctx.Query("q"), 0)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	counts, err := c.rooms.TopicRoomCounts(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"topics": converter.TopicsToApiWithCounts(topics, counts)})
}

func (c *RoomController) Activity(ctx *gin.Context) {
	messages, err := c.rooms.Activity(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"room_messages": converter.MessagesToApi(messages)})
}

func (c *RoomController) roomError(ctx *gin.Context, err error) {
	if errors.Is(err, repository.ErrRoomNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
