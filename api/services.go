package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/judgegodwins/chess-rooms/game"
	"github.com/judgegodwins/chess-rooms/http_utils"
	"go.uber.org/zap"
)

type usernameRequest struct {
	Username string `json:"username" binding:"required,max=32"`
}

// Generates a token using the username passed as request body
func (s *Server) TokenGenerator(c *gin.Context) {
	var data usernameRequest

	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, http_utils.NewValidationErrorResponse(err))
		return
	}

	token, payload, err := s.tokenMaker.CreateToken(data.Username, s.config.TokenDuration)

	if err != nil {
		s.logger.Error("token_create", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
		return
	}

	c.JSON(http.StatusOK, successResponse("Auth data", gin.H{
		"id":       payload.ID,
		"username": payload.Username,
		"token":    token,
	}))
}

type createRoomRequest struct {
	Mode string `json:"mode" binding:"required"`
}

func (s *Server) CreateRoom(c *gin.Context) {
	authPayload, ok := GetPayload(c)

	if !ok {
		s.logger.Error("auth_payload", zap.Error(errors.New("value in auth_payload key of request context could not be casted to *tokens.Payload")))
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
		return
	}

	var data createRoomRequest

	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, http_utils.NewValidationErrorResponse(err))
		return
	}

	mode, err := game.ParseMode(data.Mode)

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
		return
	}

	roomID := s.registry.CreateRoom(mode)

	s.logger.Info("room_requested", zap.String("room_id", roomID), zap.String("username", authPayload.Username))

	c.JSON(http.StatusCreated, successResponse("Room created", gin.H{
		"id":   roomID,
		"mode": mode,
	}))
}

type checkRoomRequest struct {
	RoomID string `uri:"id" binding:"required"`
}

func (s *Server) CheckRoom(c *gin.Context) {
	var data checkRoomRequest

	if err := c.ShouldBindUri(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, http_utils.NewValidationErrorResponse(err))
		return
	}

	room, err := s.registry.Room(data.RoomID)

	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse("room not found"))
		return
	}

	c.JSON(http.StatusOK, successResponse("room data", room.State()))
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"rooms":   s.registry.Len(),
		"clients": s.wsManager.ClientCount(),
	})
}
