package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type contextkey string

const authContextKey contextkey = "auth_payload"

func (s *Server) AuthMiddleware(c *gin.Context) {
	header := c.Request.Header.Get("authorization")

	if header == "" {
		c.JSON(http.StatusUnauthorized, errorResponse("unauthorized"))
		c.Abort()
		return
	}

	sArr := strings.Split(header, " ")

	if len(sArr) < 2 || !strings.EqualFold(sArr[0], "bearer") {
		c.JSON(http.StatusUnauthorized, errorResponse("unauthorized"))
		c.Abort()
		return
	}

	payload, err := s.tokenMaker.VerifyToken(sArr[1])

	if err != nil {
		c.JSON(http.StatusUnauthorized, errorResponse("invalid bearer token"))
		c.Abort()
		return
	}

	c.Set(string(authContextKey), payload)

	c.Next()
}
