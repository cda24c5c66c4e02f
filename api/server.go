package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/judgegodwins/chess-rooms/game"
	"github.com/judgegodwins/chess-rooms/tokens"
	"github.com/judgegodwins/chess-rooms/util"
	"github.com/judgegodwins/chess-rooms/ws"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type Server struct {
	config     *util.Config
	wsManager  *ws.Manager
	registry   *game.Registry
	tokenMaker tokens.Maker
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

func NewServer(config *util.Config, registry *game.Registry, maker tokens.Maker, logger *zap.Logger) *Server {
	router := gin.New()

	server := &Server{
		config:     config,
		wsManager:  ws.NewManager(config, registry, maker, logger),
		registry:   registry,
		tokenMaker: maker,
		router:     router,
		logger:     logger,
	}

	router.Use(server.requestLogger, gin.Recovery())

	router.GET("/ws", server.wsManager.ServeWS)
	router.GET("/healthz", server.Health)
	router.POST("/auth/username", server.TokenGenerator)
	router.POST("/rooms", server.AuthMiddleware, server.CreateRoom)
	router.GET("/rooms/:id", server.CheckRoom)

	server.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%v", config.Port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server
}

// Handler is the router wrapped in the CORS policy.
func (s *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(s.router)
}

func (s *Server) Start() error {
	s.logger.Info("server_start", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) requestLogger(c *gin.Context) {
	start := time.Now()

	c.Next()

	s.logger.Info("http_request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("latency", time.Since(start)),
	)
}
