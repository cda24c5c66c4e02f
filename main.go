package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/judgegodwins/chess-rooms/api"
	"github.com/judgegodwins/chess-rooms/board"
	"github.com/judgegodwins/chess-rooms/game"
	"github.com/judgegodwins/chess-rooms/tokens"
	"github.com/judgegodwins/chess-rooms/util"
	"go.uber.org/zap"
)

func main() {
	config, err := util.LoadConfig()

	if err != nil {
		log.Fatal(err)
	}

	logger, err := util.NewLogger(config.LogLevel, config.LogFormat)

	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if config.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	controls, err := game.LoadTimeControls(config.TimeControlsFile)

	if err != nil {
		logger.Fatal("time_controls", zap.Error(err))
	}

	maker, err := tokens.NewMaker(config.TokenKind, config.TokenSecret)

	if err != nil {
		logger.Fatal("token_maker", zap.Error(err))
	}

	registry := game.NewRegistry(board.NewValidator(), logger, game.WithTimeControls(controls))

	server := api.NewServer(config, registry, maker, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server_start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("server_shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown", zap.Error(err))
	}
}
