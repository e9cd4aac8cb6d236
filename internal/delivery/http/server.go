package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shimantoislam/bot/internal/config"
)

// Server is a wrapper for the HTTP server.
type Server struct {
	*http.Server
	logger zerolog.Logger
}

// NewServer creates and configures a new Gin server.
func NewServer(cfg *config.Config, handlers *Handlers, logger *zerolog.Logger) *Server {
	log := logger.With().Str("layer", "http_server").Logger()
	log.Info().Msg("initializing http server")

	log.Info().Str("mode", cfg.HTTP.GinMode).Msg("setting gin mode")
	gin.SetMode(cfg.HTTP.GinMode)

	router := gin.New()

	log.Info().Msg("initializing middleware: request id, access log, recovery")
	router.Use(RequestID())
	router.Use(AccessLog(logger))
	router.Use(Recovery(logger))

	log.Info().Msg("registering api routes")
	handlers.RegisterRoutes(router)

	server := &http.Server{
		Addr:    cfg.HTTP.Port,
		Handler: router,
	}

	return &Server{server, log}
}
