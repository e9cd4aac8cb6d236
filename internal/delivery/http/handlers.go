package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shimantoislam/bot/internal/service"
)

const usageText = "Send a POST request to /send with api_key, bot_token, user_id, email, and password, " +
	"or a GET request to /send with TOKEN, CHAT and data"

type Handlers struct {
	service *service.RelayService
	logger  zerolog.Logger
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(service *service.RelayService, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		logger:  logger.With().Str("layer", "http_handler").Logger(),
	}
}

// RegisterRoutes sets up the routing for the relay API.
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	router.POST("/send", h.SendFromBody)
	router.GET("/send", h.SendFromQuery)
	router.GET("/health", h.Health)
	router.GET("/", h.Usage)
}

// SendFromBody handles POST /send with a structured JSON body.
func (h *Handlers) SendFromBody(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid request body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	in := service.Input{
		Source:        service.SourceBody,
		APIKey:        req.APIKey,
		APIKeyPresent: req.APIKey != "",
		BotToken:      req.BotToken,
		UserID:        req.UserID,
		Email:         req.Email,
		Password:      req.Password,
		Message:       req.Message,
		Token:         req.Token,
		Chat:          req.Chat,
		Data:          req.Data,
		DataPresent:   req.Data != "",
	}

	h.relay(c, in)
}

// SendFromQuery handles GET /send with query parameters. The data parameter
// is taken from the raw query string so that percent-decoding happens exactly
// once, inside the normalizer.
func (h *Handlers) SendFromQuery(c *gin.Context) {
	in := service.Input{
		Source:   service.SourceQuery,
		BotToken: c.Query("bot_token"),
		UserID:   c.Query("user_id"),
		Email:    c.Query("email"),
		Password: c.Query("password"),
		Message:  c.Query("message"),
		Token:    c.Query("TOKEN"),
		Chat:     c.Query("CHAT"),
	}
	in.APIKey, in.APIKeyPresent = c.GetQuery("api_key")
	in.Data, in.DataPresent = rawQueryValue(c.Request.URL.RawQuery, "data")

	h.relay(c, in)
}

// relay invokes the service pipeline and maps its outcome onto the response
// contract. Delivery failure detail never reaches the caller; only the
// generic message does.
func (h *Handlers) relay(c *gin.Context, in service.Input) {
	err := h.service.Relay(c.Request.Context(), in)
	if err == nil {
		c.JSON(http.StatusOK, SendResponse{Success: true, Message: "Message sent to Telegram"})
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidAPIKey):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Invalid API key"})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing required fields"})
	case errors.Is(err, service.ErrDelivery):
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to send message to Telegram"})
	default:
		h.logger.Error().Err(err).Msg("unexpected relay error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// Health handles GET /health.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Success:   true,
		Message:   "Server is alive",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Usage handles GET / with a static info document.
func (h *Handlers) Usage(c *gin.Context) {
	c.JSON(http.StatusOK, UsageResponse{
		Success: true,
		Message: "Telegram API is running",
		Usage:   usageText,
	})
}

// rawQueryValue extracts the still-encoded value of key from a raw query
// string. Returns false when the key is absent.
func rawQueryValue(rawQuery, key string) (string, bool) {
	for _, pair := range strings.Split(rawQuery, "&") {
		k, v, _ := strings.Cut(pair, "=")
		if k == key {
			return v, true
		}
	}
	return "", false
}
