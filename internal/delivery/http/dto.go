package http

// SendRequest is the structured body of POST /send. It carries the union of
// both accepted shapes; which one applies is decided during normalization.
type SendRequest struct {
	APIKey   string `json:"api_key"`
	BotToken string `json:"bot_token"`
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Message  string `json:"message"`

	Token string `json:"TOKEN"`
	Chat  string `json:"CHAT"`
	Data  string `json:"data"`
}

// SendResponse is the success response of /send.
type SendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse defines a standard structure for API error responses.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HealthResponse is returned by GET /health for uptime checks and the
// keep-alive scheduler.
type HealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// UsageResponse is the static info document served on GET /.
type UsageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Usage   string `json:"usage"`
}
