package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned inside the error envelope. The HTTP status is chosen
// to match the code's class.
const (
	CodeInvalidData  = "INVALID_DATA"
	CodeInvalidSign  = "INVALID_SIGN"
	CodeInvalidToken = "INVALID_TOKEN"
	CodeAuthFailed   = "AUTHENTICATION_FAILED"
	CodeNotFound     = "NOT_FOUND"
	CodeServerError  = "SERVER_ERROR"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope is the wire shape of every error response.
type ErrorEnvelope struct {
	Error errorBody `json:"error"`
}

// Error writes the error envelope with an explicit HTTP status.
func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// InvalidData reports malformed or missing input (400).
func InvalidData(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeInvalidData, message)
}

// InvalidSign reports an unknown zodiac sign (400).
func InvalidSign(c *gin.Context) {
	Error(c, http.StatusBadRequest, CodeInvalidSign, "Invalid zodiac sign")
}

// AuthFailed reports an expired, malformed, or unresolvable token (401).
func AuthFailed(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeAuthFailed, message)
}

// NotFound reports a missing resource (404).
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

// ServerError reports an unexpected failure (500). The message is kept
// generic so internals never leak to clients.
func ServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeServerError, message)
}
