package apperrors

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// Response is the error envelope sent to clients: status is "fail" for client
// errors (4xx) and "error" for server errors (5xx).
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func statusWord(httpCode int) string {
	if httpCode >= http.StatusInternalServerError {
		return "error"
	}
	return "fail"
}

func inDevelopment() bool {
	return os.Getenv("SERVER_ENV") != "production"
}

// HandleError translates any error into the JSON envelope and writes it. Server
// errors are logged; their messages are hidden outside development.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !As(err, &appErr) {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= http.StatusInternalServerError {
		slog.Error("server error",
			"code", appErr.Code,
			"path", c.Request.URL.Path,
			"error", appErr.Error(),
		)
	}

	message := appErr.Message
	if appErr.HTTPCode >= http.StatusInternalServerError && !inDevelopment() {
		message = "Something went wrong"
	}

	resp := Response{
		Status:  statusWord(appErr.HTTPCode),
		Message: message,
	}
	if inDevelopment() {
		resp.Details = appErr.Details
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, resp)
}
