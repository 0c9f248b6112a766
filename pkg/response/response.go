package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/charlesng35/catalog/pkg/errors"
)

const (
	defaultSuccessMessage = "Request was successful"
	defaultErrorMessage   = "An error occurred"
)

// Envelope is the uniform payload returned by every catalog operation.
// Succeed is false iff the operation failed, in which case Result carries the error details.
type Envelope struct {
	Succeed bool   `json:"succeed"`
	Message string `json:"message"`
	Result  any    `json:"result"`
	Meta    any    `json:"meta,omitempty"`
}

// Success builds a success envelope.
func Success(message string, data any, meta any) Envelope {
	if message == "" {
		message = defaultSuccessMessage
	}
	return Envelope{
		Succeed: true,
		Message: message,
		Result:  data,
		Meta:    meta,
	}
}

// Failure builds an error envelope; details land in Result.
func Failure(message string, details any, meta any) Envelope {
	if message == "" {
		message = defaultErrorMessage
	}
	if details == nil {
		details = map[string]any{}
	}
	return Envelope{
		Succeed: false,
		Message: message,
		Result:  details,
		Meta:    meta,
	}
}

// JSON writes an envelope with the given status code.
func JSON(c *gin.Context, statusCode int, env Envelope) {
	c.JSON(statusCode, env)
}

// OK writes a success envelope with status 200.
func OK(c *gin.Context, env Envelope) {
	JSON(c, http.StatusOK, env)
}

// Error writes a failure envelope derived from an AppError. Unclassified errors are reported
// with the canned internal message so store failures never leak to clients.
func Error(c *gin.Context, err error) {
	if err == nil {
		err = appErrors.ErrInternalServer
	}

	appErr := appErrors.FromError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	message := appErr.Message
	if status >= http.StatusInternalServerError {
		message = appErrors.ErrInternalServer.Message
	}

	JSON(c, status, Failure(message, appErr.Details, appErr.Meta))
}
