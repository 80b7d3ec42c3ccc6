package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/supportly/internal/catalog/domain"
	chatdomain "github.com/smallbiznis/supportly/internal/chat/domain"
	"github.com/smallbiznis/supportly/internal/tool"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrors is returned by handlers that reject request input field by field.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrRateLimited        = errors.New("rate_limited")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

// errorClass maps a family of sentinel errors onto one HTTP status and
// error type. Sentinel messages double as machine-readable codes.
type errorClass struct {
	status  int
	typ     string
	message string
	targets []error
}

var errorClasses = []errorClass{
	{
		status:  http.StatusBadRequest,
		typ:     "validation_error",
		message: "validation error",
		targets: []error{
			ErrInvalidRequest,
			tool.ErrInvalidParameters,
			chatdomain.ErrInvalidConversation,
			catalogdomain.ErrInvalidID,
			catalogdomain.ErrInvalidName,
			catalogdomain.ErrInvalidSKU,
			catalogdomain.ErrInvalidPrice,
			catalogdomain.ErrInvalidSalePrice,
			catalogdomain.ErrInvalidRating,
			catalogdomain.ErrInvalidQuantity,
			catalogdomain.ErrInvalidSize,
			catalogdomain.ErrInvalidColor,
			catalogdomain.ErrInvalidRelation,
			catalogdomain.ErrInvalidBrand,
			catalogdomain.ErrInvalidCategory,
			catalogdomain.ErrInvalidSearchFilter,
		},
	},
	{
		status:  http.StatusConflict,
		typ:     "conflict",
		message: "conflict",
		targets: []error{
			ErrConflict,
			chatdomain.ErrConversationBusy,
			catalogdomain.ErrDuplicateSKU,
			catalogdomain.ErrDuplicateBrand,
			catalogdomain.ErrDuplicateCategory,
			catalogdomain.ErrDuplicateInventory,
			catalogdomain.ErrDuplicateRelation,
		},
	},
	{
		status:  http.StatusNotFound,
		typ:     "not_found",
		message: "not found",
		targets: []error{
			ErrNotFound,
			catalogdomain.ErrNotFound,
			chatdomain.ErrNotFound,
			tool.ErrToolNotFound,
			gorm.ErrRecordNotFound,
		},
	},
	{
		status:  http.StatusTooManyRequests,
		typ:     "rate_limited",
		message: "too many requests",
		targets: []error{ErrRateLimited},
	},
	{
		status:  http.StatusServiceUnavailable,
		typ:     "service_unavailable",
		message: "service unavailable",
		targets: []error{ErrServiceUnavailable},
	},
}

var internalError = errorPayload{Type: "internal_error", Message: "internal server error"}

// ErrorHandlingMiddleware renders the last error recorded by a handler,
// unless the handler already wrote a response.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		last := c.Errors.Last()
		if last == nil {
			return
		}
		status, payload := mapError(last.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{Errors: []ValidationError{{Field: field, Code: code, Message: message}}}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, internalError
	}

	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	class, target := classify(err)
	if class == nil {
		return http.StatusInternalServerError, internalError
	}
	payload := errorPayload{Type: class.typ, Message: class.message}
	switch {
	case class.status == http.StatusBadRequest:
		payload.Errors = []ValidationError{sentinelValidationError(target)}
	case errors.Is(target, chatdomain.ErrConversationBusy):
		payload.Message = "conversation is busy with another message"
	}
	return class.status, payload
}

// classify returns the class and the sentinel err matched, or nil.
func classify(err error) (*errorClass, error) {
	for i := range errorClasses {
		for _, target := range errorClasses[i].targets {
			if errors.Is(err, target) {
				return &errorClasses[i], target
			}
		}
	}
	return nil, nil
}

// sentinelValidationError derives the field from the sentinel's code,
// so ErrInvalidSalePrice becomes field "sale_price", code "invalid_sale_price".
func sentinelValidationError(target error) ValidationError {
	code := target.Error()
	switch code {
	case "invalid_request":
		return ValidationError{Field: "request", Code: code, Message: "invalid request"}
	case "invalid_parameters":
		return ValidationError{Field: "parameters", Code: code, Message: "invalid tool parameters"}
	}
	return ValidationError{Field: strings.TrimPrefix(code, "invalid_"), Code: code, Message: "invalid value"}
}

// classifyErrorForLog returns the error type and code recorded on the request log line.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	if len(payload.Errors) > 0 {
		return payload.Type, payload.Errors[0].Code
	}
	if _, target := classify(err); target != nil && status != http.StatusInternalServerError {
		return payload.Type, target.Error()
	}
	return payload.Type, payload.Type
}
