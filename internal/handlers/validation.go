package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/catalog/internal/services"
	appErrors "github.com/charlesng35/catalog/pkg/errors"
	"github.com/charlesng35/catalog/pkg/pagination"
	"github.com/charlesng35/catalog/pkg/response"
	appValidator "github.com/charlesng35/catalog/pkg/validator"
)

// bindAndValidate binds the JSON payload into dest and runs struct validation rules.
// When validation fails, an error response is automatically written and false is returned.
func bindAndValidate[T any](c *gin.Context, dest *T) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.NewBadRequest("invalid JSON payload"))
		return false
	}

	if err := appValidator.ValidateStruct(dest); err != nil {
		response.Error(c, badRequestFromValidation(err))
		return false
	}

	return true
}

type idParam struct {
	ID string `uri:"id" json:"id" validate:"required,uuid"`
}

// bindID extracts and validates the :id path parameter.
func bindID(c *gin.Context) (string, bool) {
	var param idParam
	if err := c.ShouldBindUri(&param); err != nil {
		response.Error(c, appErrors.NewBadRequest("invalid path parameter"))
		return "", false
	}
	param.ID = strings.TrimSpace(param.ID)
	if err := appValidator.ValidateStruct(&param); err != nil {
		response.Error(c, badRequestFromValidation(err))
		return "", false
	}
	return param.ID, true
}

func badRequestFromValidation(err error) *appErrors.AppError {
	var ve appValidator.ValidationErrors
	if errors.As(err, &ve) {
		return appErrors.NewBadRequest(formatValidationError(err)).WithDetails(ve)
	}
	return appErrors.NewBadRequest(formatValidationError(err))
}

func formatValidationError(err error) string {
	if err == nil {
		return "invalid request payload"
	}

	if ve, ok := err.(appValidator.ValidationErrors); ok {
		if len(ve) == 0 {
			return "invalid request payload"
		}

		messages := make([]string, 0, len(ve))
		for _, failure := range ve {
			field := prettifyFieldName(failure.Field)
			switch failure.Tag {
			case "required", "notblank":
				messages = append(messages, fmt.Sprintf("%s is required", field))
			case "min", "gte":
				messages = append(messages, fmt.Sprintf("%s must be at least %s", field, failure.Param))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, failure.Param))
			case "uuid":
				messages = append(messages, fmt.Sprintf("%s must be a valid UUID", field))
			case "oneof":
				messages = append(messages, fmt.Sprintf("%s must be one of %s", field, failure.Param))
			case "url":
				messages = append(messages, fmt.Sprintf("%s must be a valid URL", field))
			default:
				if failure.Param != "" {
					messages = append(messages, fmt.Sprintf("%s failed validation: %s=%s", field, failure.Tag, failure.Param))
				} else {
					messages = append(messages, fmt.Sprintf("%s failed validation: %s", field, failure.Tag))
				}
			}
		}
		return strings.Join(messages, "; ")
	}

	return "invalid request payload"
}

func prettifyFieldName(name string) string {
	if name == "" {
		return "field"
	}
	name = strings.ReplaceAll(name, "_", " ")
	return name
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}

// listOptions reads ?page and ?limit, falling back to page 1 and limit 10. Limits above
// pagination.MaxLimit are capped.
func listOptions(c *gin.Context) services.ListOptions {
	return services.ListOptions{
		Page:  parseIntQuery(c, "page", pagination.DefaultPage),
		Limit: pagination.ClampLimit(parseIntQuery(c, "limit", pagination.DefaultLimit), pagination.DefaultLimit),
	}
}
