package util

import (
	"runtime/debug"

	"github.com/FEgor04/moretech-hack/internal/apperror"
	"github.com/FEgor04/moretech-hack/internal/config"
	"github.com/FEgor04/moretech-hack/internal/response"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
}

type OrderedSuccessResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
}

type OrderedErrorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DevMessage string `json:"dev_message,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

// SuccessResponse sends the standard success envelope.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(OrderedSuccessResponse{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
	})
}

// ErrorResponse sends the standard error envelope. The status code comes from
// params.Code or, when zero, from the error's kind.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	resp := OrderedErrorResponse{
		Success: false,
		Message: params.Message,
	}

	var err error
	if len(errs) > 0 {
		err = errs[0]
	}

	if config.LoadAppConfig().Env != "production" {
		if err != nil {
			resp.DevMessage = err.Error()
			resp.Trace = string(debug.Stack())
		}
		if params.DevMessage != "" {
			resp.DevMessage = params.DevMessage
		}
	}

	code := params.Code
	if code == 0 {
		code = StatusFromError(err)
	}
	return c.Status(code).JSON(resp)
}

// StatusFromError maps domain errors onto HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case apperror.IsNotFound(err):
		return fiber.StatusNotFound
	case apperror.IsConflict(err):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
