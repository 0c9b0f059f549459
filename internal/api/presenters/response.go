package presenters

import "github.com/gofiber/fiber/v2"

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, code int, message string) error {
	return c.Status(code).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(code).JSON(res)
}

// ErrorResponseWithData is used when a failed request still carries a usable
// body, like an empty search result.
func ErrorResponseWithData(c *fiber.Ctx, code int, message string, err error, data any) error {
	res := Response{
		Status:  false,
		Message: message,
		Data:    data,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(code).JSON(res)
}
