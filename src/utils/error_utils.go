// error_utils.go
package utils

import (
	"github.com/Adribv/Placement-Site-Backend/src/errs"
	"github.com/Adribv/Placement-Site-Backend/src/models"

	"github.com/gofiber/fiber/v2"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// HandleAppError maps a typed domain error onto the error envelope.
func HandleAppError(c *fiber.Ctx, err error) error {
	e := errs.FromError(err)
	return HandleError(c, e.Status, e.Message)
}
