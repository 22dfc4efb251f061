package utils

import (
	"errors"

	"learnhub/backend/models"

	"github.com/gofiber/fiber/v2"
)

// HandleError maps the domain taxonomy onto HTTP statuses. Anything outside
// the taxonomy is reported as a 500 carrying the original message.
func HandleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return NotFound(c, err.Error())
	case errors.Is(err, models.ErrForbidden):
		return Forbidden(c, err.Error())
	case errors.Is(err, models.ErrAlreadyEnrolled),
		errors.Is(err, models.ErrDuplicateReview),
		errors.Is(err, models.ErrBadRequest):
		return BadRequest(c, err.Error())
	case errors.Is(err, models.ErrTooLarge):
		return Error(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, ErrMissingToken):
		return Unauthorized(c, "Access denied. No token provided.")
	case errors.Is(err, ErrInvalidToken):
		return Unauthorized(c, "Invalid token.")
	default:
		return InternalServerError(c, err)
	}
}
