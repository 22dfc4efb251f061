package controllers

import (
	"strconv"

	"learnhub/backend/models"

	"github.com/gofiber/fiber/v2"
)

// paramID reads a positive numeric path parameter.
func paramID(c *fiber.Ctx, name, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, models.BadRequest("Invalid " + label + " ID")
	}
	return uint(id), nil
}
