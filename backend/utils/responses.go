package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse структура для ошибок
type ErrorResponse struct {
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Success создает успешный JSON ответ
func Success(c *fiber.Ctx, status int, body interface{}) error {
	return c.Status(status).JSON(body)
}

// Created отправляет ответ 201 Created
func Created(c *fiber.Ctx, body interface{}) error {
	return Success(c, fiber.StatusCreated, body)
}

// Error создает JSON ответ с ошибкой
func Error(c *fiber.Ctx, status int, message string, details ...interface{}) error {
	response := ErrorResponse{Message: message}
	if len(details) > 0 {
		response.Details = details[0]
	}
	return c.Status(status).JSON(response)
}

// ValidationError отправляет 400 с ошибками по полям
func ValidationError(c *fiber.Ctx, errors map[string]string) error {
	return Error(c, fiber.StatusBadRequest, "Validation failed", errors)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// InternalServerError отправляет 500 с текстом исходной ошибки
func InternalServerError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Server error",
		Error:   err.Error(),
	})
}

// FiberErrorHandler оформляет ошибки самого fiber (неизвестный маршрут,
// лимит тела) так же, как ошибки обработчиков
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Error(c, fe.Code, fe.Message)
	}
	return HandleError(c, err)
}
