package middleware

import (
	"learnhub/backend/models"

	"github.com/gofiber/fiber/v2"
)

// EnrollmentGuard lets authors through and requires learners to be enrolled
// in the course named by the path parameter param. A missing course is a 404.
func EnrollmentGuard(courses CourseFinder, param string) fiber.Handler {
	return Authorize(AnyOf(
		HasRole(models.RoleAuthor),
		IsEnrolled(courses, param),
	))
}
