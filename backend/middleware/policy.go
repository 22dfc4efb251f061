package middleware

import (
	"context"
	"errors"
	"strconv"

	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// Policy decides whether the caller may continue. A nil error allows the
// request; models.ErrForbidden and models.ErrNotFound are reported as 403 and
// 404, anything else as 500.
type Policy func(c *fiber.Ctx, caller *utils.Claims) error

// CourseFinder is the slice of the course repository the policies need.
type CourseFinder interface {
	GetByID(ctx context.Context, id uint) (*models.Course, error)
}

const insufficientPermissions = "Access denied. Insufficient permissions."

// Authorize runs policy after AuthMiddleware. The handler chain stops at the
// first error.
func Authorize(policy Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := Claims(c)
		if caller == nil {
			return utils.HandleError(c, utils.ErrMissingToken)
		}
		if err := policy(c, caller); err != nil {
			return utils.HandleError(c, err)
		}
		return c.Next()
	}
}

func HasRole(role string) Policy {
	return func(_ *fiber.Ctx, caller *utils.Claims) error {
		if caller.Role != role {
			return models.Forbidden(insufficientPermissions)
		}
		return nil
	}
}

// OwnsCourse allows the caller when they are the author of the course named
// by the path parameter param.
func OwnsCourse(courses CourseFinder, param string) Policy {
	return func(c *fiber.Ctx, caller *utils.Claims) error {
		course, err := courseFromParam(c, courses, param)
		if err != nil {
			return err
		}
		if course.AuthorID != caller.UserID {
			return models.Forbidden("Access denied. You do not own this course.")
		}
		return nil
	}
}

// IsEnrolled allows the caller when an enrollment record in the course named
// by param carries their id.
func IsEnrolled(courses CourseFinder, param string) Policy {
	return func(c *fiber.Ctx, caller *utils.Claims) error {
		course, err := courseFromParam(c, courses, param)
		if err != nil {
			return err
		}
		if !course.IsEnrolled(caller.UserID) {
			return models.Forbidden("Access denied. Please enroll first.")
		}
		return nil
	}
}

// AllOf requires every policy, in order.
func AllOf(policies ...Policy) Policy {
	return func(c *fiber.Ctx, caller *utils.Claims) error {
		for _, p := range policies {
			if err := p(c, caller); err != nil {
				return err
			}
		}
		return nil
	}
}

// AnyOf allows the caller when one policy does. Only a Forbidden result moves
// on to the next policy; the last error is returned when none pass.
func AnyOf(policies ...Policy) Policy {
	return func(c *fiber.Ctx, caller *utils.Claims) error {
		err := error(models.Forbidden(insufficientPermissions))
		for _, p := range policies {
			err = p(c, caller)
			if err == nil {
				return nil
			}
			if !errors.Is(err, models.ErrForbidden) {
				return err
			}
		}
		return err
	}
}

// Allow lets every authenticated caller through.
func Allow(*fiber.Ctx, *utils.Claims) error { return nil }

func courseFromParam(c *fiber.Ctx, courses CourseFinder, param string) (*models.Course, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 64)
	if err != nil || id == 0 {
		return nil, models.BadRequest("Invalid course ID")
	}
	return courses.GetByID(c.UserContext(), uint(id))
}

// CourseAuthorGuard gates course mutation on the author role and, when
// cfg.EnforceCourseOwnership is set, on owning the course.
func CourseAuthorGuard(cfg *config.Config, courses CourseFinder, param string) fiber.Handler {
	if !cfg.EnforceCourseOwnership {
		return Authorize(HasRole(models.RoleAuthor))
	}
	return Authorize(AllOf(HasRole(models.RoleAuthor), OwnsCourse(courses, param)))
}
