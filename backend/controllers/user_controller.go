package controllers

import (
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/repository"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Users   *repository.UserRepository
	Courses *repository.CourseRepository
}

func NewUserController(users *repository.UserRepository, courses *repository.CourseRepository) *UserController {
	return &UserController{Users: users, Courses: courses}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns the authenticated user's profile and, for learners, their enrolled courses
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/me [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	user, err := uc.Users.FindByID(c.UserContext(), claims.UserID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	// Only learners have enrollments
	enrolled := []models.Course{}
	if user.Role == models.RoleLearner {
		enrolled, err = uc.Courses.ListEnrolledFor(c.UserContext(), user.ID)
		if err != nil {
			return utils.HandleError(c, err)
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"user":            user,
		"enrolledCourses": len(enrolled),
	})
}
