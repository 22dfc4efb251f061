package controllers

import (
	"learnhub/backend/middleware"
	"learnhub/backend/repository"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CoursesController struct {
	Courses *repository.CourseRepository
	Log     *zap.SugaredLogger
}

func NewCoursesController(courses *repository.CourseRepository, log *zap.SugaredLogger) *CoursesController {
	return &CoursesController{Courses: courses, Log: log.With("controller", "courses")}
}

// CreateCourseRequest defines the request body for creating a course
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required" example:"Intro to Go"`
	Description string `json:"description" validate:"required" example:"Learn Go from scratch"`
	// AuthorID defaults to the caller.
	AuthorID uint `json:"authorId" example:"1"`
}

// UpdateCourseRequest: absent fields keep their current value.
type UpdateCourseRequest struct {
	Title       *string `json:"title" example:"Intro to Go, 2nd edition"`
	Description *string `json:"description"`
}

// CreateCourse godoc
// @Summary Create a new course
// @Description Creates a course (authors only)
// @Tags courses
// @Accept json
// @Produce json
// @Param input body CreateCourseRequest true "Course data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var input CreateCourseRequest
	if ok, err := utils.ParseBody(c, &input); !ok {
		return err
	}
	if input.AuthorID == 0 {
		input.AuthorID = middleware.Claims(c).UserID
	}

	course, err := cc.Courses.Create(c.UserContext(), input.Title, input.Description, input.AuthorID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	cc.Log.Infow("course created", "course_id", course.ID, "author_id", course.AuthorID)
	return utils.Created(c, fiber.Map{
		"message": "Course created successfully",
		"course":  course,
	})
}

// GetCourses godoc
// @Summary List courses
// @Description Returns a page of courses
// @Tags courses
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} repository.CoursePage
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses [get]
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	page, err := cc.Courses.ListPage(c.UserContext(), c.QueryInt("page", 1), c.QueryInt("limit", repository.DefaultCoursePageSize))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(page)
}

// GetCourse godoc
// @Summary Get course by ID
// @Description Returns the course together with its sections
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} repository.CourseDetail
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id} [get]
func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "course")
	if err != nil {
		return utils.HandleError(c, err)
	}

	detail, err := cc.Courses.GetWithSections(c.UserContext(), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(detail)
}

// UpdateCourse godoc
// @Summary Update course
// @Description Updates title and/or description (authors only)
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param input body UpdateCourseRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id} [put]
func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "course")
	if err != nil {
		return utils.HandleError(c, err)
	}

	var input UpdateCourseRequest
	if ok, err := utils.ParseBody(c, &input); !ok {
		return err
	}

	course, err := cc.Courses.Update(c.UserContext(), id, repository.CourseUpdate{
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Course updated successfully",
		"course":  course,
	})
}

// DeleteCourse godoc
// @Summary Delete course
// @Description Deletes the course, its sections and its reviews (authors only)
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id} [delete]
func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "course")
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := cc.Courses.Delete(c.UserContext(), id); err != nil {
		return utils.HandleError(c, err)
	}

	cc.Log.Infow("course deleted", "course_id", id, "by", middleware.Claims(c).UserID)
	return c.JSON(fiber.Map{"message": "Course and its sections deleted successfully"})
}

// EnrollCourse godoc
// @Summary Enroll in course
// @Description Enrolls the calling learner in the course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/enroll [post]
func (cc *CoursesController) EnrollCourse(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "course")
	if err != nil {
		return utils.HandleError(c, err)
	}

	course, err := cc.Courses.Enroll(c.UserContext(), id, middleware.Claims(c).UserID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Enrolled successfully",
		"course":  course,
	})
}

// GetEnrolledCourses godoc
// @Summary Enrolled courses
// @Description Returns every course the calling learner is enrolled in
// @Tags courses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/enrolled [get]
func (cc *CoursesController) GetEnrolledCourses(c *fiber.Ctx) error {
	courses, err := cc.Courses.ListEnrolledFor(c.UserContext(), middleware.Claims(c).UserID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"courses": courses})
}
