package controllers

import (
	"learnhub/backend/middleware"
	"learnhub/backend/repository"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ReviewsController struct {
	Reviews *repository.ReviewRepository
}

func NewReviewsController(reviews *repository.ReviewRepository) *ReviewsController {
	return &ReviewsController{Reviews: reviews}
}

// AddReviewRequest defines the request body for adding a review
type AddReviewRequest struct {
	CourseID uint   `json:"courseId" validate:"required" example:"1"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5" example:"5"`
	Comment  string `json:"comment" validate:"required" example:"This course was amazing!"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5" example:"4"`
	Comment *string `json:"comment" validate:"omitnil,min=1"`
}

// AddReview godoc
// @Summary Review a course
// @Description Adds the caller's review; one per course (learners only)
// @Tags reviews
// @Accept json
// @Produce json
// @Param input body AddReviewRequest true "Review data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /reviews [post]
func (rc *ReviewsController) AddReview(c *fiber.Ctx) error {
	var input AddReviewRequest
	if ok, err := utils.ParseBody(c, &input); !ok {
		return err
	}

	review, err := rc.Reviews.Add(c.UserContext(), input.CourseID, middleware.Claims(c).UserID, input.Rating, input.Comment)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.Created(c, fiber.Map{
		"message": "Review added successfully",
		"review":  review,
	})
}

// UpdateReview godoc
// @Summary Update own review
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Param input body UpdateReviewRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /reviews/{id} [put]
func (rc *ReviewsController) UpdateReview(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "review")
	if err != nil {
		return utils.HandleError(c, err)
	}

	var input UpdateReviewRequest
	if ok, err := utils.ParseBody(c, &input); !ok {
		return err
	}

	review, err := rc.Reviews.Update(c.UserContext(), id, middleware.Claims(c).UserID, repository.ReviewUpdate{
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Review updated successfully",
		"review":  review,
	})
}

// DeleteReview godoc
// @Summary Delete own review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /reviews/{id} [delete]
func (rc *ReviewsController) DeleteReview(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "review")
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := rc.Reviews.Delete(c.UserContext(), id, middleware.Claims(c).UserID); err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Review deleted successfully"})
}

// GetCourseReviews godoc
// @Summary Reviews of a course
// @Description Returns a page of reviews for the course
// @Tags reviews
// @Produce json
// @Param id path int true "Course ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(5)
// @Success 200 {object} repository.ReviewPage
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /reviews/{id} [get]
func (rc *ReviewsController) GetCourseReviews(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id", "course")
	if err != nil {
		return utils.HandleError(c, err)
	}

	page, err := rc.Reviews.ListForCourse(c.UserContext(), courseID, c.QueryInt("page", 1), c.QueryInt("limit", repository.DefaultReviewPageSize))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(page)
}
