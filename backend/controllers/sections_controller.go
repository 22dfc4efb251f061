package controllers

import (
	"os"

	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/repository"
	"learnhub/backend/storage"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SectionsController struct {
	Sections *repository.SectionRepository
	Courses  *repository.CourseRepository
	Store    *storage.VideoStore
	Cfg      *config.Config
	Log      *zap.SugaredLogger
}

func NewSectionsController(
	sections *repository.SectionRepository,
	courses *repository.CourseRepository,
	store *storage.VideoStore,
	cfg *config.Config,
	log *zap.SugaredLogger,
) *SectionsController {
	return &SectionsController{
		Sections: sections,
		Courses:  courses,
		Store:    store,
		Cfg:      cfg,
		Log:      log.With("controller", "sections"),
	}
}

type VideoInput struct {
	Title string  `json:"title" validate:"required" example:"Welcome"`
	Time  float64 `json:"time" validate:"gte=0" example:"10.5"`
	URL   string  `json:"url" validate:"required" example:"/uploads/videos/1694346123456-welcome.mp4"`
}

// CreateSectionRequest defines the request body for adding a section
type CreateSectionRequest struct {
	CourseID    uint         `json:"courseId" validate:"required" example:"1"`
	Headline    string       `json:"headline" validate:"required" example:"Introduction"`
	Description string       `json:"description" validate:"required" example:"Learn the basics"`
	Videos      []VideoInput `json:"videos" validate:"dive"`
}

// UpdateSectionRequest: absent fields keep their current value. CourseID
// defaults to the section's own course.
type UpdateSectionRequest struct {
	CourseID    uint          `json:"courseId" example:"1"`
	Headline    *string       `json:"headline"`
	Description *string       `json:"description"`
	Videos      *[]VideoInput `json:"videos" validate:"omitempty,dive"`
}

type DeleteSectionRequest struct {
	CourseID uint `json:"courseId"`
}

// UploadVideoRequest holds the text fields of the upload form
type UploadVideoRequest struct {
	SectionID uint    `json:"sectionId" form:"sectionId" validate:"required"`
	Title     string  `json:"title" form:"title" validate:"required"`
	Time      float64 `json:"time" form:"time" validate:"required,gt=0"`
}

func toVideos(in []VideoInput) []models.Video {
	videos := make([]models.Video, 0, len(in))
	for _, v := range in {
		videos = append(videos, models.Video{Title: v.Title, Time: v.Time, URL: v.URL})
	}
	return videos
}

// CreateSection godoc
// @Summary Add a section to a course
// @Description Creates a section and embeds its snapshot in the course (authors only)
// @Tags sections
// @Accept json
// @Produce json
// @Param input body CreateSectionRequest true "Section data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /sections [post]
func (sc *SectionsController) CreateSection(c *fiber.Ctx) error {
	var input CreateSectionRequest
	if ok, err := utils.ParseBody(c, &input); !ok {
		return err
	}

	section, err := sc.Sections.Create(c.UserContext(), input.CourseID, input.Headline, input.Description, toVideos(input.Videos))
	if err != nil {
		return utils.HandleError(c, err)
	}

	course, err := sc.Courses.GetByID(c.UserContext(), input.CourseID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.Created(c, fiber.Map{
		"message": "Section added successfully",
		"section": section,
		"course":  course,
	})
}

// GetSectionsByCourse godoc
// @Summary Sections of a course
// @Description Returns the sections of a course. Learners must be enrolled.
// @Tags sections
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /sections/{courseId} [get]
func (sc *SectionsController) GetSectionsByCourse(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId", "course")
	if err != nil {
		return utils.HandleError(c, err)
	}

	sections, err := sc.Sections.ListByCourse(c.UserContext(), courseID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"sections": sections})
}

// UpdateSection godoc
// @Summary Update section
// @Description Updates the section and its snapshot inside the course (authors only)
// @Tags sections
// @Accept json
// @Produce json
// @Param id path int true "Section ID"
// @Param input body UpdateSectionRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /sections/{id} [put]
func (sc *SectionsController) UpdateSection(c *fiber.Ctx) error {
	sectionID, err := paramID(c, "id", "section")
	if err != nil {
		return utils.HandleError(c, err)
	}

	var input UpdateSectionRequest
	if ok, err := utils.ParseBody(c, &input); !ok {
		return err
	}

	upd := repository.SectionUpdate{
		Headline:    input.Headline,
		Description: input.Description,
	}
	if input.Videos != nil {
		videos := toVideos(*input.Videos)
		upd.Videos = &videos
	}

	section, err := sc.Sections.Update(c.UserContext(), sectionID, input.CourseID, upd)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Section updated successfully",
		"section": section,
	})
}

// DeleteSection godoc
// @Summary Delete section
// @Description Removes the section and its snapshot from the course (authors only)
// @Tags sections
// @Accept json
// @Produce json
// @Param id path int true "Section ID"
// @Param input body DeleteSectionRequest false "Owning course"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /sections/{id} [delete]
func (sc *SectionsController) DeleteSection(c *fiber.Ctx) error {
	sectionID, err := paramID(c, "id", "section")
	if err != nil {
		return utils.HandleError(c, err)
	}

	// The body is optional
	var input DeleteSectionRequest
	if len(c.Body()) > 0 {
		if ok, err := utils.ParseBody(c, &input); !ok {
			return err
		}
	}

	if err := sc.Sections.Delete(c.UserContext(), input.CourseID, sectionID); err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Section deleted successfully"})
}

// UploadVideo godoc
// @Summary Upload a video to a section
// @Description Stores an .mp4, .mov or .avi file and appends it to the section (authors only)
// @Tags sections
// @Accept multipart/form-data
// @Produce json
// @Param sectionId formData int true "Section ID"
// @Param title formData string true "Video title"
// @Param time formData number true "Duration in minutes"
// @Param video formData file true "Video file"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 413 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /sections/upload-video [post]
func (sc *SectionsController) UploadVideo(c *fiber.Ctx) error {
	file, err := c.FormFile("video")
	if err != nil {
		return utils.BadRequest(c, "No video file uploaded")
	}

	var input UploadVideoRequest
	if ok, err := utils.ParseForm(c, &input); !ok {
		return err
	}

	stored, err := sc.Store.Save(file)
	if err != nil {
		return utils.HandleError(c, err)
	}

	section, err := sc.Sections.AddVideo(c.UserContext(), input.SectionID, repository.NewVideo{
		Title:       input.Title,
		Time:        input.Time,
		URL:         stored.Path,
		ContentType: stored.ContentType,
	})
	if err != nil {
		// Drop the file if the section was not updated
		if rmErr := os.Remove(stored.Path); rmErr != nil {
			sc.Log.Warnw("remove orphaned upload", "path", stored.Path, "error", rmErr)
		}
		return utils.HandleError(c, err)
	}

	return utils.Created(c, fiber.Map{
		"message": "Video uploaded and added to section successfully",
		"section": section,
		"url":     storage.URL(sc.Cfg.VideoURLPrefix, stored.Name),
	})
}
