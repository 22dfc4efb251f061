package repository

import (
	"context"
	"errors"
	"time"

	"learnhub/backend/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CourseRepository struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewCourseRepository(db *gorm.DB, log *zap.SugaredLogger) *CourseRepository {
	return &CourseRepository{db: db, log: log.With("repo", "CourseRepository")}
}

type CoursePage struct {
	Courses     []models.Course `json:"courses"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
}

// CourseDetail pairs a course with its authoritative section records.
type CourseDetail struct {
	Course   *models.Course   `json:"course"`
	Sections []models.Section `json:"sections"`
}

// CourseUpdate holds optional fields; nil means "keep the current value".
type CourseUpdate struct {
	Title       *string
	Description *string
}

// Create stores a new course. authorID is not checked against the users table.
func (r *CourseRepository) Create(ctx context.Context, title, description string, authorID uint) (*models.Course, error) {
	course := models.Course{
		Title:            title,
		Description:      description,
		AuthorID:         authorID,
		Sections:         datatypes.JSONSlice[models.SectionSnapshot]{},
		EnrolledLearners: datatypes.JSONSlice[models.Enrollment]{},
	}
	if err := r.db.WithContext(ctx).Create(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) ListPage(ctx context.Context, page, size int) (*CoursePage, error) {
	page, size = normalizePage(page, size, DefaultCoursePageSize)

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Course{}).Count(&total).Error; err != nil {
		return nil, err
	}

	courses := []models.Course{}
	if off, ok := pageOffset(page, size, total); ok {
		if err := r.db.WithContext(ctx).
			Order("id ASC").
			Offset(off).
			Limit(size).
			Find(&courses).Error; err != nil {
			return nil, err
		}
	}

	return &CoursePage{
		Courses:     courses,
		TotalPages:  totalPages(total, size),
		CurrentPage: page,
	}, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	return findCourse(r.db.WithContext(ctx), id)
}

// GetWithSections reads sections from the section table, not from the
// embedded snapshots.
func (r *CourseRepository) GetWithSections(ctx context.Context, id uint) (*CourseDetail, error) {
	course, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sections := []models.Section{}
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", id).
		Order("id ASC").
		Find(&sections).Error; err != nil {
		return nil, err
	}

	return &CourseDetail{Course: course, Sections: sections}, nil
}

func (r *CourseRepository) Update(ctx context.Context, id uint, upd CourseUpdate) (*models.Course, error) {
	course, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		course.Title = *upd.Title
	}
	if upd.Description != nil {
		course.Description = *upd.Description
	}

	if err := r.db.WithContext(ctx).Save(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes the course together with its sections and reviews.
func (r *CourseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Course{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NotFound("Course not found")
		}

		if err := tx.Where("course_id = ?", id).Delete(&models.Section{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return nil
	})
}

// Enroll appends a frozen enrollment record for the user. The membership
// scan runs before the user lookup, so a repeat enrollment reports
// ErrAlreadyEnrolled even if the user has since been removed.
func (r *CourseRepository) Enroll(ctx context.Context, courseID, userID uint) (*models.Course, error) {
	var enrolled *models.Course
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := findCourse(tx, courseID)
		if err != nil {
			return err
		}

		if course.IsEnrolled(userID) {
			return models.NewError(models.ErrAlreadyEnrolled, "User is already enrolled in this course")
		}

		user, err := findUser(tx, userID)
		if err != nil {
			return err
		}

		course.EnrolledLearners = append(course.EnrolledLearners, models.Enrollment{
			UserID:     user.ID,
			Name:       user.Name,
			Email:      user.Email,
			EnrolledAt: time.Now().UTC(),
		})
		if err := tx.Save(course).Error; err != nil {
			return err
		}

		enrolled = course
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Debugw("learner enrolled", "course_id", courseID, "user_id", userID)
	return enrolled, nil
}

// ListEnrolledFor returns every course whose enrollment list carries userID.
// Enrollments live in a JSON column, so matching happens in Go over batches
// to stay portable across drivers.
func (r *CourseRepository) ListEnrolledFor(ctx context.Context, userID uint) ([]models.Course, error) {
	result := []models.Course{}
	var batch []models.Course
	err := r.db.WithContext(ctx).
		Order("id ASC").
		FindInBatches(&batch, 100, func(tx *gorm.DB, _ int) error {
			for _, course := range batch {
				if course.IsEnrolled(userID) {
					result = append(result, course)
				}
			}
			return nil
		}).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListIDs returns all course ids in ascending order.
func (r *CourseRepository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func findCourse(tx *gorm.DB, id uint) (*models.Course, error) {
	var course models.Course
	err := tx.First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFound("Course not found")
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}
