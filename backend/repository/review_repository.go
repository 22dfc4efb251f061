package repository

import (
	"context"
	"errors"

	"learnhub/backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewReviewRepository(db *gorm.DB, log *zap.SugaredLogger) *ReviewRepository {
	return &ReviewRepository{db: db, log: log.With("repo", "ReviewRepository")}
}

type ReviewPage struct {
	Reviews     []models.Review `json:"reviews"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
}

type ReviewUpdate struct {
	Rating  *int
	Comment *string
}

// Add stores a review. One review per (course, user) is enforced here, not by
// a unique index.
func (r *ReviewRepository) Add(ctx context.Context, courseID, userID uint, rating int, comment string) (*models.Review, error) {
	review := models.Review{
		CourseID: courseID,
		UserID:   userID,
		Rating:   rating,
		Comment:  comment,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findCourse(tx, courseID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Review{}).
			Where("course_id = ? AND user_id = ?", courseID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return models.NewError(models.ErrDuplicateReview, "You have already reviewed this course")
		}

		return tx.Create(&review).Error
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) Update(ctx context.Context, reviewID, userID uint, upd ReviewUpdate) (*models.Review, error) {
	review, err := r.findOwned(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}

	if upd.Rating != nil {
		review.Rating = *upd.Rating
	}
	if upd.Comment != nil {
		review.Comment = *upd.Comment
	}

	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, reviewID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", reviewID, userID).
		Delete(&models.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NotFound("Review not found or not owned by you")
	}
	return nil
}

func (r *ReviewRepository) ListForCourse(ctx context.Context, courseID uint, page, size int) (*ReviewPage, error) {
	page, size = normalizePage(page, size, DefaultReviewPageSize)

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("course_id = ?", courseID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	reviews := []models.Review{}
	if off, ok := pageOffset(page, size, total); ok {
		if err := r.db.WithContext(ctx).
			Where("course_id = ?", courseID).
			Order("id ASC").
			Offset(off).
			Limit(size).
			Find(&reviews).Error; err != nil {
			return nil, err
		}
	}

	return &ReviewPage{
		Reviews:     reviews,
		TotalPages:  totalPages(total, size),
		CurrentPage: page,
	}, nil
}

func (r *ReviewRepository) findOwned(ctx context.Context, reviewID, userID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", reviewID, userID).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFound("Review not found or not owned by you")
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}
