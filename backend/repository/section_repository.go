package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"learnhub/backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SectionRepository owns the authoritative section rows and keeps the
// snapshot embedded in the parent course in step with them. Every write that
// touches both runs in a single transaction.
type SectionRepository struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewSectionRepository(db *gorm.DB, log *zap.SugaredLogger) *SectionRepository {
	return &SectionRepository{db: db, log: log.With("repo", "SectionRepository")}
}

// SectionUpdate holds optional fields; nil means "keep the current value",
// so an empty string or an empty video list is a real update.
type SectionUpdate struct {
	Headline    *string
	Description *string
	Videos      *[]models.Video
}

// NewVideo describes a video appended to a section after an upload.
type NewVideo struct {
	Title       string
	Time        float64
	URL         string
	ContentType string
}

func (r *SectionRepository) Create(ctx context.Context, courseID uint, headline, description string, videos []models.Video) (*models.Section, error) {
	section := models.Section{
		CourseID:    courseID,
		Headline:    headline,
		Description: description,
		Videos:      withVideoIDs(videos),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := findCourse(tx, courseID)
		if err != nil {
			return err
		}

		if err := tx.Create(&section).Error; err != nil {
			return err
		}

		course.Sections = append(course.Sections, section.Snapshot())
		return tx.Save(course).Error
	})
	if err != nil {
		return nil, err
	}
	return &section, nil
}

// Update changes the authoritative record and the snapshot inside courseID.
// A zero courseID means the section's own course.
func (r *SectionRepository) Update(ctx context.Context, sectionID, courseID uint, upd SectionUpdate) (*models.Section, error) {
	var updated *models.Section
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		section, err := findSection(tx, sectionID)
		if err != nil {
			return err
		}
		if courseID == 0 {
			courseID = section.CourseID
		}

		course, err := findCourse(tx, courseID)
		if err != nil {
			return err
		}
		idx := course.SnapshotIndex(section.ID)
		if idx < 0 {
			return models.NotFound("Section not found in course")
		}

		if upd.Headline != nil {
			section.Headline = *upd.Headline
		}
		if upd.Description != nil {
			section.Description = *upd.Description
		}
		if upd.Videos != nil {
			section.Videos = withVideoIDs(*upd.Videos)
		}

		if err := tx.Save(section).Error; err != nil {
			return err
		}

		course.Sections[idx] = section.Snapshot()
		if err := tx.Save(course).Error; err != nil {
			return err
		}

		updated = section
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the snapshot from the course and then the section row. A
// zero courseID means the section's own course. A snapshot whose section row
// is already gone can still be removed when courseID is given.
func (r *SectionRepository) Delete(ctx context.Context, courseID, sectionID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		section, err := findSection(tx, sectionID)
		switch {
		case errors.Is(err, models.ErrNotFound) && courseID != 0:
			section = nil
		case err != nil:
			return err
		case courseID == 0:
			courseID = section.CourseID
		case courseID != section.CourseID:
			return models.NotFound("Section not found in course")
		}

		course, err := findCourse(tx, courseID)
		if err != nil {
			return err
		}

		removed := course.RemoveSnapshot(sectionID)
		if section == nil && !removed {
			return models.NotFound("Section not found")
		}
		if removed {
			if err := tx.Save(course).Error; err != nil {
				return err
			}
		}

		if section != nil {
			if err := tx.Delete(section).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByCourse reports ErrNotFound when the course has no sections.
func (r *SectionRepository) ListByCourse(ctx context.Context, courseID uint) ([]models.Section, error) {
	var sections []models.Section
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("id ASC").
		Find(&sections).Error; err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, models.NotFound("No sections found for this course")
	}
	return sections, nil
}

func (r *SectionRepository) GetByID(ctx context.Context, id uint) (*models.Section, error) {
	return findSection(r.db.WithContext(ctx), id)
}

// AddVideo appends a video to the section and refreshes the course snapshot.
func (r *SectionRepository) AddVideo(ctx context.Context, sectionID uint, video NewVideo) (*models.Section, error) {
	var updated *models.Section
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		section, err := findSection(tx, sectionID)
		if err != nil {
			return err
		}

		section.Videos = append(section.Videos, models.Video{
			ID:          uuid.NewString(),
			Title:       video.Title,
			Time:        video.Time,
			URL:         video.URL,
			ContentType: video.ContentType,
		})
		if err := tx.Save(section).Error; err != nil {
			return err
		}

		course, err := findCourse(tx, section.CourseID)
		if err != nil {
			return err
		}
		if idx := course.SnapshotIndex(section.ID); idx >= 0 {
			course.Sections[idx] = section.Snapshot()
		} else {
			course.Sections = append(course.Sections, section.Snapshot())
		}
		if err := tx.Save(course).Error; err != nil {
			return err
		}

		updated = section
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ResyncCourse rebuilds the course's embedded snapshots from its section
// rows. It reports whether anything had drifted.
func (r *SectionRepository) ResyncCourse(ctx context.Context, courseID uint) (bool, error) {
	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := findCourse(tx, courseID)
		if err != nil {
			return err
		}

		var sections []models.Section
		if err := tx.Where("course_id = ?", courseID).Order("id ASC").Find(&sections).Error; err != nil {
			return err
		}

		rebuilt := make(datatypes.JSONSlice[models.SectionSnapshot], 0, len(sections))
		for i := range sections {
			rebuilt = append(rebuilt, sections[i].Snapshot())
		}

		same, err := sameJSON(course.Sections, rebuilt)
		if err != nil {
			return err
		}
		if same {
			return nil
		}

		course.Sections = rebuilt
		if err := tx.Save(course).Error; err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if changed {
		r.log.Infow("course snapshots resynced", "course_id", courseID)
	}
	return changed, nil
}

func findSection(tx *gorm.DB, id uint) (*models.Section, error) {
	var section models.Section
	err := tx.First(&section, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFound("Section not found")
	}
	if err != nil {
		return nil, err
	}
	return &section, nil
}

// withVideoIDs copies videos, giving each entry without an id a fresh uuid.
func withVideoIDs(videos []models.Video) datatypes.JSONSlice[models.Video] {
	out := make(datatypes.JSONSlice[models.Video], 0, len(videos))
	for _, v := range videos {
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		out = append(out, v)
	}
	return out
}

// sameJSON compares two values by their encoded form, which is how the
// snapshots are stored.
func sameJSON(a, b any) (bool, error) {
	ab, err := json.Marshal(a)
	if err != nil {
		return false, err
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ab, bb), nil
}
