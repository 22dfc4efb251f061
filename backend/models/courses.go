package models

import (
	"time"

	"gorm.io/datatypes"
)

type Video struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Time        float64 `json:"time"` // minutes
	URL         string  `json:"url"`
	ContentType string  `json:"contentType,omitempty"`
}

// SectionSnapshot is the copy of a Section kept inline in its Course.
type SectionSnapshot struct {
	ID          uint    `json:"id"`
	Headline    string  `json:"headline"`
	Description string  `json:"description"`
	Videos      []Video `json:"videos"`
}

// Enrollment freezes the learner's name and email at enroll time.
type Enrollment struct {
	UserID     uint      `json:"userId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

type Course struct {
	Base
	Title            string                                `gorm:"not null" json:"title"`
	Description      string                                `gorm:"not null" json:"description"`
	AuthorID         uint                                  `gorm:"index;not null" json:"authorId"`
	Sections         datatypes.JSONSlice[SectionSnapshot] `json:"sections"`
	EnrolledLearners datatypes.JSONSlice[Enrollment]      `json:"enrolledLearners"`
}

func (c *Course) IsEnrolled(userID uint) bool {
	for _, e := range c.EnrolledLearners {
		if e.UserID == userID {
			return true
		}
	}
	return false
}

// SnapshotIndex returns the position of the section snapshot, or -1.
func (c *Course) SnapshotIndex(sectionID uint) int {
	for i, s := range c.Sections {
		if s.ID == sectionID {
			return i
		}
	}
	return -1
}

func (c *Course) RemoveSnapshot(sectionID uint) bool {
	kept := make(datatypes.JSONSlice[SectionSnapshot], 0, len(c.Sections))
	removed := false
	for _, s := range c.Sections {
		if s.ID == sectionID {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	c.Sections = kept
	return removed
}
