package models

import "gorm.io/datatypes"

type Section struct {
	Base
	CourseID    uint                       `gorm:"index;not null" json:"courseId"`
	Headline    string                     `gorm:"not null" json:"headline"`
	Description string                     `gorm:"not null" json:"description"`
	Videos      datatypes.JSONSlice[Video] `json:"videos"`
}

func (s *Section) Snapshot() SectionSnapshot {
	videos := make([]Video, len(s.Videos))
	copy(videos, s.Videos)
	return SectionSnapshot{
		ID:          s.ID,
		Headline:    s.Headline,
		Description: s.Description,
		Videos:      videos,
	}
}
