package models

type Review struct {
	Base
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	UserID   uint   `gorm:"index;not null" json:"userId"`
	Rating   int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment  string `gorm:"type:text;not null" json:"comment"`
}
