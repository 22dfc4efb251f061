package models

const (
	RoleLearner = "learner"
	RoleAuthor  = "author"
)

type User struct {
	Base
	Name         string `json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:learner;not null" json:"role"` // learner, author
}

func ValidRole(role string) bool {
	return role == RoleLearner || role == RoleAuthor
}
