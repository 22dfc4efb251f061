package repository

import (
	"context"
	"fmt"
	"testing"

	"learnhub/backend/models"
	"learnhub/backend/testhelper"

	"github.com/stretchr/testify/require"
)

type repos struct {
	users    *UserRepository
	courses  *CourseRepository
	sections *SectionRepository
	reviews  *ReviewRepository
}

func setupRepos(t *testing.T) repos {
	t.Helper()
	cfg := testhelper.NewConfig(t)
	db := testhelper.SetupTestDB(t, cfg)
	log := testhelper.Logger()
	return repos{
		users:    NewUserRepository(db, log),
		courses:  NewCourseRepository(db, log),
		sections: NewSectionRepository(db, log),
		reviews:  NewReviewRepository(db, log),
	}
}

func createUser(t *testing.T, r repos, name, role string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "hash",
		Role:         role,
	}
	require.NoError(t, r.users.Create(context.Background(), user))
	return user
}

func createCourse(t *testing.T, r repos, title string, authorID uint) *models.Course {
	t.Helper()
	course, err := r.courses.Create(context.Background(), title, title+" description", authorID)
	require.NoError(t, err)
	return course
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
