package repository

import (
	"context"
	"fmt"
	"math"
	"testing"

	"learnhub/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseListPage(t *testing.T) {
	r := setupRepos(t)
	author := createUser(t, r, "author", models.RoleAuthor)
	for i := 1; i <= 25; i++ {
		createCourse(t, r, fmt.Sprintf("Course %02d", i), author.ID)
	}

	page, err := r.courses.ListPage(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Len(t, page.Courses, 10)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, "Course 11", page.Courses[0].Title)

	last, err := r.courses.ListPage(context.Background(), 3, 10)
	require.NoError(t, err)
	assert.Len(t, last.Courses, 5)
}

func TestCourseListPageDefaults(t *testing.T) {
	r := setupRepos(t)
	for i := 0; i < 12; i++ {
		createCourse(t, r, fmt.Sprintf("c%d", i), 1)
	}

	page, err := r.courses.ListPage(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, page.Courses, DefaultCoursePageSize)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)

	empty, err := r.courses.ListPage(context.Background(), 5, 10)
	require.NoError(t, err)
	assert.NotNil(t, empty.Courses)
	assert.Empty(t, empty.Courses)
}

func TestCourseListPageHugePageIsEmpty(t *testing.T) {
	r := setupRepos(t)
	for i := 0; i < 3; i++ {
		createCourse(t, r, fmt.Sprintf("c%d", i), 1)
	}

	for _, page := range []int{math.MaxInt, math.MaxInt / 10, 4} {
		got, err := r.courses.ListPage(context.Background(), page, 10)
		require.NoError(t, err)
		assert.Empty(t, got.Courses, "page %d", page)
		assert.Equal(t, page, got.CurrentPage)
		assert.Equal(t, 1, got.TotalPages)
	}

	huge, err := r.courses.ListPage(context.Background(), 2, math.MaxInt)
	require.NoError(t, err)
	assert.Empty(t, huge.Courses)
	assert.Equal(t, 1, huge.TotalPages)
}

func TestCourseCreateAcceptsUnknownAuthor(t *testing.T) {
	r := setupRepos(t)

	course, err := r.courses.Create(context.Background(), "Go", "Basics", 9999)
	require.NoError(t, err)
	assert.Equal(t, uint(9999), course.AuthorID)
	assert.NotNil(t, course.Sections)
	assert.NotNil(t, course.EnrolledLearners)
}

func TestCourseUpdatePartial(t *testing.T) {
	r := setupRepos(t)
	course := createCourse(t, r, "Original", 1)
	ctx := context.Background()

	updated, err := r.courses.Update(ctx, course.ID, CourseUpdate{Description: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, "", updated.Description)

	updated, err = r.courses.Update(ctx, course.ID, CourseUpdate{Title: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	_, err = r.courses.Update(ctx, 404, CourseUpdate{Title: strPtr("x")})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCourseGetWithSectionsUsesSectionRows(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	course := createCourse(t, r, "Go", 1)

	detail, err := r.courses.GetWithSections(ctx, course.ID)
	require.NoError(t, err)
	assert.NotNil(t, detail.Sections)
	assert.Empty(t, detail.Sections)

	section, err := r.sections.Create(ctx, course.ID, "Intro", "Start here", nil)
	require.NoError(t, err)

	detail, err = r.courses.GetWithSections(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, detail.Sections, 1)
	assert.Equal(t, section.ID, detail.Sections[0].ID)

	_, err = r.courses.GetWithSections(ctx, 404)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCourseDeleteCascades(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	learner := createUser(t, r, "learner", models.RoleLearner)
	course := createCourse(t, r, "Go", 1)
	other := createCourse(t, r, "Rust", 1)

	_, err := r.sections.Create(ctx, course.ID, "Intro", "Start", nil)
	require.NoError(t, err)
	_, err = r.sections.Create(ctx, other.ID, "Intro", "Start", nil)
	require.NoError(t, err)
	_, err = r.reviews.Add(ctx, course.ID, learner.ID, 5, "great")
	require.NoError(t, err)

	require.NoError(t, r.courses.Delete(ctx, course.ID))

	_, err = r.courses.GetByID(ctx, course.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = r.sections.ListByCourse(ctx, course.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	reviews, err := r.reviews.ListForCourse(ctx, course.ID, 1, 5)
	require.NoError(t, err)
	assert.Empty(t, reviews.Reviews)

	remaining, err := r.sections.ListByCourse(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	assert.ErrorIs(t, r.courses.Delete(ctx, course.ID), models.ErrNotFound)
}

func TestCourseEnroll(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	learner := createUser(t, r, "learner", models.RoleLearner)
	course := createCourse(t, r, "Go", 1)

	enrolled, err := r.courses.Enroll(ctx, course.ID, learner.ID)
	require.NoError(t, err)
	require.Len(t, enrolled.EnrolledLearners, 1)
	record := enrolled.EnrolledLearners[0]
	assert.Equal(t, learner.ID, record.UserID)
	assert.Equal(t, learner.Name, record.Name)
	assert.Equal(t, learner.Email, record.Email)
	assert.False(t, record.EnrolledAt.IsZero())

	_, err = r.courses.Enroll(ctx, course.ID, learner.ID)
	assert.ErrorIs(t, err, models.ErrAlreadyEnrolled)

	reloaded, err := r.courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.EnrolledLearners, 1)
}

func TestCourseEnrollMissing(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	learner := createUser(t, r, "learner", models.RoleLearner)
	course := createCourse(t, r, "Go", 1)

	_, err := r.courses.Enroll(ctx, 404, learner.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, "Course not found", err.Error())

	_, err = r.courses.Enroll(ctx, course.ID, 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, "User not found", err.Error())
}

func TestCourseListEnrolledFor(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	alice := createUser(t, r, "alice", models.RoleLearner)
	bob := createUser(t, r, "bob", models.RoleLearner)
	first := createCourse(t, r, "First", 1)
	createCourse(t, r, "Second", 1)
	third := createCourse(t, r, "Third", 1)

	_, err := r.courses.Enroll(ctx, first.ID, alice.ID)
	require.NoError(t, err)
	_, err = r.courses.Enroll(ctx, third.ID, alice.ID)
	require.NoError(t, err)
	_, err = r.courses.Enroll(ctx, third.ID, bob.ID)
	require.NoError(t, err)

	courses, err := r.courses.ListEnrolledFor(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, first.ID, courses[0].ID)
	assert.Equal(t, third.ID, courses[1].ID)

	none, err := r.courses.ListEnrolledFor(ctx, 404)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCourseListIDs(t *testing.T) {
	r := setupRepos(t)
	a := createCourse(t, r, "a", 1)
	b := createCourse(t, r, "b", 1)

	ids, err := r.courses.ListIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, b.ID}, ids)
}
