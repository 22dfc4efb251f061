package routes

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"learnhub/backend/config"
	"learnhub/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionsRequireEnrollmentForLearners(t *testing.T) {
	env := setupApp(t)
	author := env.signUp(t, "author", models.RoleAuthor)
	learner := env.signUp(t, "learner", models.RoleLearner)
	courseID := env.createCourse(t, author, "Go")
	env.createSection(t, author, courseID, "Intro")
	path := fmt.Sprintf("/sections/%d", courseID)

	status, body := env.request(t, http.MethodGet, path, nil, learner.Token)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Access denied. Please enroll first.", body["message"])

	status, _ = env.request(t, http.MethodPost, fmt.Sprintf("/courses/%d/enroll", courseID), nil, learner.Token)
	require.Equal(t, http.StatusOK, status)

	status, body = env.request(t, http.MethodGet, path, nil, learner.Token)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["sections"], 1)

	status, _ = env.request(t, http.MethodGet, "/sections/9999", nil, learner.Token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSectionsEmptyCourseIsNotFound(t *testing.T) {
	env := setupApp(t)
	author := env.signUp(t, "author", models.RoleAuthor)
	courseID := env.createCourse(t, author, "Go")

	status, body := env.request(t, http.MethodGet, fmt.Sprintf("/sections/%d", courseID), nil, author.Token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No sections found for this course", body["message"])
}

func TestCreateSection(t *testing.T) {
	env := setupApp(t)
	author := env.signUp(t, "author", models.RoleAuthor)
	learner := env.signUp(t, "learner", models.RoleLearner)
	courseID := env.createCourse(t, author, "Go")

	payload := map[string]interface{}{"courseId": courseID, "headline": "Intro", "description": "Start"}

	status, _ := env.request(t, http.MethodPost, "/sections", payload, learner.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := env.request(t, http.MethodPost, "/sections", payload, author.Token)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Section added successfully", body["message"])
	snapshots := body["course"].(map[string]interface{})["sections"].([]interface{})
	assert.Len(t, snapshots, 1)

	status, body = env.request(t, http.MethodPost, "/sections", map[string]interface{}{
		"courseId": 9999, "headline": "Intro", "description": "Start",
	}, author.Token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Course not found", body["message"])

	status, _ = env.request(t, http.MethodPost, "/sections", map[string]interface{}{
		"courseId": courseID, "headline": "Intro", "description": "Start",
		"videos": []map[string]interface{}{{"title": "", "time": 1, "url": "x"}},
	}, author.Token)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUpdateSectionSyncsSnapshot(t *testing.T) {
	env := setupApp(t)
	author := env.signUp(t, "author", models.RoleAuthor)
	courseID := env.createCourse(t, author, "Go")
	sectionID := env.createSection(t, author, courseID, "Intro")
	path := fmt.Sprintf("/sections/%d", sectionID)

	status, body := env.request(t, http.MethodPut, path, map[string]interface{}{
		"courseId": courseID, "headline": "Welcome", "description": "",
	}, author.Token)
	require.Equal(t, http.StatusOK, status)
	section := body["section"].(map[string]interface{})
	assert.Equal(t, "Welcome", section["headline"])
	assert.Equal(t, "", section["description"])
	assert.Len(t, section["videos"], 1)

	status, body = env.request(t, http.MethodGet, fmt.Sprintf("/courses/%d", courseID), nil, author.Token)
	require.Equal(t, http.StatusOK, status)
	snapshot := body["course"].(map[string]interface{})["sections"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Welcome", snapshot["headline"])
	assert.Equal(t, "", snapshot["description"])

	status, _ = env.request(t, http.MethodPut, "/sections/9999", map[string]interface{}{"headline": "x"}, author.Token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteSection(t *testing.T) {
	env := setupApp(t)
	author := env.signUp(t, "author", models.RoleAuthor)
	courseID := env.createCourse(t, author, "Go")
	keep := env.createSection(t, author, courseID, "Keep")
	drop := env.createSection(t, author, courseID, "Drop")

	status, body := env.request(t, http.MethodDelete, fmt.Sprintf("/sections/%d", drop), map[string]interface{}{"courseId": courseID}, author.Token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Section deleted successfully", body["message"])

	status, body = env.request(t, http.MethodGet, fmt.Sprintf("/sections/%d", courseID), nil, author.Token)
	require.Equal(t, http.StatusOK, status)
	sections := body["sections"].([]interface{})
	require.Len(t, sections, 1)
	assert.Equal(t, float64(keep), sections[0].(map[string]interface{})["id"])

	status, body = env.request(t, http.MethodGet, fmt.Sprintf("/courses/%d", courseID), nil, author.Token)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["course"].(map[string]interface{})["sections"], 1)

	// Without a body the section's own course is used.
	status, _ = env.request(t, http.MethodDelete, fmt.Sprintf("/sections/%d", keep), nil, author.Token)
	require.Equal(t, http.StatusOK, status)

	status, _ = env.request(t, http.MethodDelete, fmt.Sprintf("/sections/%d", keep), nil, author.Token)
	assert.Equal(t, http.StatusNotFound, status)
}

var fakeMP4 = append([]byte{
	0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
	'm', 'p', '4', '2', 0x00, 0x00, 0x00, 0x00,
	'm', 'p', '4', '2', 'i', 's', 'o', 'm',
}, bytes.Repeat([]byte{0x07}, 128)...)

func uploadFields(sectionID uint) map[string]string {
	return map[string]string{
		"sectionId": strconv.Itoa(int(sectionID)),
		"title":     "Welcome",
		"time":      "10.5",
	}
}

func TestUploadVideoSyncsSnapshotAndServesFile(t *testing.T) {
	env := setupApp(t)
	author := env.signUp(t, "author", models.RoleAuthor)
	courseID := env.createCourse(t, author, "Go")
	sectionID := env.createSection(t, author, courseID, "Intro")

	status, body := env.upload(t, author.Token, uploadFields(sectionID), "welcome.mp4", fakeMP4)
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "Video uploaded and added to section successfully", body["message"])

	videos := body["section"].(map[string]interface{})["videos"].([]interface{})
	require.Len(t, videos, 2)
	uploaded := videos[1].(map[string]interface{})
	assert.Equal(t, "Welcome", uploaded["title"])
	assert.Equal(t, 10.5, uploaded["time"])
	assert.Equal(t, "video/mp4", uploaded["contentType"])
	assert.FileExists(t, uploaded["url"].(string))

	// The course snapshot carries the new video too.
	status, detail := env.request(t, http.MethodGet, fmt.Sprintf("/courses/%d", courseID), nil, author.Token)
	require.Equal(t, http.StatusOK, status)
	row := detail["sections"].([]interface{})[0].(map[string]interface{})
	snapshot := detail["course"].(map[string]interface{})["sections"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, row["videos"], snapshot["videos"])
	assert.Len(t, snapshot["videos"], 2)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, body["url"].(string), nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	served, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fakeMP4, served)
}

func TestUploadRejectsNonVideo(t *testing.T) {
	env := setupApp(t)
	author := env.signUp(t, "author", models.RoleAuthor)
	courseID := env.createCourse(t, author, "Go")
	sectionID := env.createSection(t, author, courseID, "Intro")

	status, body := env.upload(t, author.Token, uploadFields(sectionID), "notes.txt", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Only video files are allowed!", body["message"])

	var section models.Section
	require.NoError(t, env.db.First(&section, sectionID).Error)
	assert.Len(t, section.Videos, 1)

	_, err := os.Stat(env.cfg.VideoStoragePath)
	assert.True(t, os.IsNotExist(err))
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	env := setupApp(t, func(cfg *config.Config) { cfg.MaxUploadSize = 1024 })
	author := env.signUp(t, "author", models.RoleAuthor)
	courseID := env.createCourse(t, author, "Go")
	sectionID := env.createSection(t, author, courseID, "Intro")

	status, _ := env.upload(t, author.Token, uploadFields(sectionID), "big.mp4", bytes.Repeat([]byte{0x01}, 4096))
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)

	var section models.Section
	require.NoError(t, env.db.First(&section, sectionID).Error)
	assert.Len(t, section.Videos, 1)
}

func TestUploadValidation(t *testing.T) {
	env := setupApp(t)
	author := env.signUp(t, "author", models.RoleAuthor)
	learner := env.signUp(t, "learner", models.RoleLearner)
	courseID := env.createCourse(t, author, "Go")
	sectionID := env.createSection(t, author, courseID, "Intro")

	status, body := env.upload(t, author.Token, uploadFields(sectionID), "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No video file uploaded", body["message"])

	status, _ = env.upload(t, author.Token, map[string]string{"sectionId": strconv.Itoa(int(sectionID))}, "clip.mp4", fakeMP4)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = env.upload(t, author.Token, uploadFields(9999), "clip.mp4", fakeMP4)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Section not found", body["message"])
	entries, _ := os.ReadDir(env.cfg.VideoStoragePath)
	assert.Empty(t, entries, "upload for a missing section must not leave a file behind")

	status, _ = env.upload(t, learner.Token, uploadFields(sectionID), "clip.mp4", fakeMP4)
	assert.Equal(t, http.StatusForbidden, status)
}
