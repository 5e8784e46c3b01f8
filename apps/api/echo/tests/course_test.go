package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jltacademy/backend/core/course"
)

// uploadPath maps a served upload URL back to its on-disk location.
func uploadPath(t *testing.T, urlPath string) string {
	t.Helper()
	rel := strings.TrimPrefix(urlPath, "/uploads/")
	require.NotEqual(t, urlPath, rel)
	return filepath.Join(conf.UploadDir, filepath.FromSlash(rel))
}

func listCourses(t *testing.T, app http.Handler) []course.Course {
	t.Helper()
	req, rec := newRequest(http.MethodGet, "/api/courses")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Courses []course.Course `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Courses
}

func Test_courseApi_list(t *testing.T) {
	app := setup(t)

	now := time.Now().UTC()
	older := createCourse(t, "Basics", 2, true, now.Add(-2*time.Hour))
	newer := createCourse(t, "Advanced", 2, true, now.Add(-1*time.Hour))
	first := createCourse(t, "Intro", 1, true, now)
	createCourse(t, "Retired", 0, false, now)

	courses := listCourses(t, app)
	require.Len(t, courses, 3)

	// sort_order ASC, then created_at DESC
	assert.Equal(t, []int{first.ID, newer.ID, older.ID}, []int{courses[0].ID, courses[1].ID, courses[2].ID})
}

func Test_courseApi_retrieve(t *testing.T) {
	app := setup(t)

	now := time.Now().UTC()
	crs := createCourse(t, "Basics", 1, true, now)
	gone := createCourse(t, "Retired", 2, false, now)

	notFound := marshallObj(t, httpErr{Error: "course not found"})

	tests := []httpTest{
		{
			name: "OK", path: fmt.Sprintf("/api/courses/%d", crs.ID),
			wantCode: http.StatusOK, wantData: marshallObj(t, map[string]course.Course{"course": crs}),
		},
		{name: "Inactive is hidden", path: fmt.Sprintf("/api/courses/%d", gone.ID), wantCode: http.StatusNotFound, wantData: notFound},
		{name: "Unknown id", path: "/api/courses/999", wantCode: http.StatusNotFound, wantData: notFound},
		{name: "Non-numeric id", path: "/api/courses/abc", wantCode: http.StatusNotFound, wantData: notFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_courseApi_create(t *testing.T) {
	app := setup(t)

	adminToken := getToken(t, getDefaultAdmin(t))
	plebeToken := getToken(t, createUser(t, "plebe", "plebe@test.cd", "s3cr3t-pwd", "editor"))

	fields := map[string]string{
		"title":       "Go Basics",
		"description": "An introduction",
		"duration":    "6 weeks",
		"level":       "beginner",
	}
	pngUpload := func(size int) upload {
		return upload{field: "image", filename: "cover.png", contentType: "image/png", content: make([]byte, size)}
	}

	t.Run("Auth required", func(t *testing.T) {
		req, rec := newUploadRequest(t, http.MethodPost, "/api/courses", "", fields)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)}, rec)
	})

	t.Run("Admin required", func(t *testing.T) {
		req, rec := newUploadRequest(t, http.MethodPost, "/api/courses", plebeToken, fields)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marshallObj(t, errAdminOnly)}, rec)
	})

	t.Run("Missing title persists nothing", func(t *testing.T) {
		req, rec := newUploadRequest(t, http.MethodPost, "/api/courses", adminToken, map[string]string{"description": "no title"})
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Fields, "title")
		assert.Empty(t, listCourses(t, app))
	})

	t.Run("Unsupported file type persists nothing", func(t *testing.T) {
		up := upload{field: "image", filename: "virus.exe", contentType: "application/octet-stream", content: []byte("MZ")}
		req, rec := newUploadRequest(t, http.MethodPost, "/api/courses", adminToken, fields, up)
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Empty(t, listCourses(t, app))
	})

	t.Run("Oversized image rejected", func(t *testing.T) {
		req, rec := newUploadRequest(t, http.MethodPost, "/api/courses", adminToken, fields, pngUpload(5<<20+1))
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Empty(t, listCourses(t, app))
	})

	t.Run("OK with image", func(t *testing.T) {
		req, rec := newUploadRequest(t, http.MethodPost, "/api/courses", adminToken, fields, pngUpload(64))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp struct {
			Message string        `json:"message"`
			Course  course.Course `json:"course"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "course created successfully", resp.Message)
		assert.Equal(t, "Go Basics", resp.Course.Title)
		assert.True(t, resp.Course.IsActive)
		require.NotEmpty(t, resp.Course.ImageURL)
		assert.FileExists(t, uploadPath(t, resp.Course.ImageURL))
	})
}

func Test_courseApi_update(t *testing.T) {
	app := setup(t)

	adminToken := getToken(t, getDefaultAdmin(t))
	fields := map[string]string{"title": "Go Basics", "description": "An introduction"}
	png := upload{field: "image", filename: "cover.png", contentType: "image/png", content: make([]byte, 64)}

	// create through the API so a real file is on disk
	req, rec := newUploadRequest(t, http.MethodPost, "/api/courses", adminToken, fields, png)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Course course.Course `json:"course"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	oldFile := uploadPath(t, created.Course.ImageURL)

	t.Run("Unknown id", func(t *testing.T) {
		req, rec := newUploadRequest(t, http.MethodPut, "/api/courses/999", adminToken, fields)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "course not found"})}, rec)
	})

	t.Run("Fields updated, image kept without a new upload", func(t *testing.T) {
		newFields := map[string]string{"title": "Go Basics II", "description": "Revised"}
		req, rec := newUploadRequest(t, http.MethodPut, fmt.Sprintf("/api/courses/%d", created.Course.ID), adminToken, newFields)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			Course course.Course `json:"course"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Go Basics II", resp.Course.Title)
		assert.Equal(t, created.Course.ImageURL, resp.Course.ImageURL)
		assert.FileExists(t, oldFile)
	})

	t.Run("New image replaces the old file", func(t *testing.T) {
		newPng := upload{field: "image", filename: "cover2.png", contentType: "image/png", content: make([]byte, 64)}
		req, rec := newUploadRequest(t, http.MethodPut, fmt.Sprintf("/api/courses/%d", created.Course.ID), adminToken, fields, newPng)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			Course course.Course `json:"course"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Course.ImageURL)
		assert.NotEqual(t, created.Course.ImageURL, resp.Course.ImageURL)
		assert.FileExists(t, uploadPath(t, resp.Course.ImageURL))
		assert.NoFileExists(t, oldFile)
	})
}

func Test_courseApi_destroy(t *testing.T) {
	app := setup(t)

	adminToken := getToken(t, getDefaultAdmin(t))
	crs := createCourse(t, "Basics", 1, true, time.Now().UTC())
	path := fmt.Sprintf("/api/courses/%d", crs.ID)

	t.Run("Soft delete hides the course", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, path, adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallObj(t, map[string]string{"message": "course deleted successfully"})}, rec)
		assert.Empty(t, listCourses(t, app))
	})

	t.Run("Second delete is a 404", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, path, adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "course not found"})}, rec)
	})
}

func Test_courseApi_reorder(t *testing.T) {
	app := setup(t)

	adminToken := getToken(t, getDefaultAdmin(t))
	now := time.Now().UTC()
	crs1 := createCourse(t, "Basics", 1, true, now)
	crs2 := createCourse(t, "Advanced", 2, true, now)

	body := func(updates ...course.SortUpdate) []byte {
		return marshallObj(t, map[string][]course.SortUpdate{"courseOrders": updates})
	}
	currentOrder := func() []int {
		ids := make([]int, 0)
		for _, crs := range listCourses(t, app) {
			ids = append(ids, crs.ID)
		}
		return ids
	}

	t.Run("Auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/courses/reorder", body(course.SortUpdate{ID: crs1.ID, SortOrder: 9}))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Batch is applied", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/courses/reorder", adminToken,
			body(course.SortUpdate{ID: crs1.ID, SortOrder: 9}, course.SortUpdate{ID: crs2.ID, SortOrder: 1}))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallObj(t, map[string]string{"message": "courses reordered successfully"})}, rec)
		assert.Equal(t, []int{crs2.ID, crs1.ID}, currentOrder())
	})

	t.Run("Unknown id rolls the whole batch back", func(t *testing.T) {
		before := currentOrder()
		req, rec := newAuthRequest(http.MethodPost, "/api/courses/reorder", adminToken,
			body(course.SortUpdate{ID: crs1.ID, SortOrder: 1}, course.SortUpdate{ID: 999, SortOrder: 2}))
		app.ServeHTTP(rec, req)

		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "course not found"})}, rec)
		assert.Equal(t, before, currentOrder())
	})
}

func Test_uploadsAreServed(t *testing.T) {
	app := setup(t)

	dir := filepath.Join(conf.UploadDir, "courses")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.png"), []byte("png-bytes"), 0o644))

	req, rec := newRequest(http.MethodGet, "/uploads/courses/cover.png")
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
}
