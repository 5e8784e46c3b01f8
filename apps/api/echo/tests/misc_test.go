package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_health(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/api/health")
	app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Status    string `json:"status"`
		Message   string `json:"message"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp.Status)
	assert.NotEmpty(t, resp.Timestamp)
}

func Test_unknownRoute(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/api/nope")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "route not found"})}, rec)
}

func Test_bodyLimit(t *testing.T) {
	app := setup(t)

	t.Run("Oversized JSON body rejected", func(t *testing.T) {
		big := bytes.Repeat([]byte("a"), 10<<20+1)
		req, rec := newRequest(http.MethodPost, "/api/auth/login", big)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("Large multipart upload is exempt", func(t *testing.T) {
		adminToken := getToken(t, getDefaultAdmin(t))
		// over the 10 MiB body cap, within the slider 50 MiB ceiling
		up := upload{field: "file", filename: "hero.mp4", contentType: "video/mp4", content: make([]byte, 12<<20)}
		req, rec := newUploadRequest(t, http.MethodPost, "/api/slider", adminToken,
			map[string]string{"title": "Hero", "content_type": "video"}, up)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})
}
