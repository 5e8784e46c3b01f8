package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jltacademy/backend/core/slider"
)

func listSliderItems(t *testing.T, app http.Handler, path string) []slider.Item {
	t.Helper()
	req, rec := newRequest(http.MethodGet, path)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		SliderItems []slider.Item `json:"sliderItems"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.SliderItems
}

func Test_sliderApi_list(t *testing.T) {
	app := setup(t)

	second := createSliderItem(t, "Second", "/uploads/slider/b.png", slider.ContentTypeImage, 2, true)
	first := createSliderItem(t, "First", "/uploads/slider/a.png", slider.ContentTypeVideo, 1, true)
	createSliderItem(t, "Hidden", "/uploads/slider/c.png", slider.ContentTypeImage, 0, false)

	items := listSliderItems(t, app, "/api/slider")
	require.Len(t, items, 2)
	assert.Equal(t, []int{first.ID, second.ID}, []int{items[0].ID, items[1].ID})
}

func Test_sliderApi_listByContentType(t *testing.T) {
	app := setup(t)

	img2 := createSliderItem(t, "Img2", "/uploads/slider/b.png", slider.ContentTypeImage, 2, true)
	img1 := createSliderItem(t, "Img1", "/uploads/slider/a.png", slider.ContentTypeImage, 1, true)
	createSliderItem(t, "Vid", "/uploads/slider/v.mp4", slider.ContentTypeVideo, 0, true)
	createSliderItem(t, "Hidden", "/uploads/slider/c.png", slider.ContentTypeImage, 0, false)

	items := listSliderItems(t, app, "/api/slider/type/image")
	require.Len(t, items, 2)
	assert.Equal(t, []int{img1.ID, img2.ID}, []int{items[0].ID, items[1].ID})

	vids := listSliderItems(t, app, "/api/slider/type/video")
	require.Len(t, vids, 1)
}

func Test_sliderApi_create(t *testing.T) {
	app := setup(t)

	adminToken := getToken(t, getDefaultAdmin(t))
	fields := map[string]string{"title": "Hero", "content_type": "image"}

	t.Run("File is required", func(t *testing.T) {
		req, rec := newUploadRequest(t, http.MethodPost, "/api/slider", adminToken, fields)
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Fields, "file")
		assert.Empty(t, listSliderItems(t, app, "/api/slider"))
	})

	t.Run("Content type restricted", func(t *testing.T) {
		bad := map[string]string{"title": "Hero", "content_type": "gif"}
		up := upload{field: "file", filename: "hero.png", contentType: "image/png", content: make([]byte, 64)}
		req, rec := newUploadRequest(t, http.MethodPost, "/api/slider", adminToken, bad, up)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("OK", func(t *testing.T) {
		up := upload{field: "file", filename: "Hero.PNG", contentType: "image/png", content: make([]byte, 64)}
		req, rec := newUploadRequest(t, http.MethodPost, "/api/slider", adminToken, fields, up)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp struct {
			Item slider.Item `json:"sliderItem"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, ".png", resp.Item.FileType)
		require.NotEmpty(t, resp.Item.FilePath)
		assert.FileExists(t, uploadPath(t, resp.Item.FilePath))
	})
}

func Test_sliderApi_destroy(t *testing.T) {
	app := setup(t)

	adminToken := getToken(t, getDefaultAdmin(t))

	// create through the API so a real file is on disk
	up := upload{field: "file", filename: "hero.png", contentType: "image/png", content: make([]byte, 64)}
	req, rec := newUploadRequest(t, http.MethodPost, "/api/slider", adminToken,
		map[string]string{"title": "Hero", "content_type": "image"}, up)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Item slider.Item `json:"sliderItem"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	file := uploadPath(t, created.Item.FilePath)
	path := fmt.Sprintf("/api/slider/%d", created.Item.ID)

	t.Run("Delete removes the backing file", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, path, adminToken)
		app.ServeHTTP(rec, req)

		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallObj(t, map[string]string{"message": "slider item deleted successfully"})}, rec)
		assert.NoFileExists(t, file)
		assert.Empty(t, listSliderItems(t, app, "/api/slider"))
	})

	t.Run("Second delete is a 404", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, path, adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "slider item not found"})}, rec)
	})
}

func Test_sliderApi_reorder(t *testing.T) {
	app := setup(t)

	adminToken := getToken(t, getDefaultAdmin(t))
	item1 := createSliderItem(t, "One", "/uploads/slider/a.png", slider.ContentTypeImage, 1, true)
	item2 := createSliderItem(t, "Two", "/uploads/slider/b.png", slider.ContentTypeImage, 2, true)

	req, rec := newAuthRequest(http.MethodPost, "/api/slider/reorder", adminToken,
		marshallObj(t, map[string][]slider.SortUpdate{"sliderOrders": {
			{ID: item1.ID, SortOrder: 5},
			{ID: item2.ID, SortOrder: 4},
		}}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	items := listSliderItems(t, app, "/api/slider")
	require.Len(t, items, 2)
	assert.Equal(t, []int{item2.ID, item1.ID}, []int{items[0].ID, items[1].ID})
}
