package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/jltacademy/backend/apps/api/echo"
	"github.com/jltacademy/backend/core"
	"github.com/jltacademy/backend/core/course"
	"github.com/jltacademy/backend/core/slider"
	"github.com/jltacademy/backend/core/user"
	"github.com/jltacademy/backend/core/webinar"
	emailsvc "github.com/jltacademy/backend/services/email"
	"github.com/jltacademy/backend/storage/database"
	inmemdb "github.com/jltacademy/backend/storage/database/inmem"
	"github.com/jltacademy/backend/storage/files"
)

var (
	conf *core.Config

	usrRepo     user.Repository
	courseRepo  course.Repository
	webinarRepo webinar.Repository
	sliderRepo  slider.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errAdminOnly    = httpErr{Error: "admin access required"}
)

func setup(t *testing.T) Server {
	conf = &core.Config{
		TestMode:    true,
		Env:         "TEST",
		AppName:     "JLT Academy",
		SecretKey:   "test-secret-key",
		FrontendURL: "http://localhost:3000",
		UploadDir:   t.TempDir(),
		Server: core.ServerConfig{
			JWTExpirationDelta: 24 * time.Hour,
		},
	}

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	usrRepo = inmemdb.NewUserRepository(db)
	courseRepo = inmemdb.NewCourseRepository(db)
	webinarRepo = inmemdb.NewWebinarRepository(db)
	sliderRepo = inmemdb.NewSliderRepository(db)

	fileStore, err := files.NewDiskStore(conf.UploadDir)
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	logger := testLogger{t: t}
	mailSvc := emailsvc.NewConsoleServiceMock(conf)

	if err = database.SeedDefaultAdmin(context.Background(), usrRepo); err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	return NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		UserSvc:    user.NewService(usrRepo, mailSvc),
		CourseSvc:  course.NewService(courseRepo, fileStore, logger),
		WebinarSvc: webinar.NewService(webinarRepo, fileStore, logger),
		SliderSvc:  slider.NewService(sliderRepo, fileStore, logger),
	})
}

// testLogger routes application logs to the test output.
type testLogger struct {
	t *testing.T
}

var _ core.Logger = (*testLogger)(nil)

func (l testLogger) Enable(bool) {}
func (l testLogger) log(msg string, args []interface{}) {
	l.t.Helper()
	l.t.Logf("%s %v", msg, args)
}
func (l testLogger) Debug(msg string, args ...interface{}) { l.log(msg, args) }
func (l testLogger) Info(msg string, args ...interface{})  { l.log(msg, args) }
func (l testLogger) Warn(msg string, args ...interface{})  { l.log(msg, args) }
func (l testLogger) Error(msg string, args ...interface{}) { l.log(msg, args) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.log(msg, args) }

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// upload is an in-memory file attached to a multipart request.
type upload struct {
	field       string
	filename    string
	contentType string
	content     []byte
}

func newUploadRequest(t *testing.T, method, path, token string, fields map[string]string, uploads ...upload) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("newUploadRequest() failed: %v", err)
		}
	}
	for _, up := range uploads {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, up.field, up.filename))
		hdr.Set("Content-Type", up.contentType)
		part, err := w.CreatePart(hdr)
		if err != nil {
			t.Fatalf("newUploadRequest() failed: %v", err)
		}
		if _, err = part.Write(up.content); err != nil {
			t.Fatalf("newUploadRequest() failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("newUploadRequest() failed: %v", err)
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func getToken(t *testing.T, usr user.User) string {
	token, err := GenerateToken(conf, GetUserClaims(conf, usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func getDefaultAdmin(t *testing.T) user.User {
	usr, err := usrRepo.GetUserByUsernameOrEmail(context.Background(), database.DefaultAdminUsername)
	if err != nil {
		t.Fatalf("getDefaultAdmin() failed: %v", err)
	}
	return usr
}

func createUser(t *testing.T, uname, email, pwd, role string) user.User {
	now := time.Now().UTC()
	usr := user.User{
		Username:  uname,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(pwd); err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	usr, err := usrRepo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func createCourse(t *testing.T, title string, sortOrder int, active bool, createdAt time.Time) course.Course {
	crs, err := courseRepo.CreateCourse(context.Background(), course.Course{
		Title:       title,
		Description: title + " description",
		SortOrder:   sortOrder,
		IsActive:    active,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	})
	if err != nil {
		t.Fatalf("createCourse() failed: %v", err)
	}
	return crs
}

func createWebinar(t *testing.T, title, date, status string, sortOrder int, active bool) webinar.Webinar {
	now := time.Now().UTC()
	web, err := webinarRepo.CreateWebinar(context.Background(), webinar.Webinar{
		Title:       title,
		Description: title + " description",
		Date:        date,
		Status:      status,
		SortOrder:   sortOrder,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("createWebinar() failed: %v", err)
	}
	return web
}

func createSliderItem(t *testing.T, title, filePath, contentType string, sortOrder int, active bool) slider.Item {
	now := time.Now().UTC()
	item, err := sliderRepo.CreateItem(context.Background(), slider.Item{
		Title:       title,
		FilePath:    filePath,
		FileType:    ".png",
		ContentType: contentType,
		SortOrder:   sortOrder,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("createSliderItem() failed: %v", err)
	}
	return item
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
