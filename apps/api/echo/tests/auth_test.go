package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/jltacademy/backend/apps/api/echo"
	"github.com/jltacademy/backend/core/user"
	"github.com/jltacademy/backend/storage/database"
)

func Test_authApi_login(t *testing.T) {
	app := setup(t)

	creds := func(uname, pwd string) []byte {
		return marshallObj(t, user.Login{Username: uname, Password: pwd})
	}
	invalidCreds := marshallObj(t, httpErr{Error: "invalid credentials"})

	tests := []httpTest{
		{
			name: "Seeded admin can log in", body: creds(database.DefaultAdminUsername, database.DefaultAdminPassword),
			wantCode: http.StatusOK,
		},
		{
			name: "Login by email", body: creds(database.DefaultAdminEmail, database.DefaultAdminPassword),
			wantCode: http.StatusOK,
		},
		{
			name: "Unknown user", body: creds("nobody", "s3cr3t-pwd"),
			wantCode: http.StatusUnauthorized, wantData: invalidCreds,
		},
		{
			name: "Wrong password", body: creds(database.DefaultAdminUsername, "s3cr3t-pwd"),
			wantCode: http.StatusUnauthorized, wantData: invalidCreds,
		},
		{name: "Username required", body: creds("", "s3cr3t-pwd"), wantCode: http.StatusBadRequest},
		{name: "Password min length", body: creds(database.DefaultAdminUsername, "123"), wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/auth/login", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusOK {
				var resp struct {
					Message string    `json:"message"`
					Token   string    `json:"token"`
					User    user.User `json:"user"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.Token)
				assert.Equal(t, database.DefaultAdminUsername, resp.User.Username)
			}
		})
	}

	t.Run("Unknown user and wrong password are indistinguishable", func(t *testing.T) {
		req1, rec1 := newRequest(http.MethodPost, "/api/auth/login", creds("nobody", "s3cr3t-pwd"))
		app.ServeHTTP(rec1, req1)
		req2, rec2 := newRequest(http.MethodPost, "/api/auth/login", creds(database.DefaultAdminUsername, "s3cr3t-pwd"))
		app.ServeHTTP(rec2, req2)

		assert.Equal(t, rec1.Code, rec2.Code)
		assert.Equal(t, rec1.Body.String(), rec2.Body.String())
	})
}

func Test_authApi_profile(t *testing.T) {
	app := setup(t)

	admin := getDefaultAdmin(t)
	plebe := createUser(t, "plebe", "plebe@test.cd", "s3cr3t-pwd", "editor")

	expiredClaims := echoapi.GetUserClaims(conf, admin)
	expiredClaims.ExpiresAt = time.Now().Add(-time.Hour).Unix()
	expiredToken, err := echoapi.GenerateToken(conf, expiredClaims)
	require.NoError(t, err)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)},
		{name: "Tampered token rejected", token: getToken(t, admin) + "x", wantCode: http.StatusUnauthorized},
		{name: "Expired token rejected", token: expiredToken, wantCode: http.StatusUnauthorized},
		{
			name: "Admin required", token: getToken(t, plebe),
			wantCode: http.StatusForbidden, wantData: marshallObj(t, errAdminOnly),
		},
		{
			name: "OK", token: getToken(t, admin),
			wantCode: http.StatusOK, wantData: marshallObj(t, map[string]user.User{"user": admin}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/api/auth/profile", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_changePassword(t *testing.T) {
	app := setup(t)

	admin := getDefaultAdmin(t)
	token := getToken(t, admin)

	body := func(current, newPwd string) []byte {
		return marshallObj(t, user.ChangePassword{CurrentPassword: current, NewPassword: newPwd})
	}
	login := func(pwd string) int {
		req, rec := newRequest(http.MethodPost, "/api/auth/login",
			marshallObj(t, user.Login{Username: admin.Username, Password: pwd}))
		app.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("Wrong current password leaves hash untouched", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/auth/change-password", token, body("wrong-pwd", "n3w-s3cr3t"))
		app.ServeHTTP(rec, req)

		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{Error: "current password is incorrect"}),
		}
		checkCodeAndData(t, tt, rec)
		assert.Equal(t, http.StatusOK, login(database.DefaultAdminPassword))
	})

	t.Run("New password min length", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/auth/change-password", token, body(database.DefaultAdminPassword, "123"))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("OK", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/auth/change-password", token, body(database.DefaultAdminPassword, "n3w-s3cr3t"))
		app.ServeHTTP(rec, req)

		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marshallObj(t, map[string]string{"message": "password changed successfully"}),
		}
		checkCodeAndData(t, tt, rec)
		assert.Equal(t, http.StatusOK, login("n3w-s3cr3t"))
		assert.Equal(t, http.StatusUnauthorized, login(database.DefaultAdminPassword))
	})
}

func Test_authApi_logout(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)},
		{
			name: "OK", token: getToken(t, getDefaultAdmin(t)),
			wantCode: http.StatusOK, wantData: marshallObj(t, map[string]string{"message": "logout successful"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/api/auth/logout", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
