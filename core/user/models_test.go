package user

import "testing"

func TestUser_SetPassword(t *testing.T) {
	var usr User
	if err := usr.SetPassword("s3cr3t-pwd"); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}
	if len(usr.PasswordHash) == 0 {
		t.Fatal("PasswordHash not set")
	}
	if string(usr.PasswordHash) == "s3cr3t-pwd" {
		t.Fatal("password stored in clear")
	}

	if err := usr.CheckPassword("s3cr3t-pwd"); err != nil {
		t.Errorf("CheckPassword() failed: %v", err)
	}
	if err := usr.CheckPassword("wrong-pwd"); err == nil {
		t.Error("CheckPassword() accepted a wrong password")
	}
}

func TestUser_IsAdmin(t *testing.T) {
	if !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin role not recognized")
	}
	if (&User{Role: "editor"}).IsAdmin() {
		t.Error("non-admin role recognized as admin")
	}
}

func TestLogin_Validate(t *testing.T) {
	tests := []struct {
		name    string
		login   Login
		wantErr bool
	}{
		{name: "ok", login: Login{Username: "admin", Password: "s3cr3t-pwd"}},
		{name: "username trimmed and lowered", login: Login{Username: "  ADMIN  ", Password: "s3cr3t-pwd"}},
		{name: "username required", login: Login{Password: "s3cr3t-pwd"}, wantErr: true},
		{name: "password required", login: Login{Username: "admin"}, wantErr: true},
		{name: "password min length", login: Login{Username: "admin", Password: "123"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.login.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	login := Login{Username: "  ADMIN  ", Password: "s3cr3t-pwd"}
	if err := login.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if login.Username != "admin" {
		t.Errorf("Username not cleaned: %q", login.Username)
	}
}
