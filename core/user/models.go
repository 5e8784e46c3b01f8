package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jltacademy/backend/core"
)

const RoleAdmin = "admin"

// User is an administrator account for the admin console.
type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Login contains credentials presented to the login endpoint.
// Username matches either the username or the email of an account.
type Login struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

func (l *Login) Validate() error {
	l.Username = core.CleanString(l.Username, true /* lower */)
	return core.Validate.Struct(l)
}

// ChangePassword defines the payload of the password-change operation.
type ChangePassword struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" form:"newPassword" validate:"required,min=6"`
}

func (cp *ChangePassword) Validate() error {
	return core.Validate.Struct(cp)
}
