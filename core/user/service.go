package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/jltacademy/backend/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type (
	Repository interface {
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id int) (User, error)
		GetUserByUsernameOrEmail(ctx context.Context, username string) (User, error)
		UpdateUserPassword(ctx context.Context, usr User) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

// CreateAdmin creates a new administrator account.
func (svc *Service) CreateAdmin(ctx context.Context, username, email, pwd string) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Username:  core.CleanString(username, true /* lower */),
		Email:     core.CleanString(email, true /* lower */),
		Role:      RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) GetByID(ctx context.Context, id int) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByUsernameOrEmail(ctx context.Context, uname string) (User, error) {
	return svc.repo.GetUserByUsernameOrEmail(ctx, core.CleanString(uname, true /* lower */))
}

// Authenticate checks the given credentials against the store.
// An unknown identifier and a password mismatch both yield ErrInvalidCredentials,
// so callers cannot tell which check failed.
func (svc *Service) Authenticate(ctx context.Context, uname, pwd string) (User, error) {
	usr, err := svc.GetByUsernameOrEmail(ctx, uname)
	if err != nil {
		if err == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}

// ChangePassword re-verifies the current password before accepting the new one.
func (svc *Service) ChangePassword(ctx context.Context, usr User, cp ChangePassword) error {
	if err := usr.CheckPassword(cp.CurrentPassword); err != nil {
		return ErrWrongPassword
	}
	if err := usr.SetPassword(cp.NewPassword); err != nil {
		return err
	}
	usr.UpdatedAt = time.Now().UTC()
	if err := svc.repo.UpdateUserPassword(ctx, usr); err != nil {
		return err
	}

	if svc.mailSvc != nil {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Name: usr.Username, Address: usr.Email}},
			Subject: "Your password was changed",
			Body: fmt.Sprintf(
				"Hi %s,\n\nThe password of your admin account was just changed. "+
					"If this was not you, contact the site operator immediately.\n", usr.Username),
		})
	}
	return nil
}
