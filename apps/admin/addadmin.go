package main

import (
	"context"
	"time"

	"github.com/jltacademy/backend/core"
	"github.com/jltacademy/backend/core/user"
)

// addAdmin creates a new administrator account.
func (cli *commandLine) addAdmin(uname, email, pwd string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	if _, err := cli.usrRepo.GetUserByUsernameOrEmail(ctx, uname); err == nil {
		return errAccountExists
	} else if err != user.ErrNotFound {
		return err
	}

	now := time.Now().UTC()
	usr := user.User{
		Username:  uname,
		Email:     email,
		Role:      user.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	_, err := cli.usrRepo.CreateUser(ctx, usr)
	return err
}
