package main

import (
	"context"
	"errors"
	"time"

	"github.com/jltacademy/backend/core"
)

var errAccountExists = errors.New("an account with this username or email already exists")

func (cli *commandLine) resetPassword(uname, pwd string) error {
	ctx := context.Background()
	usr, err := cli.usrRepo.GetUserByUsernameOrEmail(ctx, core.CleanString(uname, true /* lower */))
	if err != nil {
		return err
	}
	if err = usr.SetPassword(pwd); err != nil {
		return err
	}
	usr.UpdatedAt = time.Now().UTC()
	return cli.usrRepo.UpdateUserPassword(ctx, usr)
}
