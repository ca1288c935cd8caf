package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/sahyadri/classai/core"
	"github.com/sahyadri/classai/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(name, uname, email, pwd string, isAdmin bool) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	lookup := uname
	if lookup == "" {
		lookup = email
	}

	usr, err := cli.usrRepo.GetUserByUsernameOrEmail(ctx, lookup)
	if err != nil && errors.Cause(err) != user.ErrNotFound {
		return err
	}
	exists := err == nil

	now := time.Now().UTC()
	usr.Name = name
	usr.Username = uname
	usr.Email = email
	usr.UpdatedAt = now
	if isAdmin {
		usr.Roles = user.AllRoles
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	isActive := true
	if exists {
		_, err = cli.usrRepo.UpdateUser(ctx, usr, &isActive)
		return err
	}
	usr.IsActive = true
	usr.CreatedAt = now
	_, err = cli.usrRepo.CreateUser(ctx, usr)
	return err
}
