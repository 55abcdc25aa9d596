package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/api"
	"github.com/dmitrijs2005/schoolauth/internal/common"
)

func (a *App) register(ctx context.Context, _ []string) error {
	var req api.RegisterRequest
	var err error

	if req.Firstname, err = a.prompt.Text("First name"); err != nil {
		return err
	}
	if req.Lastname, err = a.prompt.Text("Last name"); err != nil {
		return err
	}
	if req.Email, err = a.prompt.Text("Email"); err != nil {
		return err
	}

	password, err := a.prompt.Password("Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := a.prompt.Password("Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if req.RGPDAccepted, err = a.prompt.Bool("Accept the privacy policy (GDPR)?"); err != nil {
		return err
	}
	if req.CommercialUseConsent, err = a.prompt.Bool("Allow commercial use of your data?"); err != nil {
		return err
	}
	req.Password, req.ConfirmPassword = string(password), string(confirm)

	if err := a.auth.Register(ctx, req); err != nil {
		return err
	}
	a.println("Registered and logged in as", req.Email)
	return nil
}

func (a *App) login(ctx context.Context, _ []string) error {
	email, err := a.prompt.Text("Email")
	if err != nil {
		return err
	}
	password, err := a.prompt.Password("Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, password); err != nil {
		return err
	}
	a.println("Logged in as", email)
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	err := a.auth.Logout(ctx)
	a.println("Local session cleared")
	return err
}

func (a *App) whoami(context.Context, []string) error {
	c, err := a.auth.WhoAmI()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "email: %s\nrole:  %s\n", c.Subject, c.Role)
	if c.UserID != "" {
		fmt.Fprintf(a.out, "id:    %s\n", c.UserID)
	}
	if !c.ExpiresAt.IsZero() {
		left := time.Until(c.ExpiresAt).Round(time.Second)
		if left < 0 {
			fmt.Fprintf(a.out, "token expired %s ago\n", -left)
		} else {
			fmt.Fprintf(a.out, "token expires in %s\n", left)
		}
	}
	return nil
}

func (a *App) profile(ctx context.Context, _ []string) error {
	p, err := a.auth.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s %s <%s> %s\n", p.Firstname, p.Lastname, p.Email, p.Role)
	return nil
}

func (a *App) refresh(ctx context.Context, _ []string) error {
	if err := a.auth.Refresh(ctx); err != nil {
		return err
	}
	a.println("Token pair rotated")
	return nil
}

// currentUserID resolves an optional user id argument against the token.
func (a *App) currentUserID(args []string, usage string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	c, err := a.auth.WhoAmI()
	if err != nil {
		return "", err
	}
	if c.UserID == "" {
		return "", errors.Join(usageErr(usage), errors.New("token carries no user id"))
	}
	return c.UserID, nil
}
