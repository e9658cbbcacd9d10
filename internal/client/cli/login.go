package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mnedelko/geniable/internal/client/auth"
	"github.com/mnedelko/geniable/internal/client/tokens"
	"github.com/mnedelko/geniable/internal/common"
	"github.com/mnedelko/geniable/internal/flagx"
)

// minPasswordLength is the local precheck applied before a new password is
// submitted. The provider enforces the full policy server-side.
const minPasswordLength = 12

// Login authenticates the user and persists the resulting session tokens.
// When the account is flagged for a forced password rotation, the user is
// prompted for a new password and the change is completed in the same flow.
func (a *App) Login(ctx context.Context, args []string) int {
	email := flagValue(args, "-e", "-email")
	if email == "" {
		var err error
		email, err = GetSimpleText(a.reader, a.out, "Email")
		if err != nil {
			fmt.Fprintf(a.out, "Error reading email: %v\n", err)
			return 1
		}
	}
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Fprintln(a.out, "An email address is required.")
		return 1
	}

	password, err := GetPassword(a.out, "Password")
	if err != nil {
		fmt.Fprintf(a.out, "Error reading password: %v\n", err)
		return 1
	}

	res, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return a.reportLoginError(err)
	}

	if res.PasswordChange != nil {
		toks, code := a.changePassword(ctx, res.PasswordChange, email)
		if code != 0 {
			return code
		}
		a.printSession(toks.Email, toks.ExpiresAt)
		return 0
	}

	a.printSession(res.Tokens.Email, res.Tokens.ExpiresAt)
	return 0
}

// changePassword runs the forced password rotation prompt loop and completes
// the challenge. It retries on local validation failures and on provider
// policy rejections.
func (a *App) changePassword(ctx context.Context, ch *auth.PasswordChangeChallenge, email string) (*tokens.AuthTokens, int) {
	fmt.Fprintln(a.out, "")
	fmt.Fprintln(a.out, "Your password must be changed before you can continue.")

	for {
		newPassword, err := GetPassword(a.out, "New password")
		if err != nil {
			fmt.Fprintf(a.out, "Error reading password: %v\n", err)
			return nil, 1
		}
		if len(newPassword) < minPasswordLength {
			fmt.Fprintf(a.out, "Password must be at least %d characters long.\n", minPasswordLength)
			continue
		}
		confirm, err := GetPassword(a.out, "Confirm new password")
		if err != nil {
			fmt.Fprintf(a.out, "Error reading password: %v\n", err)
			return nil, 1
		}
		if newPassword != confirm {
			fmt.Fprintln(a.out, "Passwords do not match. Please try again.")
			continue
		}

		toks, err := a.auth.CompletePasswordChange(ctx, ch.Session, ch.UserID, newPassword, email)
		if err != nil {
			if errors.Is(err, common.ErrInvalidPassword) {
				fmt.Fprintln(a.out, "The new password does not meet the account password policy. Please try again.")
				continue
			}
			fmt.Fprintf(a.out, "Password change failed: %v\n", err)
			return nil, 1
		}
		fmt.Fprintln(a.out, "Password changed successfully.")
		return toks, 0
	}
}

func (a *App) reportLoginError(err error) int {
	switch {
	case errors.Is(err, common.ErrNotAuthorized):
		fmt.Fprintln(a.out, "Login failed: incorrect email or password.")
	case errors.Is(err, common.ErrUserNotFound):
		fmt.Fprintln(a.out, "Login failed: no account exists for that email address.")
	case errors.Is(err, common.ErrUserNotConfirmed):
		fmt.Fprintln(a.out, "Login failed: the account has not been confirmed yet.")
	default:
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
	}
	return 1
}

func (a *App) printSession(email string, expiresAt time.Time) {
	if email != "" {
		fmt.Fprintf(a.out, "Logged in as %s.\n", email)
	} else {
		fmt.Fprintln(a.out, "Logged in.")
	}
	fmt.Fprintf(a.out, "Session valid until %s.\n", expiresAt.Local().Format("15:04 MST"))
}

// flagValue returns the value following the first occurrence of any of the
// given flag names in args, or "" when absent.
func flagValue(args []string, names ...string) string {
	filtered := flagx.FilterArgs(args, names)
	for i, arg := range filtered {
		if name, value, ok := strings.Cut(arg, "="); ok {
			for _, n := range names {
				if name == n {
					return value
				}
			}
			continue
		}
		for _, n := range names {
			if arg == n && i+1 < len(filtered) {
				return filtered[i+1]
			}
		}
	}
	return ""
}
