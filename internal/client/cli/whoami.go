package cli

import (
	"context"
	"fmt"
	"time"
)

// Whoami reports the current authentication status. A near-expiry session is
// transparently refreshed by the auth client before being reported.
func (a *App) Whoami(ctx context.Context) int {
	toks := a.auth.CurrentTokens(ctx)
	if toks == nil {
		fmt.Fprintln(a.out, "Not logged in. Run 'geni login' to authenticate.")
		return 1
	}

	if toks.Email != "" {
		fmt.Fprintf(a.out, "Logged in as %s.\n", toks.Email)
	} else {
		fmt.Fprintf(a.out, "Logged in as user %s.\n", toks.UserID)
	}

	remaining := time.Until(toks.ExpiresAt).Round(time.Minute)
	if remaining > 0 {
		fmt.Fprintf(a.out, "Session expires in %s.\n", remaining)
	}
	return 0
}
