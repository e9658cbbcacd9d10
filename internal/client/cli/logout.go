package cli

import (
	"context"
	"fmt"
)

// Logout clears the locally stored tokens. Logging out while already logged
// out is not an error.
func (a *App) Logout(ctx context.Context) int {
	if err := a.auth.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Logout failed: %v\n", err)
		return 1
	}
	fmt.Fprintln(a.out, "Logged out.")
	return 0
}
