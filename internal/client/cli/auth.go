package cli

import (
	"context"
	"os"
)

func (a *App) login(ctx context.Context) {
	username, err := getText(a.reader, "Username", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}

	if err := a.auth.Login(ctx, username, string(password)); err != nil {
		printlnFn("Login failed:", err)
		return
	}
	printlnFn("Logged in as", username)
}

func (a *App) logout(ctx context.Context) {
	if err := a.auth.Logout(ctx); err != nil {
		// Local state is already cleared; only the server call failed.
		printlnFn("Logged out (server notification failed)")
		return
	}
	printlnFn("Logged out")
}
