package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"karat/internal/logging"
	"karat/internal/session"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := boot()
			if err != nil {
				return err
			}
			defer logging.CloseAll()

			if email == "" {
				fmt.Print("Email: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				email = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Print("Password: ")
				raw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Println()
				if err != nil {
					return err
				}
				password = string(raw)
			}

			result, err := a.client.Login(context.Background(), email, password)
			if err != nil {
				return err
			}
			if !result.Success {
				msg := result.Message
				if msg == "" {
					msg = "invalid credentials"
				}
				return fmt.Errorf("login rejected: %s", msg)
			}

			if err := a.sessions.Save(session.Session{
				Token:   result.Token,
				Refresh: result.Refresh,
				User:    result.User,
			}); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			fmt.Printf("Signed in as %s (%s)\n", result.User.Name(), result.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := boot()
			if err != nil {
				return err
			}
			defer logging.CloseAll()

			if err := a.client.Logout(context.Background()); err != nil {
				logging.SessionError("server logout failed: %v", err)
			}
			if err := a.sessions.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := boot()
			if err != nil {
				return err
			}
			defer logging.CloseAll()

			sess := a.sessions.Current()
			if sess == nil {
				return fmt.Errorf("not signed in")
			}

			// Refresh from the server when reachable; fall back to the
			// saved copy offline.
			user := sess.User
			if fresh, err := a.client.Profile(context.Background()); err == nil && fresh != nil {
				user = *fresh
			}

			fmt.Printf("%s <%s>\n", user.Name(), user.Email)
			fmt.Printf("Role:  %s\n", user.Role)
			if user.Store != "" {
				fmt.Printf("Store: %s\n", user.Store)
			}
			return nil
		},
	}
}
