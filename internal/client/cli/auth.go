package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/optimizeai/internal/client/api"
	"github.com/iudanet/optimizeai/internal/client/storage"
	"github.com/iudanet/optimizeai/internal/validation"
)

func newSignupCommand(rt *runtime) *cobra.Command {
	var (
		name, email string
		pw          passwordSource
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: rt.withApp(func(cmd *cobra.Command, app *App, _ []string) error {
			var err error
			if name, err = readInputIfEmpty(app.io, name, "Name: "); err != nil {
				return err
			}
			if err := validation.ValidateName(name); err != nil {
				return err
			}

			if email, err = readInputIfEmpty(app.io, email, "Email: "); err != nil {
				return err
			}
			email = validation.NormalizeEmail(email)
			if err := validation.ValidateEmail(email); err != nil {
				return err
			}

			password, err := readNewPassword(app, pw)
			if err != nil {
				return err
			}

			user, err := app.session.Signup(cmd.Context(), name, email, password)
			if err != nil {
				if errors.Is(err, api.ErrConflict) {
					return fmt.Errorf("an account with email %s already exists", email)
				}
				return err
			}

			app.io.Println(successText("Signed up as %s <%s>", user.Name, user.Email))
			return nil
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&pw.file, "password-file", "", "read the password from a file")

	return cmd
}

func newLoginCommand(rt *runtime) *cobra.Command {
	var (
		email string
		pw    passwordSource
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: rt.withApp(func(cmd *cobra.Command, app *App, _ []string) error {
			var err error
			if email, err = readInputIfEmpty(app.io, email, "Email: "); err != nil {
				return err
			}
			email = validation.NormalizeEmail(email)

			password, err := pw.read(app.io, "Password: ")
			if err != nil {
				return err
			}

			if err := validation.ValidateCredentials(email, password); err != nil {
				return err
			}

			user, err := app.session.Login(cmd.Context(), email, password)
			if err != nil {
				if errors.Is(err, api.ErrUnauthorized) {
					return errors.New("invalid email or password")
				}
				return err
			}

			app.io.Println(successText("Signed in as %s <%s>", user.Name, user.Email))
			return nil
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&pw.file, "password-file", "", "read the password from a file")

	return cmd
}

func newLogoutCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: rt.withApp(func(cmd *cobra.Command, app *App, _ []string) error {
			if err := app.session.Bootstrap(cmd.Context()); err != nil {
				return err
			}

			if !app.session.State().IsAuthenticated() {
				app.io.Println(infoText("Not signed in."))
				return nil
			}

			// Logout всегда успешен локально
			app.session.Logout(cmd.Context())
			app.io.Println(successText("Signed out."))
			return nil
		}),
	}
}

func newStatusCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show who is signed in",
		Args:  cobra.NoArgs,
		RunE: rt.withApp(func(cmd *cobra.Command, app *App, _ []string) error {
			ctx := cmd.Context()
			if err := app.session.Bootstrap(ctx); err != nil {
				return err
			}

			state := app.session.State()
			app.io.Printf("Server: %s\n", app.cfg.Server.URL)
			if !state.IsAuthenticated() {
				app.io.Println(infoText("Not signed in. Run 'login' or 'signup'."))
				return nil
			}

			app.io.Printf("Signed in as: %s <%s>\n", state.User.Name, state.User.Email)
			app.io.Printf("User ID:      %s\n", state.User.ID)
			if line := tokenExpiryLine(ctx, app.comps.Store); line != "" {
				app.io.Println(line)
			}
			return nil
		}),
	}
}

// tokenExpiryLine описывает срок действия сохраненного токена
func tokenExpiryLine(ctx context.Context, store storage.CredentialStore) string {
	token, err := store.GetToken(ctx)
	if err != nil {
		return ""
	}

	exp, ok := api.TokenExpiry(token)
	if !ok {
		return ""
	}

	left := time.Until(exp).Round(time.Minute)
	if left <= 0 {
		return fmt.Sprintf("Token expired: %s", exp.Local().Format(time.RFC1123))
	}
	return fmt.Sprintf("Token expires: %s (in %s)", exp.Local().Format(time.RFC1123), left)
}

func newForgotPasswordCommand(rt *runtime) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset link",
		Args:  cobra.NoArgs,
		RunE: rt.withApp(func(cmd *cobra.Command, app *App, _ []string) error {
			var err error
			if email, err = readInputIfEmpty(app.io, email, "Email: "); err != nil {
				return err
			}
			email = validation.NormalizeEmail(email)
			if err := validation.ValidateEmail(email); err != nil {
				return err
			}

			if err := app.session.ForgotPassword(cmd.Context(), email); err != nil {
				return err
			}

			app.io.Println(successText("If an account exists for %s, a reset link has been sent.", email))
			return nil
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func newResetPasswordCommand(rt *runtime) *cobra.Command {
	var (
		token string
		pw    passwordSource
	)

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password using a reset token",
		Args:  cobra.NoArgs,
		RunE: rt.withApp(func(cmd *cobra.Command, app *App, _ []string) error {
			var err error
			if token, err = readInputIfEmpty(app.io, token, "Reset token: "); err != nil {
				return err
			}
			if token == "" {
				return fmt.Errorf("%w: reset token is required", validation.ErrInvalidInput)
			}

			password, err := readNewPassword(app, pw)
			if err != nil {
				return err
			}

			if err := app.session.ResetPassword(cmd.Context(), token, password); err != nil {
				return err
			}

			app.io.Println(successText("Password updated. Sign in with your new password."))
			return nil
		}),
	}

	cmd.Flags().StringVar(&token, "token", "", "reset token from the email")
	cmd.Flags().StringVar(&pw.file, "password-file", "", "read the new password from a file")
	return cmd
}

// readNewPassword читает новый пароль; при интерактивном вводе требует подтверждения
func readNewPassword(app *App, pw passwordSource) (string, error) {
	password, err := pw.read(app.io, "Password: ")
	if err != nil {
		return "", err
	}

	if !pw.interactive() {
		return password, validation.ValidatePassword(password)
	}

	confirmation, err := app.io.ReadPassword("Confirm password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return password, validation.ValidatePasswordConfirmation(password, confirmation)
}
