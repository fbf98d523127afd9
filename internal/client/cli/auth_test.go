package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/optimizeai/internal/validation"
)

func TestVersion(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "", "version")
	assert.Contains(t, out, "OptimizeAI Client")
	assert.Contains(t, out, "Version:")
}

func TestSignup(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, testPassword+"\n"+testPassword+"\n", "signup", "--name", testName, "--email", "  Ann@Example.com ")
	assert.Contains(t, out, "Signed up as Ann Lee <ann@example.com>")

	status := env.mustRun(t, "", "status")
	assert.Contains(t, status, "Signed in as: Ann Lee <ann@example.com>")
	assert.Contains(t, status, "Token expires:")
}

func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
	}{
		{
			name:  "passwords differ",
			input: testPassword + "\nother-password\n",
			args:  []string{"--name", testName, "--email", testEmail},
		},
		{
			name:  "short password",
			input: "short\nshort\n",
			args:  []string{"--name", testName, "--email", testEmail},
		},
		{
			name:  "bad email",
			input: testPassword + "\n" + testPassword + "\n",
			args:  []string{"--name", testName, "--email", "not-an-email"},
		},
		{
			name:  "short name",
			input: testPassword + "\n" + testPassword + "\n",
			args:  []string{"--name", "A", "--email", testEmail},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			_, err := env.run(t, tt.input, append([]string{"signup"}, tt.args...)...)
			require.ErrorIs(t, err, validation.ErrInvalidInput)

			out := env.mustRun(t, "", "status")
			assert.Contains(t, out, "Not signed in")
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	_, err := env.run(t, testPassword+"\n"+testPassword+"\n", "signup", "--name", testName, "--email", testEmail)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestLoginLogout(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)
	env.mustRun(t, "", "logout")

	out := env.mustRun(t, "", "status")
	assert.Contains(t, out, "Not signed in")

	_, err := env.run(t, "wrong-password\n", "login", "--email", testEmail)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email or password")

	out = env.mustRun(t, testPassword+"\n", "login", "--email", testEmail)
	assert.Contains(t, out, "Signed in as Ann Lee")

	out = env.mustRun(t, "", "logout")
	assert.Contains(t, out, "Signed out.")

	out = env.mustRun(t, "", "logout")
	assert.Contains(t, out, "Not signed in.")
}

func TestLogin_PasswordSources(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)
	env.mustRun(t, "", "logout")

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "password")
		require.NoError(t, os.WriteFile(path, []byte(testPassword+"\n"), 0o600))

		out := env.mustRun(t, "", "login", "--email", testEmail, "--password-file", path)
		assert.Contains(t, out, "Signed in as")
		env.mustRun(t, "", "logout")
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(PasswordEnv, testPassword)

		out := env.mustRun(t, "", "login", "--email", testEmail)
		assert.Contains(t, out, "Signed in as")
		env.mustRun(t, "", "logout")
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "password")
		require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

		_, err := env.run(t, "", "login", "--email", testEmail, "--password-file", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password file is empty")
	})
}

func TestForgotAndResetPassword(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	out := env.mustRun(t, "", "forgot-password", "--email", testEmail)
	assert.Contains(t, out, "a reset link has been sent")

	token := env.resets.token(testEmail)
	require.NotEmpty(t, token)

	const newPassword = "battery-staple"
	out = env.mustRun(t, newPassword+"\n"+newPassword+"\n", "reset-password", "--token", token)
	assert.Contains(t, out, "Password updated")

	// Сброс отзывает все сессии, сохраненный токен больше не принимается
	out = env.mustRun(t, "", "status")
	assert.Contains(t, out, "Not signed in")

	_, err := env.run(t, testPassword+"\n", "login", "--email", testEmail)
	require.Error(t, err)

	out = env.mustRun(t, newPassword+"\n", "login", "--email", testEmail)
	assert.Contains(t, out, "Signed in as")

	_, err = env.run(t, newPassword+"\n"+newPassword+"\n", "reset-password", "--token", token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid or has already been used")
}

func TestForgotPassword_UnknownEmailLooksTheSame(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "", "forgot-password", "--email", "nobody@example.com")
	assert.Contains(t, out, "a reset link has been sent")
	assert.Empty(t, env.resets.token("nobody@example.com"))
}
