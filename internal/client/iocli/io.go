// Package iocli is the terminal input and output used by the client commands.
package iocli

import "io"

//go:generate moq -out io_mock.go . IO

// IO is what commands use to talk to the user.
type IO interface {
	io.Writer
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Confirm(prompt string) (bool, error)
}
