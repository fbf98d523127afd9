package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// errUnterminatedQuote is returned by splitArgs for a line with an open quote.
var errUnterminatedQuote = errors.New("unterminated quote")

func newShellCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell",
		Long: `Start an interactive shell.

Every command available on the command line works in the shell. Commands share
one session and one cache, so data loaded once is reused and mutations refresh
what is already on screen. Type 'help' for the list of commands and 'exit' to leave.`,
		Args: cobra.NoArgs,
		RunE: rt.withApp(func(cmd *cobra.Command, app *App, _ []string) error {
			if rt.inShell {
				return errors.New("already in the shell")
			}
			rt.inShell = true
			defer func() { rt.inShell = false }()

			ctx := cmd.Context()
			if err := app.session.Bootstrap(ctx); err != nil {
				return err
			}

			app.io.Println(infoText("OptimizeAI shell. Type 'help' for commands, 'exit' to leave."))
			for {
				if ctx.Err() != nil {
					return nil
				}

				line, err := app.io.ReadInput(shellPrompt(app))
				if err != nil {
					if errors.Is(err, io.EOF) {
						app.io.Println("")
						return nil
					}
					return fmt.Errorf("failed to read command: %w", err)
				}

				args, err := splitArgs(line)
				if err != nil {
					PrintError(app.io, err)
					continue
				}
				if len(args) == 0 {
					continue
				}

				switch args[0] {
				case "exit", "quit":
					app.io.Println("Bye!")
					return nil
				}

				// Новое дерево команд на каждую строку, чтобы флаги не переживали вызов
				root := newRootCommand(rt)
				root.SetArgs(args)
				if err := root.ExecuteContext(ctx); err != nil {
					PrintError(app.io, err)
				}
			}
		}),
	}
}

func shellPrompt(app *App) string {
	state := app.session.State()
	if state.IsAuthenticated() {
		return fmt.Sprintf("optimizeai (%s)> ", state.User.Email)
	}
	return "optimizeai (guest)> "
}

// splitArgs разбивает строку на аргументы с учетом кавычек и экранирования
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inArg   bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inArg = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 || escaped {
		return nil, errUnterminatedQuote
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}
