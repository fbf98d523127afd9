package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iudanet/optimizeai/internal/client/iocli"
	"github.com/iudanet/optimizeai/internal/config"
	"github.com/iudanet/optimizeai/internal/logging"
)

// BuildInfo is printed by the version command.
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// Options configure Execute.
type Options struct {
	Info BuildInfo
	IO   iocli.IO
	// Open defaults to OpenDefault.
	Open Opener
	// Logs receives client logs, os.Stderr by default.
	Logs io.Writer
}

// runtime хранит состояние, общее для всех команд процесса
type runtime struct {
	opts       Options
	app        *App
	configFile string
	inShell    bool
}

// Execute runs the command line in args and closes the App afterwards.
func Execute(ctx context.Context, args []string, opts Options) error {
	if opts.IO == nil {
		opts.IO = iocli.NewStdio()
	}
	if opts.Open == nil {
		opts.Open = OpenDefault
	}
	if opts.Logs == nil {
		opts.Logs = os.Stderr
	}

	rt := &runtime{opts: opts}
	defer rt.close()

	root := newRootCommand(rt)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// app лениво создает App при первой команде, которой он нужен
func (rt *runtime) appFor(cmd *cobra.Command) (*App, error) {
	if rt.app != nil {
		return rt.app, nil
	}

	cfg, err := config.LoadClient(rt.configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(rt.opts.Logs, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	comps, err := rt.opts.Open(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}

	app, err := NewApp(cmd.Context(), cfg, rt.opts.IO, logger, comps)
	if err != nil {
		if comps.Close != nil {
			_ = comps.Close()
		}
		return nil, err
	}

	rt.app = app
	return app, nil
}

func (rt *runtime) close() {
	if rt.app == nil {
		return
	}
	if err := rt.app.Close(); err != nil {
		rt.app.logger.Error("failed to close client", "error", err)
	}
	rt.app = nil
}

// withApp адаптирует обработчик команды, которому нужен App
func (rt *runtime) withApp(fn func(cmd *cobra.Command, app *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := rt.appFor(cmd)
		if err != nil {
			return err
		}
		return fn(cmd, app, args)
	}
}

func newRootCommand(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:   "optimizeai",
		Short: "Terminal dashboard for OptimizeAI content audits",
		Long: `Sign in, manage projects and start content audits against the OptimizeAI API.

Run 'optimizeai shell' to keep one session and cache across many commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(rt.opts.IO)
	root.SetErr(rt.opts.IO)

	pf := root.PersistentFlags()
	pf.StringVar(&rt.configFile, "config", "", "path to YAML configuration file")
	pf.String("server", "", "API server URL (default http://localhost:8080)")
	pf.String("db", "", "path to local credential database (default optimizeai-client.db)")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newSignupCommand(rt),
		newLoginCommand(rt),
		newLogoutCommand(rt),
		newStatusCommand(rt),
		newForgotPasswordCommand(rt),
		newResetPasswordCommand(rt),
		newProjectsCommand(rt),
		newAuditsCommand(rt),
		newWatchCommand(rt),
		newShellCommand(rt),
		newVersionCommand(rt),
	)

	return root
}

func newVersionCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info := rt.opts.Info
			rt.opts.IO.Println("OptimizeAI Client")
			rt.opts.IO.Printf("Version:    %s\n", info.Version)
			rt.opts.IO.Printf("Build Date: %s\n", info.BuildDate)
			rt.opts.IO.Printf("Git Commit: %s\n", info.GitCommit)
		},
	}
}

// PrintError печатает ошибку команды в понятном пользователю виде
func PrintError(out iocli.IO, err error) {
	switch {
	case errors.Is(err, ErrNotSignedIn), errors.Is(err, ErrSessionExpired):
		out.Println(warningText(err.Error()))
	default:
		out.Println(errorText(fmt.Sprintf("Error: %v", err)))
	}
}
