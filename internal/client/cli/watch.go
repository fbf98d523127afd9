package cli

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/spf13/cobra"

	clientapi "github.com/iudanet/optimizeai/internal/client/api"
	"github.com/iudanet/optimizeai/internal/client/dashboard"
	"github.com/iudanet/optimizeai/pkg/api"
)

// liveView печатает обновления одного представления до остановки
type liveView struct {
	app      *App
	title    string
	duration time.Duration

	mu        sync.Mutex
	rejected  chan error
	once      sync.Once
	ready     chan struct{} // закрывается после первой отрисовки данных или ошибки
	readyOnce sync.Once
}

func newLiveView(app *App, title string, duration time.Duration) *liveView {
	return &liveView{
		app:      app,
		title:    title,
		duration: duration,
		rejected: make(chan error, 1),
		ready:    make(chan struct{}),
	}
}

// show печатает состояние; body вызывается только при наличии данных
func show[T any](v *liveView, s dashboard.ViewState[T], body func(T) string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if errors.Is(s.Err, clientapi.ErrUnauthorized) {
		// Отказ отправляется до закрытия ready, wait увидит его первым
		v.once.Do(func() { v.rejected <- s.Err })
		v.readyOnce.Do(func() { close(v.ready) })
		return
	}

	if s.Loading() {
		v.app.io.Println(infoText("%s: loading...", v.title))
		return
	}

	v.app.io.Println(viewHeader(v.title, s.State, s.Stale, s.UpdatedAt, s.Err))
	if s.HasData {
		v.app.io.Println(body(s.Data))
	} else if dashboard.IsGone(s.Err) {
		v.app.io.Println(warningText(v.title + " no longer exists"))
	}
	v.readyOnce.Do(func() { close(v.ready) })
}

// wait блокируется до Enter, истечения duration, отмены ctx или отказа сервера в токене.
// Ввод с терминала читается только между первой отрисовкой и возвратом из wait:
// строка, набранная после возврата, достается следующему читателю.
func (v *liveView) wait(ctx context.Context, view *dashboard.View) error {
	defer view.Close()

	if v.duration > 0 {
		timer := time.NewTimer(v.duration)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			return nil
		case err := <-v.rejected:
			return err
		}
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-v.rejected:
		return err
	case <-v.ready:
	}
	select {
	case err := <-v.rejected:
		return err
	default:
	}

	v.mu.Lock()
	v.app.io.Println(infoText("Watching %s, press Enter to stop.", v.title))
	v.mu.Unlock()

	entered := make(chan struct{})
	go func() {
		defer close(entered)
		_, _ = v.app.io.ReadInput("")
	}()

	select {
	case <-entered:
		return nil
	case <-ctx.Done():
		// Отмена ctx завершает и shell, ввод больше никто не ждет
		return nil
	case err := <-v.rejected:
		// Читатель уже ждет строку, отдаем ее ему, а не shell
		v.mu.Lock()
		v.app.io.Println(warningText("The server rejected the session, press Enter to return."))
		v.mu.Unlock()
		select {
		case <-entered:
		case <-ctx.Done():
		}
		return err
	}
}

func newWatchCommand(rt *runtime) *cobra.Command {
	var (
		duration    time.Duration
		page, limit int
	)

	cmd := &cobra.Command{
		Use:   "watch (projects | project <id> | audits <project-id>)",
		Short: "Show a live view that refreshes when data changes",
		Long: `Show a live view that refreshes when data changes.

The view is redrawn whenever the shared cache changes, for example after a
mutation in the same shell or an explicit refresh.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: rt.withApp(func(cmd *cobra.Command, app *App, args []string) error {
			target := args[0]
			id := ""
			if len(args) == 2 {
				id = args[1]
			}

			switch target {
			case "projects":
				return app.protected(cmd.Context(), projectsPath, func(ctx context.Context) error {
					v := newLiveView(app, "Projects", duration)
					view, err := app.dash.WatchProjects(func(s dashboard.ViewState[[]api.Project]) {
						show(v, s, renderProjects)
					})
					if err != nil {
						return err
					}
					return v.wait(ctx, view)
				})
			case "project":
				if id == "" {
					return errors.New("project ID is required")
				}
				return app.protected(cmd.Context(), projectPath(id), func(ctx context.Context) error {
					v := newLiveView(app, "Project "+id, duration)
					view, err := app.dash.WatchProject(id, func(s dashboard.ViewState[*api.Project]) {
						show(v, s, renderProject)
					})
					if err != nil {
						return err
					}
					return v.wait(ctx, view)
				})
			case "audits":
				if id == "" {
					return errors.New("project ID is required")
				}
				return app.protected(cmd.Context(), projectPath(id)+"/audits", func(ctx context.Context) error {
					v := newLiveView(app, "Audits of "+id, duration)
					view, err := app.dash.WatchAudits(id, page, limit, func(s dashboard.ViewState[*api.Page[api.Audit]]) {
						show(v, s, renderAudits)
					})
					if err != nil {
						return err
					}
					return v.wait(ctx, view)
				})
			default:
				return errors.New("unknown view " + target + ": use projects, project or audits")
			}
		}),
	}

	cmd.Flags().DurationVar(&duration, "for", 0, "stop after this long instead of waiting for Enter")
	cmd.Flags().IntVar(&page, "page", 1, "audits page")
	cmd.Flags().IntVar(&limit, "limit", 20, "audits per page")
	return cmd
}
