package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iudanet/optimizeai/internal/validation"
	"github.com/iudanet/optimizeai/pkg/api"
)

func newAuditsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "audits",
		Aliases: []string{"audit", "a"},
		Short:   "List and start content audits",
	}

	cmd.AddCommand(
		newAuditsListCommand(rt),
		newAuditsCreateCommand(rt),
	)
	return cmd
}

func newAuditsListCommand(rt *runtime) *cobra.Command {
	var (
		page, limit int
		refresh     bool
	)

	cmd := &cobra.Command{
		Use:     "list <project-id>",
		Aliases: []string{"ls"},
		Short:   "List audits of a project, newest first",
		Args:    cobra.ExactArgs(1),
		RunE: rt.withApp(func(cmd *cobra.Command, app *App, args []string) error {
			id := args[0]
			dest := fmt.Sprintf("%s/audits?page=%d", projectPath(id), page)
			return app.protected(cmd.Context(), dest, func(ctx context.Context) error {
				result, err := app.dash.Audits(ctx, id, page, limit, queryOptions(refresh)...)
				if err != nil {
					return projectError(id, err)
				}
				app.io.Println(renderAudits(result))
				return nil
			})
		}),
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "audits per page")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached data")
	return cmd
}

func newAuditsCreateCommand(rt *runtime) *cobra.Command {
	var (
		req         api.CreateAuditRequest
		contentFile string
	)

	cmd := &cobra.Command{
		Use:   "create <project-id>",
		Short: "Start an audit of a page URL or of pasted content",
		Long: `Start an audit of a page URL or of pasted content.

Pass --url to audit a live page, or --content / --content-file to audit text.
The audit is queued and processed by the server; its status shows up in 'audits list'.`,
		Args: cobra.ExactArgs(1),
		RunE: rt.withApp(func(cmd *cobra.Command, app *App, args []string) error {
			id := args[0]
			return app.protected(cmd.Context(), projectPath(id)+"/audits/new", func(ctx context.Context) error {
				if contentFile != "" {
					if req.Content != "" {
						return fmt.Errorf("%w: use either --content or --content-file", validation.ErrInvalidInput)
					}
					data, err := os.ReadFile(contentFile)
					if err != nil {
						return fmt.Errorf("failed to read content file: %w", err)
					}
					req.Content = string(data)
				}

				switch {
				case req.URL != "" && req.Content != "":
					return fmt.Errorf("%w: use either --url or content, not both", validation.ErrInvalidInput)
				case req.Content != "":
					req.Mode = api.AuditModeContent
				default:
					req.Mode = api.AuditModeURL
				}

				var err error
				if req.TargetQuery, err = readInputIfEmpty(app.io, req.TargetQuery, "Target query: "); err != nil {
					return err
				}

				resp, err := app.dash.CreateAudit(ctx, id, req)
				if err != nil {
					return projectError(id, fmt.Errorf("failed to start audit: %w", err))
				}

				app.io.Println(successText("Audit %s queued (status: %s)", resp.AuditID, resp.Status))
				return nil
			})
		}),
	}

	cmd.Flags().StringVar(&req.URL, "url", "", "page URL to audit")
	cmd.Flags().StringVar(&req.Content, "content", "", "content to audit")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "read the content to audit from a file")
	cmd.Flags().StringVar(&req.Title, "title", "", "title of the content")
	cmd.Flags().StringVarP(&req.TargetQuery, "query", "q", "", "search query the content should rank for")
	cmd.Flags().StringVar(&req.Language, "language", "", "content language (default en)")
	return cmd
}
