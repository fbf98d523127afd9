package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	clientapi "github.com/iudanet/optimizeai/internal/client/api"
	"github.com/iudanet/optimizeai/internal/client/cache"
	"github.com/iudanet/optimizeai/pkg/api"
)

const projectsPath = "/app/projects"

func projectPath(id string) string {
	return projectsPath + "/" + id
}

func newProjectsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "p"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(
		newProjectsListCommand(rt),
		newProjectsShowCommand(rt),
		newProjectsCreateCommand(rt),
		newProjectsUpdateCommand(rt),
		newProjectsDeleteCommand(rt),
	)
	return cmd
}

func newProjectsListCommand(rt *runtime) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your projects",
		Args:    cobra.NoArgs,
		RunE: rt.withApp(func(cmd *cobra.Command, app *App, _ []string) error {
			return app.protected(cmd.Context(), projectsPath, func(ctx context.Context) error {
				projects, err := app.dash.Projects(ctx, queryOptions(refresh)...)
				if err != nil {
					return fmt.Errorf("failed to list projects: %w", err)
				}
				app.io.Println(renderProjects(projects))
				return nil
			})
		}),
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached data")
	return cmd
}

func newProjectsShowCommand(rt *runtime) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: rt.withApp(func(cmd *cobra.Command, app *App, args []string) error {
			id := args[0]
			return app.protected(cmd.Context(), projectPath(id), func(ctx context.Context) error {
				p, err := app.dash.Project(ctx, id, queryOptions(refresh)...)
				if err != nil {
					return projectError(id, err)
				}
				app.io.Println(renderProject(p))
				return nil
			})
		}),
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached data")
	return cmd
}

func newProjectsCreateCommand(rt *runtime) *cobra.Command {
	var in api.ProjectInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: rt.withApp(func(cmd *cobra.Command, app *App, _ []string) error {
			return app.protected(cmd.Context(), projectsPath+"/new", func(ctx context.Context) error {
				var err error
				if in.Name, err = readInputIfEmpty(app.io, in.Name, "Project name: "); err != nil {
					return err
				}

				p, err := app.dash.CreateProject(ctx, in)
				if err != nil {
					return fmt.Errorf("failed to create project: %w", err)
				}

				app.io.Println(successText("Project %s created (ID: %s)", p.Name, p.ID))
				return nil
			})
		}),
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "project name")
	cmd.Flags().StringVar(&in.Domain, "domain", "", "site domain, for example example.com")
	return cmd
}

func newProjectsUpdateCommand(rt *runtime) *cobra.Command {
	var name, domain string

	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Rename a project or change its domain",
		Args:  cobra.ExactArgs(1),
		RunE: rt.withApp(func(cmd *cobra.Command, app *App, args []string) error {
			id := args[0]
			return app.protected(cmd.Context(), projectPath(id)+"/settings", func(ctx context.Context) error {
				current, err := app.dash.Project(ctx, id)
				if err != nil {
					return projectError(id, err)
				}

				// Сервер заменяет оба поля, поэтому незаданные берем из текущего проекта
				in := api.ProjectInput{Name: current.Name, Domain: current.Domain}
				if cmd.Flags().Changed("name") {
					in.Name = name
				}
				if cmd.Flags().Changed("domain") {
					in.Domain = domain
				}

				p, err := app.dash.UpdateProject(ctx, id, in)
				if err != nil {
					return fmt.Errorf("failed to update project: %w", err)
				}

				app.io.Println(successText("Project %s updated", p.ID))
				app.io.Println(renderProject(p))
				return nil
			})
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "new project name")
	cmd.Flags().StringVar(&domain, "domain", "", "new site domain, empty to clear")
	return cmd
}

func newProjectsDeleteCommand(rt *runtime) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <project-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a project and its audits",
		Args:    cobra.ExactArgs(1),
		RunE: rt.withApp(func(cmd *cobra.Command, app *App, args []string) error {
			id := args[0]
			return app.protected(cmd.Context(), projectPath(id), func(ctx context.Context) error {
				if !yes {
					ok, err := app.io.Confirm(fmt.Sprintf("Delete project %s and all its audits?", id))
					if err != nil {
						return err
					}
					if !ok {
						app.io.Println(infoText("Cancelled."))
						return nil
					}
				}

				if err := app.dash.DeleteProject(ctx, id); err != nil {
					return projectError(id, err)
				}

				app.io.Println(successText("Project %s deleted", id))
				return nil
			})
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func queryOptions(refresh bool) []cache.QueryOption {
	if refresh {
		return []cache.QueryOption{cache.WithForce()}
	}
	return nil
}

func projectError(id string, err error) error {
	if errors.Is(err, clientapi.ErrNotFound) {
		return fmt.Errorf("project %s not found", id)
	}
	return err
}
