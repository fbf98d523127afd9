package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/iudanet/optimizeai/internal/client/cache"
	"github.com/iudanet/optimizeai/pkg/api"
)

const timeLayout = "2006-01-02 15:04"

func successText(format string, a ...any) string {
	return pterm.Success.Sprintf(format, a...)
}

func warningText(msg string) string {
	return pterm.Warning.Sprint(msg)
}

func errorText(msg string) string {
	return pterm.Error.Sprint(msg)
}

func infoText(format string, a ...any) string {
	return pterm.Info.Sprintf(format, a...)
}

func renderTable(data pterm.TableData) string {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// Рендер таблицы падает только на пустых данных
		return ""
	}
	return out
}

func renderProjects(projects []api.Project) string {
	if len(projects) == 0 {
		return infoText("No projects yet. Create one with 'projects create --name <name>'.")
	}

	data := pterm.TableData{{"ID", "NAME", "DOMAIN", "AUDITS", "UPDATED"}}
	for _, p := range projects {
		data = append(data, []string{
			p.ID,
			p.Name,
			orDash(p.Domain),
			strconv.Itoa(p.AuditCount),
			p.UpdatedAt.Local().Format(timeLayout),
		})
	}
	return renderTable(data)
}

func renderProject(p *api.Project) string {
	data := pterm.TableData{
		{"FIELD", "VALUE"},
		{"ID", p.ID},
		{"Name", p.Name},
		{"Domain", orDash(p.Domain)},
		{"Audits", strconv.Itoa(p.AuditCount)},
		{"Created", p.CreatedAt.Local().Format(timeLayout)},
		{"Updated", p.UpdatedAt.Local().Format(timeLayout)},
	}
	return renderTable(data)
}

func renderAudits(page *api.Page[api.Audit]) string {
	if len(page.Data) == 0 {
		if page.Total > 0 {
			return infoText("Page %d is empty (%d audits on %d pages).", page.Page, page.Total, page.TotalPages)
		}
		return infoText("No audits yet. Start one with 'audits create'.")
	}

	data := pterm.TableData{{"ID", "STATUS", "MODE", "TARGET QUERY", "SOURCE", "CREATED"}}
	for _, a := range page.Data {
		source := a.URL
		if a.Mode == api.AuditModeContent {
			source = orDash(a.Title)
		}
		data = append(data, []string{
			a.ID,
			string(a.Status),
			string(a.Mode),
			a.TargetQuery,
			orDash(source),
			a.CreatedAt.Local().Format(timeLayout),
		})
	}

	return renderTable(data) + fmt.Sprintf("Page %d of %d, %d audits total\n", page.Page, max(page.TotalPages, 1), page.Total)
}

// viewHeader описывает состояние живого представления одной строкой
func viewHeader(title string, state cache.FetchState, stale bool, updatedAt time.Time, err error) string {
	switch {
	case err != nil:
		return warningText(fmt.Sprintf("%s: refresh failed (%v), showing last known data", title, err))
	case state == cache.StateLoading:
		return infoText("%s: refreshing...", title)
	case stale:
		return infoText("%s: updated %s (stale)", title, updatedAt.Local().Format(time.TimeOnly))
	default:
		return infoText("%s: updated %s", title, updatedAt.Local().Format(time.TimeOnly))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
