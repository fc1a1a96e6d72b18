// Package renderer turns portfolio valuations into markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/cryptofolio"
)

//go:embed *.md
var templates embed.FS

// RenderOptions holds configuration for rendering a dashboard.
type RenderOptions struct {
	RetryHint string // Shown under the error message, e.g. "Press Enter to retry".
}

// dashboard is the data handed to the templates.
type dashboard struct {
	*cryptofolio.Valuation
	RetryHint string
	Groups    []milestoneGroup
}

// milestoneGroup are the milestones of a single asset.
type milestoneGroup struct {
	Name       string
	Symbol     string
	Milestones []cryptofolio.MilestoneValuation
}

func newDashboard(v *cryptofolio.Valuation, opts RenderOptions) *dashboard {
	d := &dashboard{Valuation: v, RetryHint: opts.RetryHint}
	for _, h := range v.Holdings {
		ms := v.MilestonesOf(h.Asset)
		if len(ms) == 0 {
			continue
		}
		d.Groups = append(d.Groups, milestoneGroup{Name: h.Name, Symbol: h.Symbol, Milestones: ms})
	}
	return d
}

// RenderDashboard renders the full view of v: a loading notice, the error
// message or the summary, holdings and milestones depending on v.Status.
func RenderDashboard(v *cryptofolio.Valuation, opts RenderOptions) string {
	partials := map[string]string{
		"summary":    "summary.md",
		"holdings":   "holdings.md",
		"milestones": "milestones.md",
		"rate":       "rate.md",
		"footer":     "footer.md",
	}
	switch v.Status {
	case cryptofolio.Ready:
		partials["dashboard_body"] = "dashboard_ready.md"
	case cryptofolio.Failed:
		partials["dashboard_body"] = "dashboard_error.md"
	default:
		partials["dashboard_body"] = "dashboard_loading.md"
	}
	return renderTemplate("dashboard", "dashboard.md", partials, newDashboard(v, opts))
}

// RenderMilestones renders only the milestones of v, with the exchange rate
// when it is known.
func RenderMilestones(v *cryptofolio.Valuation) string {
	partials := map[string]string{
		"milestones": "milestones.md",
	}
	return renderTemplate("milestonesReport", "milestones_report.md", partials, newDashboard(v, RenderOptions{}))
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
