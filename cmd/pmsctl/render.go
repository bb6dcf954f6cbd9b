package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/service"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Width(18).Foreground(lipgloss.Color("8"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func printProjects(w io.Writer, items []domain.Project) {
	if len(items) == 0 {
		fmt.Fprintln(w, warnStyle.Render("no projects"))
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-6s %-40s %-22s %s", "NO", "NAME", "STATUS", "DEADLINE")))
	for _, p := range items {
		deadline := "-"
		if p.Deadline != nil {
			deadline = p.Deadline.Format(domain.DateLayout)
		}
		fmt.Fprintf(w, "%-6d %-40s %-22s %s\n", p.Number, truncate(p.Name, 40), p.Status, deadline)
	}
}

func printPeople(w io.Writer, items []domain.Person) {
	if len(items) == 0 {
		fmt.Fprintln(w, warnStyle.Render("no people"))
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-6s %-30s %s", "ID", "NAME", "EMAIL")))
	for _, p := range items {
		fmt.Fprintf(w, "%-6d %-30s %s\n", p.ID, truncate(p.FullName(), 30), p.Email)
	}
}

func printProject(w io.Writer, p *domain.Project, roles domain.Roles, check service.AdvanceResult) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Project %d: %s", p.Number, p.Name)))
	row := func(label, value string) {
		fmt.Fprintln(w, labelStyle.Render(label)+value)
	}
	row("Type", p.Type.String())
	row("Status", p.Status.String())
	row("Address", orDash(p.Address))
	if p.ERF > 0 {
		row("ERF", fmt.Sprint(p.ERF))
	} else {
		row("ERF", "-")
	}
	row("Total fee", p.TotalFee.StringFixed(2))
	row("Total paid", p.TotalPaid.StringFixed(2))
	if p.Deadline != nil {
		row("Deadline", p.Deadline.Format(domain.DateLayout))
	} else {
		row("Deadline", "-")
	}
	row("Customer", personLine(roles.Customer))
	row("Architect", personLine(roles.Architect))
	row("Engineer", personLine(roles.Engineer))
	row("Project manager", personLine(roles.ProjectManager))

	switch {
	case check.Terminal:
		row("Next stage", "finalised")
	case check.Reason != "":
		next, _ := p.Status.Next()
		row("Next stage", warnStyle.Render(next.String()+" blocked: "+check.Reason))
	default:
		row("Next stage", okStyle.Render(check.To.String()+" ready"))
	}
}

func personLine(p *domain.Person) string {
	if p == nil {
		return "-"
	}
	return p.OneLine()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
