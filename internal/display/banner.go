package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Row is one label/value line of a panel.
type Row struct {
	Label string
	Value string
}

// Panel renders a titled, bordered block of aligned rows.
func Panel(title string, rows []Row) string {
	width := 0
	for _, r := range rows {
		if w := lipgloss.Width(r.Label); w > width {
			width = w
		}
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		pad := strings.Repeat(" ", width-lipgloss.Width(r.Label))
		lines = append(lines, mutedStyle.Render(r.Label+pad)+"  "+r.Value)
	}

	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{titleStyle.Render(title)}, lines...)...)
	return panelStyle.Render(body)
}

// Banner is the startup panel describing what the run will do.
func Banner(version, source string, watch bool, device string) string {
	mode := "batch"
	if watch {
		mode = "batch + watch"
	}
	return Panel(fmt.Sprintf("textify %s", version), []Row{
		{Label: "Source", Value: source},
		{Label: "Mode", Value: mode},
		{Label: "Device", Value: device},
	})
}
