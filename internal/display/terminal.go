// Package display renders free-game listings for the terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/preston-bernstein/free-games-service/internal/app/games"
	domaingames "github.com/preston-bernstein/free-games-service/internal/domain/games"
)

const separator = " • "

// TerminalFormatter formats games and source outcomes for terminal display.
type TerminalFormatter struct {
	title   lipgloss.Style
	meta    lipgloss.Style
	link    lipgloss.Style
	price   lipgloss.Style
	warning lipgloss.Style
	card    lipgloss.Style
}

// NewTerminalFormatter creates a formatter with the default palette.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		meta:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		link:    lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		price:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		card:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("63")),
	}
}

// FormatGame formats a listing entry.
func (f *TerminalFormatter) FormatGame(g domaingames.FreeGame) string {
	lines := []string{
		f.title.Render(g.Title),
		"  " + f.meta.Render(joinNonEmpty(g.Platform, g.Publisher, g.ReleaseDate)),
	}
	if g.GameURL != "" {
		lines = append(lines, "  "+f.link.Render(g.GameURL))
	}
	return strings.Join(lines, "\n") + "\n"
}

// FormatGames formats a listing. Failed sources are reported after the games.
func (f *TerminalFormatter) FormatGames(list []domaingames.FreeGame, outcomes []games.SourceOutcome) string {
	var b strings.Builder
	if len(list) == 0 {
		b.WriteString("No free games right now.\n")
	}
	for i, g := range list {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.FormatGame(g))
	}
	if summary := f.FormatOutcomes(outcomes); summary != "" {
		b.WriteString("\n" + summary)
	}
	return b.String()
}

// FormatDetail renders a single game as a bordered card.
func (f *TerminalFormatter) FormatDetail(g domaingames.FreeGame) string {
	lines := []string{
		f.title.Render(g.Title),
		f.meta.Render(joinNonEmpty(g.Genre, g.Platform)),
		f.meta.Render(joinNonEmpty("by "+g.Developer, g.Publisher, g.ReleaseDate)),
	}
	if g.ShortDescription != "" {
		lines = append(lines, "", TruncateText(g.ShortDescription, 280))
	}
	lines = append(lines, "", f.link.Render(g.GameURL))
	if g.ProfileURL != "" && g.ProfileURL != g.GameURL {
		lines = append(lines, f.link.Render(g.ProfileURL))
	}
	return f.card.Render(strings.Join(lines, "\n")) + "\n"
}

// FormatDeals formats raw feed deals with their price and discount.
func (f *TerminalFormatter) FormatDeals(list []domaingames.RSSGame, outcome games.SourceOutcome) string {
	var b strings.Builder
	if len(list) == 0 {
		b.WriteString("No deals in this feed.\n")
	}
	for i, d := range list {
		if i > 0 {
			b.WriteString("\n")
		}
		price := fmt.Sprintf("%s -> %s (%s off)", d.OriginalPrice, d.CurrentPrice, d.Discount)
		b.WriteString(f.title.Render(d.Title) + "\n")
		b.WriteString("  " + f.price.Render(price) + "\n")
		b.WriteString("  " + f.meta.Render(joinNonEmpty(d.Developer, d.Category, d.PubDate)) + "\n")
		if d.URL != "" {
			b.WriteString("  " + f.link.Render(d.URL) + "\n")
		}
	}
	if summary := f.FormatOutcomes([]games.SourceOutcome{outcome}); summary != "" {
		b.WriteString("\n" + summary)
	}
	return b.String()
}

// FormatOutcomes lists failed sources, or returns "" when every source succeeded.
func (f *TerminalFormatter) FormatOutcomes(outcomes []games.SourceOutcome) string {
	var lines []string
	for _, o := range outcomes {
		if o.OK() {
			continue
		}
		lines = append(lines, f.warning.Render(fmt.Sprintf("! %s unavailable: %v", o.Source, o.Err)))
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// TruncateText truncates text to maxLen runes, adding "..." if truncated.
func TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(runes[:maxLen-3]) + "..."
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" && p != "by" {
			out = append(out, p)
		}
	}
	return strings.Join(out, separator)
}
