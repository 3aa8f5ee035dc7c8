package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rnwolfe/streakmap/internal/activity"
	"github.com/rnwolfe/streakmap/internal/report"
	"github.com/rnwolfe/streakmap/internal/ui"
)

// recentDays is how many days the activity panel lists.
const recentDays = 14

// LoadFunc recomputes the product. The dashboard calls it on start and on
// every refresh; it never caches a result between calls.
type LoadFunc func(o report.Overrides) (*activity.Result, error)

// DashData holds all loaded panel data for the dashboard.
type DashData struct {
	Result *activity.Result
	Recent []activity.DayCount
	Mode   activity.CountMode
}

type dashDataMsg DashData
type dashErrMsg struct{ err error }

// DashModel is the Bubbletea model for the streak dashboard.
type DashModel struct {
	data    DashData
	load    LoadFunc
	mode    activity.CountMode
	width   int
	height  int
	loading bool
	err     error
}

// NewDashModel creates a DashModel that pulls data through load.
func NewDashModel(load LoadFunc, mode activity.CountMode) *DashModel {
	return &DashModel{
		load:    load,
		mode:    mode,
		width:   80,
		height:  24,
		loading: true,
	}
}

// RunDash runs the dashboard until the user quits.
func RunDash(load LoadFunc, mode activity.CountMode) error {
	prog := tea.NewProgram(NewDashModel(load, mode), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// --- Bubbletea model interface ---

func (m *DashModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dashDataMsg:
		m.data = DashData(msg)
		m.loading = false
		m.err = nil
		return m, nil

	case dashErrMsg:
		m.err = msg.err
		m.loading = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *DashModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "r":
		m.loading = true
		return m, m.loadData()
	case "c":
		if m.loading {
			return m, nil
		}
		if m.mode == activity.CountFirst {
			m.mode = activity.CountAll
		} else {
			m.mode = activity.CountFirst
		}
		m.loading = true
		return m, m.loadData()
	}
	return m, nil
}

func (m *DashModel) View() string {
	if m.loading {
		return "\n  " + ui.Muted.Render("Loading…") + "\n"
	}
	if m.err != nil {
		return "\n  " + ui.Error.Render("Error: "+m.err.Error()) + "\n\n" + renderHelpBar() + "\n"
	}
	switch {
	case m.width < 60:
		return m.renderMinimal()
	case m.width >= 120:
		return m.renderTwoColumn()
	default:
		return m.renderStacked()
	}
}

// --- Layout builders ---

func (m *DashModel) renderTwoColumn() string {
	leftW := m.width/2 - 4
	rightW := m.width - leftW - 8

	left := ui.Panel.Width(leftW).Render(renderStreakPanel(m.data))
	right := ui.Panel.Width(rightW).Render(renderRecentPanel(m.data.Recent, rightW-4))

	cols := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	return cols + "\n\n" + renderHelpBar() + "\n"
}

func (m *DashModel) renderStacked() string {
	w := m.width - 4
	parts := []string{
		renderStreakPanel(m.data),
		"",
		renderRecentPanel(m.data.Recent, w),
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n\n" + renderHelpBar() + "\n"
}

func (m *DashModel) renderMinimal() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + ui.Title.Render(ui.IconMap+"streakmap") + "\n\n")
	if res := m.data.Result; res != nil {
		b.WriteString(fmt.Sprintf("  %s %s\n", ui.IconFire, ui.Days(res.CurrentStreak)))
		b.WriteString(fmt.Sprintf("  longest: %s\n", ui.Days(res.LongestStreak)))
	}
	b.WriteString("\n  " + ui.Muted.Render("q quit · r refresh") + "\n")
	return b.String()
}

// --- Panel renderers (pure functions, no model state) ---

// renderStreakPanel renders current/longest streak and totals.
func renderStreakPanel(data DashData) string {
	var b strings.Builder

	b.WriteString("  " + ui.Title.Render(ui.IconFire+" Streak") + "\n\n")

	res := data.Result
	if res == nil || (res.LongestStreak == 0 && res.Total == 0) {
		b.WriteString("  " + ui.Muted.Render("No cards learned yet.") + "\n")
		return b.String()
	}

	if res.CurrentStreak > 0 {
		b.WriteString(fmt.Sprintf("  %s %s current\n", ui.IconFire, ui.Days(res.CurrentStreak)))
	} else {
		b.WriteString(fmt.Sprintf("  %s %s\n", ui.IconSnow, ui.Muted.Render("Streak lapsed. Learn a card today!")))
	}
	b.WriteString(fmt.Sprintf("  %s %s longest\n", ui.Muted.Render(ui.IconDot), ui.Days(res.LongestStreak)))
	b.WriteString(fmt.Sprintf("  %s %d cards learned (%s)\n", ui.IconCard, res.Total, countLabel(data.Mode)))

	return b.String()
}

// renderRecentPanel renders the last days with a bar per day.
func renderRecentPanel(recent []activity.DayCount, width int) string {
	var b strings.Builder

	b.WriteString("  " + ui.Title.Render(ui.IconMap+"Last "+fmt.Sprint(len(recent))+" days") + "\n\n")
	if len(recent) == 0 {
		b.WriteString("  " + ui.Muted.Render("Nothing to show.") + "\n")
		return b.String()
	}

	peak := 0
	for _, d := range recent {
		peak = max(peak, d.Value)
	}

	// "  Mon Jan 02 1234 " is 18 columns.
	barW := max(width-18, 5)
	for _, d := range recent {
		day, _ := activity.ParseDay(d.Date)
		label := day.Time().Format("Mon Jan 02")
		count := ui.Muted.Render(fmt.Sprintf("%4d", d.Value))
		if d.Value > 0 {
			count = fmt.Sprintf("%4d", d.Value)
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n", ui.Muted.Render(label), count, ui.Success.Render(ui.Bar(d.Value, peak, barW))))
	}
	return b.String()
}

// renderHelpBar renders the keyboard shortcuts hint.
func renderHelpBar() string {
	return ui.Muted.Render("  r refresh · c toggle first/all · q quit")
}

func countLabel(mode activity.CountMode) string {
	if mode == activity.CountAll {
		return "every learn step"
	}
	return "first time only"
}

// --- Data loading ---

func (m *DashModel) loadData() tea.Cmd {
	mode := m.mode
	load := m.load
	return func() tea.Msg {
		res, err := load(report.Overrides{Mode: &mode})
		if err != nil {
			return dashErrMsg{err}
		}
		return dashDataMsg(DashData{
			Result: res,
			Recent: report.Recent(res, recentDays),
			Mode:   mode,
		})
	}
}
