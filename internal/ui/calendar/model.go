package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/habit-tracker/internal/dateutil"
	"github.com/nhle/habit-tracker/internal/keys"
	"github.com/nhle/habit-tracker/internal/theme"
)

// OpenDayMsg is sent when the user opens the day under the cursor.
type OpenDayMsg struct {
	Date string
}

// MonthChangedMsg is sent when the cursor moves into another month, so the
// month's repeating tasks can be materialized.
type MonthChangedMsg struct {
	Year  int
	Month int
}

// DotSource supplies the task colors shown under each day.
type DotSource interface {
	CalendarDots(date string) []string
}

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Model is the month grid view.
type Model struct {
	keys      *keys.KeyMap
	dots      DotSource
	cursor    time.Time
	today     string
	weekStart int
	width     int
	height    int
}

// New creates a calendar with the cursor on today. weekStart is 0 for
// Sunday or 1 for Monday.
func New(k *keys.KeyMap, dots DotSource, today string, weekStart, width, height int) Model {
	cursor, err := dateutil.TimeOf(today)
	if err != nil {
		now := time.Now()
		cursor = dateutil.Date(now.Year(), int(now.Month()), now.Day())
	}
	return Model{
		keys:      k,
		dots:      dots,
		cursor:    cursor,
		today:     today,
		weekStart: weekStart,
		width:     width,
		height:    height,
	}
}

// Selected returns the date key under the cursor.
func (m Model) Selected() string {
	return dateutil.KeyOf(m.cursor)
}

// Month returns the year and month on display.
func (m Model) Month() (int, int) {
	return m.cursor.Year(), int(m.cursor.Month())
}

// SetToday updates the highlighted date, typically after midnight.
func (m *Model) SetToday(today string) {
	m.today = today
}

// GoTo moves the cursor to date. An invalid key is ignored.
func (m *Model) GoTo(date string) tea.Cmd {
	t, err := dateutil.TimeOf(date)
	if err != nil {
		return nil
	}
	return m.moveTo(t)
}

// Update handles messages for the calendar view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		return m, m.moveTo(m.cursor.AddDate(0, 0, -1))
	case key.Matches(keyMsg, m.keys.Right):
		return m, m.moveTo(m.cursor.AddDate(0, 0, 1))
	case key.Matches(keyMsg, m.keys.Up):
		return m, m.moveTo(m.cursor.AddDate(0, 0, -7))
	case key.Matches(keyMsg, m.keys.Down):
		return m, m.moveTo(m.cursor.AddDate(0, 0, 7))
	case key.Matches(keyMsg, m.keys.PrevMonth):
		return m, m.moveTo(shiftMonth(m.cursor, -1))
	case key.Matches(keyMsg, m.keys.NextMonth):
		return m, m.moveTo(shiftMonth(m.cursor, 1))
	case key.Matches(keyMsg, m.keys.Today):
		return m, m.GoTo(m.today)
	case key.Matches(keyMsg, m.keys.Select):
		date := m.Selected()
		return m, func() tea.Msg { return OpenDayMsg{Date: date} }
	}
	return m, nil
}

func (m *Model) moveTo(t time.Time) tea.Cmd {
	prevYear, prevMonth := m.cursor.Year(), m.cursor.Month()
	m.cursor = t
	if t.Year() == prevYear && t.Month() == prevMonth {
		return nil
	}
	msg := MonthChangedMsg{Year: t.Year(), Month: int(t.Month())}
	return func() tea.Msg { return msg }
}

// shiftMonth moves by n months keeping the day of month, clamped to the
// length of the target month.
func shiftMonth(t time.Time, n int) time.Time {
	first := dateutil.Date(t.Year(), int(t.Month()), 1).AddDate(0, n, 0)
	y, mo := first.Year(), int(first.Month())
	day := min(t.Day(), dateutil.DaysInMonth(y, mo))
	return dateutil.Date(y, mo, day)
}

// monthGrid returns the weeks covering the month, each starting on
// weekStart and padded with days of the neighbouring months.
func monthGrid(year, month, weekStart int) [][]time.Time {
	first := dateutil.Date(year, month, 1)
	offset := (int(first.Weekday()) - weekStart + 7) % 7
	day := first.AddDate(0, 0, -offset)
	last := dateutil.Date(year, month, dateutil.DaysInMonth(year, month))

	var weeks [][]time.Time
	for !day.After(last) {
		week := make([]time.Time, 7)
		for i := range week {
			week[i] = day
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// View renders the month grid.
func (m Model) View() string {
	year, month := m.Month()
	selected := m.Selected()

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render(fmt.Sprintf("%s %d", time.Month(month), year)))
	b.WriteString("\n")

	headers := make([]string, 7)
	for i := range headers {
		headers[i] = theme.WeekdayHeaderStyle.Render(weekdayNames[(i+m.weekStart)%7])
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...))
	b.WriteString("\n")

	for _, week := range monthGrid(year, month, m.weekStart) {
		numbers := make([]string, 7)
		dots := make([]string, 7)
		for i, day := range week {
			dateKey := dateutil.KeyOf(day)
			numbers[i] = m.cellStyle(day, dateKey, selected, month).Render(strconv.Itoa(day.Day()))
			if int(day.Month()) == month && m.dots != nil {
				dots[i] = theme.CellStyle.Render(theme.Dots(m.dots.CalendarDots(dateKey)))
			} else {
				dots[i] = theme.CellStyle.Render("")
			}
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, numbers...))
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, dots...))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) cellStyle(day time.Time, dateKey, selected string, month int) lipgloss.Style {
	switch {
	case dateKey == selected:
		return theme.CursorStyle
	case dateKey == m.today:
		return theme.TodayStyle
	case int(day.Month()) != month:
		return theme.OutsideMonthStyle
	default:
		return theme.CellStyle
	}
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
