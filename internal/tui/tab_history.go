package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/dinebal/internal/cli"
	"github.com/theirongolddev/dinebal/internal/model"
	"github.com/theirongolddev/dinebal/internal/pipeline"
	"github.com/theirongolddev/dinebal/internal/tui/components"
	"github.com/theirongolddev/dinebal/internal/tui/theme"
)

// historyState holds the history tab state.
type historyState struct {
	cursor int
	offset int // scroll offset for the list

	searching bool
	input     textinput.Model
	query     string
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "location..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 30
	return ti
}

// searchFilteredHistory returns history narrowed by the current search query.
func (a App) searchFilteredHistory() []model.Transaction {
	if a.hist.query == "" {
		return a.history
	}
	return pipeline.FilterByLocation(a.history, a.hist.query)
}

func (a App) updateHistoryKey(key string) (App, bool) {
	visible := a.searchFilteredHistory()
	last := max(0, len(visible)-1)
	halfPage := max((a.height-scrollOverhead)/2, minHalfPageScroll)

	switch key {
	case "/":
		a.hist.searching = true
		a.hist.input = newSearchInput()
		a.hist.input.SetValue(a.hist.query)
		a.hist.input.Focus()
	case "esc":
		if a.hist.query == "" {
			return a, false
		}
		a.hist.query = ""
		a.hist.cursor, a.hist.offset = 0, 0
	case "j", "down":
		a.hist.cursor = min(a.hist.cursor+1, last)
	case "k", "up":
		a.hist.cursor = max(a.hist.cursor-1, 0)
	case "g", "home":
		a.hist.cursor, a.hist.offset = 0, 0
	case "G", "end":
		a.hist.cursor = last
	case "ctrl+d", "pgdown":
		a.hist.cursor = min(a.hist.cursor+halfPage, last)
	case "ctrl+u", "pgup":
		a.hist.cursor = max(a.hist.cursor-halfPage, 0)
	default:
		return a, false
	}
	return a, true
}

// updateHistorySearch handles key events while in search mode.
func (a App) updateHistorySearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.hist.query = strings.TrimSpace(a.hist.input.Value())
		a.hist.searching = false
		a.hist.cursor, a.hist.offset = 0, 0
		return a, nil
	case "esc":
		a.hist.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.hist.input, cmd = a.hist.input.Update(msg)
	return a, cmd
}

func (a App) renderHistoryTab(cw, h int) string {
	t := theme.Active
	txns := a.searchFilteredHistory()

	var search string
	switch {
	case a.hist.searching:
		search = a.hist.input.View()
	case a.hist.query != "":
		search = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render(fmt.Sprintf("matching %q  [esc] clear", a.hist.query))
	}

	if len(txns) == 0 {
		body := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("No transactions found")
		if search != "" {
			body = search + "\n\n" + body
		}
		return components.ContentCard(a.account.Title()+" History", body, cw)
	}

	if a.isCompactLayout() {
		return a.renderHistoryList(txns, search, cw, h)
	}

	leftW := max(cw*3/5, 50)
	rightW := cw - leftW
	return components.CardRow([]string{
		a.renderHistoryList(txns, search, leftW, h),
		a.renderHistoryDetail(txns, rightW),
	})
}

func (a App) renderHistoryList(txns []model.Transaction, search string, w, h int) string {
	t := theme.Active
	hs := a.hist
	inner := components.CardInnerWidth(w)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	depositStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	const whenW, amountW, balanceW = 12, 12, 12
	locW := max(inner-whenW-amountW-balanceW-3, 8)
	format := func(when, loc, amount, balance string) string {
		return fmt.Sprintf("%-*s %-*s %*s %*s",
			whenW, when, locW, truncStr(loc, locW), amountW, amount, balanceW, balance)
	}

	var body strings.Builder
	if search != "" {
		body.WriteString(search)
		body.WriteString("\n")
	}
	body.WriteString(headerStyle.Render(format("When", "Location", "Amount", "Balance")))
	body.WriteString("\n")

	// card border (2) + title (1) + header row (1) + footer hint (2)
	visible := max(h-6, 5)
	if search != "" {
		visible--
	}

	offset := hs.offset
	if hs.cursor < offset {
		offset = hs.cursor
	}
	if hs.cursor >= offset+visible {
		offset = hs.cursor - visible + 1
	}
	end := min(offset+visible, len(txns))

	for i := offset; i < end; i++ {
		tx := txns[i]
		line := format(
			tx.Time.Local().Format("Jan 02 15:04"),
			tx.Location,
			cli.FormatAmount(tx.Account, tx.Amount),
			cli.FormatDecimal(tx.Account, tx.Balance),
		)
		switch {
		case i == hs.cursor:
			body.WriteString(selectedStyle.Render(line))
		case tx.IsDeposit():
			body.WriteString(depositStyle.Render(line))
		default:
			body.WriteString(rowStyle.Render(line))
		}
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(fmt.Sprintf("%d of %d  [j/k] move  [/] search",
		hs.cursor+1, len(txns))))

	return components.ContentCard(a.account.Title()+" History", body.String(), w)
}

func (a App) renderHistoryDetail(txns []model.Transaction, w int) string {
	t := theme.Active
	if a.hist.cursor >= len(txns) {
		return ""
	}
	sel := txns[a.hist.cursor]

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	inner := components.CardInnerWidth(w)

	// Everything spent at the same place, across the whole account history.
	var visits int
	var total float64
	for _, tx := range a.history {
		if tx.Location == sel.Location && !tx.IsDeposit() {
			visits++
			total += tx.Spend().InexactFloat64()
		}
	}

	before := sel.Balance.Sub(sel.Amount)
	rows := [][2]string{
		{"Location", sel.Location},
		{"Posted", sel.Time.Local().Format("Mon Jan 2, 2006 15:04")},
		{"Amount", cli.FormatAmount(sel.Account, sel.Amount)},
		{"Balance", cli.FormatDecimal(sel.Account, before) + " → " + cli.FormatDecimal(sel.Account, sel.Balance)},
		{"", ""},
		{"Visits here", cli.FormatNumber(int64(visits))},
		{"Spent here", cli.FormatBalance(sel.Account, total)},
		{"", ""},
		{"ID", sel.ID},
		{"Source", sel.FilePath},
	}

	var body strings.Builder
	for i, r := range rows {
		if r[0] != "" {
			body.WriteString(labelStyle.Render(fmt.Sprintf("%-12s ", r[0])))
			body.WriteString(valueStyle.Render(truncStr(r[1], inner-13)))
		}
		if i < len(rows)-1 {
			body.WriteString("\n")
		}
	}

	return components.ContentCard("Transaction", body.String(), w)
}
