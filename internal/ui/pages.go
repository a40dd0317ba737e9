package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/ramanasai/lifelog/internal/store"
)

const (
	// categoryListTop is the first page line holding a category row.
	categoryListTop = 5
	// handleWidth covers the cursor mark and the drag handle of a row.
	handleWidth = 4

	chartLabelWidth = 14
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	vh := m.viewportHeight()

	var body string
	if m.mode == modeHelp {
		m.help.ShowAll = true
		full := lipgloss.NewStyle().Padding(1, 2).Render(m.help.View(m.keys))
		body = strings.Join(pageLines([]string{full}, 0, m.width, vh), "\n")
	} else {
		pages := make([]string, m.nav.Pages())
		for i := range pages {
			pages[i] = m.renderPage(page(i), m.width, vh)
		}
		body = compose(pages, m.slider.offset, m.width, vh)
	}

	return strings.Join([]string{
		m.renderTopBar(),
		m.renderNavBar(),
		body,
		m.renderDots(),
		m.renderStatusBar(),
	}, "\n")
}

func (m Model) viewportHeight() int {
	return max(3, m.height-chromeHeight)
}

func (m Model) renderPage(p page, w, h int) string {
	switch p {
	case pageCategories:
		return m.renderCategories(w, h)
	case pageJournal:
		return m.renderJournal(w, h)
	case pageHome:
		return m.renderHome(w)
	case pageMood:
		return m.renderMood(w)
	case pageStats:
		return m.renderStats(w)
	}
	return ""
}

// ---------- chrome ----------

func (m Model) renderTopBar() string {
	right := m.now().In(m.loc).Format("Jan 02 15:04")
	title := fmt.Sprintf("Lifelog • %s  |  %s", pageTitles[m.slider.index], right)
	return m.st.TopBar.Render(truncate.String(title, uint(max(0, m.width-2))))
}

func (m Model) renderNavBar() string {
	n := m.nav.Pages()
	bw := m.width / n
	parts := make([]string, n)
	for i := range parts {
		w := bw
		if i == n-1 {
			w = m.width - bw*(n-1)
		}
		st := m.st.NavButton
		if m.slider.active[i] {
			st = m.st.NavActive
		}
		label := truncate.String(fmt.Sprintf("%d %s", i+1, pageTitles[i]), uint(w))
		parts[i] = st.Width(w).Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderDots() string {
	dots := make([]string, m.nav.Pages())
	for i := range dots {
		if m.slider.active[i] {
			dots[i] = m.st.DotActive.Render("●")
		} else {
			dots[i] = m.st.Dot.Render("○")
		}
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, strings.Join(dots, " "))
}

func (m Model) renderStatusBar() string {
	label := pageTitles[m.slider.index]
	switch m.mode {
	case modeCategoryAdd:
		label += " | ADD"
	case modeCategoryEdit:
		label += " | EDIT"
	case modeEntry:
		label += " | WRITE"
	case modeMoodNote:
		label += " | NOTE"
	case modeHelp:
		label += " | HELP"
	}

	text := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.status != "" {
		text = m.status
		if m.statusErr {
			text = m.st.Error.Render(text)
		}
	}
	line := truncate.String(label+"   "+text, uint(max(0, m.width-2)))
	return m.st.StatusBar.Width(m.width).Render(line)
}

// ---------- categories ----------

func (m Model) renderCategories(w, h int) string {
	cats := m.data.categories
	lines := make([]string, 0, h)
	lines = append(lines,
		m.st.Title.Render("Categories")+"  "+m.st.Hint.Render(strconv.Itoa(len(cats))),
		m.st.Label.Render("Name  ")+m.catName.View(),
		m.st.Label.Render("Color ")+m.catColor.View()+" "+swatch(m.catColor.Value()),
	)
	hint := "a add • e edit • d delete • J/K move • drag ⠿ to reorder"
	if m.mode == modeCategoryAdd {
		hint = "enter add • tab switch field • esc done"
	}
	lines = append(lines, m.st.Hint.Render(hint), "")

	if len(cats) == 0 {
		lines = append(lines, m.st.Hint.Render("  No categories yet. Add one above."))
		return strings.Join(lines, "\n")
	}

	scroll := m.categoryScroll()
	for i := scroll; i < len(cats) && i < scroll+m.visibleCategoryRows(); i++ {
		lines = append(lines, m.renderCategoryRow(i))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderCategoryRow(i int) string {
	c := m.data.categories[i]
	if m.mode == modeCategoryEdit && c.ID == m.editID {
		return "  " + m.editName.View() + " " + m.editColor.View() + m.st.Hint.Render("  enter save • esc cancel")
	}

	cursor := "  "
	if i == m.catCursor {
		cursor = m.st.Selected.Render("▶ ")
	}
	name := c.Name
	switch {
	case c.ID == m.dragID:
		name = m.st.Hint.Render(name)
	case c.ID == m.dropID:
		name = m.st.DropTarget.Render(name)
	case i == m.catCursor:
		name = m.st.Selected.Render(name)
	}
	return cursor + m.st.Hint.Render("⠿ ") + swatch(c.Color) + " " + name
}

func (m Model) visibleCategoryRows() int {
	return max(1, m.viewportHeight()-categoryListTop)
}

func (m Model) categoryScroll() int {
	return max(0, m.catCursor-m.visibleCategoryRows()+1)
}

// categoryRowAt maps a screen row to a category index on the categories page.
func (m Model) categoryRowAt(y int) (int, bool) {
	if page(m.nav.Current()) != pageCategories || m.nav.Dragging() || m.mode == modeCategoryEdit {
		return 0, false
	}
	row := y - viewportTop - categoryListTop
	if row < 0 || row >= m.visibleCategoryRows() {
		return 0, false
	}
	i := row + m.categoryScroll()
	if i >= len(m.data.categories) {
		return 0, false
	}
	return i, true
}

// ---------- journal ----------

func (m Model) renderJournal(w, h int) string {
	entries := m.data.entries
	lines := make([]string, 0, h)
	lines = append(lines, m.st.Title.Render("Journal")+"  "+m.st.Hint.Render(strconv.Itoa(len(entries))))

	hint := "n new entry • y copy • ↑/↓ select"
	if m.mode == modeEntry {
		hint = "ctrl+s save • tab next field • esc cancel"
	}
	lines = append(lines, m.st.Hint.Render(hint), "")

	if m.mode == modeEntry {
		form := lipgloss.JoinVertical(lipgloss.Left,
			m.fieldLabel("Title", entryFieldTitle)+m.entryTitle.View(),
			m.fieldLabel("Category", entryFieldCategory)+m.entryCategory.View(),
			m.fieldLabel("Body", entryFieldBody),
			m.entryBody.View(),
		)
		lines = append(lines, strings.Split(form, "\n")...)
		lines = append(lines, "")
	}

	if len(entries) == 0 {
		lines = append(lines, m.st.Hint.Render("  Nothing logged yet. Press n to write your first entry."))
		return strings.Join(lines, "\n")
	}

	visible := max(1, (h-len(lines))/2)
	scroll := max(0, m.entryCursor-visible+1)
	for i := scroll; i < len(entries) && i < scroll+visible; i++ {
		e := entries[i]
		cursor, title := "  ", e.Title
		if i == m.entryCursor {
			cursor, title = m.st.Selected.Render("▶ "), m.st.Selected.Render(e.Title)
		}
		name, color := "Uncategorized", ""
		if c, ok := m.data.category(e.Category); ok {
			name, color = c.Name, c.Color
		}
		when := e.Time().In(m.loc).Format("Jan 02 15:04")
		lines = append(lines,
			cursor+m.st.Label.Render(when)+"  "+swatch(color)+" "+name+"  "+title,
			"    "+truncate.StringWithTail(firstLine(e.Body), uint(max(1, w-4)), "…"),
		)
	}
	return strings.Join(lines, "\n")
}

func (m Model) fieldLabel(name string, field int) string {
	mark := "  "
	if m.mode == modeEntry && m.entryField == field {
		mark = "▶ "
	}
	return m.st.Label.Render(padRight(mark+name, 12))
}

// ---------- home ----------

func (m Model) renderHome(w int) string {
	now := m.now().In(m.loc)
	today := m.loggedToday()

	cardW := max(14, (w-6)/2)
	cards := make([]string, len(QuickActions))
	for i, a := range QuickActions {
		st := m.st.Card
		if i == m.actionCursor {
			st = m.st.CardFocus
		}
		cards[i] = st.Width(cardW).Render(a.Label() + "\n" + m.st.Hint.Render("("+a.Key()+")"))
	}
	var rows []string
	for i := 0; i < len(cards); i += 2 {
		row := []string{cards[i]}
		if i+1 < len(cards) {
			row = append(row, " ", cards[i+1])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.st.Title.Render("Lifelog")+"  "+m.st.Hint.Render(now.Format("Monday, Jan 2")),
		m.st.Value.Render(fmt.Sprintf("%d today • %d total", today, len(m.data.entries))),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		m.st.Hint.Render("↑/↓ select • enter run • w/l/p/v shortcuts • swipe or ←/→ for pages"),
	)
}

// ---------- mood ----------

func (m Model) renderMood(w int) string {
	lines := []string{m.st.Title.Render("How are you feeling?"), ""}
	for i, mood := range store.Moods {
		if i == m.moodCursor {
			lines = append(lines, m.st.Selected.Render("▶ "+mood))
		} else {
			lines = append(lines, "  "+mood)
		}
	}

	hint := "↑/↓ choose • enter log • n add note"
	if m.mode == modeMoodNote {
		hint = "enter log • esc done"
	}
	lines = append(lines, "", m.st.Label.Render("Note ")+m.moodNote.View(), m.st.Hint.Render(hint), "")

	var moodID string
	for _, c := range m.data.categories {
		if strings.EqualFold(c.Name, m.journal.MoodCategory) {
			moodID = c.ID
			break
		}
	}
	var recent []string
	for _, e := range m.data.entries {
		if moodID == "" || len(recent) == 3 {
			break
		}
		if e.Category == moodID {
			line := e.Time().In(m.loc).Format("Jan 02 15:04") + "  " + e.Title
			if body := firstLine(e.Body); body != "" && !strings.EqualFold(body, strings.TrimPrefix(e.Title, "Mood: ")) {
				line += " · " + body
			}
			recent = append(recent, "  "+truncate.StringWithTail(line, uint(max(1, w-2)), "…"))
		}
	}
	if len(recent) > 0 {
		lines = append(lines, m.st.Label.Render("Recent"))
		lines = append(lines, recent...)
	}
	return strings.Join(lines, "\n")
}

// ---------- stats ----------

func (m Model) renderStats(w int) string {
	s := m.data.snapshot

	most, least := "none", "none"
	if s.MostUsed != nil {
		most = fmt.Sprintf("%s (%d)", s.MostUsed.Category.Name, s.MostUsed.Count)
	}
	if s.LeastUsed != nil {
		least = fmt.Sprintf("%s (%d)", s.LeastUsed.Category.Name, s.LeastUsed.Count)
	}

	lines := []string{
		m.st.Title.Render("Stats"),
		fmt.Sprintf("Total %s   Last 7 days %s   Last 30 days %s",
			m.st.Value.Render(strconv.Itoa(s.Total)),
			m.st.Value.Render(strconv.Itoa(s.Last7Days)),
			m.st.Value.Render(strconv.Itoa(s.Last30Days))),
		fmt.Sprintf("Most used %s   Least used %s", m.st.Value.Render(most), m.st.Value.Render(least)),
		"",
	}
	if len(s.Rows) == 0 {
		lines = append(lines, m.st.Hint.Render("  Add categories to see the chart."))
		return strings.Join(lines, "\n")
	}

	chartW := max(4, w-chartLabelWidth-8)
	for _, r := range s.Rows {
		n := 0
		if m.data.barsGrown {
			n = int(math.Round(float64(r.Width) / 100 * float64(chartW)))
		}
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(r.Category.Color)).Render(strings.Repeat("█", n))
		label := truncate.StringWithTail(r.Category.Name, chartLabelWidth-1, "…")
		lines = append(lines, padRight(label, chartLabelWidth)+bar+" "+strconv.Itoa(r.Count))
	}
	return strings.Join(lines, "\n")
}

// ---------- helpers ----------

func swatch(color string) string {
	if color == "" {
		color = "#dddddd"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}

func padRight(s string, w int) string {
	if n := ansi.PrintableRuneWidth(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

func firstLine(s string) string {
	s, _, _ = strings.Cut(strings.TrimSpace(s), "\n")
	return s
}
