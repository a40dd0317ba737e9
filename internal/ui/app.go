package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ramanasai/lifelog/internal/config"
	"github.com/ramanasai/lifelog/internal/nav"
	"github.com/ramanasai/lifelog/internal/notify"
	"github.com/ramanasai/lifelog/internal/stats"
	"github.com/ramanasai/lifelog/internal/store"
)

type mode int
type page int

const (
	modeNormal mode = iota
	modeCategoryAdd
	modeCategoryEdit
	modeEntry
	modeMoodNote
	modeHelp
)

const (
	pageCategories page = iota
	pageJournal
	pageHome
	pageMood
	pageStats
)

// MaxPages is the number of screens the slider can hold.
const MaxPages = 5

var pageTitles = [MaxPages]string{"Categories", "Journal", "Home", "Mood", "Stats"}

// screen rows
const (
	navRow       = 1
	viewportTop  = 2
	chromeHeight = 4 // top bar, nav bar, dots, status bar
)

const (
	entryFieldTitle = iota
	entryFieldCategory
	entryFieldBody
	entryFieldCount
)

// dataset is what the pages render from. Store listeners keep it current.
type dataset struct {
	journal    *store.Journal
	now        func() time.Time
	categories []store.Category
	entries    []store.Entry // newest first
	snapshot   stats.Snapshot
	barsGrown  bool
}

func (d *dataset) reload() {
	d.categories = d.journal.Categories.List()
	d.entries = d.journal.Entries.Newest()
	d.snapshot = stats.Compute(d.categories, d.entries, d.now())
	d.barsGrown = false
}

func (d *dataset) category(id string) (store.Category, bool) {
	for _, c := range d.categories {
		if c.ID == id {
			return c, true
		}
	}
	return store.Category{}, false
}

func (d *dataset) names() []string {
	out := make([]string, len(d.categories))
	for i, c := range d.categories {
		out[i] = c.Name
	}
	return out
}

type Model struct {
	width, height int
	mode          mode

	journal  *store.Journal
	nav      *nav.Controller
	slider   *slider
	data     *dataset
	notifier *notify.Notifier
	log      *slog.Logger
	loc      *time.Location
	now      func() time.Time
	copyText func(string) error

	reminders <-chan struct{}

	keys keyMap
	help help.Model
	st   Theme

	// categories page
	catName   textinput.Model
	catColor  textinput.Model
	catField  int
	catCursor int
	editName  textinput.Model
	editColor textinput.Model
	editField int
	editID    string
	dragID    string // category being dragged by its handle
	dropID    string // row under the pointer while dragging

	// journal page
	entryTitle    textinput.Model
	entryCategory AutocompleteModel
	entryBody     textarea.Model
	entryField    int
	entryCursor   int

	actionCursor int

	moodCursor int
	moodNote   textinput.Model

	status    string
	statusErr bool
}

type Option func(*Model)

// WithClock replaces time.Now for the controller, the slider and new entries
// shown as "today".
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copyText = write }
}

// WithReminders makes every value received on ch post the daily reminder
// from inside the event loop.
func WithReminders(ch <-chan struct{}) Option {
	return func(m *Model) { m.reminders = ch }
}

func New(cfg config.Config, j *store.Journal, n *notify.Notifier, logger *slog.Logger, opts ...Option) Model {
	if logger == nil {
		logger = slog.Default()
	}
	m := Model{
		journal:  j,
		notifier: n,
		log:      logger.With("component", "ui"),
		loc:      cfg.Location(),
		now:      time.Now,
		copyText: clipboard.WriteAll,
		keys:     defaultKeys(),
		help:     help.New(),
		st:       ThemeFor(cfg.Theme),
	}
	for _, o := range opts {
		o(&m)
	}

	pages := min(max(cfg.Nav.Pages, 1), MaxPages)
	m.slider = newSlider(pages, cfg.Nav.Transition(), m.now)
	m.nav = nav.New(nav.Options{
		Pages:          pages,
		Start:          cfg.Nav.StartPage - 1,
		AxisLockPx:     cfg.Nav.AxisLockPx,
		RubberBand:     cfg.Nav.RubberBand,
		MaxThresholdPx: cfg.Nav.MaxThresholdPx,
		ThresholdRatio: cfg.Nav.ThresholdRatio,
		Velocity:       cfg.Nav.Velocity,
		Clock:          m.now,
	})
	m.nav.Subscribe(m.slider)

	m.data = &dataset{journal: j, now: m.now}
	m.data.reload()
	j.Categories.OnChange(m.data.reload)
	j.Entries.OnChange(m.data.reload)

	m.catName = textinput.New()
	m.catName.Placeholder = "New category"
	m.catName.CharLimit = 40
	m.catName.Width = 24

	m.catColor = textinput.New()
	m.catColor.Placeholder = store.DefaultColor
	m.catColor.CharLimit = 7
	m.catColor.Width = 9

	m.editName = textinput.New()
	m.editName.CharLimit = 40
	m.editName.Width = 20

	m.editColor = textinput.New()
	m.editColor.CharLimit = 7
	m.editColor.Width = 9

	m.entryTitle = textinput.New()
	m.entryTitle.Placeholder = "Title"
	m.entryTitle.CharLimit = 120
	m.entryTitle.Width = 40

	m.entryCategory = NewAutocomplete(PrefixMatches(m.data.names), 5)
	m.entryCategory.SetPlaceholder("Category (optional)")
	m.entryCategory.SetWidth(30)

	m.entryBody = textarea.New()
	m.entryBody.Placeholder = "What happened?"
	m.entryBody.ShowLineNumbers = false
	m.entryBody.SetWidth(50)
	m.entryBody.SetHeight(4)

	m.moodNote = textinput.New()
	m.moodNote.Placeholder = "Add a note (optional)"
	m.moodNote.CharLimit = 200
	m.moodNote.Width = 36

	return m
}

func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.frameCmd(), m.waitReminder())
}

type reminderMsg struct{}

func (m Model) waitReminder() tea.Cmd {
	if m.reminders == nil {
		return nil
	}
	ch := m.reminders
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return reminderMsg{}
	}
}

// frameCmd schedules the next animation frame while the track is easing or
// the chart bars have not grown yet.
func (m Model) frameCmd() tea.Cmd {
	if m.slider.ticking || (!m.slider.animating && m.data.barsGrown) {
		return nil
	}
	m.slider.ticking = true
	return nextFrame()
}

// ---------- Update ----------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	prev := m.nav.Current()
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.nav.SetViewport(float64(msg.Width * cellWidthPx))

	case frameMsg:
		m.slider.ticking = false
		m.slider.step()
		m.data.barsGrown = true

	case reminderMsg:
		if m.notifier != nil {
			m.notifier.Notify(notify.FormatDailyPrompt(m.loggedToday()))
		}
		cmd = m.waitReminder()

	case AutocompleteMsg:
		m.entryCategory, cmd = m.entryCategory.Update(msg)

	case tea.MouseMsg:
		m = m.updateMouse(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.status, m.statusErr = "", false

		switch m.mode {
		case modeNormal:
			m, cmd = m.updateNormal(msg)
		case modeHelp:
			if key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Quit) {
				m.mode = modeNormal
			}
		case modeCategoryAdd:
			m, cmd = m.updateCategoryAdd(msg)
		case modeCategoryEdit:
			m, cmd = m.updateCategoryEdit(msg)
		case modeEntry:
			m, cmd = m.updateEntry(msg)
		case modeMoodNote:
			m, cmd = m.updateMoodNote(msg)
		}
	}

	if cur := m.nav.Current(); cur != prev {
		m.log.Debug("page changed", "from", pageTitles[prev], "to", pageTitles[cur])
		m.leaveForms()
	}
	return m, tea.Batch(cmd, m.frameCmd())
}

func (m Model) updateMouse(msg tea.MouseMsg) Model {
	x := float64(msg.X * cellWidthPx)
	y := float64(msg.Y * cellHeightPx)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		if msg.Y == navRow {
			m.nav.Click(m.navTarget(msg.X))
			return m
		}
		if i, ok := m.categoryRowAt(msg.Y); ok {
			m.catCursor = i
			if msg.X < handleWidth && m.mode == modeNormal {
				m.dragID, m.dropID = m.data.categories[i].ID, ""
				return m
			}
		}
		m.nav.PointerDown(x, y, float64(m.width*cellWidthPx))

	case tea.MouseActionMotion:
		if m.dragID != "" {
			m.dropID = ""
			if i, ok := m.categoryRowAt(msg.Y); ok {
				m.dropID = m.data.categories[i].ID
			}
			return m
		}
		m.nav.PointerMove(x, y)

	case tea.MouseActionRelease:
		if m.dragID != "" {
			if i, ok := m.categoryRowAt(msg.Y); ok {
				target := m.data.categories[i]
				if m.journal.Categories.Move(m.dragID, target.ID) {
					m.catCursor = i
					m.setStatus("Moved to position " + strconv.Itoa(i+1))
				}
			}
			m.dragID, m.dropID = "", ""
			return m
		}
		m.nav.PointerUp()
	}
	return m
}

// navTarget maps a nav bar column to a page using the button widths
// renderNavBar draws: width/n each, the remainder going to the last.
func (m Model) navTarget(x int) int {
	n := m.nav.Pages()
	bw := m.width / n
	if bw <= 0 {
		return m.nav.Current()
	}
	return clamp(x/bw, 0, n-1)
}

func (m Model) updateNormal(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.nav.Key(nav.KeyArrowLeft)
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.nav.Key(nav.KeyArrowRight)
		return m, nil
	case key.Matches(msg, m.keys.Jump):
		if i, err := strconv.Atoi(msg.String()); err == nil && i <= m.nav.Pages() {
			m.nav.Click(i - 1)
		}
		return m, nil
	}

	switch page(m.nav.Current()) {
	case pageCategories:
		return m.updateCategories(msg)
	case pageJournal:
		return m.updateJournal(msg)
	case pageHome:
		return m.updateHome(msg)
	case pageMood:
		return m.updateMood(msg)
	}
	return m, nil
}

// ---------- categories ----------

func (m Model) selectedCategory() (store.Category, bool) {
	if m.catCursor < 0 || m.catCursor >= len(m.data.categories) {
		return store.Category{}, false
	}
	return m.data.categories[m.catCursor], true
}

func (m Model) updateCategories(msg tea.KeyMsg) (Model, tea.Cmd) {
	items := m.data.categories
	switch {
	case key.Matches(msg, m.keys.Add):
		m.mode = modeCategoryAdd
		m.catField = 0
		return m, m.focusCategoryField()
	case key.Matches(msg, m.keys.Up):
		if m.catCursor > 0 {
			m.catCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.catCursor < len(items)-1 {
			m.catCursor++
		}
	case key.Matches(msg, m.keys.Edit, m.keys.Select):
		if c, ok := m.selectedCategory(); ok {
			return m.startEdit(c)
		}
	case key.Matches(msg, m.keys.Delete):
		if c, ok := m.selectedCategory(); ok && m.journal.Categories.Remove(c.ID) {
			m.catCursor = clamp(m.catCursor, 0, max(0, len(m.data.categories)-1))
			m.setStatus("Removed " + c.Name)
		}
	case key.Matches(msg, m.keys.MoveUp):
		if c, ok := m.selectedCategory(); ok && m.catCursor > 0 {
			if m.journal.Categories.Move(c.ID, items[m.catCursor-1].ID) {
				m.catCursor--
			}
		}
	case key.Matches(msg, m.keys.MoveDown):
		if c, ok := m.selectedCategory(); ok && m.catCursor < len(items)-1 {
			if m.journal.Categories.Move(c.ID, items[m.catCursor+1].ID) {
				m.catCursor++
			}
		}
	}
	return m, nil
}

func (m *Model) focusCategoryField() tea.Cmd {
	if m.catField == 0 {
		m.catColor.Blur()
		return m.catName.Focus()
	}
	m.catName.Blur()
	return m.catColor.Focus()
}

func (m Model) updateCategoryAdd(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.catName.Blur()
		m.catColor.Blur()
		m.mode = modeNormal
		return m, nil
	case key.Matches(msg, m.keys.Field):
		m.catField = 1 - m.catField
		return m, m.focusCategoryField()
	case msg.Type == tea.KeyEnter:
		c, err := m.journal.Categories.Add(m.catName.Value(), m.catColor.Value())
		m.catField = 0
		if err != nil {
			if errors.Is(err, store.ErrInvalidColor) {
				m.catField = 1
			}
			m.setError(err)
			return m, m.focusCategoryField()
		}
		m.catName.Reset()
		m.catCursor = len(m.data.categories) - 1
		m.setStatus("Added " + c.Name)
		return m, m.focusCategoryField()
	}

	var cmd tea.Cmd
	if m.catField == 0 {
		m.catName, cmd = m.catName.Update(msg)
	} else {
		m.catColor, cmd = m.catColor.Update(msg)
	}
	return m, cmd
}

func (m Model) startEdit(c store.Category) (Model, tea.Cmd) {
	m.mode = modeCategoryEdit
	m.editID = c.ID
	m.editName.SetValue(c.Name)
	m.editColor.SetValue(c.Color)
	m.editField = 0
	return m, m.focusEditField()
}

func (m *Model) focusEditField() tea.Cmd {
	if m.editField == 0 {
		m.editColor.Blur()
		return m.editName.Focus()
	}
	m.editName.Blur()
	return m.editColor.Focus()
}

func (m Model) updateCategoryEdit(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.stopEdit()
		return m, nil
	case key.Matches(msg, m.keys.Field):
		m.editField = 1 - m.editField
		return m, m.focusEditField()
	case msg.Type == tea.KeyEnter:
		c, err := m.journal.Categories.Update(m.editID, m.editName.Value(), m.editColor.Value())
		if errors.Is(err, store.ErrInvalidColor) {
			m.setError(err)
			m.editField = 1
			return m, m.focusEditField()
		}
		m.stopEdit()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("Saved " + c.Name)
		return m, nil
	}

	var cmd tea.Cmd
	if m.editField == 0 {
		m.editName, cmd = m.editName.Update(msg)
	} else {
		m.editColor, cmd = m.editColor.Update(msg)
	}
	return m, cmd
}

func (m *Model) stopEdit() {
	m.editName.Blur()
	m.editColor.Blur()
	m.editID = ""
	m.mode = modeNormal
}

// ---------- journal ----------

func (m Model) updateJournal(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NewEntry):
		m.mode = modeEntry
		m.entryField = entryFieldTitle
		return m, m.focusEntryField()
	case key.Matches(msg, m.keys.Up):
		if m.entryCursor > 0 {
			m.entryCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.entryCursor < len(m.data.entries)-1 {
			m.entryCursor++
		}
	case key.Matches(msg, m.keys.Copy):
		m.copySelectedEntry()
	}
	return m, nil
}

func (m *Model) focusEntryField() tea.Cmd {
	m.entryTitle.Blur()
	m.entryCategory.Blur()
	m.entryBody.Blur()
	switch m.entryField {
	case entryFieldCategory:
		return m.entryCategory.Focus()
	case entryFieldBody:
		return m.entryBody.Focus()
	default:
		return m.entryTitle.Focus()
	}
}

func (m Model) updateEntry(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel) && !m.entryCategory.Showing():
		m.closeEntryForm()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		return m.submitEntry()
	case key.Matches(msg, m.keys.Field):
		step := 1
		if msg.Type == tea.KeyShiftTab {
			step = entryFieldCount - 1
		}
		m.entryField = (m.entryField + step) % entryFieldCount
		return m, m.focusEntryField()
	case msg.Type == tea.KeyEnter:
		if m.entryField == entryFieldTitle || (m.entryField == entryFieldCategory && !m.entryCategory.Showing()) {
			m.entryField++
			return m, m.focusEntryField()
		}
	}

	var cmd tea.Cmd
	switch m.entryField {
	case entryFieldTitle:
		m.entryTitle, cmd = m.entryTitle.Update(msg)
	case entryFieldCategory:
		m.entryCategory, cmd = m.entryCategory.Update(msg)
	case entryFieldBody:
		m.entryBody, cmd = m.entryBody.Update(msg)
	}
	return m, cmd
}

func (m Model) submitEntry() (Model, tea.Cmd) {
	var categoryID string
	if name := strings.TrimSpace(m.entryCategory.Value()); name != "" {
		c, err := m.journal.Categories.Lookup(name)
		if err != nil {
			m.setError(err)
			m.entryField = entryFieldCategory
			return m, m.focusEntryField()
		}
		categoryID = c.ID
	}

	e, err := m.journal.Entries.Add(m.entryTitle.Value(), m.entryBody.Value(), categoryID)
	if err != nil {
		var fe *store.FieldError
		if errors.As(err, &fe) && fe.Field == "body" {
			m.entryField = entryFieldBody
		} else {
			m.entryField = entryFieldTitle
		}
		m.setError(err)
		return m, m.focusEntryField()
	}

	m.entryTitle.Reset()
	m.entryCategory.SetValue("")
	m.entryBody.Reset()
	m.closeEntryForm()
	m.entryCursor = 0
	m.setStatus("Saved " + e.Title)
	return m, nil
}

func (m *Model) closeEntryForm() {
	m.entryTitle.Blur()
	m.entryCategory.Blur()
	m.entryBody.Blur()
	m.mode = modeNormal
}

func (m *Model) copySelectedEntry() {
	if m.entryCursor < 0 || m.entryCursor >= len(m.data.entries) {
		return
	}
	e := m.data.entries[m.entryCursor]
	if err := m.copyText(e.Title + "\n\n" + e.Body); err != nil {
		m.log.Warn("clipboard write failed", "error", err)
		m.setError(fmt.Errorf("copy: %w", err))
		return
	}
	m.setStatus("Copied " + e.Title)
}

// ---------- home ----------

func (m Model) updateHome(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := len(QuickActions)
	switch {
	case key.Matches(msg, m.keys.Down, m.keys.Field):
		m.actionCursor = (m.actionCursor + 1) % n
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.actionCursor = (m.actionCursor + n - 1) % n
		return m, nil
	case key.Matches(msg, m.keys.Select):
		m.runAction(QuickActions[m.actionCursor])
		return m, nil
	}
	for i, a := range QuickActions {
		if msg.String() == a.Key() {
			m.actionCursor = i
			m.runAction(a)
		}
	}
	return m, nil
}

func (m *Model) runAction(a QuickAction) {
	if notice, ok := Dispatch(a, m.notifier, m.log); ok {
		m.setStatus(notice)
	}
}

// ---------- mood ----------

func (m Model) updateMood(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.moodCursor > 0 {
			m.moodCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.moodCursor < len(store.Moods)-1 {
			m.moodCursor++
		}
	case key.Matches(msg, m.keys.Note):
		m.mode = modeMoodNote
		return m, m.moodNote.Focus()
	case key.Matches(msg, m.keys.Select):
		m.logMood()
	}
	return m, nil
}

func (m Model) updateMoodNote(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.moodNote.Blur()
		m.mode = modeNormal
		return m, nil
	case msg.Type == tea.KeyEnter:
		m.logMood()
		return m, nil
	}
	var cmd tea.Cmd
	m.moodNote, cmd = m.moodNote.Update(msg)
	return m, cmd
}

func (m *Model) logMood() {
	mood := store.Moods[m.moodCursor]
	if _, err := m.journal.LogMood(mood, m.moodNote.Value()); err != nil {
		m.setError(err)
		return
	}
	m.moodNote.Reset()
	m.moodNote.Blur()
	m.mode = modeNormal
	if m.notifier != nil {
		m.notifier.Notify(notify.FormatMoodLogged(mood))
	}
	m.setStatus("Mood logged: " + mood)
}

// ---------- helpers ----------

// leaveForms drops any in-page editing state when the slider settles on
// another page, so keys never go to an input that is off screen.
func (m *Model) leaveForms() {
	switch m.mode {
	case modeCategoryAdd:
		m.catName.Blur()
		m.catColor.Blur()
	case modeCategoryEdit:
		m.stopEdit()
	case modeEntry:
		m.closeEntryForm()
	case modeMoodNote:
		m.moodNote.Blur()
	default:
		return
	}
	m.mode = modeNormal
}

func (m Model) loggedToday() int {
	now := m.now().In(m.loc)
	n := 0
	for _, e := range m.data.entries {
		t := e.Time().In(m.loc)
		if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
			n++
		}
	}
	return n
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = err.Error(), true
	m.log.Debug("rejected input", "error", err)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
