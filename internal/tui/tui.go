// Package tui is the interactive front end: a Bubble Tea list of tasks with
// an inline form. Every change goes through the session.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/form"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/session"
	"github.com/Makepad-fr/tada/internal/ui"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmExit
)

type field int

const (
	fieldDescription field = iota
	fieldDue
	fieldPriority
	fieldReminder
	fieldCount
)

// taskItem adapts a task to bubbles/list.Item
type taskItem struct{ task *model.Task }

func (i taskItem) FilterValue() string { return i.task.Description }

// Custom delegate: one line per task on its priority background.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	t := ui.Current()
	line := t.PriorityStyle(it.task.Priority).Render(it.task.String())
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(t.SymCursor)
	}
	fmt.Fprintln(w, prefix+line)
}

// Model is the Bubble Tea model.
type Model struct {
	sess *session.Session
	list list.Model
	keys keyMap
	mode mode

	filtered  bool
	status    string
	statusErr bool

	// form state, shared by add and edit
	editIndex int // -1 while adding
	desc      textinput.Model
	due       textinput.Model
	priority  model.Priority
	reminder  bool
	focus     field
	formErr   string

	width, height int
}

// New builds the model over sess.
func New(sess *session.Session) Model {
	keys := defaultKeyMap()

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	// bubbles' fuzzy filter would break the row -> list index mapping
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = lipgloss.NewStyle()
	l.SetStatusBarItemName("task", "tasks")
	// free "f", "d", "b", "u" for our own bindings
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h/pgup", "prev page"))
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l/pgdn", "next page"))
	l.AdditionalShortHelpKeys = keys.listBindings
	l.AdditionalFullHelpKeys = keys.listBindings

	m := Model{
		sess:      sess,
		list:      l,
		keys:      keys,
		editIndex: -1,
		width:     80,
		height:    24,
	}

	m.desc = textinput.New()
	m.desc.Prompt = "Task: "
	m.desc.Placeholder = "What needs doing?"
	m.desc.CharLimit = 200

	m.due = textinput.New()
	m.due.Prompt = "Due Date: "
	m.due.Placeholder = "DD/MM/YYYY (optional)"
	m.due.CharLimit = 10

	m.refresh()
	m.resize()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(sess *session.Session) error {
	p := tea.NewProgram(New(sess), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmExit:
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	}

	if m.mode == modeForm {
		return m.forwardToInput(msg)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.mode = modeConfirmExit
		return m, nil

	case key.Matches(msg, m.keys.Add):
		return m.openForm(-1)

	case key.Matches(msg, m.keys.Edit):
		if m.filtered {
			m.setError("clear the filter (f) before editing")
			return m, nil
		}
		i := m.selected()
		if i == session.NoSelection {
			m.setError("select a task to edit")
			return m, nil
		}
		return m.openForm(i)

	case key.Matches(msg, m.keys.Delete):
		if m.filtered {
			m.setError("clear the filter (f) before deleting")
			return m, nil
		}
		if err := m.sess.Delete(m.selected()); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.setStatus("task deleted")
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		done := m.sess.Complete()
		if done == nil {
			m.setStatus("nothing to complete")
			return m, nil
		}
		m.filtered = false
		m.setStatus("completed: " + done.Description)
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Sort):
		m.sess.SortByDescription()
		m.filtered = false
		m.setStatus("sorted by description")
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filtered = !m.filtered
		if m.filtered {
			m.setStatus("showing HIGH priority only")
		} else {
			m.setStatus("showing all tasks")
		}
		m.refresh()
		m.list.Select(0)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		return m, tea.Quit
	case key.Matches(msg, m.keys.No):
		m.mode = modeList
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()
		m.setStatus("cancelled")
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.NextField):
		return m.focusField((m.focus + 1) % fieldCount)

	case key.Matches(msg, m.keys.PrevField):
		return m.focusField((m.focus + fieldCount - 1) % fieldCount)
	}

	switch m.focus {
	case fieldPriority:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.priority = m.priority.Prev()
		case key.Matches(msg, m.keys.Right):
			m.priority = m.priority.Next()
		}
		return m, nil
	case fieldReminder:
		if key.Matches(msg, m.keys.Toggle) {
			m.reminder = !m.reminder
		}
		return m, nil
	}
	return m.forwardToInput(msg)
}

func (m Model) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldDescription:
		m.desc, cmd = m.desc.Update(msg)
	case fieldDue:
		m.due, cmd = m.due.Update(msg)
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	in := form.Input{
		Description: m.desc.Value(),
		Priority:    m.priority,
		Reminder:    m.reminder,
		DueDate:     strings.TrimSpace(m.due.Value()),
	}
	var err error
	if m.editIndex < 0 {
		err = m.sess.Add(in)
	} else {
		err = m.sess.Edit(m.editIndex, in)
	}
	if err != nil {
		m.formErr = err.Error()
		return m, nil
	}
	verb := "added"
	if m.editIndex >= 0 {
		verb = "updated"
	}
	m.closeForm()
	m.filtered = false
	m.setStatus("task " + verb)
	m.refresh()
	return m, nil
}

func (m Model) openForm(editIndex int) (tea.Model, tea.Cmd) {
	m.mode = modeForm
	m.editIndex = editIndex
	m.formErr = ""
	m.resetForm()
	if t := m.sess.Task(editIndex); editIndex >= 0 && t != nil {
		m.desc.SetValue(t.Description)
		m.desc.CursorEnd()
		m.due.SetValue(t.DueDate)
		m.priority = t.Priority
		m.reminder = t.ReminderSet
	}
	m.resize()
	return m.focusField(fieldDescription)
}

func (m *Model) closeForm() {
	m.mode = modeList
	m.editIndex = -1
	m.formErr = ""
	m.resetForm()
	m.resize()
}

// resetForm clears every field; priority goes back to LOW.
func (m *Model) resetForm() {
	m.desc.SetValue("")
	m.due.SetValue("")
	m.desc.Blur()
	m.due.Blur()
	m.priority = model.Low
	m.reminder = false
	m.focus = fieldDescription
}

func (m Model) focusField(f field) (tea.Model, tea.Cmd) {
	m.focus = f
	m.desc.Blur()
	m.due.Blur()
	var cmd tea.Cmd
	switch f {
	case fieldDescription:
		cmd = m.desc.Focus()
	case fieldDue:
		cmd = m.due.Focus()
	}
	return m, cmd
}

// selected maps the cursor to a list index, NoSelection when the list is empty.
func (m Model) selected() int {
	if len(m.list.Items()) == 0 {
		return session.NoSelection
	}
	return m.list.Index()
}

// refresh re-reads the session into the list widget.
func (m *Model) refresh() {
	tasks := m.sess.Tasks()
	if m.filtered {
		tasks = m.sess.FilterHigh()
	}
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{task: t})
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx < 0 {
		idx = 0
	}
	m.list.Select(idx)

	title := ui.Header(m.sess.Greeting(), m.sess.Counts())
	if m.filtered {
		title += "  " + ui.Current().Accent.Render("[HIGH only]")
	}
	m.list.Title = title
}

func (m *Model) resize() {
	h := m.height - 4
	if m.mode == modeForm {
		h -= 8
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m *Model) setStatus(s string) { m.status, m.statusErr = s, false }
func (m *Model) setError(s string)  { m.status, m.statusErr = s, true }

func (m Model) View() string {
	t := ui.Current()
	content := m.list.View()

	switch m.mode {
	case modeForm:
		content += "\n" + m.formView()
	case modeConfirmExit:
		content += "\n" + t.Accent.Render("Are you sure you want to exit? (y/n)")
	default:
		if m.status != "" {
			st := t.Muted
			if m.statusErr {
				st = t.Error
			}
			content += "\n" + st.Render(m.status)
		}
	}
	return ui.PanelString([]string{content})
}

func (m Model) formView() string {
	t := ui.Current()
	title := "Add task"
	if m.editIndex >= 0 {
		title = "Edit task"
	}
	if m.formErr != "" {
		title += " - " + t.Error.Render(m.formErr)
	}

	marker := func(f field) string {
		if m.focus == f {
			return t.Selected.Render(t.SymCursor)
		}
		return "  "
	}
	box := "[ ]"
	if m.reminder {
		box = "[x]"
	}
	lines := []string{
		t.Title.Render(title),
		marker(fieldDescription) + m.desc.View(),
		marker(fieldDue) + m.due.View(),
		marker(fieldPriority) + "Priority: ◀ " + t.PriorityStyle(m.priority).Render(" "+m.priority.String()+" ") + " ▶",
		marker(fieldReminder) + "Set Reminder: " + box,
		t.Muted.Render("tab next field · ←/→ priority · space reminder · enter save · esc cancel"),
	}
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
