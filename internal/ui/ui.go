package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tend/internal/filter"
	"tend/internal/model"
	"tend/internal/store"
)

type appState int

const (
	stateList appState = iota
	stateAdd
	stateEdit
	stateDueDate
	stateConfirm
	stateCalendar
)

var (
	appStyle     = lipgloss.NewStyle().Padding(1, 2)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	partyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("148")).Bold(true)
	bannerStyle  = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39"))
)

type extraKeyMap struct {
	Add       key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	Edit      key.Binding
	DueDate   key.Binding
	Reminder  key.Binding
	Filter    key.Binding
	ClearDone key.Binding
	Calendar  key.Binding
	Copy      key.Binding
}

func newExtraKeyMap() extraKeyMap {
	return extraKeyMap{
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a/n", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "x"),
			key.WithHelp("enter/x", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		DueDate: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "due date"),
		),
		Reminder: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reminder"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		ClearDone: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear done"),
		),
		Calendar: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "calendar"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
	}
}

// ReminderMsg delivers a scheduler notification into the program. main
// bridges Scheduler.Notifications onto Program.Send with this type.
type ReminderMsg model.Task

// TaskCompletedMsg fires when the store reports a task completion.
type TaskCompletedMsg model.Task

type tasksLoadedMsg []model.Task
type errMsg struct{ error }
type dismissReminderMsg struct{ seq int }
type clearPartyMsg struct{ seq int }

// Model is the top-level bubbletea model for the tend TUI.
type Model struct {
	state         appState
	list          list.Model
	input         textinput.Model
	dateInput     dateInput
	cal           calendar
	store         *store.TaskStore
	keys          extraKeyMap
	mode          filter.Mode
	counts        filter.Counts
	editTaskID    string
	dueDateTaskID string

	notifyDisplay time.Duration
	reminder      *model.Task
	reminderSeq   int
	party         string
	partySeq      int

	err    error
	width  int
	height int
}

// NewModel creates the TUI model.
func NewModel(s *store.TaskStore, mode filter.Mode, notifyDisplay time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "Task text..."
	ti.CharLimit = 256

	keys := newExtraKeyMap()

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New(nil, delegate, 0, 0)
	l.Title = "tend"
	l.Styles.Title = titleStyle
	l.SetShowHelp(true)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete, keys.Filter, keys.Calendar}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{
			keys.Add, keys.Toggle, keys.Delete, keys.Edit, keys.DueDate,
			keys.Reminder, keys.Filter, keys.ClearDone, keys.Calendar, keys.Copy,
		}
	}

	if notifyDisplay <= 0 {
		notifyDisplay = 5 * time.Second
	}

	return Model{
		state:         stateList,
		list:          l,
		input:         ti,
		dateInput:     newDateInput(),
		cal:           newCalendar(time.Now()),
		store:         s,
		keys:          keys,
		mode:          mode,
		notifyDisplay: notifyDisplay,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadTasks
}

func (m Model) loadTasks() tea.Msg {
	return tasksLoadedMsg(m.store.Snapshot())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-2)
		return m, nil

	case tasksLoadedMsg:
		now := time.Now()
		m.counts = filter.Count(msg, now)
		visible := filter.Apply(msg, m.mode, now)
		items := make([]list.Item, len(visible))
		for i, t := range visible {
			items[i] = TaskItem{Task: t, Now: now}
		}
		m.list.SetItems(items)
		m.list.Title = "tend — " + m.mode.String()
		m.err = nil
		return m, nil

	case ReminderMsg:
		t := model.Task(msg)
		m.reminder = &t
		m.reminderSeq++
		seq := m.reminderSeq
		return m, tea.Batch(m.loadTasks, tea.Tick(m.notifyDisplay, func(time.Time) tea.Msg {
			return dismissReminderMsg{seq: seq}
		}))

	case dismissReminderMsg:
		if msg.seq == m.reminderSeq {
			m.reminder = nil
		}
		return m, nil

	case TaskCompletedMsg:
		m.party = fmt.Sprintf("🎉 %q done, nice!", model.Task(msg).Text)
		m.partySeq++
		seq := m.partySeq
		return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
			return clearPartyMsg{seq: seq}
		})

	case clearPartyMsg:
		if msg.seq == m.partySeq {
			m.party = ""
		}
		return m, nil

	case errMsg:
		m.err = msg.error
		return m, nil
	}

	switch m.state {
	case stateList:
		return m.updateList(msg)
	case stateAdd:
		return m.updateAdd(msg)
	case stateEdit:
		return m.updateEdit(msg)
	case stateDueDate:
		return m.updateDueDate(msg)
	case stateConfirm:
		return m.updateConfirm(msg)
	case stateCalendar:
		return m.updateCalendar(msg)
	}

	return m, nil
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			if m.reminder != nil {
				m.reminder = nil
				return m, nil
			}
		case "a", "n":
			m.state = stateAdd
			m.input.Reset()
			cmd := m.input.Focus()
			return m, cmd
		case "enter", "x":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				if err := m.store.ToggleCompleted(item.Task.ID); err != nil {
					m.err = err
					return m, nil
				}
				return m, m.loadTasks
			}
		case "e":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				m.state = stateEdit
				m.editTaskID = item.Task.ID
				m.input.Reset()
				m.input.SetValue(item.Task.Text)
				cmd := m.input.Focus()
				return m, cmd
			}
		case "D":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				m.state = stateDueDate
				m.dueDateTaskID = item.Task.ID
				m.dateInput = newDateInput()
				if item.Task.DueDate != nil {
					m.dateInput.SetValue(*item.Task.DueDate)
				}
				m.dateInput.Focus()
				return m, nil
			}
		case "r":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				if err := m.store.ToggleReminder(item.Task.ID); err != nil {
					m.err = err
					return m, nil
				}
				return m, m.loadTasks
			}
		case "f":
			m.mode = m.mode.Next()
			return m, m.loadTasks
		case "c":
			if m.counts.Completed > 0 {
				if err := m.store.ClearCompleted(); err != nil {
					m.err = err
					return m, nil
				}
				return m, m.loadTasks
			}
		case "v":
			m.state = stateCalendar
			m.cal = newCalendar(time.Now())
			return m, nil
		case "y":
			if err := clipboard.WriteAll(renderPlain(m.list.Items())); err != nil {
				m.err = err
			}
			return m, nil
		case "d":
			if m.list.SelectedItem() != nil {
				m.state = stateConfirm
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// renderPlain flattens the visible tasks for the clipboard.
func renderPlain(items []list.Item) string {
	var b strings.Builder
	for _, it := range items {
		if ti, ok := it.(TaskItem); ok {
			check := "[ ]"
			if ti.Task.Completed {
				check = "[x]"
			}
			b.WriteString(check + " " + ti.Task.Text)
			if ti.Task.DueDate != nil {
				b.WriteString(" (due " + *ti.Task.DueDate + ")")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if _, err := m.store.Create(m.input.Value(), nil, false); err != nil {
				m.err = err
				return m, nil
			}
			m.state = stateList
			return m, m.loadTasks
		case "esc":
			m.state = stateList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if err := m.store.EditText(m.editTaskID, m.input.Value()); err != nil {
				m.err = err
				return m, nil
			}
			m.state = stateList
			return m, m.loadTasks
		case "esc":
			m.state = stateList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateDueDate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if m.dateInput.IsEmpty() {
				if err := m.store.UpdateDueDate(m.dueDateTaskID, nil); err != nil {
					m.err = err
				}
				m.state = stateList
				return m, m.loadTasks
			}
			val, err := m.dateInput.Value()
			if err != nil {
				m.err = err
				return m, nil
			}
			if err := m.store.UpdateDueDate(m.dueDateTaskID, &val); err != nil {
				m.err = err
			}
			m.state = stateList
			return m, m.loadTasks
		case "esc":
			m.state = stateList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				if err := m.store.Delete(item.Task.ID); err != nil {
					m.err = err
				}
			}
			m.state = stateList
			return m, m.loadTasks
		case "n", "esc":
			m.state = stateList
			return m, nil
		}
	}
	return m, nil
}

func (m Model) updateCalendar(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "v", "q":
			m.state = stateList
			return m, m.loadTasks
		case "H", "p":
			m.cal.PrevMonth()
			return m, nil
		case "L", "n":
			m.cal.NextMonth()
			return m, nil
		case "h", "left":
			m.cal.MoveDay(-1)
			return m, nil
		case "l", "right":
			m.cal.MoveDay(1)
			return m, nil
		case "k", "up":
			m.cal.MoveDay(-7)
			return m, nil
		case "j", "down":
			m.cal.MoveDay(7)
			return m, nil
		}
	}
	return m, nil
}

func (m Model) statusLine() string {
	parts := []string{
		fmt.Sprintf("%d active", m.counts.Active),
		fmt.Sprintf("%d completed", m.counts.Completed),
	}
	line := statusStyle.Render(strings.Join(parts, " • "))
	if m.counts.Upcoming > 0 {
		line += statusStyle.Render(" • ") + badgeStyle.Render(fmt.Sprintf("%d upcoming", m.counts.Upcoming))
	}
	return line
}

func (m Model) banner() string {
	if m.reminder == nil {
		return ""
	}
	due := "soon"
	if m.reminder.DueDate != nil {
		due = "on " + *m.reminder.DueDate
	}
	content := "🔔 " + m.reminder.Text + "\n" +
		statusStyle.Render("This task is due "+due+"  (esc to dismiss)")
	return bannerStyle.Render(content) + "\n"
}

func (m Model) View() string {
	var errView string
	if m.err != nil {
		errView = "\n" + errorStyle.Render("Error: "+m.err.Error())
	}
	var partyView string
	if m.party != "" {
		partyView = "\n" + partyStyle.Render(m.party)
	}

	switch m.state {
	case stateAdd:
		return appStyle.Render(
			titleStyle.Render("New Task") + "\n\n" +
				m.input.View() + "\n\n" +
				statusStyle.Render("enter: save • esc: cancel") +
				errView,
		)
	case stateEdit:
		return appStyle.Render(
			titleStyle.Render("Edit Task") + "\n\n" +
				m.input.View() + "\n\n" +
				statusStyle.Render("enter: save • esc: cancel") +
				errView,
		)
	case stateDueDate:
		return appStyle.Render(
			titleStyle.Render("Set Due Date") + "\n\n" +
				m.dateInput.View() + "\n\n" +
				statusStyle.Render("tab/→: next field • enter: save (blank clears) • esc: cancel") +
				errView,
		)
	case stateConfirm:
		item, _ := m.list.SelectedItem().(TaskItem)
		return appStyle.Render(
			confirmStyle.Render("Delete Task?") + "\n\n" +
				"  " + item.Task.Text + "\n\n" +
				statusStyle.Render("y: delete • n/esc: cancel") +
				errView,
		)
	case stateCalendar:
		return appStyle.Render(
			m.cal.View(m.store.Snapshot(), time.Now()) + "\n" +
				statusStyle.Render("h/j/k/l: move • H/L: month • esc: back") +
				errView,
		)
	default:
		listView := m.list.View()
		if len(m.list.Items()) == 0 {
			empty := "Nothing here yet. Press a to add a task."
			if m.counts.Completed > 0 || m.counts.Active > 0 {
				empty = "Nothing matches this filter."
			}
			if m.counts.Active == 0 && m.counts.Completed > 0 && m.mode == filter.Active {
				empty = "All done! 🎉"
			}
			listView = m.list.Styles.Title.Render(m.list.Title) + "\n\n" +
				statusStyle.Render(empty) + "\n"
		}
		return appStyle.Render(
			m.banner() +
				listView + "\n" +
				m.statusLine() +
				partyView +
				errView,
		)
	}
}
