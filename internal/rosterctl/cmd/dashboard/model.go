package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/service"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/validation"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/pkg/errno"
)

type mode int

const (
	modeList mode = iota
	modeDetail
	modeForm
	modeConfirm
)

const minTableHeight = 5

type agentsMsg struct {
	agents []*entity.Agent
	err    error
	// seen is the number of change events applied when the list was requested.
	seen uint64
}

type changeMsg entity.ChangeEvent

type savedMsg struct {
	agent *entity.Agent
	err   error
}

type deletedMsg struct {
	id  int64
	err error
}

// Model is the dashboard state. Every change arriving on changes replaces
// the list, whoever made it.
type Model struct {
	ctx     context.Context
	svc     service.AgentService
	changes <-chan entity.ChangeEvent
	// check runs the field rules locally when the form cannot be sent.
	check *validation.Validator

	agents []*entity.Agent
	table  table.Model
	// applied counts change events. The change stream always catches up, so
	// a list requested before the latest applied event is stale.
	applied uint64

	mode mode
	// back is the mode to return to from a form or confirmation.
	back mode
	// focusID is the agent shown in the drawer or about to be deleted.
	focusID int64
	form    *form

	status string
	err    error
	width  int
	height int
	styles styles
}

// NewModel creates a dashboard over svc.
func NewModel(ctx context.Context, svc service.AgentService, changes <-chan entity.ChangeEvent) Model {
	st := defaultStyles()
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 14},
			{Title: "Name", Width: 20},
			{Title: "Email", Width: 26},
			{Title: "Phone", Width: 12},
			{Title: "Qualification", Width: 14},
			{Title: "Age", Width: 4},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(st.Table)

	return Model{
		ctx:     ctx,
		svc:     svc,
		changes: changes,
		check:   validation.New(),
		table:   t,
		styles:  st,
	}
}

// Init loads the agents and starts listening for changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.waitForChange())
}

func (m Model) load() tea.Cmd {
	seen := m.applied
	return func() tea.Msg {
		agents, err := m.svc.ListAgents(m.ctx)
		return agentsMsg{agents: agents, err: err, seen: seen}
	}
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case ev, ok := <-m.changes:
			if !ok {
				return nil
			}
			return changeMsg(ev)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m Model) save(f *form, in *entity.AgentInput) tea.Cmd {
	return func() tea.Msg {
		var agent *entity.Agent
		var err error
		if f.editID != 0 {
			agent, err = m.svc.UpdateAgent(m.ctx, f.editID, in)
		} else {
			agent, err = m.svc.CreateAgent(m.ctx, in)
		}
		return savedMsg{agent: agent, err: err}
	}
}

func (m Model) remove(id int64) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: m.svc.DeleteAgent(m.ctx, id)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := msg.Height - 8
		if h < minTableHeight {
			h = minTableHeight
		}
		m.table.SetHeight(h)
		return m, nil

	case agentsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if msg.seen != m.applied {
			return m, nil
		}
		m.setAgents(msg.agents)
		return m, nil

	case changeMsg:
		m.applied++
		m.setAgents(msg.Agents)
		return m, m.waitForChange()

	case savedMsg:
		return m.saved(msg)

	case deletedMsg:
		if errors.Is(msg.err, errno.ErrAgentNotFound) {
			m.err = nil
			m.status = fmt.Sprintf("Agent %d no longer exists", msg.id)
			m.mode = modeList
			return m, m.load()
		}
		if msg.err != nil {
			m.err = msg.err
			m.mode = m.back
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Deleted agent %d", msg.id)
		m.mode = modeList
		return m, m.load()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeList:
			return m.updateList(msg)
		case modeDetail:
			return m.updateDetail(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		}
	}

	if m.mode == modeForm {
		return m, m.form.update(msg)
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "enter", "v":
		if a := m.selected(); a != nil {
			m.focusID = a.ID
			m.mode = modeDetail
		}
		return m, nil
	case "a":
		return m.openForm(nil)
	case "e":
		if a := m.selected(); a != nil {
			return m.openForm(a)
		}
		return m, nil
	case "d", "delete":
		if a := m.selected(); a != nil {
			m.focusID = a.ID
			m.back = modeList
			m.mode = modeConfirm
		}
		return m, nil
	case "r":
		m.status = ""
		return m, m.load()
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "backspace", "enter":
		m.mode = modeList
	case "e":
		if a := m.find(m.focusID); a != nil {
			return m.openForm(a)
		}
	case "d", "delete":
		m.back = modeDetail
		m.mode = modeConfirm
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		m.mode = m.back
		return m, nil
	case "tab", "down":
		return m, m.form.move(1)
	case "shift+tab", "up":
		return m, m.form.move(-1)
	case "enter":
		if !m.form.onLast() {
			return m, m.form.move(1)
		}
		return m.submit()
	case "ctrl+s":
		return m.submit()
	}
	return m, m.form.update(msg)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m, m.remove(m.focusID)
	case "n", "N", "esc", "q":
		m.mode = m.back
	}
	return m, nil
}

func (m Model) openForm(a *entity.Agent) (tea.Model, tea.Cmd) {
	m.back = m.mode
	m.form = newForm(a)
	m.mode = modeForm
	m.err = nil
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	in, problems := m.form.agentInput()
	if len(problems) > 0 {
		var verrs validation.Errors
		if err := m.check.Validate(in); err != nil {
			errors.As(err, &verrs)
		}
		m.form.mergeErrors(problems, verrs)
		return m, nil
	}
	return m, m.save(m.form, in)
}

func (m Model) saved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		var verrs validation.Errors
		if m.form != nil && errors.As(msg.err, &verrs) {
			m.form.setErrors(verrs)
			return m, nil
		}
		if errors.Is(msg.err, errno.ErrAgentNotFound) {
			m.err = nil
			m.form = nil
			m.status = "Agent no longer exists"
			m.mode = modeList
			return m, m.load()
		}
		m.err = msg.err
		return m, nil
	}

	m.err = nil
	m.form = nil
	m.status = fmt.Sprintf("Saved %s", msg.agent.Name)
	m.focusID = msg.agent.ID
	m.mode = modeList
	return m, m.load()
}

// setAgents replaces the list, keeping the cursor on the same agent when it
// still exists. A drawer whose agent is gone is closed.
func (m *Model) setAgents(agents []*entity.Agent) {
	var current int64
	if a := m.selected(); a != nil {
		current = a.ID
	}

	m.agents = agents
	rows := make([]table.Row, 0, len(agents))
	for _, a := range agents {
		rows = append(rows, table.Row{
			strconv.FormatInt(a.ID, 10), a.Name, a.Email, a.Phone, a.Qualification, strconv.Itoa(a.Age),
		})
	}
	m.table.SetRows(rows)

	cursor := m.table.Cursor()
	for i, a := range agents {
		if a.ID == current {
			cursor = i
			break
		}
	}
	if cursor >= len(agents) {
		cursor = len(agents) - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	m.table.SetCursor(cursor)

	if (m.mode == modeDetail || m.mode == modeConfirm) && m.find(m.focusID) == nil {
		m.mode = modeList
		m.status = fmt.Sprintf("Agent %d no longer exists", m.focusID)
	}
}

func (m Model) selected() *entity.Agent {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.agents) {
		return nil
	}
	return m.agents[i]
}

func (m Model) find(id int64) *entity.Agent {
	for _, a := range m.agents {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// View renders the dashboard.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("Agents (%d)", len(m.agents))) + "\n\n")

	list := m.listView()
	switch m.mode {
	case modeDetail:
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", m.drawerView()))
	case modeForm:
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", m.form.view(m.styles)))
	case modeConfirm:
		sb.WriteString(list + "\n\n" + m.confirmView())
	default:
		sb.WriteString(list)
	}

	sb.WriteString("\n\n")
	switch {
	case m.err != nil:
		sb.WriteString(m.styles.Error.Render("error: "+m.err.Error()) + "\n")
	case m.status != "":
		sb.WriteString(m.styles.Status.Render(m.status) + "\n")
	}
	sb.WriteString(m.styles.Help.Render(m.help()))
	return sb.String()
}

func (m Model) listView() string {
	if len(m.agents) == 0 {
		return m.styles.Muted.Render("No agents added yet.")
	}
	return m.table.View()
}

func (m Model) drawerView() string {
	a := m.find(m.focusID)
	if a == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Agent Details") + "\n\n")
	b.WriteString(m.styles.Focused.Render(a.Name) + "\n")
	for _, d := range cmdutil.Details(a) {
		b.WriteString(m.styles.Label.Render(d.Label+":") + " " + d.Value + "\n")
	}
	return m.styles.Drawer.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) confirmView() string {
	a := m.find(m.focusID)
	if a == nil {
		return ""
	}
	return m.styles.Warning.Render(fmt.Sprintf("Delete agent %q (%d)? [y/N]", a.Name, a.ID))
}

func (m Model) help() string {
	switch m.mode {
	case modeDetail:
		return "e edit • d delete • esc back"
	case modeForm:
		return "tab/↓ next • shift+tab/↑ previous • enter on last field or ctrl+s save • esc cancel"
	case modeConfirm:
		return "y delete • n cancel"
	default:
		return "↑/↓ move • enter view • a add • e edit • d delete • r reload • q quit"
	}
}
