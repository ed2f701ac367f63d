package dashboard

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/service"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/validation"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/store/inmemory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, seed ...*entity.Agent) (Model, service.AgentService, chan entity.ChangeEvent) {
	t.Helper()
	clock := func() time.Time { return now }
	store := service.NewRecordStore(context.Background(), inmemory.NewKVStore(), service.WithStoreClock(clock))
	svc := service.NewAgentService(store, validation.New(validation.WithClock(clock)))
	if len(seed) > 0 {
		require.NoError(t, svc.ReplaceAgents(context.Background(), seed))
	}

	changes := make(chan entity.ChangeEvent, 1)
	cancel := svc.Subscribe(func(ev entity.ChangeEvent) { latest(changes, ev) })
	t.Cleanup(cancel)

	m := NewModel(context.Background(), svc, changes)
	m = run(t, m, m.load())
	return m, svc, changes
}

func ada() *entity.Agent {
	return &entity.Agent{
		ID: 1, Name: "Ada", Email: "ada@example.com", Password: "Abcdef1!", Phone: "1234567890",
		Qualification: "BSc", Age: 24, Birthdate: "2000-06-15",
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// run executes cmd and feeds its message back until nothing is left to do.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return m
		}
		m, cmd = step(t, m, msg)
	}
	return m
}

// press sends keys. Only the keys that reach the service have their commands
// run; focus changes return cursor blink timers.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = step(t, m, key(k))
		switch k {
		case "ctrl+s", "y", "r":
			m = run(t, m, cmd)
		}
	}
	return m
}

func fill(m Model, values map[string]string) {
	for k, v := range values {
		m.form.set(k, v)
	}
}

func TestEmptyList(t *testing.T) {
	m, _, _ := newTestModel(t)
	assert.Contains(t, m.View(), "No agents added yet.")
	assert.Contains(t, m.View(), "Agents (0)")
}

func TestAddAgent(t *testing.T) {
	m, svc, _ := newTestModel(t)

	m = press(t, m, "a")
	require.Equal(t, modeForm, m.mode)
	assert.Contains(t, m.View(), "Add New Agent")

	fill(m, map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "Abcdef1!", "phone": "1234567890",
		"qualification": "BSc", "age": "24", "birthdate": "2000-06-15", "experience": "2.5",
	})
	m = press(t, m, "ctrl+s")

	assert.Equal(t, modeList, m.mode)
	assert.Nil(t, m.form)
	assert.Equal(t, "Saved Ada", m.status)
	require.Len(t, m.agents, 1)

	agents, err := svc.ListAgents(context.Background())
	require.NoError(t, err)
	require.Len(t, agents, 1)
	require.NotNil(t, agents[0].Experience)
	assert.Equal(t, 2.5, *agents[0].Experience)
}

func TestAddShowsFieldErrors(t *testing.T) {
	m, svc, _ := newTestModel(t)

	m = press(t, m, "a")
	fill(m, map[string]string{"name": "Ada", "phone": "12", "age": "30", "birthdate": "2000-06-15"})
	m = press(t, m, "ctrl+s")

	require.Equal(t, modeForm, m.mode)
	assert.Contains(t, m.form.errors, "email")
	assert.Contains(t, m.form.errors, "password")
	assert.Contains(t, m.form.errors, "phone")
	assert.Contains(t, m.form.errors, "age")
	assert.NotContains(t, m.form.errors, "name")
	assert.Contains(t, m.View(), "Email is required")

	agents, _ := svc.ListAgents(context.Background())
	assert.Empty(t, agents)
}

func TestAddRejectsNonNumericAge(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, "a")
	fill(m, map[string]string{"age": "old", "experience": "lots"})

	m, cmd := step(t, m, key("ctrl+s"))
	assert.Nil(t, cmd)
	assert.Equal(t, "Age must be a whole number", m.form.errors["age"])
	assert.Equal(t, "Experience must be a number of years", m.form.errors["experience"])
}

func TestNonNumericAgeShownWithOtherFieldErrors(t *testing.T) {
	m, svc, _ := newTestModel(t)
	m = press(t, m, "a")
	fill(m, map[string]string{
		"email": "ada@example.com", "password": "Abcdef1!", "phone": "1234567890",
		"qualification": "BSc", "age": "abc", "birthdate": "2000-06-15",
	})

	m, cmd := step(t, m, key("ctrl+s"))
	assert.Nil(t, cmd)
	require.Equal(t, modeForm, m.mode)
	assert.Equal(t, map[string]string{
		"name": "Name is required",
		"age":  "Age must be a whole number",
	}, m.form.errors)

	agents, _ := svc.ListAgents(context.Background())
	assert.Empty(t, agents)
}

func TestFormNavigation(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, "a")
	assert.Equal(t, 0, m.form.focus)

	m = press(t, m, "tab", "enter")
	assert.Equal(t, 2, m.form.focus)

	m = press(t, m, "esc")
	assert.Equal(t, modeList, m.mode)
	assert.Nil(t, m.form)
}

func TestDetailAndEdit(t *testing.T) {
	m, svc, _ := newTestModel(t, ada())

	m = press(t, m, "enter")
	require.Equal(t, modeDetail, m.mode)
	view := m.View()
	assert.Contains(t, view, "Agent Details")
	assert.Contains(t, view, "ada@example.com")
	assert.NotContains(t, view, "Abcdef1!")
	assert.NotContains(t, view, "Department:")

	m = press(t, m, "e")
	require.Equal(t, modeForm, m.mode)
	assert.Equal(t, "Edit Agent", m.form.title())
	assert.Equal(t, "Ada", m.form.value("name"))
	assert.Equal(t, "24", m.form.value("age"))

	fill(m, map[string]string{"name": "Ada Lovelace", "department": "R&D"})
	m = press(t, m, "ctrl+s")
	assert.Equal(t, modeList, m.mode)

	got, err := svc.GetAgent(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "R&D", got.Department)
}

func TestDeleteConfirm(t *testing.T) {
	m, svc, _ := newTestModel(t, ada())

	m = press(t, m, "d")
	require.Equal(t, modeConfirm, m.mode)
	assert.Contains(t, m.View(), `Delete agent "Ada" (1)? [y/N]`)

	m = press(t, m, "n")
	assert.Equal(t, modeList, m.mode)

	m = press(t, m, "d", "y")
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "Deleted agent 1", m.status)
	assert.Empty(t, m.agents)

	agents, _ := svc.ListAgents(context.Background())
	assert.Empty(t, agents)
}

func TestDeleteStaleRow(t *testing.T) {
	m, svc, _ := newTestModel(t, ada())

	// removed elsewhere before the dashboard saw the change
	require.NoError(t, svc.DeleteAgent(context.Background(), 1))
	m = press(t, m, "d", "y")
	assert.Nil(t, m.err)
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "Agent 1 no longer exists", m.status)
	assert.Empty(t, m.agents)
}

func TestExternalChanges(t *testing.T) {
	m, svc, _ := newTestModel(t, ada())
	m = press(t, m, "enter")
	require.Equal(t, modeDetail, m.mode)

	// someone else deletes the agent in the drawer
	require.NoError(t, svc.DeleteAgent(context.Background(), 1))
	m, cmd := step(t, m, m.waitForChange()())
	assert.NotNil(t, cmd)
	assert.Equal(t, modeList, m.mode)
	assert.Empty(t, m.agents)
	assert.Equal(t, "Agent 1 no longer exists", m.status)

	_, err := svc.CreateAgent(context.Background(), entity.InputFromAgent(ada()))
	require.NoError(t, err)
	m, _ = step(t, m, m.waitForChange()())
	require.Len(t, m.agents, 1)
	assert.Contains(t, m.View(), "Agents (1)")
}

func TestListOlderThanChangeIsDropped(t *testing.T) {
	m, svc, _ := newTestModel(t)

	stale := m.load()()
	_, err := svc.CreateAgent(context.Background(), entity.InputFromAgent(ada()))
	require.NoError(t, err)
	m, _ = step(t, m, m.waitForChange()())
	require.Len(t, m.agents, 1)

	m, _ = step(t, m, stale)
	assert.Len(t, m.agents, 1)

	// a list requested after the change is applied
	m = run(t, m, m.load())
	assert.Len(t, m.agents, 1)
}

func TestWindowSize(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 32, m.table.Height())

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 40, Height: 6})
	assert.Equal(t, minTableHeight, m.table.Height())
}

func TestLatestKeepsNewest(t *testing.T) {
	ch := make(chan entity.ChangeEvent, 1)
	latest(ch, entity.ChangeEvent{Kind: entity.ChangeAdded})
	latest(ch, entity.ChangeEvent{Kind: entity.ChangeDeleted})
	assert.Equal(t, entity.ChangeDeleted, (<-ch).Kind)
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := step(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
