package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/validation"
)

// formField is one input of the add/edit form. key is the JSON field name
// validation errors are reported under.
type formField struct {
	key   string
	label string
	input textinput.Model
}

// form is the add/edit drawer. editID is zero when adding.
type form struct {
	editID int64
	fields []formField
	focus  int
	errors map[string]string
}

var formLayout = []struct {
	key, label, placeholder string
	password                bool
}{
	{key: "name", label: "Name", placeholder: "Ada Lovelace"},
	{key: "email", label: "Email", placeholder: "ada@example.com"},
	{key: "password", label: "Password", placeholder: "8+ chars, Aa1!", password: true},
	{key: "phone", label: "Phone", placeholder: "10 digits"},
	{key: "qualification", label: "Qualification", placeholder: "BSc"},
	{key: "age", label: "Age", placeholder: "18-100"},
	{key: "birthdate", label: "Birthdate", placeholder: "YYYY-MM-DD"},
	{key: "address", label: "Address", placeholder: "optional"},
	{key: "department", label: "Department", placeholder: "optional"},
	{key: "experience", label: "Experience", placeholder: "years, optional"},
}

// newForm builds an empty form, or one prefilled from a when editing.
func newForm(a *entity.Agent) *form {
	f := &form{errors: map[string]string{}}
	for _, l := range formLayout {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = l.placeholder
		ti.CharLimit = 256
		if l.password {
			ti.EchoMode = textinput.EchoPassword
		}
		f.fields = append(f.fields, formField{key: l.key, label: l.label, input: ti})
	}

	if a != nil {
		f.editID = a.ID
		in := entity.InputFromAgent(a)
		f.set("name", in.Name)
		f.set("email", in.Email)
		f.set("password", in.Password)
		f.set("phone", in.Phone)
		f.set("qualification", in.Qualification)
		f.set("age", strconv.Itoa(*in.Age))
		f.set("birthdate", in.Birthdate)
		f.set("address", in.Address)
		f.set("department", in.Department)
		if in.Experience != nil {
			f.set("experience", strconv.FormatFloat(*in.Experience, 'f', -1, 64))
		}
	}
	f.fields[0].input.Focus()
	return f
}

func (f *form) set(key, value string) {
	for i := range f.fields {
		if f.fields[i].key == key {
			f.fields[i].input.SetValue(value)
			return
		}
	}
}

func (f *form) value(key string) string {
	return strings.TrimSpace(f.raw(key))
}

func (f *form) raw(key string) string {
	for _, fld := range f.fields {
		if fld.key == key {
			return fld.input.Value()
		}
	}
	return ""
}

func (f *form) title() string {
	if f.editID != 0 {
		return "Edit Agent"
	}
	return "Add New Agent"
}

func (f *form) onLast() bool {
	return f.focus == len(f.fields)-1
}

func (f *form) move(delta int) tea.Cmd {
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].input.Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

// agentInput reads the form. Numbers that do not parse are reported per
// field and the input is not usable.
func (f *form) agentInput() (*entity.AgentInput, map[string]string) {
	in := &entity.AgentInput{
		Name:          f.value("name"),
		Email:         f.value("email"),
		Password:      f.raw("password"),
		Phone:         f.value("phone"),
		Qualification: f.value("qualification"),
		Birthdate:     f.value("birthdate"),
		Address:       f.value("address"),
		Department:    f.value("department"),
	}

	problems := map[string]string{}
	if s := f.value("age"); s != "" {
		age, err := strconv.Atoi(s)
		if err != nil {
			problems["age"] = "Age must be a whole number"
		} else {
			in.Age = &age
		}
	}
	if s := f.value("experience"); s != "" {
		exp, err := strconv.ParseFloat(s, 64)
		if err != nil {
			problems["experience"] = "Experience must be a number of years"
		} else {
			in.Experience = &exp
		}
	}
	return in, problems
}

func (f *form) setErrors(verrs validation.Errors) {
	f.errors = make(map[string]string, len(verrs))
	for _, fe := range verrs {
		f.errors[fe.Field] = fe.Message
	}
}

// mergeErrors shows the rule failures alongside the local parse problems.
// A parse problem wins over the rule failure of the same field.
func (f *form) mergeErrors(problems map[string]string, verrs validation.Errors) {
	f.setErrors(verrs)
	for field, msg := range problems {
		f.errors[field] = msg
	}
}

func (f *form) view(s styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(f.title()) + "\n\n")
	for i, fld := range f.fields {
		label := s.Label.Render(fmt.Sprintf("%-14s", fld.label))
		if i == f.focus {
			label = s.Focused.Render(fmt.Sprintf("%-14s", fld.label))
		}
		b.WriteString(label + " " + fld.input.View() + "\n")
		if msg, ok := f.errors[fld.key]; ok {
			b.WriteString(strings.Repeat(" ", 15) + s.Error.Render(msg) + "\n")
		}
	}
	return s.Drawer.Render(strings.TrimRight(b.String(), "\n"))
}
