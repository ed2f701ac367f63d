package entity

import (
	"github.com/jinzhu/copier"
)

// Agent is a personnel record managed by the dashboard.
//
// The JSON layout is also the persisted layout: the whole collection is
// stored as one JSON array of these objects under a single storage key.
type Agent struct {
	// ID is assigned by the record store and is never reused.
	ID int64 `json:"id"`

	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Phone         string `json:"phone"`
	Qualification string `json:"qualification"`
	Age           int    `json:"age"`

	// Birthdate is an ISO calendar date (YYYY-MM-DD).
	Birthdate string `json:"birthdate"`

	Address    string `json:"address,omitempty"`
	Department string `json:"department,omitempty"`

	// Experience is in years; nil means not provided.
	Experience *float64 `json:"experience,omitempty"`
}

// Clone returns a deep copy of the agent.
func (a *Agent) Clone() *Agent {
	if a == nil {
		return nil
	}
	out := &Agent{}
	_ = copier.CopyWithOption(out, a, copier.Option{DeepCopy: true})
	return out
}

// CloneAgents deep-copies a slice of agents, skipping nil entries.
func CloneAgents(agents []*Agent) []*Agent {
	out := make([]*Agent, 0, len(agents))
	for _, a := range agents {
		if a == nil {
			continue
		}
		out = append(out, a.Clone())
	}
	return out
}

// AgentInput is the payload submitted by an add/edit form. It carries no
// identity: the id comes from the store on create and from the route on edit.
//
// Age and Experience are pointers so that "not filled in" can be told apart
// from zero.
type AgentInput struct {
	Name          string   `json:"name" validate:"required,notblank"`
	Email         string   `json:"email" validate:"required,email"`
	Password      string   `json:"password" validate:"required,strongpassword"`
	Phone         string   `json:"phone" validate:"required,phone10"`
	Qualification string   `json:"qualification" validate:"required,notblank"`
	Age           *int     `json:"age" validate:"required,min=18,max=100"`
	Birthdate     string   `json:"birthdate" validate:"required,isodate"`
	Address       string   `json:"address,omitempty"`
	Department    string   `json:"department,omitempty"`
	Experience    *float64 `json:"experience,omitempty" validate:"omitempty,gte=0"`
}

// ToAgent builds the record for id from the input.
func (in *AgentInput) ToAgent(id int64) *Agent {
	a := &Agent{
		ID:            id,
		Name:          in.Name,
		Email:         in.Email,
		Password:      in.Password,
		Phone:         in.Phone,
		Qualification: in.Qualification,
		Birthdate:     in.Birthdate,
		Address:       in.Address,
		Department:    in.Department,
	}
	if in.Age != nil {
		a.Age = *in.Age
	}
	if in.Experience != nil {
		e := *in.Experience
		a.Experience = &e
	}
	return a
}

// InputFromAgent returns the form payload that would reproduce a, used to
// prefill an edit form.
func InputFromAgent(a *Agent) *AgentInput {
	age := a.Age
	in := &AgentInput{
		Name:          a.Name,
		Email:         a.Email,
		Password:      a.Password,
		Phone:         a.Phone,
		Qualification: a.Qualification,
		Age:           &age,
		Birthdate:     a.Birthdate,
		Address:       a.Address,
		Department:    a.Department,
	}
	if a.Experience != nil {
		e := *a.Experience
		in.Experience = &e
	}
	return in
}
