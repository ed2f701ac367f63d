package util

import (
	"strconv"

	"github.com/jinzhu/copier"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/spf13/pflag"
)

var fieldFlags = []string{
	"name", "email", "password", "phone", "qualification",
	"age", "birthdate", "address", "department", "experience",
}

// AgentFlags are the form fields as command-line flags, shared by add and
// edit.
type AgentFlags struct {
	Name          string
	Email         string
	Password      string
	Phone         string
	Qualification string
	Age           int
	Birthdate     string
	Address       string
	Department    string
	Experience    float64
}

// AddFlags adds flags for every agent field to the specified FlagSet.
func (o *AgentFlags) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Name, "name", o.Name, "Full name of the agent.")
	fs.StringVar(&o.Email, "email", o.Email, "Email address.")
	fs.StringVar(&o.Password, "password", o.Password,
		"At least 8 characters with a lowercase and an uppercase letter, a digit and a special character.")
	fs.StringVar(&o.Phone, "phone", o.Phone, "Ten digit phone number.")
	fs.StringVar(&o.Qualification, "qualification", o.Qualification, "Highest qualification.")
	fs.IntVar(&o.Age, "age", o.Age, "Age in years, 18 to 100. Must agree with --birthdate.")
	fs.StringVar(&o.Birthdate, "birthdate", o.Birthdate, "Date of birth as YYYY-MM-DD.")
	fs.StringVar(&o.Address, "address", o.Address, "Postal address.")
	fs.StringVar(&o.Department, "department", o.Department, "Department.")
	fs.Float64Var(&o.Experience, "experience", o.Experience, "Years of experience.")
}

// Input returns a copy of base with every flag that was set on fs applied.
// A nil base starts from an empty form.
func (o *AgentFlags) Input(fs *pflag.FlagSet, base *entity.AgentInput) *entity.AgentInput {
	in := &entity.AgentInput{}
	if base != nil {
		_ = copier.CopyWithOption(in, base, copier.Option{DeepCopy: true})
	}

	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("name", &in.Name, o.Name)
	set("email", &in.Email, o.Email)
	set("password", &in.Password, o.Password)
	set("phone", &in.Phone, o.Phone)
	set("qualification", &in.Qualification, o.Qualification)
	set("birthdate", &in.Birthdate, o.Birthdate)
	set("address", &in.Address, o.Address)
	set("department", &in.Department, o.Department)

	if fs.Changed("age") {
		age := o.Age
		in.Age = &age
	}
	if fs.Changed("experience") {
		exp := o.Experience
		in.Experience = &exp
	}
	return in
}

// Changed reports whether any field flag was set on fs.
func (o *AgentFlags) Changed(fs *pflag.FlagSet) bool {
	for _, name := range fieldFlags {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

// ParseID parses an agent id argument.
func ParseID(cmdPath, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, UsageErrorf(cmdPath, "invalid agent id %q: %v", arg, err)
	}
	return id, nil
}
