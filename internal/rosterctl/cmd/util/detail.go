package util

import (
	"fmt"
	"strconv"

	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
)

// Detail is one labelled line of the agent detail view.
type Detail struct {
	Label string
	Value string
}

// Details returns the lines of the detail view in display order. Address,
// department and experience are left out when not provided; the password is
// never shown.
func Details(a *entity.Agent) []Detail {
	out := []Detail{
		{Label: "Email", Value: a.Email},
		{Label: "Phone", Value: a.Phone},
		{Label: "Qualification", Value: a.Qualification},
		{Label: "Age", Value: strconv.Itoa(a.Age)},
		{Label: "Birthdate", Value: a.Birthdate},
	}
	if a.Address != "" {
		out = append(out, Detail{Label: "Address", Value: a.Address})
	}
	if a.Department != "" {
		out = append(out, Detail{Label: "Department", Value: a.Department})
	}
	if a.Experience != nil {
		out = append(out, Detail{Label: "Experience", Value: FormatExperience(*a.Experience)})
	}
	return out
}

// FormatExperience renders years of experience as "N yrs".
func FormatExperience(years float64) string {
	return fmt.Sprintf("%s yrs", strconv.FormatFloat(years, 'f', -1, 64))
}
