package model

import "strings"

// Placeholder text used when a field is absent or blank.
const (
	DefaultName             = "NAME"
	DefaultLocation         = "Location"
	DefaultPhone            = "Phone"
	DefaultEmail            = "Email"
	DefaultTechnicalSkills  = "Skills to be added"
	DefaultCoreCompetencies = "Competencies to be added"
	DefaultNationality      = "To be added"
)

// Resolved is a ResumeRecord with every default applied. Languages and
// VisaStatus stay empty when absent because their lines are omitted.
type Resolved struct {
	Name             string
	Location         string
	Phone            string
	Email            string
	Summary          []string
	Experience       []Experience
	Education        []Education
	Certifications   []string
	Achievements     []string
	TechnicalSkills  string
	CoreCompetencies string
	Nationality      string
	Languages        string
	VisaStatus       string
	OtherPersonal    []string
}

// Resolve applies the per-field defaults. Nil and empty collections are
// treated identically and the result never aliases the input slices.
func Resolve(r ResumeRecord) Resolved {
	out := Resolved{
		Name:             orDefault(r.Name, DefaultName),
		Location:         orDefault(r.Location, DefaultLocation),
		Phone:            orDefault(r.Phone, DefaultPhone),
		Email:            orDefault(r.Email, DefaultEmail),
		Summary:          cloneStrings(r.Summary),
		Certifications:   cloneStrings(r.Certifications),
		Achievements:     cloneStrings(r.Achievements),
		TechnicalSkills:  orDefault(r.Skills.Technical, DefaultTechnicalSkills),
		CoreCompetencies: orDefault(r.Skills.Core, DefaultCoreCompetencies),
		Nationality:      orDefault(r.Personal.Nationality, DefaultNationality),
		Languages:        orDefault(r.Personal.Languages, ""),
		VisaStatus:       orDefault(r.Personal.VisaStatus, ""),
		OtherPersonal:    cloneStrings(r.Personal.Other),
	}

	out.Experience = make([]Experience, 0, len(r.Experience))
	for _, exp := range r.Experience {
		exp.Responsibilities = cloneStrings(exp.Responsibilities)
		out.Experience = append(out.Experience, exp)
	}
	out.Education = make([]Education, 0, len(r.Education))
	out.Education = append(out.Education, r.Education...)

	return out
}

func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

func cloneStrings(in []string) []string {
	out := make([]string, 0, len(in))
	return append(out, in...)
}
