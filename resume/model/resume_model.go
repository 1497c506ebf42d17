package model

// ResumeRecord is the structured resume returned by the structuring client.
// Every field is optional; Resolve supplies the documented defaults.
type ResumeRecord struct {
	Name           string       `json:"name"`
	Location       string       `json:"location"`
	Phone          string       `json:"phone"`
	Email          string       `json:"email"`
	Summary        []string     `json:"summary"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Certifications []string     `json:"certifications"`
	Achievements   []string     `json:"achievements"`
	Skills         Skills       `json:"skills"`
	Personal       Personal     `json:"personal"`
}

// Experience represents a work history entry.
type Experience struct {
	Title            string   `json:"title"`
	Dates            string   `json:"dates"`
	Company          string   `json:"company"`
	Responsibilities []string `json:"responsibilities"`
}

// Education represents an education entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Skills groups the two free-text skill lines.
type Skills struct {
	Technical string `json:"technical"`
	Core      string `json:"core"`
}

// Personal holds the personal details section.
type Personal struct {
	Nationality string   `json:"nationality"`
	Languages   string   `json:"languages"`
	VisaStatus  string   `json:"visaStatus"`
	Other       []string `json:"other"`
}
