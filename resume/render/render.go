package render

import (
	"github.com/Suhaibk137/atsclaude/resume/model"
)

// Section header labels. "EDUCATON" is emitted as-is; downstream consumers
// match on the exact text.
const (
	HeadingExperience     = "EXPERIENCE"
	HeadingEducation      = "EDUCATON"
	HeadingCertifications = "CERTIFICATIONS"
	HeadingAchievements   = "KEY ACHIEVEMENTS"
	HeadingSkills         = "SKILLS"
	HeadingPersonal       = "PERSONAL DETAILS"
)

// Render maps a record onto the fixed resume layout. It is a pure function of
// its input.
func Render(record model.ResumeRecord) Document {
	r := model.Resolve(record)
	var doc Document

	doc.add(Block{
		Runs:         []Run{styled("name", r.Name)},
		Align:        AlignCenter,
		SpacingAfter: SpacingItem,
	})
	doc.add(Block{
		Runs:  []Run{styled("contact", r.Location+"|"+r.Phone)},
		Align: AlignCenter,
	})
	doc.add(Block{
		Runs:         []Run{styled("email", r.Email)},
		Align:        AlignCenter,
		SpacingAfter: SpacingSection,
	})

	for i, paragraph := range r.Summary {
		doc.add(Block{
			Runs:         []Run{styled("body", paragraph)},
			Align:        AlignJustify,
			SpacingAfter: gapAfter(i, len(r.Summary)),
		})
	}

	doc.heading(HeadingExperience)
	renderExperience(&doc, r.Experience)

	doc.heading(HeadingEducation)
	for i, edu := range r.Education {
		doc.add(Block{
			Runs:  []Run{styled("roleLine", edu.Degree)},
			Align: AlignLeft,
		})
		doc.add(Block{
			Runs:         []Run{styled("body", edu.Institution+" | "+edu.Year)},
			Align:        AlignLeft,
			SpacingAfter: gapAfter(i, len(r.Education)),
		})
	}

	if len(r.Certifications) > 0 {
		doc.heading(HeadingCertifications)
		doc.bullets(r.Certifications)
	}
	if len(r.Achievements) > 0 {
		doc.heading(HeadingAchievements)
		doc.bullets(r.Achievements)
	}

	doc.heading(HeadingSkills)
	doc.add(Block{
		Runs:         []Run{styled("label", "Technical skills: "), styled("body", r.TechnicalSkills)},
		Align:        AlignJustify,
		SpacingAfter: SpacingItem,
	})
	doc.add(Block{
		Runs:         []Run{styled("label", "Core competencies: "), styled("body", r.CoreCompetencies)},
		Align:        AlignJustify,
		SpacingAfter: SpacingSection,
	})

	doc.heading(HeadingPersonal)
	doc.bullet("Nationality: "+r.Nationality, SpacingItem)
	if r.Languages != "" {
		doc.bullet("Languages: "+r.Languages, SpacingItem)
	}
	if r.VisaStatus != "" {
		doc.bullet("Visa Status: "+r.VisaStatus, SpacingItem)
	}
	for _, other := range r.OtherPersonal {
		doc.bullet(other, SpacingItem)
	}

	return doc
}

// renderExperience widens the gap after a job only when another job follows.
func renderExperience(doc *Document, jobs []model.Experience) {
	for j, job := range jobs {
		lastJob := j == len(jobs)-1
		closing := SpacingSection
		if lastJob {
			closing = SpacingItem
		}

		doc.add(Block{
			Runs: []Run{
				styled("roleLine", job.Title),
				styled("body", DatePadding+job.Dates),
			},
			Align: AlignLeft,
		})

		companyAfter := SpacingNone
		if len(job.Responsibilities) == 0 {
			companyAfter = closing
		}
		doc.add(Block{
			Runs:         []Run{styled("body", job.Company)},
			Align:        AlignLeft,
			SpacingAfter: companyAfter,
		})

		for i, resp := range job.Responsibilities {
			after := SpacingItem
			if i == len(job.Responsibilities)-1 {
				after = closing
			}
			doc.bullet(resp, after)
		}
	}
}

// gapAfter returns the section gap for the last of n items and the item gap
// otherwise.
func gapAfter(i, n int) int {
	if i == n-1 {
		return SpacingSection
	}
	return SpacingItem
}

func (d *Document) add(b Block) {
	d.Blocks = append(d.Blocks, b)
}

func (d *Document) heading(label string) {
	d.add(Block{
		Runs:          []Run{styled("sectionHeading", label)},
		Align:         AlignLeft,
		SpacingBefore: HeadingBefore,
		SpacingAfter:  HeadingAfter,
	})
}

func (d *Document) bullet(text string, after int) {
	d.add(Block{
		Runs:         []Run{styled("body", text)},
		Align:        AlignLeft,
		SpacingAfter: after,
		Bullet:       true,
	})
}

func (d *Document) bullets(items []string) {
	for i, item := range items {
		d.bullet(item, gapAfter(i, len(items)))
	}
}
