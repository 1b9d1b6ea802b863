package usecase

import (
	"fmt"

	"resume-builder/internal/domain"
)

type FieldKind string

const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindTel      FieldKind = "tel"
	KindURL      FieldKind = "url"
	KindMonth    FieldKind = "month"
	KindTextarea FieldKind = "textarea"
	KindSelect   FieldKind = "select"
	KindCheckbox FieldKind = "checkbox"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormField describes one input. Required only drives the "*" marker in the
// client; nothing refuses an empty required field.
type FormField struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
	Disabled    bool      `json:"disabled,omitempty"`
	Value       any       `json:"value"`
	Options     []Option  `json:"options,omitempty"`
}

// Card is one entity of a step, or the single personal info record.
type Card struct {
	ID        string      `json:"id,omitempty"`
	Title     string      `json:"title,omitempty"`
	Removable bool        `json:"removable"`
	Fields    []FormField `json:"fields"`
}

type Form struct {
	Slice    domain.Slice `json:"slice"`
	Cards    []Card       `json:"cards"`
	AddLabel string       `json:"addLabel,omitempty"`
}

var skillLevelOptions = func() []Option {
	out := make([]Option, 0, len(domain.SkillLevels))
	for _, l := range domain.SkillLevels {
		out = append(out, Option{Value: string(l), Label: l.Label()})
	}
	return out
}()

func (e PersonalInfoEditor) Form() Form {
	p := e.Get()
	return Form{
		Slice: domain.SlicePersonalInfo,
		Cards: []Card{{Fields: []FormField{
			{Name: string(PersonalFullName), Label: "Full Name", Kind: KindText, Placeholder: "John Doe", Required: true, Value: p.FullName},
			{Name: string(PersonalEmail), Label: "Email Address", Kind: KindEmail, Placeholder: "john.doe@example.com", Required: true, Value: p.Email},
			{Name: string(PersonalPhone), Label: "Phone Number", Kind: KindTel, Placeholder: "+1 (555) 123-4567", Value: p.Phone},
			{Name: string(PersonalAddress), Label: "Address", Kind: KindText, Placeholder: "City, State, Country", Value: p.Address},
			{Name: string(PersonalSummary), Label: "Professional Summary", Kind: KindTextarea, Placeholder: "Brief description of your professional background and career objectives...", Value: p.Summary},
		}}},
	}
}

// cards builds one card per entity titled "<noun> <n>".
func cards[T entity](items []T, noun string, fields func(T) []FormField) []Card {
	out := make([]Card, 0, len(items))
	removable := len(items) > 1
	for i, it := range items {
		out = append(out, Card{
			ID:        it.EntityID(),
			Title:     fmt.Sprintf("%s %d", noun, i+1),
			Removable: removable,
			Fields:    fields(it),
		})
	}
	return out
}

func (e EducationEditor) Form() Form {
	return Form{
		Slice:    domain.SliceEducation,
		AddLabel: "Add Education",
		Cards: cards(e.Items(), "Education", func(x domain.Education) []FormField {
			return []FormField{
				{Name: string(EducationInstitution), Label: "Institution", Kind: KindText, Placeholder: "University of Example", Required: true, Value: x.Institution},
				{Name: string(EducationDegree), Label: "Degree", Kind: KindText, Placeholder: "Bachelor of Science", Required: true, Value: x.Degree},
				{Name: string(EducationFieldOfStudy), Label: "Field of Study", Kind: KindText, Placeholder: "Computer Science", Value: x.Field},
				{Name: string(EducationGPA), Label: "GPA (Optional)", Kind: KindText, Placeholder: "3.8/4.0", Value: x.GPA},
				{Name: string(EducationStartDate), Label: "Start Date", Kind: KindMonth, Value: x.StartDate},
				{Name: string(EducationEndDate), Label: "End Date", Kind: KindMonth, Value: x.EndDate},
			}
		}),
	}
}

func (e ExperienceEditor) Form() Form {
	return Form{
		Slice:    domain.SliceExperience,
		AddLabel: "Add Experience",
		Cards: cards(e.Items(), "Experience", func(x domain.Experience) []FormField {
			return []FormField{
				{Name: string(ExperienceCompany), Label: "Company", Kind: KindText, Placeholder: "Tech Corp Inc.", Required: true, Value: x.Company},
				{Name: string(ExperiencePosition), Label: "Position", Kind: KindText, Placeholder: "Software Engineer", Required: true, Value: x.Position},
				{Name: string(ExperienceStartDate), Label: "Start Date", Kind: KindMonth, Value: x.StartDate},
				{Name: string(ExperienceEndDate), Label: "End Date", Kind: KindMonth, Value: x.EndDate, Disabled: x.Current},
				{Name: ExperienceCurrentField, Label: "I currently work here", Kind: KindCheckbox, Value: x.Current},
				{Name: string(ExperienceDescription), Label: "Job Description", Kind: KindTextarea, Placeholder: "Describe your responsibilities, achievements, and key contributions...", Value: x.Description},
			}
		}),
	}
}

func (e SkillsEditor) Form() Form {
	return Form{
		Slice:    domain.SliceSkills,
		AddLabel: "Add Skill",
		Cards: cards(e.Items(), "Skill", func(x domain.Skill) []FormField {
			return []FormField{
				{Name: string(SkillName), Label: "Skill Name", Kind: KindText, Placeholder: "JavaScript, Python, Project Management...", Required: true, Value: x.Name},
				{Name: string(SkillLevelField), Label: "Proficiency Level", Kind: KindSelect, Placeholder: "Select level", Value: string(x.Level), Options: skillLevelOptions},
			}
		}),
	}
}

func (e ProjectsEditor) Form() Form {
	return Form{
		Slice:    domain.SliceProjects,
		AddLabel: "Add Project",
		Cards: cards(e.Items(), "Project", func(x domain.Project) []FormField {
			return []FormField{
				{Name: string(ProjectName), Label: "Project Name", Kind: KindText, Placeholder: "E-commerce Website", Required: true, Value: x.Name},
				{Name: string(ProjectURL), Label: "Project URL (Optional)", Kind: KindURL, Placeholder: "https://github.com/username/project", Value: x.URL},
				{Name: string(ProjectTechnologies), Label: "Technologies Used", Kind: KindText, Placeholder: "React, Node.js, MongoDB, AWS", Value: x.Technologies},
				{Name: string(ProjectDescription), Label: "Project Description", Kind: KindTextarea, Placeholder: "Describe the project, your role, key features, and achievements...", Value: x.Description},
			}
		}),
	}
}

func (e AwardsEditor) Form() Form {
	return Form{
		Slice:    domain.SliceAwards,
		AddLabel: "Add Award",
		Cards: cards(e.Items(), "Award", func(x domain.Award) []FormField {
			return []FormField{
				{Name: string(AwardTitle), Label: "Award Title", Kind: KindText, Placeholder: "Employee of the Year", Required: true, Value: x.Title},
				{Name: string(AwardOrganization), Label: "Organization", Kind: KindText, Placeholder: "Tech Corp Inc.", Value: x.Organization},
				{Name: string(AwardDate), Label: "Date Received", Kind: KindMonth, Value: x.Date},
				{Name: string(AwardDescription), Label: "Description", Kind: KindTextarea, Placeholder: "Describe the achievement and its significance...", Value: x.Description},
			}
		}),
	}
}

// Form returns the form of the editor behind slice.
func (e *Editors) Form(slice domain.Slice) (Form, error) {
	switch slice {
	case domain.SlicePersonalInfo:
		return e.Personal.Form(), nil
	case domain.SliceEducation:
		return e.Education.Form(), nil
	case domain.SliceExperience:
		return e.Experience.Form(), nil
	case domain.SliceSkills:
		return e.Skills.Form(), nil
	case domain.SliceProjects:
		return e.Projects.Form(), nil
	case domain.SliceAwards:
		return e.Awards.Form(), nil
	}
	return Form{}, fmt.Errorf("%w: %q", ErrUnknownSlice, slice)
}
