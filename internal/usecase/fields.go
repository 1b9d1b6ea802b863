package usecase

import "resume-builder/internal/domain"

// Field names match the JSON names of the entity structs. Each field type
// only admits the fields of its own entity.

type PersonalField string

const (
	PersonalFullName PersonalField = "fullName"
	PersonalEmail    PersonalField = "email"
	PersonalPhone    PersonalField = "phone"
	PersonalAddress  PersonalField = "address"
	PersonalSummary  PersonalField = "summary"
)

func (f PersonalField) apply(p *domain.PersonalInfo, v string) bool {
	switch f {
	case PersonalFullName:
		p.FullName = v
	case PersonalEmail:
		p.Email = v
	case PersonalPhone:
		p.Phone = v
	case PersonalAddress:
		p.Address = v
	case PersonalSummary:
		p.Summary = v
	default:
		return false
	}
	return true
}

type EducationField string

const (
	EducationInstitution  EducationField = "institution"
	EducationDegree       EducationField = "degree"
	EducationFieldOfStudy EducationField = "field"
	EducationStartDate    EducationField = "startDate"
	EducationEndDate      EducationField = "endDate"
	EducationGPA          EducationField = "gpa"
)

func (f EducationField) apply(e *domain.Education, v string) bool {
	switch f {
	case EducationInstitution:
		e.Institution = v
	case EducationDegree:
		e.Degree = v
	case EducationFieldOfStudy:
		e.Field = v
	case EducationStartDate:
		e.StartDate = v
	case EducationEndDate:
		e.EndDate = v
	case EducationGPA:
		e.GPA = v
	default:
		return false
	}
	return true
}

// ExperienceField covers the text fields; the current flag goes through
// ExperienceEditor.SetCurrent.
type ExperienceField string

const (
	ExperienceCompany     ExperienceField = "company"
	ExperiencePosition    ExperienceField = "position"
	ExperienceStartDate   ExperienceField = "startDate"
	ExperienceEndDate     ExperienceField = "endDate"
	ExperienceDescription ExperienceField = "description"
)

const ExperienceCurrentField = "current"

func (f ExperienceField) apply(e *domain.Experience, v string) bool {
	switch f {
	case ExperienceCompany:
		e.Company = v
	case ExperiencePosition:
		e.Position = v
	case ExperienceStartDate:
		e.StartDate = v
	case ExperienceEndDate:
		e.EndDate = v
	case ExperienceDescription:
		e.Description = v
	default:
		return false
	}
	return true
}

type SkillField string

const (
	SkillName       SkillField = "name"
	SkillLevelField SkillField = "level"
)

func (f SkillField) apply(s *domain.Skill, v string) bool {
	switch f {
	case SkillName:
		s.Name = v
	case SkillLevelField:
		s.Level = domain.SkillLevel(v)
	default:
		return false
	}
	return true
}

type ProjectField string

const (
	ProjectName         ProjectField = "name"
	ProjectDescription  ProjectField = "description"
	ProjectTechnologies ProjectField = "technologies"
	ProjectURL          ProjectField = "url"
)

func (f ProjectField) apply(p *domain.Project, v string) bool {
	switch f {
	case ProjectName:
		p.Name = v
	case ProjectDescription:
		p.Description = v
	case ProjectTechnologies:
		p.Technologies = v
	case ProjectURL:
		p.URL = v
	default:
		return false
	}
	return true
}

type AwardField string

const (
	AwardTitle        AwardField = "title"
	AwardOrganization AwardField = "organization"
	AwardDate         AwardField = "date"
	AwardDescription  AwardField = "description"
)

func (f AwardField) apply(a *domain.Award, v string) bool {
	switch f {
	case AwardTitle:
		a.Title = v
	case AwardOrganization:
		a.Organization = v
	case AwardDate:
		a.Date = v
	case AwardDescription:
		a.Description = v
	default:
		return false
	}
	return true
}

func ParsePersonalField(s string) (PersonalField, bool) {
	f := PersonalField(s)
	var scratch domain.PersonalInfo
	return f, f.apply(&scratch, "")
}

func ParseEducationField(s string) (EducationField, bool) {
	f := EducationField(s)
	var scratch domain.Education
	return f, f.apply(&scratch, "")
}

func ParseExperienceField(s string) (ExperienceField, bool) {
	f := ExperienceField(s)
	var scratch domain.Experience
	return f, f.apply(&scratch, "")
}

func ParseSkillField(s string) (SkillField, bool) {
	f := SkillField(s)
	var scratch domain.Skill
	return f, f.apply(&scratch, "")
}

func ParseProjectField(s string) (ProjectField, bool) {
	f := ProjectField(s)
	var scratch domain.Project
	return f, f.apply(&scratch, "")
}

func ParseAwardField(s string) (AwardField, bool) {
	f := AwardField(s)
	var scratch domain.Award
	return f, f.apply(&scratch, "")
}
