package usecase

import (
	"fmt"
	"strings"

	"resume-builder/internal/domain"
)

// StepReport lists the required-marked fields a step leaves empty. Reports
// are shown to the user and never block navigation or saving.
type StepReport struct {
	Step     int      `json:"step"`
	Title    string   `json:"title"`
	Complete bool     `json:"complete"`
	Missing  []string `json:"missing"`
}

type required struct {
	name  string
	value string
}

func missingOf(prefix string, fields ...required) []string {
	var out []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			out = append(out, prefix+f.name)
		}
	}
	return out
}

func checkList[T any](slice domain.Slice, items []T, fields func(T) []required) []string {
	var out []string
	for i, it := range items {
		out = append(out, missingOf(fmt.Sprintf("%s[%d].", slice, i), fields(it)...)...)
	}
	return out
}

// CheckStep reports on step n (1-based) of doc.
func CheckStep(n int, doc domain.ResumeDocument) StepReport {
	if n < 1 || n > len(Steps) {
		return StepReport{Step: n, Complete: true, Missing: []string{}}
	}
	step := Steps[n-1]

	var missing []string
	switch step.Slice {
	case domain.SlicePersonalInfo:
		missing = missingOf(string(domain.SlicePersonalInfo)+".",
			required{"fullName", doc.PersonalInfo.FullName},
			required{"email", doc.PersonalInfo.Email})
	case domain.SliceEducation:
		missing = checkList(step.Slice, doc.Education, func(e domain.Education) []required {
			return []required{{"institution", e.Institution}, {"degree", e.Degree}}
		})
	case domain.SliceExperience:
		missing = checkList(step.Slice, doc.Experience, func(e domain.Experience) []required {
			return []required{{"company", e.Company}, {"position", e.Position}}
		})
	case domain.SliceSkills:
		missing = checkList(step.Slice, doc.Skills, func(s domain.Skill) []required {
			return []required{{"name", s.Name}}
		})
	case domain.SliceProjects:
		missing = checkList(step.Slice, doc.Projects, func(p domain.Project) []required {
			return []required{{"name", p.Name}}
		})
	case domain.SliceAwards:
		missing = checkList(step.Slice, doc.Awards, func(a domain.Award) []required {
			return []required{{"title", a.Title}}
		})
	}
	if missing == nil {
		missing = []string{}
	}
	return StepReport{Step: step.Number, Title: step.Title, Complete: len(missing) == 0, Missing: missing}
}

func CheckAll(doc domain.ResumeDocument) []StepReport {
	out := make([]StepReport, 0, len(Steps))
	for _, s := range Steps {
		out = append(out, CheckStep(s.Number, doc))
	}
	return out
}
