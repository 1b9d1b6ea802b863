package render

import (
	"net/url"
	"strings"

	"resume-builder/internal/domain"

	"golang.org/x/net/publicsuffix"
)

const (
	NamePlaceholder  = "Your Name"
	PresentLabel     = "Present"
	ProjectLinkLabel = "View Project"

	SectionExperience = "Experience"
	SectionEducation  = "Education"
	SectionSkills     = "Skills"
	SectionProjects   = "Projects"
	SectionAwards     = "Awards & Achievements"
)

// Skill level tags. Unknown or empty levels get TagDefault.
const (
	TagBeginner     = "level-beginner"
	TagIntermediate = "level-intermediate"
	TagAdvanced     = "level-advanced"
	TagExpert       = "level-expert"
	TagDefault      = "level-default"
)

// Preview is the display-ready form of a ResumeDocument. A nil section
// slice means the section is not shown.
type Preview struct {
	Header     Header           `json:"header"`
	Experience []ExperienceItem `json:"experience,omitempty"`
	Education  []EducationItem  `json:"education,omitempty"`
	Skills     []SkillItem      `json:"skills,omitempty"`
	Projects   []ProjectItem    `json:"projects,omitempty"`
	Awards     []AwardItem      `json:"awards,omitempty"`
}

type Header struct {
	Name        string   `json:"name"`
	Placeholder bool     `json:"placeholder"`
	Contacts    []string `json:"contacts"`
	Summary     string   `json:"summary,omitempty"`
}

type ExperienceItem struct {
	ID          string `json:"id"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	Dates       string `json:"dates"`
	Description string `json:"description,omitempty"`
}

type EducationItem struct {
	ID          string `json:"id"`
	Heading     string `json:"heading"`
	Institution string `json:"institution"`
	GPA         string `json:"gpa,omitempty"`
	Dates       string `json:"dates"`
}

type SkillItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
	Tag   string `json:"tag"`
}

type ProjectItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	URL          string `json:"url,omitempty"`
	LinkLabel    string `json:"linkLabel,omitempty"`
	Host         string `json:"host,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	Description  string `json:"description,omitempty"`
}

type AwardItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Organization string `json:"organization,omitempty"`
	Date         string `json:"date,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Sections lists the titles of the sections that are shown, in order.
func (p Preview) Sections() []string {
	var out []string
	if len(p.Experience) > 0 {
		out = append(out, SectionExperience)
	}
	if len(p.Education) > 0 {
		out = append(out, SectionEducation)
	}
	if len(p.Skills) > 0 {
		out = append(out, SectionSkills)
	}
	if len(p.Projects) > 0 {
		out = append(out, SectionProjects)
	}
	if len(p.Awards) > 0 {
		out = append(out, SectionAwards)
	}
	return out
}

// Build renders doc. It is a pure function of doc.
func Build(doc domain.ResumeDocument) Preview {
	p := Preview{Header: header(doc.PersonalInfo)}

	for _, x := range doc.Experience {
		end := FormatMonth(x.EndDate)
		if x.Current {
			end = PresentLabel
		}
		p.Experience = append(p.Experience, ExperienceItem{
			ID:          x.ID,
			Position:    x.Position,
			Company:     x.Company,
			Dates:       dateRange(FormatMonth(x.StartDate), end),
			Description: x.Description,
		})
	}

	for _, e := range doc.Education {
		heading := e.Degree
		if e.Field != "" {
			heading = strings.TrimSpace(e.Degree + " in " + e.Field)
		}
		p.Education = append(p.Education, EducationItem{
			ID:          e.ID,
			Heading:     heading,
			Institution: e.Institution,
			GPA:         e.GPA,
			Dates:       dateRange(FormatMonth(e.StartDate), FormatMonth(e.EndDate)),
		})
	}

	for _, s := range doc.Skills {
		p.Skills = append(p.Skills, SkillItem{
			ID:    s.ID,
			Name:  s.Name,
			Label: s.Level.Label(),
			Tag:   SkillTag(s.Level),
		})
	}

	for _, pr := range doc.Projects {
		item := ProjectItem{
			ID:           pr.ID,
			Name:         pr.Name,
			Technologies: pr.Technologies,
			Description:  pr.Description,
		}
		if u := strings.TrimSpace(pr.URL); u != "" {
			item.URL = u
			item.LinkLabel = ProjectLinkLabel
			item.Host = hostLabel(u)
		}
		p.Projects = append(p.Projects, item)
	}

	for _, a := range doc.Awards {
		p.Awards = append(p.Awards, AwardItem{
			ID:           a.ID,
			Title:        a.Title,
			Organization: a.Organization,
			Date:         FormatMonth(a.Date),
			Description:  a.Description,
		})
	}

	return p
}

func header(pi domain.PersonalInfo) Header {
	h := Header{Name: pi.FullName, Summary: pi.Summary, Contacts: []string{}}
	if h.Name == "" {
		h.Name = NamePlaceholder
		h.Placeholder = true
	}
	for _, c := range []string{pi.Email, pi.Phone, pi.Address} {
		if c != "" {
			h.Contacts = append(h.Contacts, c)
		}
	}
	return h
}

func SkillTag(l domain.SkillLevel) string {
	if !l.Known() {
		return TagDefault
	}
	return "level-" + string(l)
}

// hostLabel shortens a project URL to its registrable domain, e.g.
// "https://www.github.com/u/p" -> "github.com".
func hostLabel(raw string) string {
	candidate := raw
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return ""
	}
	host := parsed.Hostname()
	if host == "" {
		return ""
	}
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}
