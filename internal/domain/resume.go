package domain

// Slice names one top-level section of a ResumeDocument. The values match
// the JSON field names used by the browser client.
type Slice string

const (
	SlicePersonalInfo Slice = "personalInfo"
	SliceEducation    Slice = "education"
	SliceExperience   Slice = "experience"
	SliceSkills       Slice = "skills"
	SliceProjects     Slice = "projects"
	SliceAwards       Slice = "awards"
)

// Slices lists every slice in document order.
var Slices = []Slice{SlicePersonalInfo, SliceEducation, SliceExperience, SliceSkills, SliceProjects, SliceAwards}

type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Summary  string `json:"summary"`
}

type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	GPA         string `json:"gpa,omitempty"`
}

// Experience is one position. When Current is set EndDate is ignored even if
// a stale value is still stored.
type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
	Current     bool   `json:"current"`
}

type Skill struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

// Project.Technologies is free text, usually comma separated.
type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	URL          string `json:"url,omitempty"`
}

type Award struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Date         string `json:"date"`
	Description  string `json:"description"`
}

func (e Education) EntityID() string  { return e.ID }
func (e Experience) EntityID() string { return e.ID }
func (s Skill) EntityID() string      { return s.ID }
func (p Project) EntityID() string    { return p.ID }
func (a Award) EntityID() string      { return a.ID }

// ResumeDocument is the root aggregate edited during one session. Insertion
// order of every sequence is display order. The zero value is a valid empty
// document.
type ResumeDocument struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Education    []Education  `json:"education"`
	Experience   []Experience `json:"experience"`
	Skills       []Skill      `json:"skills"`
	Projects     []Project    `json:"projects"`
	Awards       []Award      `json:"awards"`
}

// Clone returns a deep copy. Entities hold only value fields so copying the
// backing arrays is enough.
func (d ResumeDocument) Clone() ResumeDocument {
	return ResumeDocument{
		PersonalInfo: d.PersonalInfo,
		Education:    CloneSlice(d.Education),
		Experience:   CloneSlice(d.Experience),
		Skills:       CloneSlice(d.Skills),
		Projects:     CloneSlice(d.Projects),
		Awards:       CloneSlice(d.Awards),
	}
}

// CloneSlice copies s into a new non-nil slice.
func CloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
