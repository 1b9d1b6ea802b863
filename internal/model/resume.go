package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-builder/internal/domain"
)

// Record is the persisted snapshot of a ResumeDocument: one row per user,
// each slice stored as its own JSON column plus the last-modified time.
type Record struct {
	UserID       string              `json:"user_id"`
	PersonalInfo domain.PersonalInfo `json:"personal_info"`
	Education    []domain.Education  `json:"education"`
	Experience   []domain.Experience `json:"experience"`
	Skills       []domain.Skill      `json:"skills"`
	Projects     []domain.Project    `json:"projects"`
	Awards       []domain.Award      `json:"awards"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func NewRecord(id domain.Identity, doc domain.ResumeDocument, now time.Time) *Record {
	doc = doc.Clone()
	return &Record{
		UserID:       id.String(),
		PersonalInfo: doc.PersonalInfo,
		Education:    doc.Education,
		Experience:   doc.Experience,
		Skills:       doc.Skills,
		Projects:     doc.Projects,
		Awards:       doc.Awards,
		UpdatedAt:    now.UTC(),
	}
}

// Document converts the record back into an editable document. Nil slices
// become empty ones.
func (r *Record) Document() domain.ResumeDocument {
	return domain.ResumeDocument{
		PersonalInfo: r.PersonalInfo,
		Education:    domain.CloneSlice(r.Education),
		Experience:   domain.CloneSlice(r.Experience),
		Skills:       domain.CloneSlice(r.Skills),
		Projects:     domain.CloneSlice(r.Projects),
		Awards:       domain.CloneSlice(r.Awards),
	}
}

// RawRecord holds the row as stored: JSON columns still encoded. Any column
// may be nil when the row was written by an older client.
type RawRecord struct {
	UserID       string
	PersonalInfo []byte
	Education    []byte
	Experience   []byte
	Skills       []byte
	Projects     []byte
	Awards       []byte
	UpdatedAt    time.Time
}

// Encode marshals every slice into its column form.
func (r *Record) Encode() (RawRecord, error) {
	raw := RawRecord{UserID: r.UserID, UpdatedAt: r.UpdatedAt}
	cols := []struct {
		dst *[]byte
		v   interface{}
	}{
		{&raw.PersonalInfo, r.PersonalInfo},
		{&raw.Education, nonNil(r.Education)},
		{&raw.Experience, nonNil(r.Experience)},
		{&raw.Skills, nonNil(r.Skills)},
		{&raw.Projects, nonNil(r.Projects)},
		{&raw.Awards, nonNil(r.Awards)},
	}
	for _, c := range cols {
		b, err := json.Marshal(c.v)
		if err != nil {
			return RawRecord{}, err
		}
		*c.dst = b
	}
	return raw, nil
}

// Decode is lenient: a missing or unreadable column falls back to its empty
// default, a list element that is not an object is dropped, and a field of
// the wrong type is zeroed while the rest of its entity is kept. Every
// fallback is reported in problems; none of them is an error.
func (raw RawRecord) Decode() (rec *Record, problems []string) {
	rec = &Record{UserID: raw.UserID, UpdatedAt: raw.UpdatedAt}

	if !isNull(raw.PersonalInfo) {
		info, ok, p := decodeEntity[domain.PersonalInfo]("personal_info", raw.PersonalInfo)
		problems = append(problems, p...)
		if ok {
			rec.PersonalInfo = info
		}
	}

	rec.Education, problems = decodeList[domain.Education]("education", raw.Education, problems)
	rec.Experience, problems = decodeList[domain.Experience]("experience", raw.Experience, problems)
	rec.Skills, problems = decodeList[domain.Skill]("skills", raw.Skills, problems)
	rec.Projects, problems = decodeList[domain.Project]("projects", raw.Projects, problems)
	rec.Awards, problems = decodeList[domain.Award]("awards", raw.Awards, problems)
	return rec, problems
}

func decodeList[T any](name string, b []byte, problems []string) ([]T, []string) {
	out := []T{}
	if isNull(b) {
		return out, problems
	}
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return out, append(problems, fmt.Sprintf("%s: %v", name, err))
	}
	for i, it := range items {
		v, ok, p := decodeEntity[T](fmt.Sprintf("%s[%d]", name, i), it)
		problems = append(problems, p...)
		if ok {
			out = append(out, v)
		}
	}
	return out, problems
}

// decodeEntity reads one JSON object into T. When the object as a whole does
// not fit, it is retried field by field and the fields that do not fit are
// left out. ok is false only when b is not an object at all.
func decodeEntity[T any](name string, b []byte) (v T, ok bool, problems []string) {
	if err := json.Unmarshal(b, &v); err == nil {
		return v, true, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil || fields == nil {
		if err == nil {
			err = errors.New("not an object")
		}
		return v, false, []string{fmt.Sprintf("%s: %v", name, err)}
	}

	var zero T
	v = zero
	for key, val := range fields {
		single, _ := json.Marshal(map[string]json.RawMessage{key: val})
		var trial T
		if err := json.Unmarshal(single, &trial); err != nil {
			problems = append(problems, fmt.Sprintf("%s.%s: %v", name, key, err))
			continue
		}
		// only key is set in single, so this never touches other fields
		_ = json.Unmarshal(single, &v)
	}
	return v, true, problems
}

func isNull(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
