package usecase

import (
	"errors"
	"fmt"

	"resume-builder/internal/domain"
)

var (
	ErrUnknownSlice = errors.New("unknown slice")
	ErrUnknownField = errors.New("unknown field")
	ErrFieldValue   = errors.New("wrong value type for field")
)

type entity interface {
	EntityID() string
}

// ListEditor edits one sequence slice of the document. Every edit is a
// read, compute and swap done by the Store under its lock, so concurrent
// edits of the same slice never lose each other's work.
type ListEditor[T entity] struct {
	read  func() []T
	edit  func(func([]T) ([]T, bool)) bool
	blank func(id string) T
	newID IDGenerator
}

func newListEditor[T entity](read func() []T, edit func(func([]T) ([]T, bool)) bool, blank func(id string) T, newID IDGenerator) *ListEditor[T] {
	if newID == nil {
		newID = NewEntityID
	}
	return &ListEditor[T]{read: read, edit: edit, blank: blank, newID: newID}
}

func (e *ListEditor[T]) Items() []T { return e.read() }

// Add appends an empty entity with an identifier that no current entity of
// the slice carries.
func (e *ListEditor[T]) Add() T {
	base := e.newID()
	var item T
	e.edit(func(items []T) ([]T, bool) {
		id := base
		for n := 1; indexOf(items, id) >= 0; n++ {
			id = fmt.Sprintf("%s-%d", base, n)
		}
		item = e.blank(id)
		return append(items, item), true
	})
	return item
}

// Remove deletes the entity with the given id. Unknown ids are ignored and
// produce no change.
func (e *ListEditor[T]) Remove(id string) bool {
	return e.edit(func(items []T) ([]T, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, false
		}
		return append(items[:i:i], items[i+1:]...), true
	})
}

// CanRemove reports whether the form should offer removal. The last entity
// of a section is kept by the UI; the store itself accepts empty slices.
func (e *ListEditor[T]) CanRemove() bool {
	return len(e.read()) > 1
}

func (e *ListEditor[T]) update(id string, mutate func(*T)) bool {
	return e.edit(func(items []T) ([]T, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, false
		}
		mutate(&items[i])
		return items, true
	})
}

func indexOf[T entity](items []T, id string) int {
	for i, it := range items {
		if it.EntityID() == id {
			return i
		}
	}
	return -1
}

// textField is a typed field name of entity T holding a string value.
type textField[T any] interface {
	~string
	apply(*T, string) bool
}

func setText[T entity, F textField[T]](e *ListEditor[T], id string, f F, v string) bool {
	var scratch T
	if !f.apply(&scratch, v) {
		return false
	}
	return e.update(id, func(it *T) { f.apply(it, v) })
}

type EducationEditor struct{ *ListEditor[domain.Education] }

func (e EducationEditor) Set(id string, f EducationField, v string) bool {
	return setText(e.ListEditor, id, f, v)
}

type ExperienceEditor struct{ *ListEditor[domain.Experience] }

func (e ExperienceEditor) Set(id string, f ExperienceField, v string) bool {
	return setText(e.ListEditor, id, f, v)
}

// SetCurrent flips the "I currently work here" flag. Turning it on clears
// the end date in the same replacement, so no observer ever sees the flag
// together with a stale end date.
func (e ExperienceEditor) SetCurrent(id string, current bool) bool {
	return e.update(id, func(x *domain.Experience) {
		x.Current = current
		if current {
			x.EndDate = ""
		}
	})
}

type SkillsEditor struct{ *ListEditor[domain.Skill] }

func (e SkillsEditor) Set(id string, f SkillField, v string) bool {
	return setText(e.ListEditor, id, f, v)
}

func (e SkillsEditor) SetLevel(id string, level domain.SkillLevel) bool {
	return e.Set(id, SkillLevelField, string(level))
}

type ProjectsEditor struct{ *ListEditor[domain.Project] }

func (e ProjectsEditor) Set(id string, f ProjectField, v string) bool {
	return setText(e.ListEditor, id, f, v)
}

type AwardsEditor struct{ *ListEditor[domain.Award] }

func (e AwardsEditor) Set(id string, f AwardField, v string) bool {
	return setText(e.ListEditor, id, f, v)
}

// PersonalInfoEditor edits the singleton personal record; it has no add or
// remove.
type PersonalInfoEditor struct {
	store *Store
}

func (e PersonalInfoEditor) Get() domain.PersonalInfo { return e.store.PersonalInfo() }

func (e PersonalInfoEditor) Set(f PersonalField, v string) bool {
	return e.store.UpdatePersonalInfo(func(info *domain.PersonalInfo) bool {
		return f.apply(info, v)
	})
}

// Editors bundles the six step editors of one Store.
type Editors struct {
	Personal   PersonalInfoEditor
	Education  EducationEditor
	Experience ExperienceEditor
	Skills     SkillsEditor
	Projects   ProjectsEditor
	Awards     AwardsEditor
}

func NewEditors(s *Store, newID IDGenerator) *Editors {
	return &Editors{
		Personal: PersonalInfoEditor{store: s},
		Education: EducationEditor{newListEditor(s.Education, s.UpdateEducation, func(id string) domain.Education {
			return domain.Education{ID: id}
		}, newID)},
		Experience: ExperienceEditor{newListEditor(s.Experience, s.UpdateExperience, func(id string) domain.Experience {
			return domain.Experience{ID: id}
		}, newID)},
		Skills: SkillsEditor{newListEditor(s.Skills, s.UpdateSkills, func(id string) domain.Skill {
			return domain.Skill{ID: id, Level: domain.DefaultSkillLevel}
		}, newID)},
		Projects: ProjectsEditor{newListEditor(s.Projects, s.UpdateProjects, func(id string) domain.Project {
			return domain.Project{ID: id}
		}, newID)},
		Awards: AwardsEditor{newListEditor(s.Awards, s.UpdateAwards, func(id string) domain.Award {
			return domain.Award{ID: id}
		}, newID)},
	}
}

// Add appends a blank entity to a sequence slice and returns its id.
func (e *Editors) Add(slice domain.Slice) (string, error) {
	switch slice {
	case domain.SliceEducation:
		return e.Education.Add().ID, nil
	case domain.SliceExperience:
		return e.Experience.Add().ID, nil
	case domain.SliceSkills:
		return e.Skills.Add().ID, nil
	case domain.SliceProjects:
		return e.Projects.Add().ID, nil
	case domain.SliceAwards:
		return e.Awards.Add().ID, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSlice, slice)
}

func (e *Editors) Remove(slice domain.Slice, id string) (bool, error) {
	switch slice {
	case domain.SliceEducation:
		return e.Education.Remove(id), nil
	case domain.SliceExperience:
		return e.Experience.Remove(id), nil
	case domain.SliceSkills:
		return e.Skills.Remove(id), nil
	case domain.SliceProjects:
		return e.Projects.Remove(id), nil
	case domain.SliceAwards:
		return e.Awards.Remove(id), nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownSlice, slice)
}

// SetField applies one field update arriving from the wire. value is a
// string for text fields and a bool for the experience "current" flag. The
// bool result is false when no entity carries id.
func (e *Editors) SetField(slice domain.Slice, id, field string, value any) (bool, error) {
	if slice == domain.SliceExperience && field == ExperienceCurrentField {
		flag, ok := value.(bool)
		if !ok {
			return false, fmt.Errorf("%w: %s.%s wants a boolean", ErrFieldValue, slice, field)
		}
		return e.Experience.SetCurrent(id, flag), nil
	}

	text, ok := value.(string)
	if !ok {
		return false, fmt.Errorf("%w: %s.%s wants a string", ErrFieldValue, slice, field)
	}

	switch slice {
	case domain.SlicePersonalInfo:
		f, ok := ParsePersonalField(field)
		if !ok {
			break
		}
		return e.Personal.Set(f, text), nil
	case domain.SliceEducation:
		f, ok := ParseEducationField(field)
		if !ok {
			break
		}
		return e.Education.Set(id, f, text), nil
	case domain.SliceExperience:
		f, ok := ParseExperienceField(field)
		if !ok {
			break
		}
		return e.Experience.Set(id, f, text), nil
	case domain.SliceSkills:
		f, ok := ParseSkillField(field)
		if !ok {
			break
		}
		return e.Skills.Set(id, f, text), nil
	case domain.SliceProjects:
		f, ok := ParseProjectField(field)
		if !ok {
			break
		}
		return e.Projects.Set(id, f, text), nil
	case domain.SliceAwards:
		f, ok := ParseAwardField(field)
		if !ok {
			break
		}
		return e.Awards.Set(id, f, text), nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownSlice, slice)
	}
	return false, fmt.Errorf("%w: %s.%s", ErrUnknownField, slice, field)
}
