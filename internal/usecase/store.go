package usecase

import (
	"sync"

	"resume-builder/internal/domain"
)

// Change is emitted after every slice replacement. Revision increases by one
// per replacement and is never reused within a Store.
type Change struct {
	Slice    domain.Slice
	Revision uint64
}

type Observer func(Change)

// Store owns the ResumeDocument of one editing session. It is the only place
// the document is mutated and it only accepts whole-slice replacements.
// Readers always get copies.
type Store struct {
	mu        sync.Mutex
	doc       domain.ResumeDocument
	rev       uint64
	observers []Observer
}

func NewStore(doc domain.ResumeDocument) *Store {
	return &Store{doc: doc.Clone()}
}

// Subscribe registers o for every future change. Observers run synchronously
// on the mutating goroutine, after the store lock is released.
func (s *Store) Subscribe(o Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

func (s *Store) Document() domain.ResumeDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev
}

func (s *Store) PersonalInfo() domain.PersonalInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.PersonalInfo
}

func (s *Store) Education() []domain.Education {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneSlice(s.doc.Education)
}

func (s *Store) Experience() []domain.Experience {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneSlice(s.doc.Experience)
}

func (s *Store) Skills() []domain.Skill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneSlice(s.doc.Skills)
}

func (s *Store) Projects() []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneSlice(s.doc.Projects)
}

func (s *Store) Awards() []domain.Award {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneSlice(s.doc.Awards)
}

func (s *Store) ReplacePersonalInfo(v domain.PersonalInfo) {
	s.replace(domain.SlicePersonalInfo, func(d *domain.ResumeDocument) { d.PersonalInfo = v })
}

func (s *Store) ReplaceEducation(v []domain.Education) {
	v = domain.CloneSlice(v)
	s.replace(domain.SliceEducation, func(d *domain.ResumeDocument) { d.Education = v })
}

func (s *Store) ReplaceExperience(v []domain.Experience) {
	v = domain.CloneSlice(v)
	s.replace(domain.SliceExperience, func(d *domain.ResumeDocument) { d.Experience = v })
}

func (s *Store) ReplaceSkills(v []domain.Skill) {
	v = domain.CloneSlice(v)
	s.replace(domain.SliceSkills, func(d *domain.ResumeDocument) { d.Skills = v })
}

func (s *Store) ReplaceProjects(v []domain.Project) {
	v = domain.CloneSlice(v)
	s.replace(domain.SliceProjects, func(d *domain.ResumeDocument) { d.Projects = v })
}

func (s *Store) ReplaceAwards(v []domain.Award) {
	v = domain.CloneSlice(v)
	s.replace(domain.SliceAwards, func(d *domain.ResumeDocument) { d.Awards = v })
}

// ReplaceAll swaps in every slice of doc, one change per slice.
func (s *Store) ReplaceAll(doc domain.ResumeDocument) {
	s.ReplacePersonalInfo(doc.PersonalInfo)
	s.ReplaceEducation(doc.Education)
	s.ReplaceExperience(doc.Experience)
	s.ReplaceSkills(doc.Skills)
	s.ReplaceProjects(doc.Projects)
	s.ReplaceAwards(doc.Awards)
}

// UpdatePersonalInfo runs fn on a copy of the personal record under the
// store lock and swaps the result in when fn reports a change.
func (s *Store) UpdatePersonalInfo(fn func(*domain.PersonalInfo) bool) bool {
	return s.update(domain.SlicePersonalInfo, func(d *domain.ResumeDocument) bool {
		info := d.PersonalInfo
		if !fn(&info) {
			return false
		}
		d.PersonalInfo = info
		return true
	})
}

func (s *Store) UpdateEducation(fn func([]domain.Education) ([]domain.Education, bool)) bool {
	return updateList(s, domain.SliceEducation, func(d *domain.ResumeDocument) *[]domain.Education { return &d.Education }, fn)
}

func (s *Store) UpdateExperience(fn func([]domain.Experience) ([]domain.Experience, bool)) bool {
	return updateList(s, domain.SliceExperience, func(d *domain.ResumeDocument) *[]domain.Experience { return &d.Experience }, fn)
}

func (s *Store) UpdateSkills(fn func([]domain.Skill) ([]domain.Skill, bool)) bool {
	return updateList(s, domain.SliceSkills, func(d *domain.ResumeDocument) *[]domain.Skill { return &d.Skills }, fn)
}

func (s *Store) UpdateProjects(fn func([]domain.Project) ([]domain.Project, bool)) bool {
	return updateList(s, domain.SliceProjects, func(d *domain.ResumeDocument) *[]domain.Project { return &d.Projects }, fn)
}

func (s *Store) UpdateAwards(fn func([]domain.Award) ([]domain.Award, bool)) bool {
	return updateList(s, domain.SliceAwards, func(d *domain.ResumeDocument) *[]domain.Award { return &d.Awards }, fn)
}

// updateList hands fn a copy of one sequence slice while the store lock is
// held. A false result leaves the slice untouched and emits nothing.
func updateList[T any](s *Store, slice domain.Slice, field func(*domain.ResumeDocument) *[]T, fn func([]T) ([]T, bool)) bool {
	return s.update(slice, func(d *domain.ResumeDocument) bool {
		dst := field(d)
		next, ok := fn(domain.CloneSlice(*dst))
		if !ok {
			return false
		}
		*dst = domain.CloneSlice(next)
		return true
	})
}

func (s *Store) replace(slice domain.Slice, apply func(*domain.ResumeDocument)) {
	s.update(slice, func(d *domain.ResumeDocument) bool {
		apply(d)
		return true
	})
}

// update mutates the document under the lock and, when apply reports a
// change, bumps the revision and notifies observers after unlocking.
// apply must not call back into the Store.
func (s *Store) update(slice domain.Slice, apply func(*domain.ResumeDocument) bool) bool {
	s.mu.Lock()
	if !apply(&s.doc) {
		s.mu.Unlock()
		return false
	}
	s.rev++
	ch := Change{Slice: slice, Revision: s.rev}
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	for _, o := range observers {
		o(ch)
	}
	return true
}
