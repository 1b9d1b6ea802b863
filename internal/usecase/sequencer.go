package usecase

import (
	"math"
	"sync"

	"resume-builder/internal/domain"
)

type Step struct {
	Number      int          `json:"number"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Slice       domain.Slice `json:"slice"`
}

// Steps is the fixed wizard order. The last step offers Export instead of
// Next.
var Steps = []Step{
	{Number: 1, Title: "Personal Info", Description: "Basic information", Slice: domain.SlicePersonalInfo},
	{Number: 2, Title: "Education", Description: "Academic background", Slice: domain.SliceEducation},
	{Number: 3, Title: "Experience", Description: "Work history", Slice: domain.SliceExperience},
	{Number: 4, Title: "Skills", Description: "Technical & soft skills", Slice: domain.SliceSkills},
	{Number: 5, Title: "Projects", Description: "Portfolio projects", Slice: domain.SliceProjects},
	{Number: 6, Title: "Awards", Description: "Achievements & honors", Slice: domain.SliceAwards},
}

// Sequencer tracks the active step. Navigation is linear; moving past either
// end is a no-op.
type Sequencer struct {
	mu      sync.Mutex
	current int
}

func NewSequencer() *Sequencer { return &Sequencer{current: 1} }

func (s *Sequencer) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Sequencer) Step() Step { return Steps[s.Current()-1] }

func (s *Sequencer) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current < len(Steps) {
		s.current++
	}
	return s.current
}

func (s *Sequencer) Previous() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current > 1 {
		s.current--
	}
	return s.current
}

func (s *Sequencer) IsFirst() bool { return s.Current() == 1 }

func (s *Sequencer) IsLast() bool { return s.Current() == len(Steps) }

// Progress is current/N.
func (s *Sequencer) Progress() float64 {
	return float64(s.Current()) / float64(len(Steps))
}

// Percent is Progress as the rounded percentage shown next to the bar.
func (s *Sequencer) Percent() int {
	return int(math.Round(s.Progress() * 100))
}
