package usecase

import (
	"testing"

	"resume-builder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreNotifiesEveryReplacement(t *testing.T) {
	s := NewStore(domain.ResumeDocument{})
	var got []Change
	s.Subscribe(func(c Change) { got = append(got, c) })

	s.ReplaceSkills([]domain.Skill{{ID: "a", Name: "Go"}})
	s.ReplaceSkills([]domain.Skill{{ID: "a", Name: "Go"}})
	s.ReplacePersonalInfo(domain.PersonalInfo{FullName: "Ada"})

	require.Len(t, got, 3)
	assert.Equal(t, Change{Slice: domain.SliceSkills, Revision: 1}, got[0])
	assert.Equal(t, Change{Slice: domain.SliceSkills, Revision: 2}, got[1])
	assert.Equal(t, Change{Slice: domain.SlicePersonalInfo, Revision: 3}, got[2])
	assert.Equal(t, uint64(3), s.Revision())
}

func TestStoreReadersGetCopies(t *testing.T) {
	s := NewStore(domain.ResumeDocument{})
	s.ReplaceEducation([]domain.Education{{ID: "e", Institution: "MIT"}})

	edu := s.Education()
	edu[0].Institution = "changed"
	doc := s.Document()
	doc.Education[0].Institution = "changed too"

	assert.Equal(t, "MIT", s.Education()[0].Institution)
}

func TestStoreKeepsNoReferenceToInput(t *testing.T) {
	s := NewStore(domain.ResumeDocument{})
	in := []domain.Award{{ID: "a", Title: "Medal"}}
	s.ReplaceAwards(in)
	in[0].Title = "mutated"

	assert.Equal(t, "Medal", s.Awards()[0].Title)
}

func TestStoreReplaceAllEmitsPerSlice(t *testing.T) {
	s := NewStore(domain.ResumeDocument{})
	var slices []domain.Slice
	s.Subscribe(func(c Change) { slices = append(slices, c.Slice) })

	s.ReplaceAll(domain.ResumeDocument{PersonalInfo: domain.PersonalInfo{FullName: "Ada"}})

	assert.ElementsMatch(t, domain.Slices, slices)
	assert.Equal(t, "Ada", s.PersonalInfo().FullName)
	assert.NotNil(t, s.Projects())
	assert.Empty(t, s.Projects())
}

func TestObserverMayReadStore(t *testing.T) {
	s := NewStore(domain.ResumeDocument{})
	var seen string
	s.Subscribe(func(Change) { seen = s.PersonalInfo().Email })

	s.ReplacePersonalInfo(domain.PersonalInfo{Email: "a@b.c"})

	assert.Equal(t, "a@b.c", seen)
}

func TestStoreUpdate(t *testing.T) {
	s := NewStore(domain.ResumeDocument{Skills: []domain.Skill{{ID: "a", Name: "Go"}}})
	var got []Change
	s.Subscribe(func(c Change) { got = append(got, c) })

	var kept []domain.Skill
	assert.False(t, s.UpdateSkills(func(items []domain.Skill) ([]domain.Skill, bool) {
		items[0].Name = "changed"
		kept = items
		return nil, false
	}))
	assert.Equal(t, "Go", s.Skills()[0].Name)
	assert.Empty(t, got)

	assert.True(t, s.UpdateSkills(func(items []domain.Skill) ([]domain.Skill, bool) {
		return append(items, domain.Skill{ID: "b"}), true
	}))
	require.Len(t, got, 1)
	assert.Equal(t, Change{Slice: domain.SliceSkills, Revision: 1}, got[0])
	assert.Len(t, s.Skills(), 2)

	// the copy handed to a rejected update is not the store's slice
	kept[0].Name = "again"
	assert.Equal(t, "Go", s.Skills()[0].Name)

	assert.True(t, s.UpdatePersonalInfo(func(p *domain.PersonalInfo) bool {
		p.FullName = "Ada"
		return true
	}))
	assert.Equal(t, "Ada", s.PersonalInfo().FullName)
	assert.Equal(t, uint64(2), s.Revision())
}
