package usecase

import (
	"testing"

	"resume-builder/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSequencerBounds(t *testing.T) {
	s := NewSequencer()
	assert.Equal(t, 1, s.Current())
	assert.True(t, s.IsFirst())

	assert.Equal(t, 1, s.Previous())

	for i := 2; i <= 6; i++ {
		assert.Equal(t, i, s.Next())
	}
	assert.True(t, s.IsLast())
	assert.Equal(t, 6, s.Next())
	assert.Equal(t, domain.SliceAwards, s.Step().Slice)

	assert.Equal(t, 5, s.Previous())
	assert.False(t, s.IsLast())
}

func TestSequencerProgress(t *testing.T) {
	s := NewSequencer()
	s.Next()
	s.Next()

	assert.Equal(t, 3, s.Current())
	assert.InDelta(t, 0.5, s.Progress(), 1e-9)
	assert.Equal(t, 50, s.Percent())
	assert.Equal(t, "Experience", s.Step().Title)

	s.Previous()
	s.Previous()
	assert.Equal(t, 17, s.Percent())
}

func TestStepsCoverEverySlice(t *testing.T) {
	got := make([]domain.Slice, 0, len(Steps))
	for i, st := range Steps {
		assert.Equal(t, i+1, st.Number)
		got = append(got, st.Slice)
	}
	assert.Equal(t, domain.Slices, got)
}
