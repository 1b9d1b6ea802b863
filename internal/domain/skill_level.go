package domain

import (
	"unicode"
	"unicode/utf8"
)

// SkillLevel is the proficiency of a Skill. Values outside the four known
// levels can arrive from stored records and are kept as-is.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

// DefaultSkillLevel is assigned to newly added skills.
const DefaultSkillLevel = LevelIntermediate

var SkillLevels = []SkillLevel{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

func (l SkillLevel) Known() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	}
	return false
}

// Label capitalises the first letter: "expert" -> "Expert".
func (l SkillLevel) Label() string {
	s := string(l)
	if s == "" {
		return ""
	}
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}
