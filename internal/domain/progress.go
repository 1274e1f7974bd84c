package domain

import "time"

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

type UserProgress struct {
	UserID           string
	Level            string
	CompletedLessons []string
	XP               int
	Rank             string
	CreatedAt        time.Time
	ModifiedAt       time.Time
}

func NewUserProgress(userID string) *UserProgress {
	return &UserProgress{
		UserID:           userID,
		Level:            LevelBeginner,
		CompletedLessons: []string{},
		XP:               0,
		Rank:             "Novice",
	}
}

func (p UserProgress) HasCompleted(lessonID string) bool {
	for _, id := range p.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

func (p UserProgress) DeepCopy() *UserProgress {
	out := p
	out.CompletedLessons = append([]string{}, p.CompletedLessons...)
	return &out
}

// AwardXP adds xp and re-derives level and rank.
func (p *UserProgress) AwardXP(xp int) {
	p.XP += xp
	p.Level = LevelForXP(p.XP)
	p.Rank = RankForXP(p.XP)
}

func LevelForXP(xp int) string {
	switch {
	case xp >= 5000:
		return LevelAdvanced
	case xp >= 2000:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}

func RankForXP(xp int) string {
	switch {
	case xp >= 5000:
		return "Master"
	case xp >= 2500:
		return "Expert"
	case xp >= 1000:
		return "Advanced"
	case xp >= 500:
		return "Intermediate"
	case xp >= 100:
		return "Beginner"
	default:
		return "Novice"
	}
}
