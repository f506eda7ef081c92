package models

import (
	"time"

	"github.com/salamene/horoscope-backend/pkg/zodiac"
)

// CompatibilityPair caches the scores and texts for one pair of signs.
// SignA/SignB are stored in sorted order (SignA <= SignB) so that (leo,aries)
// and (aries,leo) resolve to the same row. Rows are never mutated once
// created.
type CompatibilityPair struct {
	ID    uint        `gorm:"column:id;primaryKey" json:"-"`
	SignA zodiac.Sign `gorm:"column:sign_a;type:varchar(20);not null;uniqueIndex:uniq_sign_pair,priority:1" json:"sign_a"`
	SignB zodiac.Sign `gorm:"column:sign_b;type:varchar(20);not null;uniqueIndex:uniq_sign_pair,priority:2" json:"sign_b"`

	OverallScore    int `gorm:"column:overall_score;not null" json:"overall"`
	LoveScore       int `gorm:"column:love_score;not null" json:"love"`
	CareerScore     int `gorm:"column:career_score;not null" json:"career"`
	FriendshipScore int `gorm:"column:friendship_score;not null" json:"friendship"`

	PreviewText string `gorm:"column:preview_text;type:text;not null" json:"preview"`
	PremiumText string `gorm:"column:premium_text;type:text;not null" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (CompatibilityPair) TableName() string {
	return "compatibility_pairs"
}
