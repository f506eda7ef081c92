package models

import (
	"time"

	"github.com/salamene/horoscope-backend/pkg/zodiac"
)

type PredictionType string

const (
	PredictionTypeDaily   PredictionType = "daily"
	PredictionTypeWeekly  PredictionType = "weekly"
	PredictionTypeMonthly PredictionType = "monthly"
	PredictionTypeYearly  PredictionType = "yearly"
)

// Prediction caches generated horoscope content. Rows are created lazily on
// first request for a (sign, type, date key) and never mutated afterwards;
// the unique index is what makes concurrent first requests converge on one
// row.
type Prediction struct {
	ID             uint           `gorm:"column:id;primaryKey" json:"-"`
	Sign           zodiac.Sign    `gorm:"column:sign;type:varchar(20);not null;uniqueIndex:uniq_prediction_key,priority:1" json:"sign"`
	PredictionType PredictionType `gorm:"column:prediction_type;type:varchar(10);not null;uniqueIndex:uniq_prediction_key,priority:2" json:"-"`
	// DateKey format depends on type: YYYY-MM-DD, YYYY-Wxx, YYYY-MM, or YYYY.
	DateKey string `gorm:"column:date_key;type:varchar(20);not null;uniqueIndex:uniq_prediction_key,priority:3" json:"-"`
	Text    string `gorm:"column:text;type:text;not null" json:"text"`

	// Daily-only extras.
	LuckyNumber *int   `gorm:"column:lucky_number" json:"lucky_number,omitempty"`
	LuckyColor  string `gorm:"column:lucky_color;type:varchar(50)" json:"lucky_color,omitempty"`
	Mood        string `gorm:"column:mood;type:varchar(50)" json:"mood,omitempty"`
	LoveScore   *int   `gorm:"column:love_score" json:"-"`
	CareerScore *int   `gorm:"column:career_score" json:"-"`
	HealthScore *int   `gorm:"column:health_score" json:"-"`

	// Premium marks content gated behind an active subscription.
	Premium bool `gorm:"column:premium;not null;default:false" json:"premium"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Prediction) TableName() string {
	return "predictions"
}
