package models

import (
	"fmt"
	"time"

	"github.com/salamene/horoscope-backend/pkg/zodiac"
)

type SubscriptionStatus string

const (
	SubscriptionStatusNone    SubscriptionStatus = "none"
	SubscriptionStatusActive  SubscriptionStatus = "active"
	SubscriptionStatusExpired SubscriptionStatus = "expired"
)

// User is an app account created via social sign-in or guest access.
type User struct {
	ID       uint   `gorm:"column:id;primaryKey" json:"-"`
	Username string `gorm:"column:username;type:varchar(64);not null;uniqueIndex" json:"-"`
	Email    string `gorm:"column:email;type:varchar(255)" json:"-"`

	// Astrological profile, filled during onboarding.
	Sign       zodiac.Sign `gorm:"column:sign;type:varchar(20)" json:"sign,omitempty"`
	BirthDate  *time.Time  `gorm:"column:birth_date;type:date" json:"birth_date,omitempty"`
	BirthTime  string      `gorm:"column:birth_time;type:varchar(8)" json:"birth_time,omitempty"`
	BirthPlace string      `gorm:"column:birth_place;type:varchar(200)" json:"birth_place,omitempty"`

	// Derived signs, recomputed whenever the birth date changes.
	DruidSign     string `gorm:"column:druid_sign;type:varchar(20)" json:"druid_sign,omitempty"`
	ChineseAnimal string `gorm:"column:chinese_animal;type:varchar(20)" json:"chinese_animal,omitempty"`

	// Premium entitlement. PremiumActive() is the single source of truth for
	// gating; IsPremium alone is not enough once PremiumUntil has passed.
	IsPremium          bool               `gorm:"column:is_premium;not null;default:false" json:"-"`
	PremiumUntil       *time.Time         `gorm:"column:premium_until" json:"-"`
	SubscriptionStatus SubscriptionStatus `gorm:"column:subscription_status;type:varchar(20);not null;default:'none'" json:"-"`
	SubscriptionPlan   string             `gorm:"column:subscription_plan;type:varchar(50)" json:"-"`

	OnboardingDone bool `gorm:"column:onboarding_done;not null;default:false" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// PublicID is the client-facing id (u_<numeric id>).
func (u *User) PublicID() string {
	return fmt.Sprintf("u_%d", u.ID)
}

// PremiumActive reports whether the paid entitlement is currently in force.
// The comparison is strict: entitlement is gone at the instant PremiumUntil
// equals now.
func (u *User) PremiumActive() bool {
	return u != nil && u.IsPremium && u.PremiumUntil != nil && u.PremiumUntil.After(time.Now())
}
