package models

import "time"

type PlanType string

const (
	PlanTypeWeekly  PlanType = "weekly"
	PlanTypeMonthly PlanType = "monthly"
	PlanTypeYearly  PlanType = "yearly"
)

// PaymentPlan is a static catalog entry. Rows are seeded at startup and
// treated as reference data.
type PaymentPlan struct {
	ID           uint     `gorm:"column:id;primaryKey" json:"-"`
	PlanID       string   `gorm:"column:plan_id;type:varchar(50);not null;uniqueIndex" json:"id"`
	Name         string   `gorm:"column:name;type:varchar(100);not null" json:"name"`
	PlanType     PlanType `gorm:"column:plan_type;type:varchar(10);not null" json:"type"`
	DurationDays int      `gorm:"column:duration_days;not null" json:"duration_days"`

	PriceUSD float64 `gorm:"column:price_usd;type:numeric(10,2);not null" json:"-"`
	PriceEUR float64 `gorm:"column:price_eur;type:numeric(10,2);not null" json:"-"`
	PriceGEL float64 `gorm:"column:price_gel;type:numeric(10,2);not null" json:"-"`

	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"-"`
	CreatedAt time.Time `json:"-"`
}

func (PaymentPlan) TableName() string {
	return "payment_plans"
}

// Duration is the premium window granted by one purchase of this plan.
func (p *PaymentPlan) Duration() time.Duration {
	return time.Duration(p.DurationDays) * 24 * time.Hour
}
