package models

import "time"

// SessionMetrics is the per-session counter aggregate, updated incrementally
// as events of known types arrive.
type SessionMetrics struct {
	ID        uint   `gorm:"column:id;primaryKey" json:"-"`
	SessionID string `gorm:"column:session_id;type:varchar(100);not null;uniqueIndex" json:"session_id"`
	UserID    *uint  `gorm:"column:user_id" json:"-"`

	StartTime       time.Time  `gorm:"column:start_time;not null" json:"start_time"`
	EndTime         *time.Time `gorm:"column:end_time" json:"end_time,omitempty"`
	DurationSeconds int        `gorm:"column:duration_seconds" json:"duration_seconds"`

	ScreenViews               int `gorm:"column:screen_views;not null;default:0" json:"screen_views"`
	TabSwitches               int `gorm:"column:tab_switches;not null;default:0" json:"tab_switches"`
	BannerClicks              int `gorm:"column:banner_clicks;not null;default:0" json:"banner_clicks"`
	PaywallViews              int `gorm:"column:paywall_views;not null;default:0" json:"paywall_views"`
	CompatibilityCalculations int `gorm:"column:compatibility_calculations;not null;default:0" json:"compatibility_calculations"`
	UpgradeAttempts           int `gorm:"column:upgrade_attempts;not null;default:0" json:"upgrade_attempts"`
	PurchaseAttempts          int `gorm:"column:purchase_attempts;not null;default:0" json:"purchase_attempts"`
	SuccessfulPurchases       int `gorm:"column:successful_purchases;not null;default:0" json:"successful_purchases"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (SessionMetrics) TableName() string {
	return "session_metrics"
}
