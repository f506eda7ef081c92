package models

import (
	"time"

	"gorm.io/datatypes"
)

// Banner is a promotional card shown in the app. Defaults are seeded when
// the table is empty.
type Banner struct {
	ID       uint   `gorm:"column:id;primaryKey" json:"-"`
	BannerID string `gorm:"column:banner_id;type:varchar(50);not null;uniqueIndex" json:"id"`

	Title    string         `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Subtitle string         `gorm:"column:subtitle;type:varchar(200);not null" json:"subtitle"`
	Bullets  datatypes.JSON `gorm:"column:bullets;type:jsonb;default:'[]'" json:"bullets"`
	// Target is the in-app route or action (e.g. "premium", "compat:leo").
	Target          string `gorm:"column:target;type:varchar(100);not null" json:"target"`
	PremiumRequired bool   `gorm:"column:premium_required;not null;default:false" json:"premium_required"`
	IsActive        bool   `gorm:"column:is_active;not null;default:true" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Banner) TableName() string {
	return "banners"
}
