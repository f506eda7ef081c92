package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnalyticsEvent is one row of the append-only client event log.
type AnalyticsEvent struct {
	ID uint `gorm:"column:id;primaryKey" json:"-"`

	Event string `gorm:"column:event;type:varchar(50);not null;index:idx_event_ts,priority:1" json:"event"`
	// Timestamp is the client-reported unix time in milliseconds.
	Timestamp  int64  `gorm:"column:timestamp;not null;index:idx_event_ts,priority:2" json:"ts"`
	SessionID  string `gorm:"column:session_id;type:varchar(100);not null;index" json:"session_id"`
	InstallID  string `gorm:"column:install_id;type:varchar(100);not null" json:"install_id"`
	AppVersion string `gorm:"column:app_version;type:varchar(20);not null" json:"app_version"`

	UserID    *uint          `gorm:"column:user_id;index" json:"-"`
	UserProps datatypes.JSON `gorm:"column:user_props;type:jsonb;default:'{}'" json:"user_props,omitempty"`
	Params    datatypes.JSON `gorm:"column:params;type:jsonb;default:'{}'" json:"params,omitempty"`

	IPAddress string `gorm:"column:ip_address;type:varchar(45)" json:"-"`
	UserAgent string `gorm:"column:user_agent;type:text" json:"-"`

	CreatedAt time.Time `gorm:"index" json:"-"`
}

func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
