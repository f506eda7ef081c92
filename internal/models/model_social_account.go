package models

import "time"

// SocialAccount ties one external identity (provider + provider id) to
// exactly one user. The composite unique index is what makes social signup
// idempotent under concurrent first sign-ins.
type SocialAccount struct {
	ID         uint   `gorm:"column:id;primaryKey" json:"id"`
	UserID     uint   `gorm:"column:user_id;not null;index" json:"user_id"`
	Provider   string `gorm:"column:provider;type:varchar(20);not null;uniqueIndex:uniq_provider_identity,priority:1" json:"provider"`
	ProviderID string `gorm:"column:provider_id;type:varchar(100);not null;uniqueIndex:uniq_provider_identity,priority:2" json:"provider_id"`
	// AccessToken is the provider token seen at the most recent sign-in.
	AccessToken string `gorm:"column:access_token;type:text" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SocialAccount) TableName() string {
	return "social_accounts"
}
