package models

import "time"

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusPaid      TransactionStatus = "paid"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// Transaction is one payment attempt. Status moves pending -> paid/failed/
// cancelled exactly once, driven by the provider webhook (or Apple receipt
// verification, which creates the row already paid).
type Transaction struct {
	ID            uint              `gorm:"column:id;primaryKey" json:"-"`
	TransactionID string            `gorm:"column:transaction_id;type:varchar(100);not null;uniqueIndex" json:"transaction_id"`
	UserID        uint              `gorm:"column:user_id;not null;index" json:"user_id"`
	PlanID        uint              `gorm:"column:plan_id;not null" json:"-"`
	Amount        float64           `gorm:"column:amount;type:numeric(10,2);not null" json:"amount"`
	Currency      string            `gorm:"column:currency;type:varchar(3);not null" json:"currency"`
	Status        TransactionStatus `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`

	CheckoutURL           string `gorm:"column:checkout_url;type:varchar(500)" json:"checkout_url,omitempty"`
	ProviderTransactionID string `gorm:"column:provider_transaction_id;type:varchar(200)" json:"-"`

	User User        `gorm:"foreignKey:UserID" json:"-"`
	Plan PaymentPlan `gorm:"foreignKey:PlanID" json:"-"`

	PaidAt    *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}
