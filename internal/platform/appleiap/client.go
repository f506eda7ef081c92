package appleiap

import (
	"context"
	"fmt"

	"github.com/awa/go-iap/appstore"

	"github.com/salamene/horoscope-backend/pkg/config"
)

// ReceiptInfo is the subset of latest_receipt_info we act on.
type ReceiptInfo struct {
	ProductID             string `json:"product_id"`
	TransactionID         string `json:"transaction_id"`
	OriginalTransactionID string `json:"original_transaction_id"`
	PurchaseDateMs        string `json:"purchase_date_ms"`
	ExpiresDateMs         string `json:"expires_date_ms"`
}

// VerifyResponse is the verifyReceipt payload we decode. Status 0 means the
// receipt is valid.
type VerifyResponse struct {
	Status            int            `json:"status"`
	LatestReceiptInfo []*ReceiptInfo `json:"latest_receipt_info"`
}

// Verifier calls Apple's verifyReceipt endpoint.
type Verifier struct {
	client       *appstore.Client
	sharedSecret string
}

func NewVerifier(cfg *config.Config) *Verifier {
	client := appstore.New()
	if !cfg.AppleIAP.IsProd {
		client.ProductionURL = client.SandboxURL
	}
	return &Verifier{client: client, sharedSecret: cfg.AppleIAP.SharedSecret}
}

// Verify submits base64 receipt data to Apple and returns the decoded
// response. A non-zero Status is returned to the caller, not treated as a
// transport error.
func (v *Verifier) Verify(ctx context.Context, receiptData string) (*VerifyResponse, error) {
	var result VerifyResponse
	err := v.client.Verify(ctx, appstore.IAPRequest{
		ReceiptData:            receiptData,
		Password:               v.sharedSecret,
		ExcludeOldTransactions: true,
	}, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to verify receipt: %w", err)
	}
	return &result, nil
}
