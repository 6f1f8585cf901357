package models

import (
	"fmt"
	"time"
)

// TransactionStatus is the lifecycle state of a payment attempt.
type TransactionStatus string

const (
	PaymentPending TransactionStatus = "pending"
	PaymentSuccess TransactionStatus = "success"
	PaymentExpired TransactionStatus = "expired"
	PaymentFailed  TransactionStatus = "failed"
)

// Terminal reports whether the status concludes the payment attempt.
func (s TransactionStatus) Terminal() bool {
	return s == PaymentSuccess || s == PaymentExpired || s == PaymentFailed
}

// Payment detail variants, discriminated by the "type" tag.
const (
	PaymentDetailQR = "qr"
	PaymentDetailVA = "va"
)

// PaymentDetail is a tagged union: a QR code to scan or a virtual account to
// transfer to, depending on Type.
type PaymentDetail struct {
	Type string `json:"type"`

	// qr
	QRImageURL string `json:"qr_image_url,omitempty"`

	// va
	BankName      string `json:"bank_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
}

// Instructions renders the human-facing payment instruction for the variant.
// Unknown variants are an error so new server-side types fail loudly instead
// of rendering blank.
func (d PaymentDetail) Instructions() (string, error) {
	switch d.Type {
	case PaymentDetailQR:
		return fmt.Sprintf("Scan the QR code at %s to complete your payment.", d.QRImageURL), nil
	case PaymentDetailVA:
		return fmt.Sprintf("Transfer to virtual account %s (%s).", d.AccountNumber, d.BankName), nil
	default:
		return "", fmt.Errorf("unknown payment detail type %q", d.Type)
	}
}

// PaymentRecord is the server's representation of a payment attempt for a
// booking. It is created once by the create-payment call and refreshed by
// every status check.
type PaymentRecord struct {
	OrderID           string            `json:"order_id"`
	PaymentMethod     string            `json:"payment_method"`
	TotalAmount       int               `json:"total_amount"`
	ExpiredAt         time.Time         `json:"expired_at"`
	PaymentDetail     []PaymentDetail   `json:"payment_detail"`
	TransactionStatus TransactionStatus `json:"transaction_status"`
}

// Expired reports whether the record's expiry has passed. The comparison is
// wall-clock: expiry at or before now counts as expired.
func (p *PaymentRecord) Expired(now time.Time) bool {
	return !p.ExpiredAt.After(now)
}
