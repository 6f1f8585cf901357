package models

import "time"

// OTPDispatch acknowledges a refund/reschedule request: the server has looked
// up the booking and sent an OTP out-of-band.
type OTPDispatch struct {
	BookingID string    `json:"booking_id"`
	SentTo    string    `json:"sent_to,omitempty"`
	ExpiredAt time.Time `json:"expired_at"`
}

// AftersalesValidation is the verification record obtained by exchanging the
// OTP. The token is short-lived and single-use.
type AftersalesValidation struct {
	BookingID string    `json:"booking_id"`
	Token     string    `json:"token"`
	ExpiredAt time.Time `json:"expired_at"`
	Used      bool      `json:"used"`
	Booking   Booking   `json:"booking"`
}

// RefundSubmission is the final refund action, authorized by Token.
type RefundSubmission struct {
	Token         string `json:"token" binding:"required"`
	Reason        string `json:"reason" binding:"required"`
	RefundMethod  string `json:"refund_method" binding:"required"`
	AccountName   string `json:"account_name" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required"`
}

// RefundRecord is the server's acknowledgement of a submitted refund.
type RefundRecord struct {
	ID           string    `json:"id"`
	BookingID    string    `json:"booking_id"`
	Status       string    `json:"status"`
	RefundAmount int       `json:"refund_amount"`
	CreatedAt    time.Time `json:"created_at"`
}

// RescheduleSubmission is the final reschedule action, authorized by Token.
type RescheduleSubmission struct {
	Token     string    `json:"token" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// RescheduleRecord is the server's acknowledgement of a submitted reschedule.
type RescheduleRecord struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}
