package models

import "time"

// APIDateFormat is the wire format the booking API uses for dates.
const APIDateFormat = "2006-01-02"

// DateRange is the requested stay. Both bounds must be present before a
// search may hit the network.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// Complete reports whether both bounds are set and ordered.
func (d DateRange) Complete() bool {
	return d.From != nil && d.To != nil && !d.From.After(*d.To)
}

// PersonalInfo carries the guest contact fields collected before payment.
type PersonalInfo struct {
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone" binding:"required,phone"`
	Email          string `json:"email" binding:"required,email"`
	Address        string `json:"address" binding:"required"`
	GuestCount     int    `json:"guest_count" binding:"required,min=1"`
	ReferralSource string `json:"referral_source"`
	AgreedToTerms  bool   `json:"agreed_to_terms" binding:"required"`
	AgreedToPolicy bool   `json:"agreed_to_policy" binding:"required"`
}

// ReservationData is the selection half of an in-progress booking: the chosen
// tents (insertion order is display order), the stay, and the running total.
// IsLoadingPrices is volatile and never persisted; PriceSeq orders concurrent
// price checks so a stale result cannot overwrite a newer selection.
type ReservationData struct {
	Tents      []Tent    `json:"tents"`
	DateRange  DateRange `json:"date_range"`
	TotalPrice *int      `json:"total_price,omitempty"`
	PriceSeq   uint64    `json:"price_seq"`

	IsLoadingPrices bool `json:"-"`
}

// TentIDs returns the selected tent ids in display order.
func (r ReservationData) TentIDs() []string {
	ids := make([]string, 0, len(r.Tents))
	for _, t := range r.Tents {
		ids = append(ids, t.ID)
	}
	return ids
}

// Guest is the booking API's echo of who the reservation is for.
type Guest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Booking is a confirmed reservation as issued by the booking API.
type Booking struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	TentIDs    []string  `json:"tent_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	TotalPrice int       `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

// BookingResponse is the server's answer to a create-reservation call,
// created exactly once per reservation attempt.
type BookingResponse struct {
	Booking Booking `json:"booking"`
	Guest   Guest   `json:"guest"`
}

// ReservationSession is the persisted snapshot of one booking attempt. It is
// stored wholesale under reservation-storage:<sessionID> and rehydrated on
// every read.
type ReservationSession struct {
	ReservationData          *ReservationData `json:"reservation_data,omitempty"`
	PersonalInfo             *PersonalInfo    `json:"personal_info,omitempty"`
	HasSubmittedPersonalInfo bool             `json:"has_submitted_personal_info"`
	BookingResponse          *BookingResponse `json:"booking_response,omitempty"`
	Payment                  *PaymentRecord   `json:"payment,omitempty"`
}
