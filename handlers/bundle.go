package handlers

// HandlerBundle groups every handler for route registration.
type HandlerBundle struct {
	Availability *AvailabilityHandler
	Reservation  *ReservationHandler
	Payment      *PaymentHandler
	Refund       *RefundHandler
	Reschedule   *RescheduleHandler
	Content      *ContentHandler
}
