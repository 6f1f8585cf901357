// File: utils/constants.go
package utils

// ReservationStorePrefix is the key prefix for reservation session snapshots.
const ReservationStorePrefix = "reservation-storage:"

// RefundStorePrefix is the key prefix for refund verification snapshots.
const RefundStorePrefix = "refund-data:"

// RescheduleStorePrefix is the key prefix for reschedule verification snapshots.
const RescheduleStorePrefix = "reschedule-storage:"
