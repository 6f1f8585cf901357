// Package payment orchestrates a booking's payment attempt: creating the
// payment intent and polling its status until a terminal state or timeout.
// At most one polling loop is live process-wide.
package payment

import (
	"context"
	"errors"
	"sync"
	"time"

	"campsite/models"
	"campsite/services/reservation"

	"go.uber.org/zap"
)

const (
	// DefaultInterval is the pause between status checks.
	DefaultInterval = 5 * time.Second
	// DefaultMaxAttempts bounds the loop (~5 minutes at the default interval).
	DefaultMaxAttempts = 60
)

var (
	// ErrPaymentFailed reports a terminal "failed" status from the API.
	ErrPaymentFailed = errors.New("payment failed")
	// ErrPollTimeout reports an exhausted attempt budget with no terminal state.
	ErrPollTimeout = errors.New("payment status polling timed out")
)

// StatusAPI is the slice of the booking API client the orchestrator needs.
type StatusAPI interface {
	CreatePayment(ctx context.Context, bookingID, method string) (*models.PaymentRecord, error)
	PaymentStatus(ctx context.Context, bookingID string) (*models.PaymentRecord, error)
}

// PollOptions configures one polling run. Zero Interval/MaxAttempts fall back
// to the defaults. Callbacks may be nil.
type PollOptions struct {
	Interval    time.Duration
	MaxAttempts int

	// SessionID, when set, keeps the session snapshot refreshed with every
	// record the poll sees.
	SessionID string

	OnSuccess func(*models.PaymentRecord)
	OnExpired func(*models.PaymentRecord)
	OnError   func(error)
}

type pollHandle struct {
	bookingID string
	stop      chan struct{}
	done      chan struct{}
}

// Orchestrator owns the payment state machine:
// idle -> creating -> polling -> succeeded | expired | failed | timed_out.
type Orchestrator struct {
	API    StatusAPI
	Store  reservation.SessionStore
	Logger *zap.Logger

	mu   sync.Mutex
	poll *pollHandle
}

func NewOrchestrator(api StatusAPI, store reservation.SessionStore, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{API: api, Store: store, Logger: logger}
}

// CreatePayment opens a payment attempt for the booking. If the session
// already holds a non-expired record for this booking, the intent is NOT
// re-created: the existing record is returned and the caller resumes polling
// against it.
func (o *Orchestrator) CreatePayment(ctx context.Context, sessionID, bookingID, method string) (*models.PaymentRecord, error) {
	session, err := o.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	// Get already dropped any record whose expiry has passed.
	if existing := session.Payment; existing != nil && existing.OrderID == bookingID {
		o.Logger.Info("Reusing existing payment record",
			zap.String("booking", bookingID),
			zap.String("status", string(existing.TransactionStatus)))
		return existing, nil
	}

	record, err := o.API.CreatePayment(ctx, bookingID, method)
	if err != nil {
		return nil, err
	}
	if err := o.Store.SetPaymentData(ctx, sessionID, *record); err != nil {
		return nil, err
	}
	return record, nil
}

// StartPolling begins checking the booking's payment status every interval.
// Any previously running poll, for any booking, is stopped first; only one
// loop is ever live. The loop ends on a terminal status, on StopPolling, or
// when the attempt budget runs out (reported via OnError as ErrPollTimeout).
func (o *Orchestrator) StartPolling(bookingID string, opts PollOptions) {
	o.StopPolling()

	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}

	handle := &pollHandle{
		bookingID: bookingID,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	o.mu.Lock()
	o.poll = handle
	o.mu.Unlock()

	o.Logger.Info("Payment polling started",
		zap.String("booking", bookingID),
		zap.Duration("interval", opts.Interval),
		zap.Int("maxAttempts", opts.MaxAttempts))

	go o.run(handle, opts)
}

// StopPolling halts the active loop, if any. It is idempotent and safe to
// call when nothing is polling.
func (o *Orchestrator) StopPolling() {
	o.mu.Lock()
	handle := o.poll
	o.poll = nil
	o.mu.Unlock()

	if handle == nil {
		return
	}
	close(handle.stop)
	<-handle.done
}

// ResetPayment stops polling and clears all payment state for the session.
// Used when a fresh reservation starts.
func (o *Orchestrator) ResetPayment(ctx context.Context, sessionID string) error {
	o.StopPolling()
	return o.Store.ClearPaymentData(ctx, sessionID)
}

// Polling reports whether a loop is live and, if so, for which booking.
func (o *Orchestrator) Polling() (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.poll == nil {
		return "", false
	}
	return o.poll.bookingID, true
}

// release clears the orchestrator's handle when the loop ends on its own.
func (o *Orchestrator) release(handle *pollHandle) {
	o.mu.Lock()
	if o.poll == handle {
		o.poll = nil
	}
	o.mu.Unlock()
}

func (o *Orchestrator) run(handle *pollHandle, opts PollOptions) {
	defer close(handle.done)
	defer o.release(handle)

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	attempts := 0
	for {
		select {
		case <-handle.stop:
			return
		case <-ticker.C:
			// The attempt counter moves on every tick, whatever the outcome.
			attempts++

			record, err := o.API.PaymentStatus(context.Background(), handle.bookingID)
			if err != nil {
				// A failed tick is reported but does not end the loop; only a
				// terminal status from the API does.
				o.Logger.Warn("Payment status check failed",
					zap.String("booking", handle.bookingID), zap.Error(err))
				if opts.OnError != nil {
					opts.OnError(err)
				}
			} else {
				o.refreshSnapshot(opts.SessionID, record)

				switch record.TransactionStatus {
				case models.PaymentSuccess:
					o.Logger.Info("Payment succeeded", zap.String("booking", handle.bookingID))
					if opts.OnSuccess != nil {
						opts.OnSuccess(record)
					}
					return
				case models.PaymentExpired:
					o.Logger.Info("Payment expired", zap.String("booking", handle.bookingID))
					if opts.OnExpired != nil {
						opts.OnExpired(record)
					}
					return
				case models.PaymentFailed:
					o.Logger.Info("Payment failed", zap.String("booking", handle.bookingID))
					if opts.OnError != nil {
						opts.OnError(ErrPaymentFailed)
					}
					return
				default:
					// pending or unrecognized: keep going.
				}
			}

			if attempts >= opts.MaxAttempts {
				o.Logger.Warn("Payment polling timed out",
					zap.String("booking", handle.bookingID), zap.Int("attempts", attempts))
				if opts.OnError != nil {
					opts.OnError(ErrPollTimeout)
				}
				return
			}
		}
	}
}

// refreshSnapshot keeps the persisted payment record in step with what the
// poll last saw.
func (o *Orchestrator) refreshSnapshot(sessionID string, record *models.PaymentRecord) {
	if sessionID == "" || o.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := o.Store.SetPaymentData(ctx, sessionID, *record); err != nil {
		o.Logger.Warn("Failed to refresh payment snapshot",
			zap.String("session", sessionID), zap.Error(err))
	}
}
