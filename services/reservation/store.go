// Package reservation owns the state of one in-progress booking attempt:
// selected tents, stay dates, guest info, the created booking, and the
// payment record. State is persisted wholesale as a JSON snapshot under
// reservation-storage:<sessionID> and rehydrated on every read.
package reservation

import (
	"context"
	"encoding/json"
	"time"

	"campsite/database"
	"campsite/models"
	"campsite/utils"

	"go.uber.org/zap"
)

// SessionStore is the single source of truth for an in-progress booking.
// Setters replace one slice of the snapshot; clears reset them independently.
// Clearing everything is the required sequence when a fresh attempt starts,
// so stale tents or prices never leak into it.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.ReservationSession, error)
	SetReservationData(ctx context.Context, sessionID string, data models.ReservationData) error
	SetPersonalInfo(ctx context.Context, sessionID string, info models.PersonalInfo) error
	SetBookingResponse(ctx context.Context, sessionID string, resp models.BookingResponse) error
	SetPaymentData(ctx context.Context, sessionID string, record models.PaymentRecord) error
	ClearReservationData(ctx context.Context, sessionID string) error
	ClearPersonalInfo(ctx context.Context, sessionID string) error
	ClearBookingResponse(ctx context.Context, sessionID string) error
	ClearPaymentData(ctx context.Context, sessionID string) error
	ClearAll(ctx context.Context, sessionID string) error
}

// SnapshotSessionStore implements SessionStore over a SnapshotKV.
type SnapshotSessionStore struct {
	KV     database.SnapshotKV
	TTL    time.Duration
	Logger *zap.Logger

	// Now is the clock used for payment expiry checks; nil means time.Now.
	Now func() time.Time
}

func NewSessionStore(kv database.SnapshotKV, ttl time.Duration, logger *zap.Logger) *SnapshotSessionStore {
	return &SnapshotSessionStore{KV: kv, TTL: ttl, Logger: logger}
}

func (s *SnapshotSessionStore) key(sessionID string) string {
	return utils.ReservationStorePrefix + sessionID
}

func (s *SnapshotSessionStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Get rehydrates the session snapshot. A missing or corrupted snapshot yields
// an empty session rather than an error. Payment data whose expiry has
// already passed is cleared on read, never handed back as active.
func (s *SnapshotSessionStore) Get(ctx context.Context, sessionID string) (*models.ReservationSession, error) {
	raw, err := s.KV.Get(ctx, s.key(sessionID))
	if err == database.ErrNoSnapshot {
		return &models.ReservationSession{}, nil
	}
	if err != nil {
		return nil, err
	}

	var session models.ReservationSession
	if err := json.Unmarshal(raw, &session); err != nil {
		s.Logger.Warn("Corrupted reservation snapshot, falling back to defaults",
			zap.String("session", sessionID), zap.Error(err))
		return &models.ReservationSession{}, nil
	}

	if session.Payment != nil && session.Payment.Expired(s.now()) {
		session.Payment = nil
		if err := s.save(ctx, sessionID, &session); err != nil {
			return nil, err
		}
	}
	return &session, nil
}

func (s *SnapshotSessionStore) save(ctx context.Context, sessionID string, session *models.ReservationSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.KV.Set(ctx, s.key(sessionID), raw, s.TTL)
}

func (s *SnapshotSessionStore) update(ctx context.Context, sessionID string, apply func(*models.ReservationSession)) error {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	apply(session)
	return s.save(ctx, sessionID, session)
}

func (s *SnapshotSessionStore) SetReservationData(ctx context.Context, sessionID string, data models.ReservationData) error {
	return s.update(ctx, sessionID, func(session *models.ReservationSession) {
		session.ReservationData = &data
	})
}

func (s *SnapshotSessionStore) SetPersonalInfo(ctx context.Context, sessionID string, info models.PersonalInfo) error {
	return s.update(ctx, sessionID, func(session *models.ReservationSession) {
		session.PersonalInfo = &info
		session.HasSubmittedPersonalInfo = true
	})
}

func (s *SnapshotSessionStore) SetBookingResponse(ctx context.Context, sessionID string, resp models.BookingResponse) error {
	return s.update(ctx, sessionID, func(session *models.ReservationSession) {
		session.BookingResponse = &resp
	})
}

func (s *SnapshotSessionStore) SetPaymentData(ctx context.Context, sessionID string, record models.PaymentRecord) error {
	return s.update(ctx, sessionID, func(session *models.ReservationSession) {
		session.Payment = &record
	})
}

func (s *SnapshotSessionStore) ClearReservationData(ctx context.Context, sessionID string) error {
	return s.update(ctx, sessionID, func(session *models.ReservationSession) {
		session.ReservationData = nil
	})
}

func (s *SnapshotSessionStore) ClearPersonalInfo(ctx context.Context, sessionID string) error {
	return s.update(ctx, sessionID, func(session *models.ReservationSession) {
		session.PersonalInfo = nil
		session.HasSubmittedPersonalInfo = false
	})
}

func (s *SnapshotSessionStore) ClearBookingResponse(ctx context.Context, sessionID string) error {
	return s.update(ctx, sessionID, func(session *models.ReservationSession) {
		session.BookingResponse = nil
	})
}

func (s *SnapshotSessionStore) ClearPaymentData(ctx context.Context, sessionID string) error {
	return s.update(ctx, sessionID, func(session *models.ReservationSession) {
		session.Payment = nil
	})
}

// ClearAll drops the whole snapshot.
func (s *SnapshotSessionStore) ClearAll(ctx context.Context, sessionID string) error {
	return s.KV.Del(ctx, s.key(sessionID))
}
