package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"milestone-api/models"
)

var errStoreDown = errors.New("store unreachable")

// memStore is an in-memory RecordStore honouring owner and lower-bound filters.
type memStore struct {
	mu       sync.Mutex
	mileage  []models.MileageRecord
	trips    []models.TripRecord
	logs     []models.AccountLogRecord
	readErr  error
	writeErr error
	calls    map[string]int
}

func newMemStore() *memStore {
	return &memStore{calls: make(map[string]int)}
}

func (m *memStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[name]++
}

func (m *memStore) CreateMileage(_ context.Context, r *models.MileageRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.mileage = append(m.mileage, *r)
	return nil
}

func (m *memStore) CreateTrip(_ context.Context, r *models.TripRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.trips = append(m.trips, *r)
	return nil
}

func (m *memStore) CreateAccountLog(_ context.Context, r *models.AccountLogRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.logs = append(m.logs, *r)
	return nil
}

func (m *memStore) FindMileage(_ context.Context, userID string) ([]models.MileageRecord, error) {
	m.record("FindMileage")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	var out []models.MileageRecord
	for _, r := range m.mileage {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) FindTrips(_ context.Context, userID string, since *time.Time) ([]models.TripRecord, error) {
	m.record("FindTrips")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	var out []models.TripRecord
	for _, r := range m.trips {
		if r.UserID == userID && (since == nil || !r.Time.Before(*since)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) FindAccountLogs(_ context.Context, userID string, since *time.Time) ([]models.AccountLogRecord, error) {
	m.record("FindAccountLogs")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	var out []models.AccountLogRecord
	for _, r := range m.logs {
		if r.UserID == userID && (since == nil || !r.Date.Before(*since)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptr(v float64) *float64 { return &v }
