package memory

import (
	"context"
	"sync"

	"passwordSimBackend/internal/core/domain"
)

// DeviceStore keeps simulated devices for the process lifetime. Mutation is
// serialized per device so concurrent unlock attempts cannot lose counter
// updates; listing preserves creation order.
type DeviceStore struct {
	mu      sync.RWMutex
	devices map[string]*deviceEntry
	order   []string
}

type deviceEntry struct {
	mu     sync.Mutex
	device *domain.SimulatedDevice
}

func NewDeviceStore() *DeviceStore {
	return &DeviceStore{
		devices: make(map[string]*deviceEntry),
	}
}

func (s *DeviceStore) Save(_ context.Context, device *domain.SimulatedDevice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.devices[device.ID]; !exists {
		s.order = append(s.order, device.ID)
	}
	copied := *device
	s.devices[device.ID] = &deviceEntry{device: &copied}
	return nil
}

func (s *DeviceStore) Get(_ context.Context, deviceID string) (*domain.SimulatedDevice, error) {
	s.mu.RLock()
	entry, ok := s.devices[deviceID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrDeviceNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	copied := *entry.device
	return &copied, nil
}

func (s *DeviceStore) List(_ context.Context) ([]*domain.SimulatedDevice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	devices := make([]*domain.SimulatedDevice, 0, len(s.order))
	for _, id := range s.order {
		entry := s.devices[id]
		entry.mu.Lock()
		copied := *entry.device
		entry.mu.Unlock()
		devices = append(devices, &copied)
	}
	return devices, nil
}

// Mutate runs fn on the live device record under its lock. fn edits the
// stored state directly, so callers mutate only after all checks pass.
func (s *DeviceStore) Mutate(_ context.Context, deviceID string, fn func(*domain.SimulatedDevice) error) error {
	s.mu.RLock()
	entry, ok := s.devices[deviceID]
	s.mu.RUnlock()
	if !ok {
		return domain.ErrDeviceNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.device)
}

// AttackLog is the append-only result store behind attack statistics.
type AttackLog struct {
	mu      sync.RWMutex
	results []domain.AttackResult
}

func NewAttackLog() *AttackLog {
	return &AttackLog{}
}

func (l *AttackLog) Append(_ context.Context, result domain.AttackResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = append(l.results, result)
	return nil
}

func (l *AttackLog) All(_ context.Context) ([]domain.AttackResult, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	results := make([]domain.AttackResult, len(l.results))
	copy(results, l.results)
	return results, nil
}

// UnlockLog is the append-only record store behind unlock statistics.
type UnlockLog struct {
	mu      sync.RWMutex
	records []domain.UnlockRecord
}

func NewUnlockLog() *UnlockLog {
	return &UnlockLog{}
}

func (l *UnlockLog) Append(_ context.Context, record domain.UnlockRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
	return nil
}

func (l *UnlockLog) All(_ context.Context) ([]domain.UnlockRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	records := make([]domain.UnlockRecord, len(l.records))
	copy(records, l.records)
	return records, nil
}
