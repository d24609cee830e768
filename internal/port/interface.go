package port

import (
	"context"

	"passwordSimBackend/internal/core/domain"
)

// AttackService drives attack runs and the digest utility surface.
type AttackService interface {
	RunAttack(ctx context.Context, req domain.AttackRequest) (*domain.AttackResult, error)
	GenerateDigest(ctx context.Context, plaintext string) (string, error)
	ValidateDigest(ctx context.Context, digest string) domain.DigestInfo
	Samples(ctx context.Context) []domain.SampleDigest
	Statistics(ctx context.Context) (*domain.AttackStatistics, error)
}

// DeviceService is the simulated USB device state machine.
type DeviceService interface {
	Create(ctx context.Context, deviceType domain.DeviceType, level domain.SecurityLevel, code string) (*domain.SimulatedDevice, error)
	Detect(ctx context.Context, deviceID string) (*domain.SimulatedDevice, error)
	List(ctx context.Context) ([]*domain.SimulatedDevice, error)
	Unlock(ctx context.Context, deviceID, attempt, method string) (*domain.UnlockOutcome, error)
	Reset(ctx context.Context, deviceID string) error
	QuickSetup(ctx context.Context) ([]*domain.SimulatedDevice, error)
	Statistics(ctx context.Context) (*domain.UnlockStatistics, error)
}

// DeviceRepository is the injected device store. Mutate runs fn under the
// device's own lock so concurrent unlock attempts cannot lose counter updates.
type DeviceRepository interface {
	Save(ctx context.Context, device *domain.SimulatedDevice) error
	Get(ctx context.Context, deviceID string) (*domain.SimulatedDevice, error)
	List(ctx context.Context) ([]*domain.SimulatedDevice, error)
	Mutate(ctx context.Context, deviceID string, fn func(*domain.SimulatedDevice) error) error
}

// AttackLog is the append-only store behind attack statistics.
type AttackLog interface {
	Append(ctx context.Context, result domain.AttackResult) error
	All(ctx context.Context) ([]domain.AttackResult, error)
}

// UnlockLog is the append-only store behind unlock statistics.
type UnlockLog interface {
	Append(ctx context.Context, record domain.UnlockRecord) error
	All(ctx context.Context) ([]domain.UnlockRecord, error)
}
