package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/duke-git/lancet/v2/slice"

	"passwordSimBackend/internal/core/domain"
	"passwordSimBackend/internal/port"
	"passwordSimBackend/internal/shared"
	"passwordSimBackend/internal/utils/hashutil"
	"passwordSimBackend/internal/utils/random"
)

// defaultCodes is the per-type pool used when no unlock code is supplied.
// The first entry is the deterministic quick-setup code.
var defaultCodes = map[domain.DeviceType][]string{
	domain.DeviceFlashDrive:      {"password", "123456", "admin", "usb", "drive"},
	domain.DeviceExternalHDD:     {"harddrive", "backup", "storage", "data", "secure"},
	domain.DeviceUSBSSD:          {"ssd", "fast", "performance", "speed", "reliable"},
	domain.DeviceEncryptedDevice: {"encrypted", "secret", "private", "confidential", "secure"},
	domain.DeviceSmartCard:       {"pin", "card", "smart", "access", "identity"},
}

// DeviceService is the simulated USB device state machine: unlocked, counting
// failed attempts, or locked out until an explicit reset.
type DeviceService struct {
	repo      port.DeviceRepository
	unlockLog port.UnlockLog
}

func NewDeviceService(repo port.DeviceRepository, unlockLog port.UnlockLog) *DeviceService {
	return &DeviceService{
		repo:      repo,
		unlockLog: unlockLog,
	}
}

func (s *DeviceService) Create(ctx context.Context, deviceType domain.DeviceType, level domain.SecurityLevel, code string) (*domain.SimulatedDevice, error) {
	if !slice.Contain(domain.DeviceTypes, deviceType) {
		return nil, domain.ErrUnknownDevice
	}
	if !slice.Contain(domain.SecurityLevels, level) {
		return nil, domain.ErrUnknownSecurity
	}

	if code == "" {
		pool := defaultCodes[deviceType]
		code = pool[rand.Intn(len(pool))]
	}

	digest, err := hashutil.Hash(code)
	if err != nil {
		return nil, err
	}

	device := &domain.SimulatedDevice{
		ID:            random.DeviceID(),
		Type:          deviceType,
		SecurityLevel: level,
		CodeDigest:    digest,
		Description:   "Simulated " + string(deviceType),
		Encryption:    domain.EncryptionLabelFor(deviceType),
		MaxAttempts:   domain.MaxAttemptsFor(level),
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Save(ctx, device); err != nil {
		return nil, err
	}

	shared.Logger.Info("simulated device created",
		"device_id", device.ID,
		"type", device.Type,
		"security_level", device.SecurityLevel,
	)
	return device, nil
}

func (s *DeviceService) Detect(ctx context.Context, deviceID string) (*domain.SimulatedDevice, error) {
	return s.repo.Get(ctx, deviceID)
}

func (s *DeviceService) List(ctx context.Context) ([]*domain.SimulatedDevice, error) {
	return s.repo.List(ctx)
}

// Unlock verifies an attempt against the stored code digest. A locked-out
// device rejects the attempt without consuming one; a wrong attempt that
// reaches the threshold locks the device out.
func (s *DeviceService) Unlock(ctx context.Context, deviceID, attempt, method string) (*domain.UnlockOutcome, error) {
	var outcome *domain.UnlockOutcome
	var record *domain.UnlockRecord

	err := s.repo.Mutate(ctx, deviceID, func(device *domain.SimulatedDevice) error {
		if device.LockedOut() {
			return domain.ErrDeviceLockedOut
		}

		match, err := hashutil.Verify(attempt, device.CodeDigest)
		if err != nil {
			return err
		}

		now := time.Now()
		outcome = &domain.UnlockOutcome{
			DeviceID:  deviceID,
			Timestamp: now,
		}

		if match {
			outcome.Success = true
			outcome.AttemptsUsed = device.FailedAttempts + 1
			outcome.RemainingAttempts = device.MaxAttempts
			device.FailedAttempts = 0
			device.Locked = false
		} else {
			device.FailedAttempts++
			outcome.AttemptsUsed = device.FailedAttempts
			outcome.RemainingAttempts = device.MaxAttempts - device.FailedAttempts
			if device.FailedAttempts >= device.MaxAttempts {
				device.Locked = true
				outcome.LockedOut = true
			}
		}

		record = &domain.UnlockRecord{
			DeviceID:  deviceID,
			Method:    method,
			Success:   match,
			Timestamp: now,
			Type:      device.Type,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if logErr := s.unlockLog.Append(ctx, *record); logErr != nil {
		shared.Logger.Error("failed to append unlock record", "error", logErr)
	}

	if outcome.LockedOut {
		shared.Logger.Warn("device locked out", "device_id", deviceID)
	}
	return outcome, nil
}

// Reset returns a device to the unlocked state with a clean counter. It has
// no precondition on prior state.
func (s *DeviceService) Reset(ctx context.Context, deviceID string) error {
	return s.repo.Mutate(ctx, deviceID, func(device *domain.SimulatedDevice) error {
		device.FailedAttempts = 0
		device.Locked = false
		return nil
	})
}

// QuickSetup pre-populates one standard-security device per type with its
// deterministic default code.
func (s *DeviceService) QuickSetup(ctx context.Context) ([]*domain.SimulatedDevice, error) {
	devices := make([]*domain.SimulatedDevice, 0, len(domain.DeviceTypes))
	for _, deviceType := range domain.DeviceTypes {
		device, err := s.Create(ctx, deviceType, domain.SecurityStandard, defaultCodes[deviceType][0])
		if err != nil {
			return nil, err
		}
		devices = append(devices, device)
	}
	return devices, nil
}

// Statistics recomputes the aggregate view from the unlock log.
func (s *DeviceService) Statistics(ctx context.Context) (*domain.UnlockStatistics, error) {
	records, err := s.unlockLog.All(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.UnlockStatistics{
		ByMethod: make(map[string]domain.MethodStats),
	}
	targeted := make(map[string]struct{})

	for _, record := range records {
		stats.TotalAttempts++
		if record.Success {
			stats.SuccessfulAttempts++
		} else {
			stats.FailedAttempts++
		}

		methodStats := stats.ByMethod[record.Method]
		methodStats.Total++
		if record.Success {
			methodStats.Successful++
		}
		stats.ByMethod[record.Method] = methodStats

		targeted[record.DeviceID] = struct{}{}
	}

	stats.DevicesTargeted = len(targeted)
	if stats.TotalAttempts > 0 {
		stats.SuccessRate = float64(stats.SuccessfulAttempts) / float64(stats.TotalAttempts)
	}
	return stats, nil
}
