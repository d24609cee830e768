package domain

import "time"

// AttackRequest describes one attack run against a target digest.
type AttackRequest struct {
	TargetDigest string       `json:"targetDigest"`
	Method       AttackMethod `json:"method"`
	Params       AttackParams `json:"params"`
}

// AttackParams carries the per-method knobs. Zero values select defaults.
type AttackParams struct {
	MaxLength    int    `json:"maxLength,omitempty"`    // brute force
	CharacterSet string `json:"characterSet,omitempty"` // brute force
	WordlistPath string `json:"wordlistPath,omitempty"` // dictionary
	Context      string `json:"context,omitempty"`      // ai
}

// AttackResult is the immutable outcome of one attack run.
type AttackResult struct {
	ID            string       `json:"id"`
	Method        AttackMethod `json:"method"`
	Success       bool         `json:"success"`
	Password      string       `json:"password,omitempty"`
	Attempts      int64        `json:"attempts"`
	Elapsed       time.Duration `json:"elapsed"`
	Timestamp     time.Time    `json:"timestamp"`
	AIUnavailable bool         `json:"aiUnavailable,omitempty"`
	AIRationale   string       `json:"aiRationale,omitempty"`
	FailureReason string       `json:"failureReason,omitempty"`
	Resources     ResourceMetrics `json:"resources"`
}

// ResourceMetrics is a snapshot of process resource usage during a run.
type ResourceMetrics struct {
	CPUUsage       float64   `json:"cpuUsage"`
	MemoryUsageMB  int64     `json:"memoryUsageMb"`
	AttemptsPerSec int64     `json:"attemptsPerSec"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// SimulatedDevice is a fake locked USB device. The unlock code is retained
// only as a digest.
type SimulatedDevice struct {
	ID             string        `json:"id"`
	Type           DeviceType    `json:"type"`
	SecurityLevel  SecurityLevel `json:"securityLevel"`
	CodeDigest     string        `json:"-"`
	Description    string        `json:"description"`
	Encryption     string        `json:"encryption"`
	MaxAttempts    int           `json:"maxAttempts"`
	FailedAttempts int           `json:"failedAttempts"`
	Locked         bool          `json:"locked"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// LockedOut reports whether the device has exhausted its allowed attempts.
func (d *SimulatedDevice) LockedOut() bool {
	return d.Locked && d.FailedAttempts >= d.MaxAttempts
}

// UnlockOutcome is the result of one unlock attempt on a device.
type UnlockOutcome struct {
	DeviceID          string    `json:"deviceId"`
	Success           bool      `json:"success"`
	LockedOut         bool      `json:"lockedOut"`
	RemainingAttempts int       `json:"remainingAttempts"`
	AttemptsUsed      int       `json:"attemptsUsed"`
	Timestamp         time.Time `json:"timestamp"`
}

// UnlockRecord is one append-only log entry behind unlock statistics.
type UnlockRecord struct {
	DeviceID  string     `json:"deviceId"`
	Method    string     `json:"method"`
	Success   bool       `json:"success"`
	Timestamp time.Time  `json:"timestamp"`
	Type      DeviceType `json:"deviceType"`
}

// MethodStats aggregates attempt totals for one method label.
type MethodStats struct {
	Total      int64 `json:"total"`
	Successful int64 `json:"successful"`
}

// AttackStatistics is the derived view over the attack result log.
type AttackStatistics struct {
	TotalRuns      int64                        `json:"totalRuns"`
	SuccessfulRuns int64                        `json:"successfulRuns"`
	TotalAttempts  int64                        `json:"totalAttempts"`
	ByMethod       map[AttackMethod]MethodStats `json:"byMethod"`
}

// UnlockStatistics is the derived view over the unlock log.
type UnlockStatistics struct {
	TotalAttempts      int64                  `json:"totalAttempts"`
	SuccessfulAttempts int64                  `json:"successfulAttempts"`
	FailedAttempts     int64                  `json:"failedAttempts"`
	SuccessRate        float64                `json:"successRate"`
	ByMethod           map[string]MethodStats `json:"byMethod"`
	DevicesTargeted    int                    `json:"devicesTargeted"`
}

// SampleDigest is one precomputed synthetic target for the demo surface.
type SampleDigest struct {
	Digest      string `json:"digest"`
	Description string `json:"description"`
	Length      int    `json:"length"`
	Difficulty  string `json:"difficulty"`
}

// DigestInfo is the validation report for a caller-supplied digest.
type DigestInfo struct {
	IsValid      bool   `json:"isValid"`
	IsSuspicious bool   `json:"isSuspicious"`
	Algorithm    string `json:"algorithm"`
	Length       int    `json:"length"`
	Warning      string `json:"warning,omitempty"`
}
