package domain

type AttackMethod string
type DeviceType string
type SecurityLevel string

const (
	// Attack methods
	MethodDictionary AttackMethod = "DICTIONARY"
	MethodRuleBased  AttackMethod = "RULE_BASED"
	MethodBruteForce AttackMethod = "BRUTE_FORCE"
	MethodAI         AttackMethod = "AI"

	// Device types
	DeviceFlashDrive      DeviceType = "flash_drive"
	DeviceExternalHDD     DeviceType = "external_hdd"
	DeviceUSBSSD          DeviceType = "usb_ssd"
	DeviceEncryptedDevice DeviceType = "encrypted_device"
	DeviceSmartCard       DeviceType = "smart_card"

	// Security levels
	SecurityBasic    SecurityLevel = "basic"
	SecurityStandard SecurityLevel = "standard"
	SecurityAdvanced SecurityLevel = "advanced"
	SecurityMilitary SecurityLevel = "military"
)

var (
	CharsetLower  = "abcdefghijklmnopqrstuvwxyz"
	CharsetUpper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	CharsetDigits = "0123456789"

	// CharsetDefault is the brute-force alphabet used when none is requested.
	CharsetDefault = CharsetLower + CharsetDigits
)

// AttackMethods lists every dispatchable method tag.
var AttackMethods = []AttackMethod{
	MethodDictionary,
	MethodRuleBased,
	MethodBruteForce,
	MethodAI,
}

// DeviceTypes lists every simulated device type, in quick-setup order.
var DeviceTypes = []DeviceType{
	DeviceFlashDrive,
	DeviceExternalHDD,
	DeviceUSBSSD,
	DeviceEncryptedDevice,
	DeviceSmartCard,
}

// SecurityLevels lists the supported levels from weakest to strictest.
var SecurityLevels = []SecurityLevel{
	SecurityBasic,
	SecurityStandard,
	SecurityAdvanced,
	SecurityMilitary,
}

// MaxAttemptsFor maps a security level to the unlock attempts allowed before
// lockout. Stricter levels allow fewer attempts.
func MaxAttemptsFor(level SecurityLevel) int {
	switch level {
	case SecurityBasic:
		return 10
	case SecurityStandard:
		return 7
	case SecurityAdvanced:
		return 5
	case SecurityMilitary:
		return 3
	default:
		return 7
	}
}

// EncryptionLabelFor returns the cosmetic cipher label shown for a device type.
func EncryptionLabelFor(deviceType DeviceType) string {
	switch deviceType {
	case DeviceExternalHDD:
		return "AES-256-XTS"
	case DeviceUSBSSD:
		return "AES-256-GCM"
	case DeviceEncryptedDevice:
		return "ChaCha20-Poly1305"
	case DeviceSmartCard:
		return "RSA-2048"
	default:
		return "AES-256"
	}
}

type SimulatorError string

const (
	ErrInvalidDigest    SimulatorError = "INVALID_DIGEST_FORMAT"
	ErrSuspiciousDigest SimulatorError = "SUSPICIOUS_DIGEST_REFUSED"
	ErrEmptyPlaintext   SimulatorError = "EMPTY_PLAINTEXT"
	ErrUnknownMethod    SimulatorError = "UNKNOWN_ATTACK_METHOD"
	ErrLengthLimit      SimulatorError = "MAX_LENGTH_OVER_CEILING"
	ErrDeviceNotFound   SimulatorError = "DEVICE_NOT_FOUND"
	ErrDeviceLockedOut  SimulatorError = "DEVICE_LOCKED_OUT"
	ErrUnknownDevice    SimulatorError = "UNKNOWN_DEVICE_TYPE"
	ErrUnknownSecurity  SimulatorError = "UNKNOWN_SECURITY_LEVEL"
	ErrAIUnavailable    SimulatorError = "AI_UNAVAILABLE"
)

func (e SimulatorError) Error() string {
	return string(e)
}
