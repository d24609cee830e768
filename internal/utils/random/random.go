package random

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// String returns a random string of length drawn from charset.
func String(charset string, length int) string {
	if length <= 0 || len(charset) == 0 {
		return ""
	}

	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}

// UUID returns a new random identifier for results and jobs.
func UUID() string {
	return uuid.NewString()
}

// DeviceID builds a unique simulated-device identifier in the USB_<ms>_<nnnn>
// shape the demo frontends expect.
func DeviceID() string {
	return fmt.Sprintf("USB_%d_%04d", time.Now().UnixMilli(), rand.Intn(10000))
}
