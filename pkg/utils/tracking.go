package utils

import (
	"crypto/rand"
	"fmt"
	"time"
)

// GenerateTrackingID produces a human-facing parcel label of the form
// PRCL-YYYYMMDD-XXXXXX with a random uppercase-hex suffix. It is a label,
// not a secret; the suffix only has to make same-day collisions unlikely.
func GenerateTrackingID() string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}

	return fmt.Sprintf("PRCL-%s-%X", time.Now().Format("20060102"), buf)
}
