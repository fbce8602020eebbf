package utils

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTrackingIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^PRCL-\d{8}-[0-9A-F]{6}$`)
	datePart := time.Now().Format("20060102")

	for i := 0; i < 50; i++ {
		id := GenerateTrackingID()
		assert.Regexp(t, pattern, id)
		assert.Equal(t, fmt.Sprintf("PRCL-%s-", datePart), id[:14])
	}
}

func TestGenerateTrackingIDFresh(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[GenerateTrackingID()] = true
	}
	// 3 random bytes make a same-run collision vanishingly unlikely
	assert.Greater(t, len(seen), 95)
}
