package store

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDGenerator returns a fresh record identifier on each call.
type IDGenerator func() string

const base36Digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewBase36IDs generates ids as the base-36 epoch milliseconds followed by
// four random base-36 characters. Collisions are unlikely, not impossible.
func NewBase36IDs(clock func() time.Time) IDGenerator {
	return func() string {
		var b strings.Builder
		b.WriteString(strconv.FormatInt(clock().UnixMilli(), 36))
		for range 4 {
			b.WriteByte(base36Digits[rand.IntN(len(base36Digits))])
		}
		return b.String()
	}
}

// NewUUIDs generates random (v4) UUID strings.
func NewUUIDs() IDGenerator {
	return uuid.NewString
}

// NewIDGenerator picks the generator named by scheme ("base36" or "uuid").
func NewIDGenerator(scheme string, clock func() time.Time) (IDGenerator, error) {
	switch scheme {
	case "", "base36":
		return NewBase36IDs(clock), nil
	case "uuid":
		return NewUUIDs(), nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q", scheme)
	}
}
