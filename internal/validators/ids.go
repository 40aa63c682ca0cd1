package validators

import "github.com/google/uuid"

// IsUUID reports whether s is a canonical UUID, the only id format the
// store accepts. Anything else can be answered as "not found" without a
// round trip.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
