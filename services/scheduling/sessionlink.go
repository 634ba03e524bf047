package scheduling

import (
	"fmt"

	"github.com/google/uuid"
)

// sessionNamespace is the fixed UUID namespace for room derivation. It must
// never change: the session link for a booking is a pure function of the
// booking id, so any reader can regenerate the same room at any time.
var sessionNamespace = uuid.MustParse("8f4a2c1e-6b3d-4e9a-9c5f-1d7e8a0b2c4d")

// SessionLinker derives video session links from booking ids.
type SessionLinker struct {
	BaseURL string
}

// RoomID returns the stable room identifier for a booking id.
func (l *SessionLinker) RoomID(bookingID string) string {
	return uuid.NewSHA1(sessionNamespace, []byte(bookingID)).String()
}

// SessionLink returns the full session URL for a booking id. The stored
// Booking.SessionLink field is only a cache of this value.
func (l *SessionLinker) SessionLink(bookingID string) string {
	return fmt.Sprintf("%s/%s", l.BaseURL, l.RoomID(bookingID))
}
