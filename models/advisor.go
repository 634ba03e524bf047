package models

import "time"

// Advisor is the directory entry for a bookable consultant. Profile data
// beyond what scheduling needs lives with the external profile service.
type Advisor struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Active    bool      `bson:"active" json:"active"`
	SlotGrid  []string  `bson:"slot_grid,omitempty" json:"slotGrid,omitempty"` // "15:04" values; empty means the system default grid
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// DayAvailability is the availability view for one advisor on one date.
type DayAvailability struct {
	AdvisorID string   `json:"advisorId"`
	Date      string   `json:"date"`
	FreeSlots []string `json:"freeSlots"`
}
