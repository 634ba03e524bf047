package models

import "time"

// BookingStatus enumerates the lifecycle states of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCompleted BookingStatus = "Completed"
	StatusCancelled BookingStatus = "Cancelled"
)

// Live reports whether the status still occupies its advisor slot.
// Completed and Cancelled bookings release the slot.
func (s BookingStatus) Live() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Terminal reports whether no further transition is legal from this status.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// SessionDurationMinutes is the fixed length of every consultation session.
const SessionDurationMinutes = 60

// ClientContact carries display/contact details supplied by the client.
// Only presence of a name is required; nothing here is validated further.
type ClientContact struct {
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Phone    string `bson:"phone" json:"phone"`
	Location string `bson:"location,omitempty" json:"location,omitempty"`
}

// Comment is one entry in a booking's append-only comment thread.
// Insertion order is the display and causal order; entries are never
// edited or removed.
type Comment struct {
	AuthorID   string    `bson:"author_id" json:"authorId"`
	AuthorName string    `bson:"author_name" json:"authorName"`
	Text       string    `bson:"text" json:"text"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// Booking is the central scheduling record: one advisor, one client, one
// dated time slot.
type Booking struct {
	ID              string        `bson:"id" json:"id"`
	ClientID        string        `bson:"client_id" json:"clientId"`
	AdvisorID       string        `bson:"advisor_id" json:"advisorId"`
	ClientContact   ClientContact `bson:"client_contact" json:"clientContact"`
	ServiceType     string        `bson:"service_type" json:"serviceType"`
	RequestMessage  string        `bson:"request_message,omitempty" json:"requestMessage,omitempty"`
	ScheduledDate   string        `bson:"scheduled_date" json:"scheduledDate"` // "2006-01-02", Nepal local calendar date
	ScheduledTime   string        `bson:"scheduled_time" json:"scheduledTime"` // "15:04", member of the advisor slot grid
	DurationMinutes int           `bson:"duration_minutes" json:"durationMinutes"`
	Status          BookingStatus `bson:"status" json:"status"`
	SessionLink     string        `bson:"session_link,omitempty" json:"sessionLink,omitempty"`
	Comments        []Comment     `bson:"comments,omitempty" json:"comments,omitempty"`
	CreatedAt       time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Participant reports whether the given principal id is one of the two
// parties on the booking.
func (b *Booking) Participant(id string) bool {
	return id == b.ClientID || id == b.AdvisorID
}

// BookingRequest is the payload for creating a new booking.
type BookingRequest struct {
	AdvisorID      string        `json:"advisorId" binding:"required"`
	ServiceType    string        `json:"serviceType" binding:"required"`
	ScheduledDate  string        `json:"scheduledDate" binding:"required"`
	ScheduledTime  string        `json:"scheduledTime" binding:"required"`
	Contact        ClientContact `json:"contact" binding:"required"`
	RequestMessage string        `json:"requestMessage,omitempty"`
	IdempotencyKey string        `json:"idempotencyKey,omitempty"`
}

// RescheduleRequest moves an existing booking to a new date/time.
type RescheduleRequest struct {
	ScheduledDate string `json:"scheduledDate" binding:"required"`
	ScheduledTime string `json:"scheduledTime" binding:"required"`
}

// StatusUpdateRequest asks for a lifecycle transition.
type StatusUpdateRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}

// CommentRequest appends a comment to a booking's thread.
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}
