package models

// ReminderPayload is the queued message for a session reminder.
type ReminderPayload struct {
	BookingID   string `json:"bookingId"`
	RecipientID string `json:"recipientId"`
	Target      string `json:"target"` // "client" or "advisor"
	Title       string `json:"title"`
	Body        string `json:"body"`
	SessionLink string `json:"sessionLink"`
	FireDate    string `json:"fireDate"`
}
