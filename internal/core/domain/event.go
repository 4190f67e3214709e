package domain

// EventStatus is the lifecycle state of a community event.
type EventStatus string

const (
	EventActive    EventStatus = "active"
	EventInactive  EventStatus = "inactive"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// Valid reports whether s is a known event status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventActive, EventInactive, EventCompleted, EventCancelled:
		return true
	}
	return false
}

// Event is a volunteering event published on the platform.
type Event struct {
	ID                   FlexString  `json:"id,omitempty"`
	Title                string      `json:"title"                 validate:"required"`
	Description          string      `json:"description"           validate:"required"`
	CategoryID           FlexString  `json:"category_id"           validate:"required"`
	Location             string      `json:"location"              validate:"required"`
	EventType            string      `json:"event_type,omitempty"`
	EventDate            string      `json:"event_date"            validate:"required"`
	StartTime            string      `json:"start_time,omitempty"`
	EndTime              string      `json:"end_time,omitempty"`
	RegistrationDeadline string      `json:"registration_deadline,omitempty"`
	MaxParticipants      int         `json:"max_participants,omitempty"     validate:"gte=0"`
	CurrentParticipants  int         `json:"current_participants,omitempty" validate:"gte=0"`
	ContactEmail         string      `json:"contact_email,omitempty"        validate:"omitempty,email"`
	ContactPhone         string      `json:"contact_phone,omitempty"`
	Status               EventStatus `json:"status,omitempty"`
	IsFeatured           bool        `json:"is_featured"`
	Tags                 []string    `json:"tags,omitempty"`
	Requirements         []string    `json:"requirements,omitempty"`
	CreatedAt            string      `json:"created_at,omitempty"`
}
