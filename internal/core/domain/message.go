package domain

import "time"

// Channel selects how a mass message is delivered.
type Channel string

const (
	ChannelEmail        Channel = "email"
	ChannelNotification Channel = "notification"
	ChannelBoth         Channel = "both"
)

// Email is a single outbound email.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Notification is a single in-app notification.
type Notification struct {
	UserID  FlexString `json:"user_id"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
	Type    string     `json:"type"`
}

// Broadcast records a mass message submitted by an admin.
type Broadcast struct {
	ID           string    `json:"id"            bson:"_id"`
	Channel      Channel   `json:"channel"       bson:"channel"`
	Subject      string    `json:"subject"       bson:"subject"`
	Message      string    `json:"message"       bson:"message"`
	ApprovedOnly bool      `json:"approved_only" bson:"approved_only"`
	Recipients   int       `json:"recipients"    bson:"recipients"`
	SentBy       string    `json:"sent_by"       bson:"sent_by"`
	CreatedAt    time.Time `json:"created_at"    bson:"created_at"`
}
