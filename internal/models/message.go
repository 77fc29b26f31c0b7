package models

import "time"

type Message struct {
	ID           int64      `json:"id"`
	FromUsername string     `json:"from_username"`
	ToUsername   string     `json:"to_username"`
	Body         string     `json:"body"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`
}

// MessageDetail joins a message with the public fields of both parties.
type MessageDetail struct {
	ID       int64        `json:"id"`
	Body     string       `json:"body"`
	SentAt   time.Time    `json:"sent_at"`
	ReadAt   *time.Time   `json:"read_at"`
	FromUser PartyProfile `json:"from_user"`
	ToUser   PartyProfile `json:"to_user"`
}

// PartyProfile is what a message's counterpart is allowed to see of a user.
type PartyProfile struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// InboxEntry is one row of a user's inbound or outbound message listing;
// Counterpart is the other party of the message.
type InboxEntry struct {
	ID          int64        `json:"id"`
	Body        string       `json:"body"`
	SentAt      time.Time    `json:"sent_at"`
	ReadAt      *time.Time   `json:"read_at"`
	Counterpart PartyProfile `json:"counterpart"`
}
