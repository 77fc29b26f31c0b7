// Package store persists users and messages in MySQL. Repositories are
// defined as interfaces so handlers can be exercised against fakes.
package store

import (
	"context"
	"time"

	"messagely/internal/models"
)

// Users is the credential store and user directory. Usernames are
// expected to arrive already lowercased; the store does exact lookups.
type Users interface {
	// Create inserts a new user. The password hash is computed by the
	// caller; the raw password never reaches the store.
	Create(ctx context.Context, username, passwordHash, firstName, lastName, phone string) (*models.User, error)
	// GetHash returns the stored password hash for authentication.
	GetHash(ctx context.Context, username string) (string, error)
	// TouchLogin updates last_login_at. Best effort, not security critical.
	TouchLogin(ctx context.Context, username string) error
	All(ctx context.Context) ([]models.UserSummary, error)
	Get(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, username string, upd models.ProfileUpdate) (*models.User, error)
	MessagesFrom(ctx context.Context, username string) ([]models.InboxEntry, error)
	MessagesTo(ctx context.Context, username string) ([]models.InboxEntry, error)
}

// SMSPayload is the projection needed to relay a message over SMS.
type SMSPayload struct {
	Body      string
	ToPhone   string
	FromPhone string
}

// Messages is the message store.
type Messages interface {
	Create(ctx context.Context, from, to, body string) (*models.Message, error)
	Get(ctx context.Context, id int64) (*models.MessageDetail, error)
	// MarkRead stamps read_at if it is still null and returns the stored
	// value. Calling it again leaves the first timestamp in place.
	MarkRead(ctx context.Context, id int64) (time.Time, error)
	// ResolveParties returns just the sender and recipient usernames,
	// for authorization checks that don't need the message body.
	ResolveParties(ctx context.Context, id int64) (from, to string, err error)
	ResolveSMSPayload(ctx context.Context, id int64) (*SMSPayload, error)
}
