package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"messagely/internal/models"
)

type mysqlMessages struct {
	db *sql.DB
}

func NewMessages(db *sql.DB) Messages {
	return &mysqlMessages{db: db}
}

func (s *mysqlMessages) Create(ctx context.Context, from, to, body string) (*models.Message, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (from_username, to_username, body) VALUES (?, ?, ?)`,
		from, to, body)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	m := models.Message{ID: id, FromUsername: from, ToUsername: to, Body: body}
	err = s.db.QueryRowContext(ctx,
		`SELECT sent_at FROM messages WHERE id = ?`, id).Scan(&m.SentAt)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return &m, nil
}

func (s *mysqlMessages) Get(ctx context.Context, id int64) (*models.MessageDetail, error) {
	var d models.MessageDetail
	err := s.db.QueryRowContext(ctx,
		`SELECT m.id, m.body, m.sent_at, m.read_at,
		        f.username, f.first_name, f.last_name, f.phone,
		        t.username, t.first_name, t.last_name, t.phone
		 FROM messages m
		 JOIN users f ON f.username = m.from_username
		 JOIN users t ON t.username = m.to_username
		 WHERE m.id = ?`, id).
		Scan(&d.ID, &d.Body, &d.SentAt, &d.ReadAt,
			&d.FromUser.Username, &d.FromUser.FirstName, &d.FromUser.LastName, &d.FromUser.Phone,
			&d.ToUser.Username, &d.ToUser.FirstName, &d.ToUser.LastName, &d.ToUser.Phone)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return &d, nil
}

func (s *mysqlMessages) MarkRead(ctx context.Context, id int64) (time.Time, error) {
	// COALESCE keeps the first-set timestamp: marking an already-read
	// message again is a no-op.
	_, err := s.db.ExecContext(ctx,
		`UPDATE messages SET read_at = COALESCE(read_at, CURRENT_TIMESTAMP) WHERE id = ?`, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("mark read: %w", err)
	}

	var readAt time.Time
	err = s.db.QueryRowContext(ctx,
		`SELECT read_at FROM messages WHERE id = ?`, id).Scan(&readAt)
	if err == sql.ErrNoRows {
		return time.Time{}, ErrNotFound
	} else if err != nil {
		return time.Time{}, fmt.Errorf("mark read: %w", err)
	}
	return readAt, nil
}

func (s *mysqlMessages) ResolveParties(ctx context.Context, id int64) (string, string, error) {
	var from, to string
	err := s.db.QueryRowContext(ctx,
		`SELECT from_username, to_username FROM messages WHERE id = ?`, id).Scan(&from, &to)
	if err == sql.ErrNoRows {
		return "", "", ErrNotFound
	} else if err != nil {
		return "", "", fmt.Errorf("resolve parties: %w", err)
	}
	return from, to, nil
}

func (s *mysqlMessages) ResolveSMSPayload(ctx context.Context, id int64) (*SMSPayload, error) {
	var p SMSPayload
	err := s.db.QueryRowContext(ctx,
		`SELECT m.body, t.phone, f.phone
		 FROM messages m
		 JOIN users f ON f.username = m.from_username
		 JOIN users t ON t.username = m.to_username
		 WHERE m.id = ?`, id).Scan(&p.Body, &p.ToPhone, &p.FromPhone)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("resolve sms payload: %w", err)
	}
	return &p, nil
}
