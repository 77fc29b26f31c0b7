package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	mysql "github.com/go-sql-driver/mysql"

	"messagely/internal/models"
)

type mysqlUsers struct {
	db *sql.DB
}

func NewUsers(db *sql.DB) Users {
	return &mysqlUsers{db: db}
}

const mysqlErrDuplicateEntry = 1062

func (s *mysqlUsers) Create(ctx context.Context, username, passwordHash, firstName, lastName, phone string) (*models.User, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, first_name, last_name, phone) VALUES (?, ?, ?, ?, ?)`,
		username, passwordHash, firstName, lastName, phone)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.Get(ctx, username)
}

func (s *mysqlUsers) GetHash(ctx context.Context, username string) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT password_hash FROM users WHERE username = ?`, username).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	} else if err != nil {
		return "", fmt.Errorf("get hash: %w", err)
	}
	return hash, nil
}

func (s *mysqlUsers) TouchLogin(ctx context.Context, username string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = CURRENT_TIMESTAMP WHERE username = ?`, username)
	return err
}

func (s *mysqlUsers) All(ctx context.Context) ([]models.UserSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT username, first_name, last_name FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.UserSummary
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *mysqlUsers) Get(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT username, first_name, last_name, phone, join_at, last_login_at
		 FROM users WHERE username = ?`, username).
		Scan(&u.Username, &u.FirstName, &u.LastName, &u.Phone, &u.JoinAt, &u.LastLoginAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (s *mysqlUsers) UpdateProfile(ctx context.Context, username string, upd models.ProfileUpdate) (*models.User, error) {
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	if upd.FirstName != nil {
		sets = append(sets, "first_name = ?")
		args = append(args, *upd.FirstName)
	}
	if upd.LastName != nil {
		sets = append(sets, "last_name = ?")
		args = append(args, *upd.LastName)
	}
	if upd.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *upd.Phone)
	}
	if len(sets) > 0 {
		args = append(args, username)
		// MySQL reports 0 affected rows both for a missing user and for a
		// no-op update, so existence is settled by the read-back below.
		_, err := s.db.ExecContext(ctx,
			`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE username = ?`, args...)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}
	return s.Get(ctx, username)
}

func (s *mysqlUsers) MessagesFrom(ctx context.Context, username string) ([]models.InboxEntry, error) {
	return s.listMessages(ctx,
		`SELECT m.id, m.body, m.sent_at, m.read_at,
		        u.username, u.first_name, u.last_name, u.phone
		 FROM messages m JOIN users u ON u.username = m.to_username
		 WHERE m.from_username = ? ORDER BY m.id`, username)
}

func (s *mysqlUsers) MessagesTo(ctx context.Context, username string) ([]models.InboxEntry, error) {
	return s.listMessages(ctx,
		`SELECT m.id, m.body, m.sent_at, m.read_at,
		        u.username, u.first_name, u.last_name, u.phone
		 FROM messages m JOIN users u ON u.username = m.from_username
		 WHERE m.to_username = ? ORDER BY m.id`, username)
}

func (s *mysqlUsers) listMessages(ctx context.Context, query, username string) ([]models.InboxEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var entries []models.InboxEntry
	for rows.Next() {
		var e models.InboxEntry
		err := rows.Scan(&e.ID, &e.Body, &e.SentAt, &e.ReadAt,
			&e.Counterpart.Username, &e.Counterpart.FirstName,
			&e.Counterpart.LastName, &e.Counterpart.Phone)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
