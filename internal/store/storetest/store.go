// Package storetest provides an in-memory store for handler and router
// tests, mirroring the MySQL implementation's semantics: exact
// lowercase lookups, first-write-wins read_at, referential integrity
// on message parties.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"messagely/internal/models"
	"messagely/internal/store"
)

type userRecord struct {
	user models.User
	hash string
}

// Store holds the shared state. Users() and Messages() expose it
// through the repository interfaces.
type Store struct {
	mu     sync.Mutex
	users  map[string]*userRecord
	msgs   map[int64]*models.Message
	nextID int64
}

func New() *Store {
	return &Store{
		users:  make(map[string]*userRecord),
		msgs:   make(map[int64]*models.Message),
		nextID: 1,
	}
}

func (s *Store) Users() store.Users       { return usersView{s} }
func (s *Store) Messages() store.Messages { return messagesView{s} }

type usersView struct{ s *Store }

var _ store.Users = usersView{}

func (v usersView) Create(ctx context.Context, username, passwordHash, firstName, lastName, phone string) (*models.User, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return nil, store.ErrDuplicateUser
	}
	rec := &userRecord{
		user: models.User{
			Username:  username,
			FirstName: firstName,
			LastName:  lastName,
			Phone:     phone,
			JoinAt:    time.Now(),
		},
		hash: passwordHash,
	}
	s.users[username] = rec
	u := rec.user
	return &u, nil
}

func (v usersView) GetHash(ctx context.Context, username string) (string, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	rec, ok := v.s.users[username]
	if !ok {
		return "", store.ErrNotFound
	}
	return rec.hash, nil
}

func (v usersView) TouchLogin(ctx context.Context, username string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if rec, ok := v.s.users[username]; ok {
		now := time.Now()
		rec.user.LastLoginAt = &now
	}
	return nil
}

func (v usersView) All(ctx context.Context) ([]models.UserSummary, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	out := make([]models.UserSummary, 0, len(v.s.users))
	for _, rec := range v.s.users {
		out = append(out, models.UserSummary{
			Username:  rec.user.Username,
			FirstName: rec.user.FirstName,
			LastName:  rec.user.LastName,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (v usersView) Get(ctx context.Context, username string) (*models.User, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	rec, ok := v.s.users[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	u := rec.user
	return &u, nil
}

func (v usersView) UpdateProfile(ctx context.Context, username string, upd models.ProfileUpdate) (*models.User, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	rec, ok := v.s.users[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	if upd.FirstName != nil {
		rec.user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		rec.user.LastName = *upd.LastName
	}
	if upd.Phone != nil {
		rec.user.Phone = *upd.Phone
	}
	u := rec.user
	return &u, nil
}

func (v usersView) MessagesFrom(ctx context.Context, username string) ([]models.InboxEntry, error) {
	return v.s.listMessages(username, false)
}

func (v usersView) MessagesTo(ctx context.Context, username string) ([]models.InboxEntry, error) {
	return v.s.listMessages(username, true)
}

func (s *Store) listMessages(username string, inbound bool) ([]models.InboxEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.msgs))
	for id := range s.msgs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.InboxEntry
	for _, id := range ids {
		m := s.msgs[id]
		var counterpart string
		switch {
		case inbound && m.ToUsername == username:
			counterpart = m.FromUsername
		case !inbound && m.FromUsername == username:
			counterpart = m.ToUsername
		default:
			continue
		}
		out = append(out, models.InboxEntry{
			ID:          m.ID,
			Body:        m.Body,
			SentAt:      m.SentAt,
			ReadAt:      m.ReadAt,
			Counterpart: s.partyProfile(counterpart),
		})
	}
	return out, nil
}

func (s *Store) partyProfile(username string) models.PartyProfile {
	u := s.users[username].user
	return models.PartyProfile{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}

type messagesView struct{ s *Store }

var _ store.Messages = messagesView{}

func (v messagesView) Create(ctx context.Context, from, to, body string) (*models.Message, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[from]; !ok {
		return nil, fmt.Errorf("unknown sender %q", from)
	}
	if _, ok := s.users[to]; !ok {
		return nil, fmt.Errorf("unknown recipient %q", to)
	}
	m := &models.Message{
		ID:           s.nextID,
		FromUsername: from,
		ToUsername:   to,
		Body:         body,
		SentAt:       time.Now(),
	}
	s.nextID++
	s.msgs[m.ID] = m
	cp := *m
	return &cp, nil
}

func (v messagesView) Get(ctx context.Context, id int64) (*models.MessageDetail, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.msgs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &models.MessageDetail{
		ID:       m.ID,
		Body:     m.Body,
		SentAt:   m.SentAt,
		ReadAt:   m.ReadAt,
		FromUser: s.partyProfile(m.FromUsername),
		ToUser:   s.partyProfile(m.ToUsername),
	}, nil
}

func (v messagesView) MarkRead(ctx context.Context, id int64) (time.Time, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	m, ok := v.s.msgs[id]
	if !ok {
		return time.Time{}, store.ErrNotFound
	}
	if m.ReadAt == nil {
		now := time.Now()
		m.ReadAt = &now
	}
	return *m.ReadAt, nil
}

func (v messagesView) ResolveParties(ctx context.Context, id int64) (string, string, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	m, ok := v.s.msgs[id]
	if !ok {
		return "", "", store.ErrNotFound
	}
	return m.FromUsername, m.ToUsername, nil
}

func (v messagesView) ResolveSMSPayload(ctx context.Context, id int64) (*store.SMSPayload, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	m, ok := v.s.msgs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &store.SMSPayload{
		Body:      m.Body,
		ToPhone:   v.s.users[m.ToUsername].user.Phone,
		FromPhone: v.s.users[m.FromUsername].user.Phone,
	}, nil
}
