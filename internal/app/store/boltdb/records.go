package boltdb

import (
	"cmp"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"slices"

	"go.etcd.io/bbolt"

	"massg/internal/app/store"
)

var _ store.Store = (*Storage)(nil)

// messageRecord is the persisted form of store.Message; the correlation id is not kept.
type messageRecord struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	ImageURL  string `json:"image_url"`
	CreatedAt int64  `json:"created_at"`
}

// CreateUser stores u under its username. The existence check and the write share one transaction.
func (s *Storage) CreateUser(_ context.Context, u *store.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketUsers)
		key := []byte(u.Username)

		if bucket.Get(key) != nil {
			return store.ErrDuplicateUsername
		}

		if err := bucket.Put(key, data); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
		return nil
	})
}

// GetUserByUsername loads the user stored under username.
func (s *Storage) GetUserByUsername(_ context.Context, username string) (*store.User, error) {
	var u *store.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketUsers).Get([]byte(username))
		if data == nil {
			return store.ErrNotFound
		}

		u = &store.User{}
		if err := json.Unmarshal(data, u); err != nil {
			return fmt.Errorf("failed to unmarshal user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u, nil
}

// SaveToken stores t under its token value.
func (s *Storage) SaveToken(_ context.Context, t *store.Token) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketTokens).Put([]byte(t.Token), data); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		return nil
	})
}

// GetToken loads a token record.
func (s *Storage) GetToken(_ context.Context, token string) (*store.Token, error) {
	var t *store.Token

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketTokens).Get([]byte(token))
		if data == nil {
			return store.ErrNotFound
		}

		t = &store.Token{}
		if err := json.Unmarshal(data, t); err != nil {
			return fmt.Errorf("failed to unmarshal token: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// InsertMessage appends m under the bucket's next sequence number.
func (s *Storage) InsertMessage(_ context.Context, m *store.Message) error {
	data, err := json.Marshal(messageRecord{
		ID:        m.ID,
		Username:  m.Username,
		Text:      m.Text,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMessages)

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate message sequence: %w", err)
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)

		if err := bucket.Put(key, data); err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}
		return nil
	})
}

// ListMessages walks the messages bucket in key (insertion) order and stably sorts by CreatedAt.
func (s *Storage) ListMessages(_ context.Context) ([]store.Message, error) {
	msgs := []store.Message{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMessages).ForEach(func(_, v []byte) error {
			var rec messageRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to unmarshal message: %w", err)
			}

			msgs = append(msgs, store.Message{
				ID:        rec.ID,
				Username:  rec.Username,
				Text:      rec.Text,
				ImageURL:  rec.ImageURL,
				CreatedAt: rec.CreatedAt,
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(msgs, func(a, b store.Message) int {
		return cmp.Compare(a.CreatedAt, b.CreatedAt)
	})

	return msgs, nil
}
