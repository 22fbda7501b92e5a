package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"learnhub/internal/model"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

const (
	keyToken    = "token"
	keyUser     = "user"
	keyDarkMode = "darkMode"
)

// Store is a key-value file mirroring what a browser keeps in local storage.
type Store struct {
	db *sql.DB
}

func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() {
	if err := s.db.Close(); err != nil {
		log.Errorf("closing store: %v", err)
	}
}

func (s *Store) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Load returns the stored session. A missing or unreadable user blob yields
// a logged-out session rather than an error.
func (s *Store) Load() (Session, error) {
	token, _, err := s.get(keyToken)
	if err != nil {
		return Session{}, err
	}

	blob, ok, err := s.get(keyUser)
	if err != nil {
		return Session{}, err
	}

	sess := Session{Token: token}
	if ok {
		var user model.User
		if err := json.Unmarshal([]byte(blob), &user); err != nil {
			log.Warnf("discarding stored user: %v", err)
			return Session{}, nil
		}
		sess.User = &user
	}

	return sess, nil
}

func (s *Store) Save(sess Session) error {
	if err := s.set(keyToken, sess.Token); err != nil {
		return err
	}

	if sess.User == nil {
		return s.remove(keyUser)
	}

	blob, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	return s.set(keyUser, string(blob))
}

// Clear forgets the token and user. Preferences are kept.
func (s *Store) Clear() error {
	if err := s.remove(keyToken); err != nil {
		return err
	}
	return s.remove(keyUser)
}

func (s *Store) remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

func (s *Store) DarkMode() (bool, error) {
	value, _, err := s.get(keyDarkMode)
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

func (s *Store) SetDarkMode(on bool) error {
	return s.set(keyDarkMode, fmt.Sprintf("%t", on))
}
