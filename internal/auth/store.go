package auth

import (
	"encoding/json"
	"fmt"
	"os"
)

// User is one entry of the static credential list. Passwords are stored and
// compared in plaintext; this is an internal tool and the list is maintained
// by hand, so there is no hashing, lockout or session layer.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// Store holds the user list loaded once at startup.
type Store struct {
	users []User
}

// NewStore reads the JSON user list from path. A missing file yields an empty
// store rather than an error so the server can still serve reports.
func NewStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Store{}, nil
		}
		return nil, fmt.Errorf("read users file %s: %w", path, err)
	}

	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse users file %s: %w", path, err)
	}
	return &Store{users: users}, nil
}

// Authenticate looks up a user by exact username/password match.
func (s *Store) Authenticate(username, password string) (*User, bool) {
	for i := range s.users {
		if s.users[i].Username == username && s.users[i].Password == password {
			u := s.users[i]
			return &u, true
		}
	}
	return nil, false
}

// Lookup finds a user by username only.
func (s *Store) Lookup(username string) (*User, bool) {
	for i := range s.users {
		if s.users[i].Username == username {
			u := s.users[i]
			return &u, true
		}
	}
	return nil, false
}
