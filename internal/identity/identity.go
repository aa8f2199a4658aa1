// Package identity manages registered users and the current session.
//
// Users and the session pointer live in the same store as the task
// collections. Passwords are stored in plaintext and compared exactly;
// this is a local, single-machine application with no security layer.
package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tdlapp/tdl-go/internal/appdir"
	"github.com/tdlapp/tdl-go/internal/store"
	"github.com/tdlapp/tdl-go/internal/task"
)

var (
	// ErrDuplicateEmail is returned when registering an email that is
	// already taken (after normalization).
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrWeakPassword is returned when a password is shorter than MinPasswordLen.
	ErrWeakPassword = errors.New("password must be at least 4 characters")
	// ErrInvalidCredentials is returned when no user matches email and password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 4

// User is a registered account as stored on disk.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identity is the public part of a user, safe to hand to views and to
// persist as the session pointer.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Service provides register/login/logout over the store.
type Service struct {
	store *store.Store
	tasks *task.Repository
}

// NewService returns a service backed by s. The task repository is
// used to initialize an empty collection for newly registered owners.
func NewService(s *store.Store, tasks *task.Repository) *Service {
	return &Service{store: s, tasks: tasks}
}

// NormalizeEmail trims and lowercases an email address. All lookups
// and uniqueness checks operate on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user, initializes an empty task collection
// for it, and establishes a session. It fails with ErrDuplicateEmail
// or ErrWeakPassword without creating anything.
func (s *Service) Register(name, email, password string) (Identity, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)

	users, err := s.users()
	if err != nil {
		return Identity{}, err
	}
	for _, u := range users {
		if u.Email == email {
			return Identity{}, ErrDuplicateEmail
		}
	}
	if len(password) < MinPasswordLen {
		return Identity{}, ErrWeakPassword
	}

	user := User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: password,
	}
	users = append(users, user)
	if err := s.store.Write(appdir.UsersKey, users); err != nil {
		return Identity{}, err
	}
	if err := s.tasks.EnsureOwner(email); err != nil {
		return Identity{}, err
	}

	id := publicIdentity(user)
	if err := s.store.Write(appdir.SessionKey, id); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// Login establishes a session for the user matching the normalized
// email and exact password, or fails with ErrInvalidCredentials.
func (s *Service) Login(email, password string) (Identity, error) {
	email = NormalizeEmail(email)

	users, err := s.users()
	if err != nil {
		return Identity{}, err
	}
	for _, u := range users {
		if u.Email == email && u.Password == password {
			id := publicIdentity(u)
			if err := s.store.Write(appdir.SessionKey, id); err != nil {
				return Identity{}, err
			}
			return id, nil
		}
	}
	return Identity{}, ErrInvalidCredentials
}

// Logout clears the session. Logging out with no session is a no-op.
func (s *Service) Logout() error {
	return s.store.Delete(appdir.SessionKey)
}

// Current returns the active session identity, if any.
func (s *Service) Current() (Identity, bool, error) {
	var id Identity
	found, err := s.store.Read(appdir.SessionKey, &id)
	if err != nil {
		return Identity{}, false, err
	}
	if !found || id.Email == "" {
		return Identity{}, false, nil
	}
	return id, true, nil
}

func (s *Service) users() ([]User, error) {
	users := []User{}
	if _, err := s.store.Read(appdir.UsersKey, &users); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

func publicIdentity(u User) Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email}
}
