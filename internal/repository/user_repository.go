package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/iliyamo/movie-booking-assistant/internal/model"
	"github.com/iliyamo/movie-booking-assistant/internal/store"
)

// UserDocument is the name of the users document.
const UserDocument = "users"

type usersDoc struct {
	Users []model.User `json:"users"`
}

// UserRepo stores registered users.  Usernames are unique and compared
// case-insensitively.
type UserRepo struct {
	docs store.Documents
	mu   sync.Mutex
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(docs store.Documents) *UserRepo {
	return &UserRepo{docs: docs}
}

func (r *UserRepo) load(ctx context.Context) (usersDoc, error) {
	var doc usersDoc
	if err := r.docs.Read(ctx, UserDocument, &doc); err != nil && !errors.Is(err, store.ErrNotExist) {
		return usersDoc{}, fmt.Errorf("load users: %w", err)
	}
	return doc, nil
}

// Create inserts u.  ErrConflict is returned when the username is
// already taken.
func (r *UserRepo) Create(ctx context.Context, u model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, existing := range doc.Users {
		if strings.EqualFold(existing.Username, u.Username) {
			return ErrConflict
		}
	}
	doc.Users = append(doc.Users, u)
	if err := r.docs.Replace(ctx, UserDocument, doc); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// GetByUsername looks a user up by name.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range doc.Users {
		if strings.EqualFold(u.Username, username) {
			u := u
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}
