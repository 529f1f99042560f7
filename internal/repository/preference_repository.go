package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/iliyamo/movie-booking-assistant/internal/model"
	"github.com/iliyamo/movie-booking-assistant/internal/store"
)

// PreferenceDocument is the name of the preferences document.
const PreferenceDocument = "preferences"

type preferencesDoc struct {
	Preferences map[string]model.Preferences `json:"preferences"`
}

// PreferenceRepo persists the per-user preferences learned from chat.
type PreferenceRepo struct {
	docs store.Documents
	mu   sync.Mutex
}

// NewPreferenceRepo constructs a PreferenceRepo.
func NewPreferenceRepo(docs store.Documents) *PreferenceRepo {
	return &PreferenceRepo{docs: docs}
}

func (r *PreferenceRepo) load(ctx context.Context) (preferencesDoc, error) {
	var doc preferencesDoc
	if err := r.docs.Read(ctx, PreferenceDocument, &doc); err != nil && !errors.Is(err, store.ErrNotExist) {
		return preferencesDoc{}, fmt.Errorf("load preferences: %w", err)
	}
	if doc.Preferences == nil {
		doc.Preferences = map[string]model.Preferences{}
	}
	return doc, nil
}

// Get returns the preferences of username, or the defaults when
// nothing has been stored for them.
func (r *PreferenceRepo) Get(ctx context.Context, username string) (model.Preferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return model.DefaultPreferences(), err
	}
	if p, ok := doc.Preferences[username]; ok {
		return p, nil
	}
	return model.DefaultPreferences(), nil
}

// Update applies fn to the stored preferences of username and saves
// the result when fn reports a change.
func (r *PreferenceRepo) Update(ctx context.Context, username string, fn func(*model.Preferences) bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	p, ok := doc.Preferences[username]
	if !ok {
		p = model.DefaultPreferences()
	}
	if !fn(&p) {
		return nil
	}
	doc.Preferences[username] = p
	if err := r.docs.Replace(ctx, PreferenceDocument, doc); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
