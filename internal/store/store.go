// Package store implements the document contract the repositories are
// built on: a named document is read whole and replaced whole.  There
// is no partial update; callers that modify a document serialise their
// own read-modify-write cycle.
package store

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Read when no document with the given name
// has been written yet.
var ErrNotExist = errors.New("document does not exist")

// ErrMalformed is returned by Read when the stored bytes cannot be
// decoded into the destination value.
var ErrMalformed = errors.New("document is malformed")

// Documents is a set of named JSON documents.
type Documents interface {
	// Read decodes the document called name into v.
	Read(ctx context.Context, name string, v any) error
	// Replace encodes v and stores it as the new content of name.
	Replace(ctx context.Context, name string, v any) error
}
