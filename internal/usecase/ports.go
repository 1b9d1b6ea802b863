package usecase

import (
	"context"
	"io"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"

	"github.com/google/uuid"
)

// Repository stores one record per identity. Load returns nil, nil when the
// identity has nothing stored yet.
type Repository interface {
	Load(ctx context.Context, id domain.Identity) (*model.Record, error)
	Upsert(ctx context.Context, rec *model.Record) error
}

// IdentityResolver answers who the current user is, if anyone.
type IdentityResolver interface {
	CurrentIdentity(ctx context.Context) (domain.Identity, bool)
}

// Navigator sends the user somewhere else, e.g. the sign-in page.
type Navigator interface {
	RedirectTo(path string)
}

// Printer turns a rendered HTML page into a printable document.
type Printer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// ArtifactStore archives exported documents.
type ArtifactStore interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}

// IDGenerator produces entity identifiers.
type IDGenerator func() string

// NewEntityID returns a time-ordered UUID (v7).
func NewEntityID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// AnonymousIdentity resolves nobody. Sessions started without credentials
// use it, so every save ends in the sign-in redirect.
type AnonymousIdentity struct{}

func (AnonymousIdentity) CurrentIdentity(context.Context) (domain.Identity, bool) { return "", false }

// StaticIdentity always resolves to the same user. Used by tools and tests.
type StaticIdentity domain.Identity

func (s StaticIdentity) CurrentIdentity(context.Context) (domain.Identity, bool) {
	if s == "" {
		return "", false
	}
	return domain.Identity(s), true
}
