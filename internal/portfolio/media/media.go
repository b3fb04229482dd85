// Package media hands uploaded files to object storage and keeps only the
// resulting public URL.
package media

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrDisabled is returned when no object store is configured.
	ErrDisabled = errors.New("media: object storage not configured")
	// ErrForeign is returned when asked to delete an asset we do not host.
	ErrForeign = errors.New("media: url not hosted by this store")
)

// File is one uploaded file as received from a multipart form.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Store is the object storage collaborator.
type Store interface {
	// Upload stores f under folder and returns its public URL.
	Upload(ctx context.Context, folder string, f File) (string, error)
	// Delete removes the asset behind url. url must satisfy Owns.
	Delete(ctx context.Context, url string) error
	// Owns reports whether url points at an asset this store hosts.
	Owns(url string) bool
}

// Disabled rejects uploads. It is used when S3_BUCKET is unset so records
// with plain URL media still work.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, File) (string, error) { return "", ErrDisabled }
func (Disabled) Delete(context.Context, string) error                  { return ErrDisabled }
func (Disabled) Owns(string) bool                                      { return false }
