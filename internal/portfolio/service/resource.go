package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/aussiebroadwan/folio/internal/portfolio/cache"
	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
	"github.com/aussiebroadwan/folio/internal/portfolio/media"
	"github.com/aussiebroadwan/folio/internal/portfolio/store"
	"github.com/aussiebroadwan/folio/pkg/idx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// ResourceInput is a decoded create or update request. Files are keyed by
// their media field and take precedence over a URL in Values.
type ResourceInput struct {
	Values map[string]any
	Files  []media.File
}

// ResourceService implements create, read, update and delete for one
// portfolio collection. Every collection shares this code; the schema
// supplies the differences.
type ResourceService struct {
	Schema domain.Schema
	Store  store.Store
	Media  media.Store
	Cache  cache.Portfolio
}

func (s *ResourceService) title() string {
	r := []rune(s.Schema.Singular)
	if len(r) == 0 {
		return "Record"
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Create stores a new record for ownerID. Only the owner may create, except
// on open collections where any caller may and is recorded as the author.
func (s *ResourceService) Create(ctx context.Context, actor Actor, ownerID string, in ResourceInput) (domain.Document, error) {
	if !s.Schema.OpenCreate && actor.ID != ownerID {
		return domain.Document{}, forbidden("You can only add records to your own portfolio")
	}

	if _, err := s.Store.Users().GetUserByID(ctx, ownerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Document{}, notFound("User not found")
		}
		return domain.Document{}, err
	}

	if err := s.checkFiles(in.Files); err != nil {
		return domain.Document{}, err
	}

	values, err := s.Schema.Merge(nil, in.Values)
	if err != nil {
		return domain.Document{}, validationError(err)
	}

	uploaded, err := s.upload(ctx, ownerID, in.Files, values)
	if err != nil {
		return domain.Document{}, err
	}

	doc := domain.Document{
		ID:         idx.New().String(),
		Collection: s.Schema.Collection,
		OwnerID:    ownerID,
		Values:     values,
	}
	if s.Schema.OpenCreate {
		doc.AuthorID = actor.ID
	}

	if err := s.Store.Documents().CreateDocument(ctx, doc, s.Schema.UniqueKey(ownerID, values)); err != nil {
		deleteHosted(ctx, s.Media, uploaded)
		return domain.Document{}, s.mapWriteErr(err)
	}
	s.Cache.Invalidate(ctx, ownerID)

	slogx.FromContext(ctx).Info("record created",
		slog.String("collection", s.Schema.Collection),
		slog.String("id", doc.ID),
		slog.String("owner_id", ownerID),
	)
	return s.Store.Documents().GetDocument(ctx, s.Schema.Collection, doc.ID)
}

// ListByOwner returns the owner's records in schema order. An empty result
// is reported as not found.
func (s *ResourceService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Document, error) {
	docs, err := s.Store.Documents().ListByOwner(ctx, s.Schema.Collection, ownerID, s.listQuery())
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, notFound(fmt.Sprintf("No %s found for this user", s.Schema.Collection))
	}
	return docs, nil
}

func (s *ResourceService) Get(ctx context.Context, id string) (domain.Document, error) {
	doc, err := s.Store.Documents().GetDocument(ctx, s.Schema.Collection, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Document{}, notFound(s.title() + " not found")
	}
	return doc, err
}

// Update merges in over the stored record. Replaced media is removed from
// the object store only after the new values are persisted, and only when
// we host it.
func (s *ResourceService) Update(ctx context.Context, actor Actor, id string, in ResourceInput) (domain.Document, error) {
	prev, err := s.Get(ctx, id)
	if err != nil {
		return domain.Document{}, err
	}
	if err := s.authorize(actor, prev); err != nil {
		return domain.Document{}, err
	}

	if err := s.checkFiles(in.Files); err != nil {
		return domain.Document{}, err
	}

	values, err := s.Schema.Merge(prev.Values, in.Values)
	if err != nil {
		return domain.Document{}, validationError(err)
	}

	uploaded, err := s.upload(ctx, prev.OwnerID, in.Files, values)
	if err != nil {
		return domain.Document{}, err
	}

	var orphaned []string
	for _, field := range s.Schema.MediaFields() {
		old := prev.String(field)
		if cur, _ := values[field].(string); old != "" && old != cur {
			orphaned = append(orphaned, old)
		}
	}

	next := prev
	next.Values = values
	next.UpdatedAt = time.Time{} // stamped by the store
	if err := s.Store.Documents().UpdateDocument(ctx, next, s.Schema.UniqueKey(prev.OwnerID, values)); err != nil {
		deleteHosted(ctx, s.Media, uploaded)
		return domain.Document{}, s.mapWriteErr(err)
	}
	s.Cache.Invalidate(ctx, prev.OwnerID)
	deleteHosted(ctx, s.Media, orphaned)

	return s.Store.Documents().GetDocument(ctx, s.Schema.Collection, id)
}

// Delete removes the record and then its hosted media. It returns the
// record as it was before deletion.
func (s *ResourceService) Delete(ctx context.Context, actor Actor, id string) (domain.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return domain.Document{}, err
	}
	if err := s.authorize(actor, doc); err != nil {
		return domain.Document{}, err
	}

	err = s.Store.Documents().DeleteDocument(ctx, s.Schema.Collection, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Document{}, notFound(s.title() + " not found")
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("delete %s: %w", s.Schema.Singular, err)
	}
	s.Cache.Invalidate(ctx, doc.OwnerID)
	deleteHosted(ctx, s.Media, doc.MediaURLs(s.Schema))

	slogx.FromContext(ctx).Info("record deleted",
		slog.String("collection", s.Schema.Collection),
		slog.String("id", id),
	)
	return doc, nil
}

// authorize applies one rule to every collection: only the portfolio owner
// may change or remove a record, admins included.
func (s *ResourceService) authorize(actor Actor, doc domain.Document) error {
	if actor.ID != doc.OwnerID {
		return forbidden("You are not allowed to modify this " + s.Schema.Singular)
	}
	return nil
}

func (s *ResourceService) listQuery() store.ListQuery {
	return store.ListQuery{SortField: s.Schema.SortBy, Desc: true}
}

func (s *ResourceService) checkFiles(files []media.File) error {
	for _, f := range files {
		if fd, ok := s.Schema.Field(f.Field); !ok || fd.Kind != domain.KindMedia {
			return badRequest("Unexpected file field: " + f.Field)
		}
	}
	return nil
}

// upload stores each file and writes its URL into values. On failure the
// files already uploaded are removed again.
func (s *ResourceService) upload(ctx context.Context, ownerID string, files []media.File, values map[string]any) ([]string, error) {
	var urls []string
	for _, f := range files {
		url, err := s.Media.Upload(ctx, s.Schema.Collection+"/"+ownerID, f)
		if err != nil {
			deleteHosted(ctx, s.Media, urls)
			if errors.Is(err, media.ErrDisabled) {
				return nil, badRequest("File uploads are not enabled")
			}
			return nil, fmt.Errorf("upload %s: %w", f.Field, err)
		}
		urls = append(urls, url)
		values[f.Field] = url
	}
	return urls, nil
}

func (s *ResourceService) mapWriteErr(err error) error {
	if !errors.Is(err, store.ErrAlreadyExists) {
		return fmt.Errorf("write %s: %w", s.Schema.Singular, err)
	}
	if s.Schema.OnePerOwner {
		return conflict(s.title() + " already exists for this user")
	}
	return conflict(fmt.Sprintf("%s with this %s already exists", s.title(), s.Schema.UniqueField))
}

func validationError(err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return badRequest(ve.Error(), ve.Details()...)
	}
	return badRequest(strings.TrimSpace(err.Error()))
}
