package sqlite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
	"github.com/aussiebroadwan/folio/internal/portfolio/store"
)

const documentColumns = `id, collection, owner_id, author_id, body, created_at, updated_at`

// fieldName guards the JSON paths built from query fields.
var fieldName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

type documentsRepo struct {
	q queryer
}

func scanDocument(row rowScanner) (domain.Document, error) {
	var (
		d    domain.Document
		body string
	)
	if err := row.Scan(&d.ID, &d.Collection, &d.OwnerID, &d.AuthorID, &body, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return domain.Document{}, err
	}

	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&d.Values); err != nil {
		return domain.Document{}, fmt.Errorf("decode %s/%s body: %w", d.Collection, d.ID, err)
	}
	if d.Values == nil {
		d.Values = map[string]any{}
	}
	if schema, ok := domain.LookupSchema(d.Collection); ok {
		schema.Normalize(d.Values)
	}
	return d, nil
}

func encodeBody(values map[string]any) (string, error) {
	if values == nil {
		values = map[string]any{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(values); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func (r *documentsRepo) CreateDocument(ctx context.Context, d domain.Document, uniqueKey string) error {
	body, err := encodeBody(d.Values)
	if err != nil {
		return err
	}

	created, updated := d.CreatedAt.UTC(), d.UpdatedAt.UTC()
	if d.CreatedAt.IsZero() {
		created = now()
	}
	if d.UpdatedAt.IsZero() {
		updated = created
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO documents (id, collection, owner_id, author_id, unique_key, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Collection, d.OwnerID, d.AuthorID, mapStringNull(uniqueKey), body, created, updated,
	)
	return mapConflict(err)
}

func (r *documentsRepo) GetDocument(ctx context.Context, collection, id string) (domain.Document, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	)
	d, err := scanDocument(row)
	if err != nil {
		return domain.Document{}, mapNotFound(err)
	}
	return d, nil
}

func (r *documentsRepo) ListByOwner(
	ctx context.Context,
	collection, ownerID string,
	q store.ListQuery,
) ([]domain.Document, error) {
	var (
		sb   strings.Builder
		args = []any{collection, ownerID}
	)
	sb.WriteString(`SELECT ` + documentColumns + ` FROM documents WHERE collection = ? AND owner_id = ?`)

	for _, m := range q.Where {
		if !fieldName.MatchString(m.Field) {
			return nil, fmt.Errorf("sqlite: invalid filter field %q", m.Field)
		}
		sb.WriteString(` AND json_extract(body, ?) = ?`)
		args = append(args, "$."+m.Field, m.Value)
	}

	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	if q.SortField != "" {
		if !fieldName.MatchString(q.SortField) {
			return nil, fmt.Errorf("sqlite: invalid sort field %q", q.SortField)
		}
		sb.WriteString(` ORDER BY json_extract(body, ?) ` + dir + `, created_at ` + dir + `, id ` + dir)
		args = append(args, "$."+q.SortField)
	} else {
		sb.WriteString(` ORDER BY created_at ` + dir + `, id ` + dir)
	}

	return r.list(ctx, sb.String(), args...)
}

func (r *documentsRepo) ListAllByOwner(ctx context.Context, ownerID string) ([]domain.Document, error) {
	return r.list(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE owner_id = ? ORDER BY collection, created_at, id`,
		ownerID,
	)
}

func (r *documentsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Document, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *documentsRepo) UpdateDocument(ctx context.Context, d domain.Document, uniqueKey string) error {
	body, err := encodeBody(d.Values)
	if err != nil {
		return err
	}

	updated := d.UpdatedAt.UTC()
	if d.UpdatedAt.IsZero() {
		updated = now()
	}

	res, err := r.q.ExecContext(ctx, `
		UPDATE documents SET body = ?, unique_key = ?, updated_at = ?
		WHERE collection = ? AND id = ?`,
		body, mapStringNull(uniqueKey), updated, d.Collection, d.ID,
	)
	return expectOne(res, mapConflict(err))
}

func (r *documentsRepo) DeleteDocument(ctx context.Context, collection, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
	return expectOne(res, err)
}

func (r *documentsRepo) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM documents WHERE owner_id = ?`, ownerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
