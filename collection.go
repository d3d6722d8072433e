package burrow

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const uniqueViolation = "23505"

// Document is the unit of storage. Recorded carries microsecond precision
// and must be UTC; Body is an arbitrary JSON-compatible mapping.
type Document struct {
	ID       string
	Recorded time.Time
	Body     map[string]any
	Version  int
}

// Collection stores documents in a burrow_{name} table. Column values pass
// through the store's field codecs on every read and write.
type Collection struct {
	name  string
	table string
	be    *backend
}

// Collection returns a handle to the named collection. The table is created
// lazily on first use.
func (s *Store) Collection(name string) *Collection {
	return &Collection{
		name:  name,
		table: "burrow_" + name,
		be:    &s.be,
	}
}

func (c *Collection) ensure(ctx context.Context) error {
	return c.be.schema.EnsureCollection(ctx, c.be.exec, c.name)
}

// Insert writes a new document. The document's version is set to 1 on
// success.
func (c *Collection) Insert(ctx context.Context, doc *Document) error {
	if err := c.ensure(ctx); err != nil {
		return err
	}
	if doc.ID == "" {
		return fmt.Errorf("collection %s: insert: empty document id", c.name)
	}

	recorded, body, err := c.toStore(doc)
	if err != nil {
		return fmt.Errorf("collection %s: insert %s: %w", c.name, doc.ID, err)
	}

	sqlStr, args, err := psql.Insert(c.table).
		Columns("id", "recorded_at", "body").
		Values(doc.ID, recorded, body).
		ToSql()
	if err != nil {
		return fmt.Errorf("collection %s: insert %s: build sql: %w", c.name, doc.ID, err)
	}

	if _, err := c.be.exec.Exec(ctx, sqlStr, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("collection %s: insert %s: %w", c.name, doc.ID, ErrDuplicateID)
		}
		return fmt.Errorf("collection %s: insert %s: %w", c.name, doc.ID, err)
	}

	doc.Version = 1
	return nil
}

// Load reads a document by ID.
func (c *Collection) Load(ctx context.Context, id string) (*Document, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}

	sqlStr, args, err := psql.Select("recorded_at", "body", "version").
		From(c.table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("collection %s: load %s: build sql: %w", c.name, id, err)
	}

	var (
		rawRecorded any
		rawBody     any
		version     int
	)
	err = c.be.exec.QueryRow(ctx, sqlStr, args...).Scan(&rawRecorded, &rawBody, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("collection %s: load %s: %w", c.name, id, ErrNotFound)
		}
		return nil, fmt.Errorf("collection %s: load %s: %w", c.name, id, err)
	}

	doc, err := c.fromStore(id, rawRecorded, rawBody, version)
	if err != nil {
		return nil, fmt.Errorf("collection %s: load %s: %w", c.name, id, err)
	}
	return doc, nil
}

// Update writes a changed document using optimistic locking: the stored
// version must match the document's, and both are incremented on success.
func (c *Collection) Update(ctx context.Context, doc *Document) error {
	if err := c.ensure(ctx); err != nil {
		return err
	}
	if doc.Version == 0 {
		return fmt.Errorf("collection %s: update %s: document has no version, load it first", c.name, doc.ID)
	}

	recorded, body, err := c.toStore(doc)
	if err != nil {
		return fmt.Errorf("collection %s: update %s: %w", c.name, doc.ID, err)
	}

	sqlStr, args, err := psql.Update(c.table).
		Set("recorded_at", recorded).
		Set("body", body).
		Set("version", doc.Version+1).
		Where(sq.Eq{"id": doc.ID, "version": doc.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("collection %s: update %s: build sql: %w", c.name, doc.ID, err)
	}

	tag, err := c.be.exec.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("collection %s: update %s: %w", c.name, doc.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("collection %s: update %s: %w", c.name, doc.ID, ErrVersionConflict)
	}

	doc.Version++
	return nil
}

// Delete removes a document by ID.
func (c *Collection) Delete(ctx context.Context, id string) error {
	if err := c.ensure(ctx); err != nil {
		return err
	}

	sqlStr, args, err := psql.Delete(c.table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("collection %s: delete %s: build sql: %w", c.name, id, err)
	}

	tag, err := c.be.exec.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("collection %s: delete %s: %w", c.name, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("collection %s: delete %s: %w", c.name, id, ErrNotFound)
	}
	return nil
}

// ListSince returns documents recorded at or after t, oldest first. The
// comparison and ordering run on the stored integer form, so chronological
// order is exact to the microsecond. A limit of 0 means no limit.
func (c *Collection) ListSince(ctx context.Context, t time.Time, limit int) ([]*Document, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}

	qv, err := c.be.recorded.QueryValue(t)
	if err != nil {
		return nil, fmt.Errorf("collection %s: list since: %w", c.name, err)
	}

	q := psql.Select("id", "recorded_at", "body", "version").
		From(c.table).
		Where(sq.GtOrEq{"recorded_at": qv}).
		OrderBy("recorded_at ASC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("collection %s: list since: build sql: %w", c.name, err)
	}

	return c.queryDocs(ctx, "list since", sqlStr, args)
}

// FindAt returns documents recorded at exactly t.
func (c *Collection) FindAt(ctx context.Context, t time.Time) ([]*Document, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}

	qv, err := c.be.recorded.QueryValue(t)
	if err != nil {
		return nil, fmt.Errorf("collection %s: find at: %w", c.name, err)
	}

	sqlStr, args, err := psql.Select("id", "recorded_at", "body", "version").
		From(c.table).
		Where(sq.Eq{"recorded_at": qv}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("collection %s: find at: build sql: %w", c.name, err)
	}

	return c.queryDocs(ctx, "find at", sqlStr, args)
}

func (c *Collection) queryDocs(ctx context.Context, op, sqlStr string, args []any) ([]*Document, error) {
	rows, err := c.be.exec.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("collection %s: %s: %w", c.name, op, err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		var (
			id          string
			rawRecorded any
			rawBody     any
			version     int
		)
		if err := rows.Scan(&id, &rawRecorded, &rawBody, &version); err != nil {
			return nil, fmt.Errorf("collection %s: %s: scan: %w", c.name, op, err)
		}
		doc, err := c.fromStore(id, rawRecorded, rawBody, version)
		if err != nil {
			return nil, fmt.Errorf("collection %s: %s: %w", c.name, op, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("collection %s: %s: %w", c.name, op, err)
	}
	return docs, nil
}

func (c *Collection) toStore(doc *Document) (recorded any, body any, err error) {
	if err := c.be.recorded.Validate(doc.Recorded); err != nil {
		return nil, nil, err
	}
	recorded, err = c.be.recorded.ToStore(doc.Recorded)
	if err != nil {
		return nil, nil, err
	}
	body, err = c.be.body.ToStore(doc.Body)
	if err != nil {
		return nil, nil, err
	}
	return recorded, body, nil
}

func (c *Collection) fromStore(id string, rawRecorded, rawBody any, version int) (*Document, error) {
	doc := &Document{ID: id, Version: version}

	recorded, err := c.be.recorded.FromStore(rawRecorded)
	if err != nil {
		return nil, err
	}
	if t, ok := recorded.(time.Time); ok {
		doc.Recorded = t
	}

	body, err := c.be.body.FromStore(rawBody)
	if err != nil {
		return nil, err
	}
	if m, ok := body.(map[string]any); ok {
		doc.Body = m
	}

	return doc, nil
}
