package schema

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/burrowdb/burrow/internal/pg"
)

var validName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{0,54}$`)

// ValidateCollectionName checks that name is a valid collection identifier
// (alphanumeric + underscores, max 55 characters, starts with a letter).
func ValidateCollectionName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("schema: invalid collection name %q: must be alphanumeric with underscores, max 55 chars", name)
	}
	return nil
}

// recorded_at holds the microseconds-since-epoch encoding of the document
// timestamp; BIGINT keeps it sortable with a plain btree index. body holds
// the serialized document in the current byte format. Tables created by
// older releases used JSONB here; those rows decode through the compat
// field and are left in place.
func collectionDDL(name string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS burrow_%s (
	id TEXT PRIMARY KEY,
	recorded_at BIGINT NOT NULL,
	body BYTEA NOT NULL,
	version INTEGER NOT NULL DEFAULT 1
)`, name)
}

func recordedIndexDDL(name string) string {
	return fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS idx_burrow_%s_recorded_at ON burrow_%s (recorded_at)`,
		name, name,
	)
}

// Bootstrap manages idempotent creation of Burrow tables and indexes. It
// caches which tables and indexes have been created to avoid repeated DDL.
type Bootstrap struct {
	tables  sync.Map
	indexes sync.Map
}

// New returns a Bootstrap with empty caches.
func New() *Bootstrap {
	return &Bootstrap{}
}

// IsCreated reports whether the named table has been created in this session.
func (b *Bootstrap) IsCreated(table string) bool {
	_, ok := b.tables.Load(table)
	return ok
}

// InvalidateTable removes a table from the creation cache so the next
// EnsureCollection call will re-run the DDL.
func (b *Bootstrap) InvalidateTable(table string) {
	b.tables.Delete(table)
}

// EnsureCollection creates the burrow_{name} table and its recorded_at index
// if they don't exist.
func (b *Bootstrap) EnsureCollection(ctx context.Context, exec pg.Executor, name string) error {
	if err := ValidateCollectionName(name); err != nil {
		return err
	}
	table := "burrow_" + name
	if _, ok := b.tables.Load(table); ok {
		return nil
	}
	if _, err := exec.Exec(ctx, collectionDDL(name)); err != nil {
		return fmt.Errorf("schema: create table %s: %w", table, err)
	}
	b.tables.Store(table, true)

	index := "idx_" + table + "_recorded_at"
	if _, ok := b.indexes.Load(index); ok {
		return nil
	}
	if _, err := exec.Exec(ctx, recordedIndexDDL(name)); err != nil {
		return fmt.Errorf("schema: create index %s: %w", index, err)
	}
	b.indexes.Store(index, true)
	return nil
}
