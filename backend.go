package burrow

import (
	"github.com/burrowdb/burrow/internal/pg"
	"github.com/burrowdb/burrow/schema"
)

// backend bundles what a collection needs: an executor, the field codecs
// applied to the recorded_at and body columns, and the schema bootstrap.
type backend struct {
	exec     pg.Executor
	recorded Field
	body     Field
	schema   *schema.Bootstrap
}
