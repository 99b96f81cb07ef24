package store

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
)

// Schema bootstrap:
//
// Fresh databases get the full LATEST.sql schema for their driver. The schema
// carries the graph invariants that must hold under concurrent writers:
//   - UNIQUE (parent_post_id, child_post_id, type) — no duplicate edges
//   - partial UNIQUE on child_post_id WHERE type = 'reply' — at most one
//     reply parent, which is what keeps root-finding a single walk
//   - CHECK (parent_post_id <> child_post_id) — no self-loops
//
// Incremental migrations are not needed yet; when the schema changes,
// versioned migration files go next to LATEST.sql per driver.

//go:embed migration
var migrationFS embed.FS

// LatestSchemaFileName is the name of the latest schema file.
const LatestSchemaFileName = "LATEST.sql"

// Migrate initializes the database schema on a fresh database.
func (s *Store) Migrate(ctx context.Context) error {
	initialized, err := s.driver.IsInitialized(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check database initialization")
	}
	if initialized {
		return nil
	}

	buf, err := migrationFS.ReadFile(fmt.Sprintf("migration/%s/%s", s.profile.Driver, LatestSchemaFileName))
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema for driver %q", s.profile.Driver)
	}

	if _, err := s.driver.GetDB().ExecContext(ctx, string(buf)); err != nil {
		return errors.Wrap(err, "failed to apply latest schema")
	}

	slog.Info("database initialized", slog.String("driver", s.profile.Driver))
	return nil
}
