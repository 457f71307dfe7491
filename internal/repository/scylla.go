package repository

import (
	"errors"
	"fmt"

	"github.com/gocql/gocql"
)

// Scylla stores the catalog, accounts and orders in three keyspaces.
// Tables are created by scripts/scylladb_init.cql.
type Scylla struct {
	catalog *gocql.Session
	users   *gocql.Session
	orders  *gocql.Session
}

// NewScylla wires one session per keyspace. Audit logs live next to the
// accounts in the users keyspace.
func NewScylla(catalog, users, orders *gocql.Session) *Scylla {
	return &Scylla{catalog: catalog, users: users, orders: orders}
}

// parseID maps ids that cannot be a row key to ErrNotFound.
func parseID(kind, id string) (gocql.UUID, error) {
	u, err := gocql.ParseUUID(id)
	if err != nil {
		return gocql.UUID{}, fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return u, nil
}

// newRowID returns id when it is a valid uuid, otherwise a fresh time uuid.
func newRowID(id string) gocql.UUID {
	if id != "" {
		if u, err := gocql.ParseUUID(id); err == nil {
			return u
		}
	}
	return gocql.TimeUUID()
}

// insertIfAbsent runs an INSERT ... IF NOT EXISTS and reports ErrConflict
// when a row with that key is already stored.
func insertIfAbsent(q *gocql.Query, kind, id string) error {
	applied, err := q.MapScanCAS(map[string]interface{}{})
	if err != nil {
		return fmt.Errorf("insert %s: %w", kind, err)
	}
	if !applied {
		return fmt.Errorf("%s %s: %w", kind, id, ErrConflict)
	}
	return nil
}

func wrapRead(err error, kind, id string) error {
	if errors.Is(err, gocql.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return fmt.Errorf("read %s %s: %w", kind, id, err)
}
