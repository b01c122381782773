package postgres

import (
	"context"
	"fmt"

	"github.com/agrovia/farm-api/internal/domain"
)

// stateTables maps each entity kind to its reference table. Every kind
// has its own table so state sets evolve independently.
var stateTables = map[domain.EntityKind]string{
	domain.EntityUser:         "user_states",
	domain.EntityFarm:         "farm_states",
	domain.EntityPlot:         "plot_states",
	domain.EntityMembership:   "membership_states",
	domain.EntityInvitation:   "invitation_states",
	domain.EntityNotification: "notification_states",
	domain.EntityTransaction:  "transaction_states",
}

// LoadStateRegistry reads every state table plus notification_types into
// an in-memory registry. Called once at startup so a missing seed row is
// caught before the server takes traffic.
func LoadStateRegistry(ctx context.Context, db *DB) (*domain.StateRegistry, error) {
	states := make(map[domain.EntityKind]map[string]int, len(stateTables))

	for kind, table := range stateTables {
		set, err := loadNameIDs(ctx, db, table)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", table, err)
		}
		states[kind] = set
	}

	types, err := loadNameIDs(ctx, db, "notification_types")
	if err != nil {
		return nil, fmt.Errorf("failed to load notification_types: %w", err)
	}

	return domain.NewStateRegistry(states, types), nil
}

func loadNameIDs(ctx context.Context, db *DB, table string) (map[string]int, error) {
	rows, err := db.conn(ctx).Query(ctx, fmt.Sprintf("SELECT id, name FROM %s", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]int)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		set[name] = id
	}

	return set, rows.Err()
}
