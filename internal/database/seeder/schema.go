package seeder

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"next-hire/internal/database"
)

// Table is a table and the columns a seeder writes to it.
type Table struct {
	Name    string
	Columns []string
}

// CheckSchema verifies every listed column exists in the public schema and
// reports all missing ones in a single error.
func CheckSchema(ctx context.Context, q database.Querier, tables ...Table) error {
	if len(tables) == 0 {
		return nil
	}

	names := make([]string, 0, len(tables))
	for _, t := range tables {
		if t.Name == "" {
			return fmt.Errorf("empty table")
		}
		for _, c := range t.Columns {
			if c == "" {
				return fmt.Errorf("empty column in %s", t.Name)
			}
		}
		names = append(names, t.Name)
	}

	rows, err := q.Query(ctx,
		`SELECT table_name, column_name FROM information_schema.columns
		 WHERE table_schema = 'public' AND table_name = ANY($1)`,
		names,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return err
		}
		existing[table+"."+column] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, t := range tables {
		for _, c := range t.Columns {
			if _, ok := existing[t.Name+"."+c]; !ok {
				missing = append(missing, t.Name+"."+c)
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("schema mismatch: missing %s", strings.Join(missing, ", "))
	}
	return nil
}
