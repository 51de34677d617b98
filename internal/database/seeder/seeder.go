// Package seeder loads demo data. Each Seeder declares the tables it writes;
// the Runner checks them against the live schema, then runs the seeder in its
// own transaction.
package seeder

import (
	"context"

	"next-hire/internal/database"
)

type Seeder interface {
	Name() string
	Requires() []Table
	Run(ctx context.Context, tx database.Tx) error
}
