package seeder

import (
	"context"
	"fmt"
	"time"

	"next-hire/internal/database"
	"next-hire/internal/pkg/logger"

	"go.uber.org/zap"
)

type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

// Run applies the seeders in order and stops at the first failure. Seeders
// that already committed stay committed.
func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return database.ErrNilDB
	}
	l := logger.OrNop(r.Logger)

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := CheckSchema(ctx, db, s.Requires()...); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}

		start := time.Now()
		err := database.WithTx(ctx, db, func(tx database.Tx) error {
			return s.Run(ctx, tx)
		})
		if err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		l.Info("seeded", zap.String("seeder", s.Name()), zap.Duration("took", time.Since(start)))
	}
	return nil
}
