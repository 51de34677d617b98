package seeder

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"next-hire/internal/database"
	"next-hire/internal/pkg/credential"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type columnRows struct {
	cols [][2]string
	i    int
}

func (r *columnRows) Close()     {}
func (r *columnRows) Err() error { return nil }
func (r *columnRows) Next() bool {
	r.i++
	return r.i <= len(r.cols)
}

func (r *columnRows) Scan(dest ...any) error {
	c := r.cols[r.i-1]
	*dest[0].(*string) = c[0]
	*dest[1].(*string) = c[1]
	return nil
}

type recordingTx struct {
	db *fakeDB
}

func (t recordingTx) Exec(_ context.Context, q string, _ ...any) (int64, error) {
	t.db.execs = append(t.db.execs, q)
	return 1, t.db.execErr
}

func (t recordingTx) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("not implemented")
}

func (t recordingTx) QueryRow(context.Context, string, ...any) database.Row { return okRow{} }

func (t recordingTx) Commit(context.Context) error {
	t.db.commits++
	return nil
}

func (t recordingTx) Rollback(context.Context) error {
	t.db.rollbacks++
	return nil
}

type okRow struct{}

func (okRow) Scan(...any) error { return nil }

// fakeDB serves information_schema from a fixed column list and records what
// transactions do.
type fakeDB struct {
	columns [][2]string
	execErr error

	execs     []string
	commits   int
	rollbacks int
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }
func (f *fakeDB) SQLDB() *sql.DB             { return nil }

func (f *fakeDB) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeDB) Query(_ context.Context, q string, _ ...any) (database.Rows, error) {
	if !strings.Contains(q, "information_schema.columns") {
		return nil, errors.New("unexpected query")
	}
	return &columnRows{cols: f.columns}, nil
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) database.Row { return okRow{} }

func (f *fakeDB) Begin(context.Context) (database.Tx, error) { return recordingTx{db: f}, nil }

func fullSchema() [][2]string {
	var cols [][2]string
	for _, s := range Defaults(nil) {
		for _, t := range s.Requires() {
			for _, c := range t.Columns {
				cols = append(cols, [2]string{t.Name, c})
			}
		}
	}
	return cols
}

func TestDemoPostingsAreValid(t *testing.T) {
	postings := demoPostings(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NotEmpty(t, postings)
	for _, p := range postings {
		assert.Nil(t, p.Validate(), p.Title)
	}
	assert.Equal(t, demoJobID(postings[0]), demoJobID(demoPostings(time.Now())[0]))
}

func TestDefaultsOrder(t *testing.T) {
	seeders := Defaults(credential.NewPasswordHasher(credential.DefaultCost))
	names := make([]string, 0, len(seeders))
	for _, s := range seeders {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"users", "jobs"}, names)
}

func TestRunner_NilDB(t *testing.T) {
	assert.ErrorIs(t, Runner{}.Run(t.Context(), nil), database.ErrNilDB)
}

func TestRunner_SeedsEachInItsOwnTransaction(t *testing.T) {
	db := &fakeDB{columns: fullSchema()}
	r := Runner{Seeders: Defaults(credential.NewPasswordHasher(4))}

	require.NoError(t, r.Run(t.Context(), db))
	assert.Equal(t, 2, db.commits)
	assert.Zero(t, db.rollbacks)
	assert.Len(t, db.execs, len(demoUsers())+len(demoPostings(time.Now())))
}

func TestRunner_FailedSeederRollsBack(t *testing.T) {
	db := &fakeDB{columns: fullSchema(), execErr: errors.New("boom")}
	r := Runner{Seeders: Defaults(credential.NewPasswordHasher(4))}

	err := r.Run(t.Context(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed users")
	assert.Zero(t, db.commits)
	assert.Equal(t, 1, db.rollbacks)
}

func TestCheckSchema_ReportsEveryMissingColumn(t *testing.T) {
	db := &fakeDB{columns: [][2]string{{"users", "id"}, {"jobs", "id"}}}

	err := CheckSchema(t.Context(), db,
		Table{Name: "users", Columns: []string{"id", "email"}},
		Table{Name: "jobs", Columns: []string{"id", "title"}},
	)
	assert.EqualError(t, err, "schema mismatch: missing jobs.title, users.email")

	assert.NoError(t, CheckSchema(t.Context(), db))
	assert.EqualError(t, CheckSchema(t.Context(), db, Table{}), "empty table")
}

func TestRunner_SchemaMismatchStopsBeforeWriting(t *testing.T) {
	db := &fakeDB{}
	r := Runner{Seeders: Defaults(credential.NewPasswordHasher(4))}

	err := r.Run(t.Context(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema mismatch")
	assert.Empty(t, db.execs)
	assert.Zero(t, db.commits+db.rollbacks)
}
