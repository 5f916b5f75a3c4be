package registry

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

// Ingestion records one fully ingested document, keyed by its fingerprint.
// A fingerprint already present short-circuits re-ingestion of the same bytes.
type Ingestion struct {
	bun.BaseModel `bun:"table:ingestions,alias:i"`
	Fingerprint   string    `bun:"fingerprint,pk"`
	Filename      string    `bun:"filename,notnull"`
	ChunkCount    int       `bun:"chunk_count,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Registry is the durable record of ingested documents
type Registry struct {
	db *bun.DB
}

func Connect(dsn, password string, debug bool) (*Registry, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn), pgdriver.WithPassword(password)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return &Registry{db: db}, nil
}

func (r *Registry) Init(ctx context.Context) error {
	_, err := r.db.NewCreateTable().Model((*Ingestion)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Lookup returns the recorded ingestion for a fingerprint, or nil when the
// document has never been ingested.
func (r *Registry) Lookup(ctx context.Context, fingerprint string) (*Ingestion, error) {
	ingestion := new(Ingestion)
	err := r.db.NewSelect().
		Model(ingestion).
		Where("fingerprint = ?", fingerprint).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ingestion, nil
}

func (r *Registry) Record(ctx context.Context, fingerprint, filename string, chunkCount int) error {
	ingestion := &Ingestion{
		Fingerprint: fingerprint,
		Filename:    filename,
		ChunkCount:  chunkCount,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := r.db.NewInsert().
		Model(ingestion).
		On("CONFLICT (fingerprint) DO NOTHING").
		Exec(ctx)
	return err
}

func (r *Registry) Close() error {
	return r.db.Close()
}
