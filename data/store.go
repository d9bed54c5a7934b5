package data

import (
	"context"

	"github.com/Pjt727/roster/data/db"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Store owns the connection pool. It is created once at start up and handed to
// everything that needs the database
type Store struct {
	*db.Queries
	Pool *pgxpool.Pool
}

// Initialize brings the schema up to date and opens the pool. It has to finish
// before the server accepts any requests
func Initialize(ctx context.Context, connString string) (*Store, error) {
	if err := MigrateUp(connString); err != nil {
		return nil, err
	}
	pool, err := NewPool(ctx, connString)
	if err != nil {
		return nil, err
	}
	log.Info("Database synchronization successful")
	return &Store{
		Queries: db.New(pool),
		Pool:    pool,
	}, nil
}

func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}
