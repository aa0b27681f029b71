package storage

import (
	"context"
	"fmt"
	"reflect"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type storageImpl struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *storageImpl {
	return &storageImpl{db: db}
}

func (s *storageImpl) stmpBuilder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// InitSchema creates the subscriptions table. The store is the single piece
// of persisted state in the whole system.
func (s *storageImpl) InitSchema(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS subscriptions (
		user_id INTEGER PRIMARY KEY,
		expires_at INTEGER NOT NULL
	)`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create subscriptions table: %w", err)
	}
	return nil
}

// fields returns the db-tagged column list of a row struct.
func fields(data any) string {
	var s string
	r := reflect.TypeOf(data)
	for i := 0; i < r.NumField(); i++ {
		tag := r.Field(i).Tag.Get("db")
		if tag != "" {
			s += tag + ","
		}
	}
	return s[:len(s)-1]
}
