package repository

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// updateBuilder accumulates SET clauses for partial updates.
type updateBuilder struct {
	sets []string
	args []interface{}
}

func (b *updateBuilder) set(column string, value interface{}) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *updateBuilder) empty() bool {
	return len(b.sets) == 0
}

// query renders `UPDATE table SET ... WHERE id = $n RETURNING returning`,
// appending id as the final argument.
func (b *updateBuilder) query(table, returning, id string) (string, []interface{}) {
	b.args = append(b.args, id)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(b.sets, ", "), len(b.args), returning)
	return q, b.args
}
