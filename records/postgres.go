package records

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	_ Store  = (*PostgresStore)(nil)
	_ Seeder = (*PostgresStore)(nil)
)

const recordsSchema = `
	CREATE TABLE IF NOT EXISTS records (
		id         BIGSERIAL PRIMARY KEY,
		table_name TEXT      NOT NULL,
		data       JSONB     NOT NULL DEFAULT '{}'::jsonb
	);
	CREATE INDEX IF NOT EXISTS records_table_name_idx ON records (table_name);`

// PostgresStore keeps every table in one jsonb-backed relation. The Id field
// is the row's id column and never lives inside data.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, recordsSchema); err != nil {
		return fmt.Errorf("ensure records schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Fetch(ctx context.Context, table string, q Query) ([]Record, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, data FROM records WHERE table_name = $1`)
	args := []any{table}

	for _, c := range q.Where {
		if err := checkOperator(c); err != nil {
			return nil, storeErr("fetch", table, err)
		}
		if c.FieldName == FieldID {
			ids := make([]int64, 0, len(c.Values))
			for _, v := range c.Values {
				if id, ok := Int64(v); ok {
					ids = append(ids, id)
				}
			}
			args = append(args, ids)
			fmt.Fprintf(&sb, ` AND id = ANY($%d)`, len(args))
			continue
		}
		texts := make([]string, 0, len(c.Values))
		for _, v := range c.Values {
			texts = append(texts, fmt.Sprint(v))
		}
		args = append(args, c.FieldName, texts)
		fmt.Fprintf(&sb, ` AND data->>$%d = ANY($%d)`, len(args)-1, len(args))
	}
	sb.WriteString(` ORDER BY id`)
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, storeErr("fetch", table, err)
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		var (
			id   int64
			data map[string]any
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, storeErr("fetch", table, err)
		}
		r := Record(data)
		if r == nil {
			r = Record{}
		}
		r[FieldID] = id
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("fetch", table, err)
	}
	return out, nil
}

func (s *PostgresStore) CreateRecord(ctx context.Context, table string, payloads ...Record) ([]int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, storeErr("create", table, err)
	}
	defer tx.Rollback(ctx)

	ids := make([]int64, 0, len(payloads))
	for _, p := range payloads {
		var id int64
		err := tx.QueryRow(ctx,
			`INSERT INTO records (table_name, data) VALUES ($1, $2) RETURNING id`,
			table, withoutID(p),
		).Scan(&id)
		if err != nil {
			return nil, storeErr("create", table, err)
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, storeErr("create", table, err)
	}
	return ids, nil
}

func (s *PostgresStore) DeleteRecord(ctx context.Context, table string, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx,
		`DELETE FROM records WHERE table_name = $1 AND id = ANY($2)`,
		table, ids,
	)
	if err != nil {
		return storeErr("delete", table, err)
	}
	return nil
}

// Seed inserts recs with their own ids when the table has no rows yet, then
// moves the id sequence past them.
func (s *PostgresStore) Seed(ctx context.Context, table string, recs []Record) error {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM records WHERE table_name = $1)`, table,
	).Scan(&exists)
	if err != nil {
		return storeErr("seed", table, err)
	}
	if exists || len(recs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, r := range recs {
		if id, ok := r.ID(); ok {
			batch.Queue(
				`INSERT INTO records (id, table_name, data) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
				id, table, withoutID(r),
			)
			continue
		}
		batch.Queue(`INSERT INTO records (table_name, data) VALUES ($1, $2)`, table, withoutID(r))
	}
	batch.Queue(`SELECT setval(pg_get_serial_sequence('records', 'id'), (SELECT COALESCE(MAX(id), 1) FROM records))`)

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return storeErr("seed", table, err)
	}
	return nil
}

func withoutID(r Record) map[string]any {
	data := make(map[string]any, len(r))
	for k, v := range r {
		if k == FieldID {
			continue
		}
		data[k] = v
	}
	return data
}
