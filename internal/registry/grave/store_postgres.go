// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package grave

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/database/schema"
	"github.com/taibuivan/ontvitals/internal/platform/dberr"
	"github.com/taibuivan/ontvitals/pkg/pagination"
)

var table = schema.VitalsGrave

// PostgresRepository implements [Repository] over vitals.grave.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed grave store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func columns() []string {
	all := append(table.Key(), table.Fields()...)
	return append(all, table.UpdatedBy, table.UpdatedAt)
}

// inscription lists the columns written by Save.
func inscription() []string {
	return []string{table.Surname, table.GivenNames, table.BirthDate, table.DeathDate, table.Text}
}

func (g *Grave) targets() []any {
	return []any{
		&g.Domain, &g.County, &g.Township, &g.Cemetery, &g.Zone, &g.Row, &g.Plot, &g.Side,
		&g.Surname, &g.GivenNames, &g.BirthDate, &g.DeathDate, &g.Text, &g.Images,
		&g.UpdatedBy, &g.UpdatedAt,
	}
}

func keyArgs(key Key) []any {
	return []any{key.Domain, key.County, key.Township, key.Cemetery, key.Zone, key.Row, key.Plot, key.Side}
}

// keyCondition matches the eight key columns against $1..$8.
func keyCondition() string {
	conditions := make([]string, 0, len(table.Key()))
	for i, column := range table.Key() {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, i+1))
	}
	return strings.Join(conditions, " AND ")
}

func (repository *PostgresRepository) Get(context context.Context, key Key) (*Grave, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s;
	`,
		schema.List("", columns()...),
		table.Table,
		keyCondition(),
	)

	grave := &Grave{}
	if err := repository.pool.QueryRow(context, query, keyArgs(key)...).Scan(grave.targets()...); err != nil {
		return nil, dberr.NotFound(err, "Grave "+key.Label(), "get_grave")
	}
	return grave, nil
}

func (repository *PostgresRepository) Save(context context.Context, grave *Grave) error {
	fields := inscription()
	insert := append(table.Key(), fields...)
	insert = append(insert, table.UpdatedBy)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES (%s, now())
		ON CONFLICT (%s) DO UPDATE
		SET %s, %s = now()
		RETURNING %s, %s;
	`,
		table.Table, schema.List("", insert...), table.UpdatedAt,
		schema.Placeholders(1, len(insert)),
		schema.List("", table.Key()...),
		schema.Excluded(append(fields, table.UpdatedBy)...), table.UpdatedAt,
		table.Images, table.UpdatedAt,
	)

	args := keyArgs(grave.Key)
	args = append(args, grave.Surname, grave.GivenNames, grave.BirthDate, grave.DeathDate, grave.Text, grave.UpdatedBy)

	err := repository.pool.QueryRow(context, query, args...).Scan(&grave.Images, &grave.UpdatedAt)
	return dberr.Wrap(err, "save_grave")
}

func (repository *PostgresRepository) AddImage(context context.Context, key Key, name string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = array_append(%s, $9), %s = now()
		WHERE %s;
	`,
		table.Table,
		table.Images, table.Images, table.UpdatedAt,
		keyCondition(),
	)

	tag, err := repository.pool.Exec(context, query, append(keyArgs(key), name)...)
	if err != nil {
		return dberr.Wrap(err, "add_grave_image")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Grave " + key.Label())
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, key Key) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s;
	`,
		table.Table,
		keyCondition(),
	)

	tag, err := repository.pool.Exec(context, query, keyArgs(key)...)
	if err != nil {
		return dberr.Wrap(err, "delete_grave")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Grave " + key.Label())
	}
	return nil
}

func (repository *PostgresRepository) Query(context context.Context, filter Filter, page pagination.Params) ([]Grave, int, error) {
	var (
		conditions []string
		args       []any
	)
	bind := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	conditions = append(conditions, fmt.Sprintf("%s = %s", table.Domain, bind(filter.Domain)))
	if filter.County != "" {
		conditions = append(conditions, fmt.Sprintf("%s = %s", table.County, bind(filter.County)))
	}
	if filter.Township != "" {
		conditions = append(conditions, fmt.Sprintf("%s = %s", table.Township, bind(filter.Township)))
	}
	if filter.Cemetery != "" {
		conditions = append(conditions, fmt.Sprintf("%s = %s", table.Cemetery, bind(filter.Cemetery)))
	}
	if filter.Surname != "" {
		conditions = append(conditions, fmt.Sprintf("lower(%s) = lower(%s)", table.Surname, bind(filter.Surname)))
	}

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s
		ORDER BY %s
		LIMIT %s OFFSET %s;
	`,
		schema.List("", columns()...),
		table.Table,
		strings.Join(conditions, " AND "),
		schema.List("", table.Key()...),
		bind(page.Limit), bind(page.Offset),
	)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "query_graves")
	}
	defer rows.Close()

	graves := []Grave{}
	total := 0
	for rows.Next() {
		var grave Grave
		if err := rows.Scan(append(grave.targets(), &total)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_grave")
		}
		graves = append(graves, grave)
	}

	return graves, total, dberr.Wrap(rows.Err(), "query_graves")
}
