// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package baptism

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/database/schema"
	"github.com/taibuivan/ontvitals/internal/platform/dberr"
	"github.com/taibuivan/ontvitals/internal/platform/postgres"
	"github.com/taibuivan/ontvitals/pkg/pagination"
	"github.com/taibuivan/ontvitals/pkg/soundex"
)

var table = schema.VitalsMBaptism

// PostgresRepository implements [Repository] over vitals.mbaptism.
type PostgresRepository struct {
	db postgres.DBTX
}

// NewPostgresRepository constructs a PostgreSQL backed baptism store.
func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func columns() []string {
	all := append([]string{table.IDMB}, table.Fields()...)
	return append(all, table.UpdatedBy, table.UpdatedAt)
}

func (b *Baptism) targets() []any {
	return []any{
		&b.IDMB,
		&b.Volume, &b.Page, &b.District, &b.Area, &b.GivenName, &b.Surname, new(string),
		&b.Father, &b.Mother, &b.Residence, &b.BirthPlace, &b.BirthDate, &b.BaptismDate,
		&b.BaptismPlace, &b.Minister, &b.IDIR,
		&b.UpdatedBy, &b.UpdatedAt,
	}
}

func (b *Baptism) fieldValues() []any {
	return []any{
		b.Volume, b.Page, b.District, b.Area, b.GivenName, b.Surname, soundex.Code(b.Surname),
		b.Father, b.Mother, b.Residence, b.BirthPlace, b.BirthDate, b.BaptismDate,
		b.BaptismPlace, b.Minister, b.IDIR,
	}
}

func notFound(idmb int64) error {
	return apperr.NotFound(fmt.Sprintf("Baptism %d", idmb))
}

func (repository *PostgresRepository) Get(context context.Context, idmb int64) (*Baptism, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1;
	`,
		schema.List("", columns()...),
		table.Table,
		table.IDMB,
	)

	baptism := &Baptism{}
	if err := repository.db.QueryRow(context, query, idmb).Scan(baptism.targets()...); err != nil {
		return nil, dberr.NotFound(err, fmt.Sprintf("Baptism %d", idmb), "get_baptism")
	}
	return baptism, nil
}

func (repository *PostgresRepository) Create(context context.Context, baptism *Baptism) error {
	fields := append(table.Fields(), table.UpdatedBy)
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
		RETURNING %s, %s;
	`,
		table.Table, schema.List("", fields...),
		schema.Placeholders(1, len(fields)),
		table.IDMB, table.UpdatedAt,
	)

	args := append(baptism.fieldValues(), baptism.UpdatedBy)
	err := repository.db.QueryRow(context, query, args...).Scan(&baptism.IDMB, &baptism.UpdatedAt)
	return dberr.Wrap(err, "create_baptism")
}

func (repository *PostgresRepository) Update(context context.Context, baptism *Baptism) error {
	fields := append(table.Fields(), table.UpdatedBy)
	assignments := make([]string, len(fields))
	for i, field := range fields {
		assignments[i] = fmt.Sprintf("%s = $%d", field, i+2)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s, %s = now()
		WHERE %s = $1
		RETURNING %s;
	`,
		table.Table,
		strings.Join(assignments, ", "), table.UpdatedAt,
		table.IDMB,
		table.UpdatedAt,
	)

	args := append([]any{baptism.IDMB}, baptism.fieldValues()...)
	args = append(args, baptism.UpdatedBy)
	err := repository.db.QueryRow(context, query, args...).Scan(&baptism.UpdatedAt)
	return dberr.NotFound(err, fmt.Sprintf("Baptism %d", baptism.IDMB), "update_baptism")
}

func (repository *PostgresRepository) SetIDIR(context context.Context, idmb int64, idir int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1;`, table.Table, table.IDIR, table.IDMB)

	tag, err := repository.db.Exec(context, query, idmb, idir)
	if err != nil {
		return dberr.Wrap(err, "link_baptism")
	}
	if tag.RowsAffected() == 0 {
		return notFound(idmb)
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, idmb int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1;`, table.Table, table.IDMB)

	tag, err := repository.db.Exec(context, query, idmb)
	if err != nil {
		return dberr.Wrap(err, "delete_baptism")
	}
	if tag.RowsAffected() == 0 {
		return notFound(idmb)
	}
	return nil
}

func (repository *PostgresRepository) Query(context context.Context, filter Filter, page pagination.Params) ([]Baptism, int, error) {
	var (
		conditions = []string{"TRUE"}
		args       []any
	)
	bind := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Volume > 0 {
		conditions = append(conditions, fmt.Sprintf("%s = %s", table.Volume, bind(filter.Volume)))
	}
	if filter.Page > 0 {
		conditions = append(conditions, fmt.Sprintf("%s = %s", table.Page, bind(filter.Page)))
	}
	if filter.Surname != "" {
		if filter.Soundex {
			conditions = append(conditions, fmt.Sprintf("%s = %s", table.Soundex, bind(soundex.Code(filter.Surname))))
		} else {
			conditions = append(conditions, fmt.Sprintf("lower(%s) = lower(%s)", table.Surname, bind(filter.Surname)))
		}
	}
	if filter.GivenName != "" {
		conditions = append(conditions, fmt.Sprintf("%s ILIKE %s", table.GivenName, bind(filter.GivenName+"%")))
	}
	if filter.District != "" {
		conditions = append(conditions, fmt.Sprintf("%s ILIKE %s", table.District, bind(filter.District+"%")))
	}

	order := schema.List("", table.Volume, table.Page, table.IDMB)
	if filter.Surname != "" {
		order = fmt.Sprintf("lower(%s), lower(%s), %s", table.Surname, table.GivenName, order)
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
		order,
		bind(page.Limit), bind(page.Offset),
	)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "query_baptisms")
	}
	defer rows.Close()

	baptisms := []Baptism{}
	total := 0
	for rows.Next() {
		var baptism Baptism
		if err := rows.Scan(append(baptism.targets(), &total)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_baptism")
		}
		baptisms = append(baptisms, baptism)
	}

	return baptisms, total, dberr.Wrap(rows.Err(), "query_baptisms")
}
