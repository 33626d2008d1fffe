// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package death

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

var table = schema.VitalsDeath

// PostgresRepository implements [Repository] over vitals.death.
type PostgresRepository struct {
	db postgres.DBTX
}

// NewPostgresRepository constructs a PostgreSQL backed death store.
func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// columns lists key, transcribed and audit columns in scan order.
func columns() []string {
	all := append(table.Key(), table.Fields()...)
	return append(all, table.UpdatedBy, table.UpdatedAt)
}

// targets returns the scan destinations matching [columns].
func (d *Death) targets() []any {
	return []any{
		&d.Domain, &d.RegYear, &d.RegNum,
		&d.MsVol, &d.County, &d.Township, &d.Surname, new(string), &d.GivenNames, &d.Sex,
		&d.Date, &d.Place, &d.Age, &d.BirthDate, &d.BirthPlace, &d.Occupation, &d.MarStat,
		&d.Religion, &d.FatherName, &d.MotherName, &d.Cause, &d.Duration, &d.Informant,
		&d.InfoRel, &d.Physician, &d.Registrar, &d.RegDate, &d.Remarks, &d.Image, &d.IDIR,
		&d.UpdatedBy, &d.UpdatedAt,
	}
}

// fieldValues returns the values of table.Fields() in order.
func (d *Death) fieldValues() []any {
	return []any{
		d.MsVol, d.County, d.Township, d.Surname, soundex.Code(d.Surname), d.GivenNames, d.Sex,
		d.Date, d.Place, d.Age, d.BirthDate, d.BirthPlace, d.Occupation, d.MarStat,
		d.Religion, d.FatherName, d.MotherName, d.Cause, d.Duration, d.Informant,
		d.InfoRel, d.Physician, d.Registrar, d.RegDate, d.Remarks, d.Image, d.IDIR,
	}
}

func (repository *PostgresRepository) Get(context context.Context, key Key) (*Death, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3;
	`,
		schema.List("", columns()...),
		table.Table,
		table.Domain, table.RegYear, table.RegNum,
	)

	death := &Death{}
	err := repository.db.QueryRow(context, query, key.Domain, key.RegYear, key.RegNum).Scan(death.targets()...)
	if err != nil {
		return nil, dberr.NotFound(err, "Death registration "+key.Detail(), "get_death")
	}
	return death, nil
}

func (repository *PostgresRepository) Save(context context.Context, death *Death) error {
	fields := table.Fields()
	insert := append(table.Key(), fields...)
	insert = append(insert, table.UpdatedBy)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES (%s, now())
		ON CONFLICT (%s) DO UPDATE
		SET %s, %s = now()
		RETURNING %s;
	`,
		table.Table, schema.List("", insert...), table.UpdatedAt,
		schema.Placeholders(1, len(insert)),
		schema.List("", table.Key()...),
		schema.Excluded(append(fields, table.UpdatedBy)...), table.UpdatedAt,
		table.UpdatedAt,
	)

	args := []any{death.Domain, death.RegYear, death.RegNum}
	args = append(args, death.fieldValues()...)
	args = append(args, death.UpdatedBy)

	err := repository.db.QueryRow(context, query, args...).Scan(&death.UpdatedAt)
	return dberr.Wrap(err, "save_death")
}

func (repository *PostgresRepository) SetIDIR(context context.Context, key Key, idir int64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $4
		WHERE %s = $1 AND %s = $2 AND %s = $3;
	`,
		table.Table,
		table.IDIR,
		table.Domain, table.RegYear, table.RegNum,
	)

	tag, err := repository.db.Exec(context, query, key.Domain, key.RegYear, key.RegNum, idir)
	if err != nil {
		return dberr.Wrap(err, "link_death")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Death registration " + key.Detail())
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, key Key) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3;
	`,
		table.Table,
		table.Domain, table.RegYear, table.RegNum,
	)

	tag, err := repository.db.Exec(context, query, key.Domain, key.RegYear, key.RegNum)
	if err != nil {
		return dberr.Wrap(err, "delete_death")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Death registration " + key.Detail())
	}
	return nil
}

func (repository *PostgresRepository) Query(context context.Context, filter Filter, page pagination.Params) ([]Death, int, error) {
	var (
		conditions []string
		args       []any
	)
	bind := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	conditions = append(conditions, fmt.Sprintf("%s = %s", table.Domain, bind(filter.Domain)))
	if filter.RegYear > 0 {
		conditions = append(conditions, fmt.Sprintf("%s = %s", table.RegYear, bind(filter.RegYear)))
	}
	if filter.RegNum > 0 {
		conditions = append(conditions, fmt.Sprintf("%s >= %s", table.RegNum, bind(filter.RegNum)))
	}
	if filter.Surname != "" {
		if filter.Soundex {
			conditions = append(conditions, fmt.Sprintf("%s = %s", table.Soundex, bind(soundex.Code(filter.Surname))))
		} else {
			conditions = append(conditions, fmt.Sprintf("lower(%s) = lower(%s)", table.Surname, bind(filter.Surname)))
		}
	}
	if filter.GivenNames != "" {
		conditions = append(conditions, fmt.Sprintf("%s ILIKE %s", table.GivenNames, bind(filter.GivenNames+"%")))
	}
	if filter.County != "" {
		conditions = append(conditions, fmt.Sprintf("%s = %s", table.County, bind(filter.County)))
	}
	if filter.Township != "" {
		conditions = append(conditions, fmt.Sprintf("%s = %s", table.Township, bind(filter.Township)))
	}

	order := schema.List("", table.RegYear, table.RegNum)
	if filter.Surname != "" {
		order = fmt.Sprintf("lower(%s), lower(%s), %s", table.Surname, table.GivenNames, order)
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
		return nil, 0, dberr.Wrap(err, "query_deaths")
	}
	defer rows.Close()

	deaths := []Death{}
	total := 0
	for rows.Next() {
		var death Death
		if err := rows.Scan(append(death.targets(), &total)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_death")
		}
		deaths = append(deaths, death)
	}

	return deaths, total, dberr.Wrap(rows.Err(), "query_deaths")
}
