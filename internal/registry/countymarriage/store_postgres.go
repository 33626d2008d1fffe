// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package countymarriage

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/database/schema"
	"github.com/taibuivan/ontvitals/internal/platform/dberr"
	"github.com/taibuivan/ontvitals/internal/platform/postgres"
	"github.com/taibuivan/ontvitals/pkg/pagination"
	"github.com/taibuivan/ontvitals/pkg/soundex"
)

var (
	reportTable = schema.VitalsCountyMarriageReport
	itemTable   = schema.VitalsCountyMarriage
)

// PostgresRepository implements [Repository] over vitals.countymarriagereport
// and vitals.countymarriage.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed county marriage store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func reportColumns() []string {
	all := append(reportTable.Key(), reportTable.Fields()...)
	return append(all, reportTable.UpdatedBy, reportTable.UpdatedAt)
}

func (r *Report) targets() []any {
	return []any{
		&r.Domain, &r.Volume, &r.ReportNo,
		&r.Page, &r.GivenNames, &r.Surname, &r.Faith, &r.Residence, &r.Image, &r.IDIR, &r.Remarks,
		&r.UpdatedBy, &r.UpdatedAt,
	}
}

func (r *Report) fieldValues() []any {
	return []any{r.Page, r.GivenNames, r.Surname, r.Faith, r.Residence, r.Image, r.IDIR, r.Remarks}
}

func (entry *Item) targets() []any {
	return []any{
		&entry.ItemNo, &entry.Role,
		&entry.GivenNames, &entry.Surname, new(string), &entry.Age, &entry.Residence, &entry.BirthPlace,
		&entry.FatherName, &entry.MotherName, &entry.WitnessName, &entry.Date, &entry.LicenseType,
		&entry.Remarks, &entry.IDIR,
	}
}

func (entry *Item) fieldValues() []any {
	return []any{
		entry.GivenNames, entry.Surname, soundex.Code(entry.Surname), entry.Age, entry.Residence, entry.BirthPlace,
		entry.FatherName, entry.MotherName, entry.WitnessName, entry.Date, entry.LicenseType,
		entry.Remarks, entry.IDIR,
	}
}

func (repository *PostgresRepository) GetReport(context context.Context, key Key) (*Report, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3;
	`,
		schema.List("", reportColumns()...),
		reportTable.Table,
		reportTable.Domain, reportTable.Volume, reportTable.ReportNo,
	)

	result := &Report{}
	err := repository.pool.QueryRow(context, query, key.Domain, key.Volume, key.ReportNo).Scan(result.targets()...)
	if err != nil {
		return nil, dberr.NotFound(err, "County marriage report "+key.Label(), "get_county_marriage_report")
	}
	return result, nil
}

func (repository *PostgresRepository) Items(context context.Context, key Key) ([]Item, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3
		ORDER BY %s, position(%s in 'GB');
	`,
		itemTable.ItemNo, itemTable.Role, schema.List("", itemTable.Fields()...),
		itemTable.Table,
		itemTable.Domain, itemTable.Volume, itemTable.ReportNo,
		itemTable.ItemNo, itemTable.Role,
	)

	rows, err := repository.pool.Query(context, query, key.Domain, key.Volume, key.ReportNo)
	if err != nil {
		return nil, dberr.Wrap(err, "get_county_marriage_items")
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var entry Item
		if err := rows.Scan(entry.targets()...); err != nil {
			return nil, dberr.Wrap(err, "scan_county_marriage_item")
		}
		items = append(items, entry)
	}
	return items, dberr.Wrap(rows.Err(), "get_county_marriage_items")
}

func (repository *PostgresRepository) Save(context context.Context, header *Report, items []Item) error {
	fields := reportTable.Fields()
	insert := append(reportTable.Key(), fields...)
	insert = append(insert, reportTable.UpdatedBy)

	saveReport := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES (%s, now())
		ON CONFLICT (%s) DO UPDATE
		SET %s, %s = now()
		RETURNING %s;
	`,
		reportTable.Table, schema.List("", insert...), reportTable.UpdatedAt,
		schema.Placeholders(1, len(insert)),
		schema.List("", reportTable.Key()...),
		schema.Excluded(append(fields, reportTable.UpdatedBy)...), reportTable.UpdatedAt,
		reportTable.UpdatedAt,
	)

	itemInsert := append(itemTable.Key(), itemTable.Fields()...)
	saveItem := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
		ON CONFLICT (%s) DO UPDATE
		SET %s;
	`,
		itemTable.Table, schema.List("", itemInsert...),
		schema.Placeholders(1, len(itemInsert)),
		schema.List("", itemTable.Key()...),
		schema.Excluded(itemTable.Fields()...),
	)

	return postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {
		args := []any{header.Domain, header.Volume, header.ReportNo}
		args = append(args, header.fieldValues()...)
		args = append(args, header.UpdatedBy)

		if err := tx.QueryRow(context, saveReport, args...).Scan(&header.UpdatedAt); err != nil {
			return dberr.Wrap(err, "save_county_marriage_report")
		}

		for i := range items {
			args := []any{header.Domain, header.Volume, header.ReportNo, items[i].ItemNo, items[i].Role}
			args = append(args, items[i].fieldValues()...)
			if _, err := tx.Exec(context, saveItem, args...); err != nil {
				return dberr.Wrap(err, "save_county_marriage_item")
			}
		}
		return nil
	})
}

func (repository *PostgresRepository) SetIDIR(context context.Context, key Key, itemNo int, role string, idir int64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $6
		WHERE %s = $1 AND %s = $2 AND %s = $3 AND %s = $4 AND %s = $5;
	`,
		itemTable.Table,
		itemTable.IDIR,
		itemTable.Domain, itemTable.Volume, itemTable.ReportNo, itemTable.ItemNo, itemTable.Role,
	)

	tag, err := repository.pool.Exec(context, query, key.Domain, key.Volume, key.ReportNo, itemNo, role, idir)
	if err != nil {
		return dberr.Wrap(err, "link_county_marriage")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("County marriage " + key.Detail(itemNo, role))
	}
	return nil
}

func (repository *PostgresRepository) DeleteItem(context context.Context, key Key, itemNo int, role string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3 AND %s = $4 AND %s = $5;
	`,
		itemTable.Table,
		itemTable.Domain, itemTable.Volume, itemTable.ReportNo, itemTable.ItemNo, itemTable.Role,
	)

	tag, err := repository.pool.Exec(context, query, key.Domain, key.Volume, key.ReportNo, itemNo, role)
	if err != nil {
		return dberr.Wrap(err, "delete_county_marriage_item")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("County marriage " + key.Detail(itemNo, role))
	}
	return nil
}

func (repository *PostgresRepository) QueryReports(context context.Context, filter Filter, page pagination.Params) ([]Summary, int, error) {
	var (
		conditions []string
		args       []any
	)
	bind := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	conditions = append(conditions, fmt.Sprintf("r.%s = %s", reportTable.Domain, bind(filter.Domain)))
	if filter.Volume > 0 {
		conditions = append(conditions, fmt.Sprintf("r.%s = %s", reportTable.Volume, bind(filter.Volume)))
	}
	if filter.Surname != "" {
		conditions = append(conditions, fmt.Sprintf("lower(r.%s) = lower(%s)", reportTable.Surname, bind(filter.Surname)))
	}

	query := fmt.Sprintf(`
		SELECT %s,
			(SELECT COUNT(*) FROM %s i
				WHERE i.%s = r.%s AND i.%s = r.%s AND i.%s = r.%s) AS items,
			COUNT(*) OVER() AS total_count
		FROM %s r
		WHERE %s
		ORDER BY r.%s, r.%s
		LIMIT %s OFFSET %s;
	`,
		schema.List("r", reportColumns()...),
		itemTable.Table,
		itemTable.Domain, reportTable.Domain, itemTable.Volume, reportTable.Volume, itemTable.ReportNo, reportTable.ReportNo,
		reportTable.Table,
		strings.Join(conditions, " AND "),
		reportTable.Volume, reportTable.ReportNo,
		bind(page.Limit), bind(page.Offset),
	)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "query_county_marriage_reports")
	}
	defer rows.Close()

	summaries := []Summary{}
	total := 0
	for rows.Next() {
		var summary Summary
		targets := append(summary.Report.targets(), &summary.Items, &total)
		if err := rows.Scan(targets...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_county_marriage_report")
		}
		summaries = append(summaries, summary)
	}

	return summaries, total, dberr.Wrap(rows.Err(), "query_county_marriage_reports")
}
