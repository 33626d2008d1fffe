// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"

	"github.com/taibuivan/ontvitals/internal/platform/database/schema"
	"github.com/taibuivan/ontvitals/internal/platform/dberr"
	"github.com/taibuivan/ontvitals/internal/platform/postgres"
)

// PostgresRepository reads reference rows from the vitals schema.
type PostgresRepository struct {
	db postgres.DBTX
}

// NewPostgresRepository constructs a PostgreSQL backed reference store.
func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) GetDomain(context context.Context, code string) (*Domain, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1;
	`,
		schema.VitalsDomain.Code,
		schema.VitalsDomain.Name,
		schema.VitalsDomain.Lang,
		schema.VitalsDomain.Table,
		schema.VitalsDomain.Code,
	)

	domain := &Domain{}
	err := repository.db.QueryRow(context, query, code).Scan(&domain.Code, &domain.Name, &domain.Lang)
	if err != nil {
		return nil, dberr.NotFound(err, "Domain "+code, "get_domain")
	}
	return domain, nil
}

func (repository *PostgresRepository) ListCounties(context context.Context, domain string) ([]County, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC;
	`,
		schema.VitalsCounty.Domain,
		schema.VitalsCounty.Code,
		schema.VitalsCounty.Name,
		schema.VitalsCounty.StartYear,
		schema.VitalsCounty.EndYear,
		schema.VitalsCounty.Table,
		schema.VitalsCounty.Domain,
		schema.VitalsCounty.Name,
	)

	rows, err := repository.db.Query(context, query, domain)
	if err != nil {
		return nil, dberr.Wrap(err, "list_counties")
	}
	defer rows.Close()

	counties := []County{}
	for rows.Next() {
		var county County
		if err := rows.Scan(&county.Domain, &county.Code, &county.Name, &county.StartYear, &county.EndYear); err != nil {
			return nil, dberr.Wrap(err, "scan_county")
		}
		counties = append(counties, county)
	}

	return counties, dberr.Wrap(rows.Err(), "list_counties")
}

func (repository *PostgresRepository) ListTownships(context context.Context, domain, county string) ([]Township, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
		ORDER BY %s ASC;
	`,
		schema.VitalsTownship.Domain,
		schema.VitalsTownship.County,
		schema.VitalsTownship.Code,
		schema.VitalsTownship.Name,
		schema.VitalsTownship.Table,
		schema.VitalsTownship.Domain,
		schema.VitalsTownship.County,
		schema.VitalsTownship.Name,
	)

	rows, err := repository.db.Query(context, query, domain, county)
	if err != nil {
		return nil, dberr.Wrap(err, "list_townships")
	}
	defer rows.Close()

	townships := []Township{}
	for rows.Next() {
		var township Township
		if err := rows.Scan(&township.Domain, &township.County, &township.Code, &township.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_township")
		}
		townships = append(townships, township)
	}

	return townships, dberr.Wrap(rows.Err(), "list_townships")
}
