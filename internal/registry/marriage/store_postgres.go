// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package marriage

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
	header = schema.VitalsMarriage
	indi   = schema.VitalsMarriageIndi
)

// PostgresRepository implements [Repository] over vitals.marriage and vitals.marriageindi.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed marriage store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func headerColumns() []string {
	all := append(header.Key(), header.Fields()...)
	return append(all, header.UpdatedBy, header.UpdatedAt)
}

func (m *Marriage) targets() []any {
	return []any{
		&m.Domain, &m.RegYear, &m.RegNum,
		&m.MsVol, &m.County, &m.Township, &m.Place, &m.Date, &m.LicenseType,
		&m.Registrar, &m.RegDate, &m.Remarks, &m.Image,
		&m.UpdatedBy, &m.UpdatedAt,
	}
}

func (m *Marriage) fieldValues() []any {
	return []any{
		m.MsVol, m.County, m.Township, m.Place, m.Date, m.LicenseType,
		m.Registrar, m.RegDate, m.Remarks, m.Image,
	}
}

func (p *Participant) targets() []any {
	return []any{
		&p.Role,
		&p.GivenNames, &p.Surname, new(string), &p.Age, &p.BYear, &p.Residence, &p.BirthPlace,
		&p.MarStat, &p.Occupation, &p.FatherName, &p.MotherName, &p.Religion,
		&p.WitnessName, &p.WitnessRes, &p.IDIR,
	}
}

func (p *Participant) fieldValues() []any {
	return []any{
		p.GivenNames, p.Surname, soundex.Code(p.Surname), p.Age, p.BYear, p.Residence, p.BirthPlace,
		p.MarStat, p.Occupation, p.FatherName, p.MotherName, p.Religion,
		p.WitnessName, p.WitnessRes, p.IDIR,
	}
}

func (repository *PostgresRepository) Get(context context.Context, key Key) (*Marriage, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3;
	`,
		schema.List("", headerColumns()...),
		header.Table,
		header.Domain, header.RegYear, header.RegNum,
	)

	marriage := &Marriage{}
	err := repository.pool.QueryRow(context, query, key.Domain, key.RegYear, key.RegNum).Scan(marriage.targets()...)
	if err != nil {
		return nil, dberr.NotFound(err, "Marriage registration "+key.Label(), "get_marriage")
	}

	participants := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3
		ORDER BY position(%s in 'GBM');
	`,
		indi.Role, schema.List("", indi.Fields()...),
		indi.Table,
		indi.Domain, indi.RegYear, indi.RegNum,
		indi.Role,
	)

	rows, err := repository.pool.Query(context, participants, key.Domain, key.RegYear, key.RegNum)
	if err != nil {
		return nil, dberr.Wrap(err, "get_marriage_participants")
	}
	defer rows.Close()

	for rows.Next() {
		var participant Participant
		if err := rows.Scan(participant.targets()...); err != nil {
			return nil, dberr.Wrap(err, "scan_marriage_participant")
		}
		marriage.Participants = append(marriage.Participants, participant)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "get_marriage_participants")
	}

	marriage.fill()
	return marriage, nil
}

func (repository *PostgresRepository) Save(context context.Context, marriage *Marriage) error {
	fields := header.Fields()
	insert := append(header.Key(), fields...)
	insert = append(insert, header.UpdatedBy)

	saveHeader := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES (%s, now())
		ON CONFLICT (%s) DO UPDATE
		SET %s, %s = now()
		RETURNING %s;
	`,
		header.Table, schema.List("", insert...), header.UpdatedAt,
		schema.Placeholders(1, len(insert)),
		schema.List("", header.Key()...),
		schema.Excluded(append(fields, header.UpdatedBy)...), header.UpdatedAt,
		header.UpdatedAt,
	)

	indiInsert := append(indi.Key(), indi.Fields()...)
	saveParticipant := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
		ON CONFLICT (%s) DO UPDATE
		SET %s;
	`,
		indi.Table, schema.List("", indiInsert...),
		schema.Placeholders(1, len(indiInsert)),
		schema.List("", indi.Key()...),
		schema.Excluded(indi.Fields()...),
	)

	return postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {
		args := []any{marriage.Domain, marriage.RegYear, marriage.RegNum}
		args = append(args, marriage.fieldValues()...)
		args = append(args, marriage.UpdatedBy)

		if err := tx.QueryRow(context, saveHeader, args...).Scan(&marriage.UpdatedAt); err != nil {
			return dberr.Wrap(err, "save_marriage")
		}

		for _, participant := range marriage.Participants {
			args := []any{marriage.Domain, marriage.RegYear, marriage.RegNum, participant.Role}
			args = append(args, participant.fieldValues()...)
			if _, err := tx.Exec(context, saveParticipant, args...); err != nil {
				return dberr.Wrap(err, "save_marriage_participant")
			}
		}
		return nil
	})
}

func (repository *PostgresRepository) SetIDIR(context context.Context, key Key, role string, idir int64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $5
		WHERE %s = $1 AND %s = $2 AND %s = $3 AND %s = $4;
	`,
		indi.Table,
		indi.IDIR,
		indi.Domain, indi.RegYear, indi.RegNum, indi.Role,
	)

	tag, err := repository.pool.Exec(context, query, key.Domain, key.RegYear, key.RegNum, role, idir)
	if err != nil {
		return dberr.Wrap(err, "link_marriage")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Marriage participant " + key.Detail(role))
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, key Key) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3;
	`,
		header.Table,
		header.Domain, header.RegYear, header.RegNum,
	)

	tag, err := repository.pool.Exec(context, query, key.Domain, key.RegYear, key.RegNum)
	if err != nil {
		return dberr.Wrap(err, "delete_marriage")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Marriage registration " + key.Label())
	}
	return nil
}

// joinRole joins the participant row of role under alias.
func joinRole(alias, role string) string {
	return fmt.Sprintf("LEFT JOIN %s %s ON %s.%s = m.%s AND %s.%s = m.%s AND %s.%s = m.%s AND %s.%s = '%s'",
		indi.Table, alias,
		alias, indi.Domain, header.Domain,
		alias, indi.RegYear, header.RegYear,
		alias, indi.RegNum, header.RegNum,
		alias, indi.Role, role,
	)
}

func (repository *PostgresRepository) Query(context context.Context, filter Filter, page pagination.Params) ([]Marriage, int, error) {
	var (
		conditions []string
		args       []any
	)
	bind := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	conditions = append(conditions, fmt.Sprintf("m.%s = %s", header.Domain, bind(filter.Domain)))
	if filter.RegYear > 0 {
		conditions = append(conditions, fmt.Sprintf("m.%s = %s", header.RegYear, bind(filter.RegYear)))
	}
	if filter.RegNum > 0 {
		conditions = append(conditions, fmt.Sprintf("m.%s >= %s", header.RegNum, bind(filter.RegNum)))
	}
	if filter.Surname != "" {
		if filter.Soundex {
			mark := bind(soundex.Code(filter.Surname))
			conditions = append(conditions, fmt.Sprintf("(g.%s = %s OR b.%s = %s)", indi.Soundex, mark, indi.Soundex, mark))
		} else {
			mark := bind(filter.Surname)
			conditions = append(conditions, fmt.Sprintf("(lower(g.%s) = lower(%s) OR lower(b.%s) = lower(%s))",
				indi.Surname, mark, indi.Surname, mark))
		}
	}
	if filter.GivenNames != "" {
		mark := bind(filter.GivenNames + "%")
		conditions = append(conditions, fmt.Sprintf("(g.%s ILIKE %s OR b.%s ILIKE %s)", indi.GivenNames, mark, indi.GivenNames, mark))
	}
	if filter.County != "" {
		conditions = append(conditions, fmt.Sprintf("m.%s = %s", header.County, bind(filter.County)))
	}
	if filter.Township != "" {
		conditions = append(conditions, fmt.Sprintf("m.%s = %s", header.Township, bind(filter.Township)))
	}

	query := fmt.Sprintf(`
		SELECT %s,
			coalesce(g.%s, ''), coalesce(g.%s, ''), coalesce(g.%s, 0),
			coalesce(b.%s, ''), coalesce(b.%s, ''), coalesce(b.%s, 0),
			COUNT(*) OVER() AS total_count
		FROM %s m
		%s
		%s
		WHERE %s
		ORDER BY m.%s, m.%s
		LIMIT %s OFFSET %s;
	`,
		schema.List("m", headerColumns()...),
		indi.GivenNames, indi.Surname, indi.IDIR,
		indi.GivenNames, indi.Surname, indi.IDIR,
		header.Table,
		joinRole("g", RoleGroom),
		joinRole("b", RoleBride),
		strings.Join(conditions, " AND "),
		header.RegYear, header.RegNum,
		bind(page.Limit), bind(page.Offset),
	)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "query_marriages")
	}
	defer rows.Close()

	marriages := []Marriage{}
	total := 0
	for rows.Next() {
		var marriage Marriage
		groom := Participant{Role: RoleGroom}
		bride := Participant{Role: RoleBride}
		targets := append(marriage.targets(),
			&groom.GivenNames, &groom.Surname, &groom.IDIR,
			&bride.GivenNames, &bride.Surname, &bride.IDIR,
			&total,
		)
		if err := rows.Scan(targets...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_marriage")
		}
		marriage.Participants = []Participant{groom, bride}
		marriages = append(marriages, marriage)
	}

	return marriages, total, dberr.Wrap(rows.Err(), "query_marriages")
}
