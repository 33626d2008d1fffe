// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package familytree

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/ontvitals/internal/platform/database/schema"
	"github.com/taibuivan/ontvitals/internal/platform/dberr"
	"github.com/taibuivan/ontvitals/internal/platform/postgres"
	"github.com/taibuivan/ontvitals/pkg/names"
	"github.com/taibuivan/ontvitals/pkg/soundex"
)

// PostgresRepository implements [Repository] over the tree schema.
type PostgresRepository struct {
	db postgres.DBTX
}

// NewPostgresRepository constructs a PostgreSQL backed family tree store.
func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	treePerson   = schema.TreePerson
	treeFamily   = schema.TreeFamily
	treeSource   = schema.TreeSource
	treeCitation = schema.TreeCitation
)

// fullName renders "givenname surname" of the person at alias, or an empty string for a missing join.
func fullName(alias string) string {
	return fmt.Sprintf("COALESCE(TRIM(%s.%s || ' ' || %s.%s), '')", alias, treePerson.GivenName, alias, treePerson.Surname)
}

func (repository *PostgresRepository) FindCandidates(context context.Context, criteria Criteria) ([]Candidate, error) {
	var (
		conditions []string
		args       []any
	)
	bind := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if criteria.BySoundex {
		conditions = append(conditions, fmt.Sprintf("p.%s = %s", treePerson.Soundex, bind(criteria.Soundex)))
	} else {
		conditions = append(conditions, fmt.Sprintf("p.%s = ANY(%s)", treePerson.SurnameKey, bind(criteria.Surnames)))
	}
	conditions = append(conditions, fmt.Sprintf("p.%s && %s", treePerson.GivenTokens, bind(criteria.Tokens)))

	if criteria.SexKnown {
		conditions = append(conditions, fmt.Sprintf("p.%s = %s", treePerson.Gender, bind(int(criteria.Gender))))
	}
	if criteria.BirthFrom != 0 || criteria.BirthTo != 0 {
		conditions = append(conditions, fmt.Sprintf("p.%s BETWEEN %s AND %s",
			treePerson.BirthSD, bind(criteria.BirthFrom*10000), bind(criteria.BirthTo*10000+9999)))
	}

	limit := criteria.Limit
	if limit <= 0 || limit > MaxCandidates {
		limit = MaxCandidates
	}

	spouses := fmt.Sprintf(`ARRAY(
			SELECT %s
			FROM %s fm
			JOIN %s s ON s.%s = CASE WHEN fm.%s = p.%s THEN fm.%s ELSE fm.%s END
			WHERE fm.%s = p.%s OR fm.%s = p.%s
			ORDER BY fm.%s
		)`,
		fullName("s"),
		treeFamily.Table,
		treePerson.Table, treePerson.IDIR, treeFamily.IDIRHusb, treePerson.IDIR, treeFamily.IDIRWife, treeFamily.IDIRHusb,
		treeFamily.IDIRHusb, treePerson.IDIR, treeFamily.IDIRWife, treePerson.IDIR,
		treeFamily.IDMR,
	)

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s p
		LEFT JOIN %s pf ON pf.%s = p.%s
		LEFT JOIN %s f ON f.%s = pf.%s
		LEFT JOIN %s m ON m.%s = pf.%s
		WHERE %s
		ORDER BY lower(p.%s), lower(p.%s), p.%s
		LIMIT %s;
	`,
		schema.List("p", treePerson.IDIR, treePerson.Surname, treePerson.GivenName, treePerson.Gender, treePerson.BirthSD, treePerson.DeathSD),
		fullName("f"), fullName("m"), spouses,
		treePerson.Table,
		treeFamily.Table, treeFamily.IDMR, treePerson.IDMRParents,
		treePerson.Table, treePerson.IDIR, treeFamily.IDIRHusb,
		treePerson.Table, treePerson.IDIR, treeFamily.IDIRWife,
		strings.Join(conditions, " AND "),
		treePerson.Surname, treePerson.GivenName, treePerson.BirthSD,
		bind(limit),
	)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "find_candidates")
	}
	defer rows.Close()

	candidates := []Candidate{}
	for rows.Next() {
		var candidate Candidate
		var gender int16
		if err := rows.Scan(
			&candidate.IDIR, &candidate.Surname, &candidate.GivenName, &gender,
			&candidate.BirthSD, &candidate.DeathSD,
			&candidate.Father, &candidate.Mother, &candidate.Spouses,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_candidate")
		}
		candidate.Gender = Gender(gender)
		candidates = append(candidates, candidate)
	}

	return candidates, dberr.Wrap(rows.Err(), "find_candidates")
}

func (repository *PostgresRepository) GetPerson(context context.Context, idir int64) (*Person, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1;
	`,
		schema.List("", treePerson.IDIR, treePerson.Surname, treePerson.GivenName, treePerson.Gender,
			treePerson.BirthSD, treePerson.DeathSD, treePerson.IDMRParents),
		treePerson.Table,
		treePerson.IDIR,
	)

	result := &Person{}
	var gender int16
	err := repository.db.QueryRow(context, query, idir).Scan(
		&result.IDIR, &result.Surname, &result.GivenName, &gender,
		&result.BirthSD, &result.DeathSD, &result.IDMRParents,
	)
	if err != nil {
		return nil, dberr.NotFound(err, fmt.Sprintf("Person %d", idir), "get_person")
	}
	result.Gender = Gender(gender)
	return result, nil
}

func (repository *PostgresRepository) AddPerson(context context.Context, p *Person) error {
	columns := []string{
		treePerson.Surname, treePerson.SurnameKey, treePerson.Soundex, treePerson.GivenName, treePerson.GivenTokens,
		treePerson.Gender, treePerson.BirthSD, treePerson.DeathSD, treePerson.IDMRParents,
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
		RETURNING %s;
	`,
		treePerson.Table, schema.List("", columns...),
		schema.Placeholders(1, len(columns)),
		treePerson.IDIR,
	)

	birth, death := p.BirthSD, p.DeathSD
	if birth == 0 {
		birth = UnknownDate
	}
	if death == 0 {
		death = UnknownDate
	}

	err := repository.db.QueryRow(context, query,
		p.Surname, names.Fold(p.Surname), soundex.Code(p.Surname), p.GivenName, names.Tokens(p.GivenName),
		int16(p.Gender), birth, death, p.IDMRParents,
	).Scan(&p.IDIR)
	return dberr.Wrap(err, "add_person")
}

func (repository *PostgresRepository) AddFamily(context context.Context, f *Family) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s;
	`,
		treeFamily.Table, treeFamily.IDIRHusb, treeFamily.IDIRWife, treeFamily.MarD,
		treeFamily.IDMR,
	)

	err := repository.db.QueryRow(context, query, f.IDIRHusb, f.IDIRWife, f.MarDate).Scan(&f.IDMR)
	return dberr.Wrap(err, "add_family")
}

func (repository *PostgresRepository) FindCitation(context context.Context, kind SourceKind, detail string) (*Citation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s c
		JOIN %s s ON s.%s = c.%s
		WHERE s.%s = $1 AND c.%s = $2
		ORDER BY c.%s DESC
		LIMIT 1;
	`,
		schema.List("c", treeCitation.IDSX, treeCitation.IDIME, treeCitation.Type, treeCitation.SrcDetail,
			treeCitation.CreatedBy, treeCitation.CreatedAt),
		treeCitation.Table,
		treeSource.Table, treeSource.IDSR, treeCitation.IDSR,
		treeSource.Kind, treeCitation.SrcDetail,
		treeCitation.IDSX,
	)

	result := &Citation{Source: kind}
	var event int16
	err := repository.db.QueryRow(context, query, string(kind), detail).Scan(
		&result.IDSX, &result.IDIR, &event, &result.Detail, &result.CreatedBy, &result.CreatedAt,
	)
	if err != nil {
		return nil, dberr.NotFound(err, "Citation "+detail, "find_citation")
	}
	result.Event = Event(event)
	return result, nil
}

func (repository *PostgresRepository) AddCitation(context context.Context, c *Citation) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		SELECT %s, $2, $3, $4, $5
		FROM %s
		WHERE %s = $1
		RETURNING %s, %s;
	`,
		treeCitation.Table, treeCitation.IDSR, treeCitation.IDIME, treeCitation.Type, treeCitation.SrcDetail, treeCitation.CreatedBy,
		treeSource.IDSR,
		treeSource.Table,
		treeSource.Kind,
		treeCitation.IDSX, treeCitation.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		string(c.Source), c.IDIR, int16(c.Event), c.Detail, c.CreatedBy,
	).Scan(&c.IDSX, &c.CreatedAt)
	return dberr.NotFound(err, "Source "+string(c.Source), "add_citation")
}

func (repository *PostgresRepository) DeleteCitations(context context.Context, kind SourceKind, detail string) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s c
		USING %s s
		WHERE s.%s = c.%s AND s.%s = $1 AND c.%s = $2;
	`,
		treeCitation.Table,
		treeSource.Table,
		treeSource.IDSR, treeCitation.IDSR, treeSource.Kind, treeCitation.SrcDetail,
	)

	tag, err := repository.db.Exec(context, query, string(kind), detail)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_citations")
	}
	return tag.RowsAffected(), nil
}
