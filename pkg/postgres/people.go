package postgres

import (
	"context"
	"fmt"

	"github.com/okwaro/dutyroster/pkg/core/model"
)

const selectPeopleSQL = `
	SELECT p.id, p.first_name, p.last_name, COALESCE(p.email, ''),
	       p.is_producer, p.is_assistant_producer, p.is_present,
	       COALESCE(array_agg(r.name) FILTER (WHERE r.name IS NOT NULL), '{}')
	FROM person p
	LEFT JOIN person_role pr ON pr.person_id = p.id
	LEFT JOIN role r ON r.id = pr.role_id
	WHERE p.is_active
`

// GetPeople retrieves all active people with their role tags
func (d *DB) GetPeople(ctx context.Context) ([]model.Person, error) {
	return d.queryPeople(ctx, selectPeopleSQL+` GROUP BY p.id ORDER BY p.id`)
}

// GetPresentPeople retrieves active people currently marked present
func (d *DB) GetPresentPeople(ctx context.Context) ([]model.Person, error) {
	return d.queryPeople(ctx, selectPeopleSQL+` AND p.is_present GROUP BY p.id ORDER BY p.id`)
}

func (d *DB) queryPeople(ctx context.Context, sql string) ([]model.Person, error) {
	rows, err := d.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	var people []model.Person
	for rows.Next() {
		var p model.Person
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email,
			&p.IsProducer, &p.IsAssistantProducer, &p.IsPresent, &p.Roles); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating people: %w", err)
	}

	return people, nil
}

// SetPresence marks the listed people present or absent
func (d *DB) SetPresence(ctx context.Context, personIDs []int64, present bool) error {
	if len(personIDs) == 0 {
		return nil
	}
	_, err := d.pool.Exec(ctx, `
		UPDATE person SET is_present = $2 WHERE id = ANY($1)
	`, personIDs, present)
	if err != nil {
		return fmt.Errorf("failed to set presence: %w", err)
	}
	return nil
}

// SetPresenceExcept marks everyone not in the list present or absent
func (d *DB) SetPresenceExcept(ctx context.Context, personIDs []int64, present bool) error {
	_, err := d.pool.Exec(ctx, `
		UPDATE person SET is_present = $2 WHERE NOT (id = ANY($1))
	`, nonNilIDs(personIDs), present)
	if err != nil {
		return fmt.Errorf("failed to set presence: %w", err)
	}
	return nil
}

// nonNilIDs substitutes an empty slice for nil. pgx encodes a nil slice as
// SQL NULL, and NOT (id = ANY(NULL)) is NULL, so an exclusion update with
// an empty list would match no rows instead of every row.
func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
