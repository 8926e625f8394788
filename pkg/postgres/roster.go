package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okwaro/dutyroster/pkg/core/model"
	"github.com/okwaro/dutyroster/pkg/db"
)

// GetAssignmentsBetween retrieves assignment records with roster date in
// the half-open range [from, to)
func (d *DB) GetAssignmentsBetween(ctx context.Context, from, to time.Time) ([]model.AssignmentRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT a.person_id, p.first_name || ' ' || p.last_name,
		       ro.name, r.event_id, r.date
		FROM assignment a
		JOIN roster r ON r.id = a.roster_id
		JOIN role ro ON ro.id = a.role_id
		JOIN person p ON p.id = a.person_id
		WHERE r.date >= $1 AND r.date < $2
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var records []model.AssignmentRecord
	for rows.Next() {
		var rec model.AssignmentRecord
		if err := rows.Scan(&rec.PersonID, &rec.PersonName, &rec.RoleName, &rec.EventID, &rec.Date); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return records, nil
}

// SaveRoster applies all roster saves in a single transaction: each
// (event, date) container is found or created, its previous assignment
// rows deleted, and the new rows inserted. Concurrent readers never see a
// container stripped of its rows.
func (d *DB) SaveRoster(ctx context.Context, saves []db.RosterSave) error {
	if len(saves) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, save := range saves {
		container := db.Roster{
			ID:      uuid.New().String(),
			EventID: save.EventID,
			Date:    save.Date,
		}
		// On conflict the existing container's id comes back instead
		err := tx.QueryRow(ctx, `
			INSERT INTO roster (id, event_id, date)
			VALUES ($1, $2, $3)
			ON CONFLICT (event_id, date) DO UPDATE SET date = EXCLUDED.date
			RETURNING id
		`, container.ID, container.EventID, container.Date).Scan(&container.ID)
		if err != nil {
			return fmt.Errorf("failed to find or create roster for event %d: %w", save.EventID, err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM assignment WHERE roster_id = $1`, container.ID); err != nil {
			return fmt.Errorf("failed to clear roster %s: %w", container.ID, err)
		}

		for _, row := range save.Rows {
			a := db.Assignment{
				ID:       uuid.New().String(),
				RosterID: container.ID,
				RoleID:   row.RoleID,
				PersonID: row.PersonID,
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO assignment (id, roster_id, role_id, person_id)
				VALUES ($1, $2, $3, $4)
			`, a.ID, a.RosterID, a.RoleID, a.PersonID)
			if err != nil {
				return fmt.Errorf("failed to insert assignment: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
