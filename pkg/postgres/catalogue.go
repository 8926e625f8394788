package postgres

import (
	"context"
	"fmt"

	"github.com/okwaro/dutyroster/pkg/core/model"
)

// GetRoles retrieves the full role catalogue
func (d *DB) GetRoles(ctx context.Context) ([]model.Role, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, is_special
		FROM role
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		var r model.Role
		if err := rows.Scan(&r.ID, &r.Name, &r.IsSpecial); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roles: %w", err)
	}

	return roles, nil
}

// GetActiveEvents retrieves active events in ascending id order
func (d *DB) GetActiveEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), is_active
		FROM event
		WHERE is_active
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}
