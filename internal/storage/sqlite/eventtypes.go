package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/schedulist/schedulist/internal/models"
	"github.com/schedulist/schedulist/internal/ordering"
	"github.com/schedulist/schedulist/internal/storage"
)

// ListGroups returns every profile the user belongs to, with event types in
// position order and hosts resolved against the users table.
func (s *SQLiteStore) ListGroups(ctx context.Context, userID string) ([]models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.slug, p.name, p.team_id, m.role,
		        (SELECT COUNT(*) FROM profile_members pm WHERE pm.profile_id = p.id)
		 FROM profiles p
		 JOIN profile_members m ON m.profile_id = p.id
		 WHERE m.user_id = ?
		 ORDER BY p.team_id, p.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		var role string
		if err := rows.Scan(&g.ProfileID, &g.Slug, &g.Name, &g.TeamID, &role, &g.MemberCount); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		// Plain team members see the collection but cannot edit it.
		g.ReadOnly = g.IsTeam() && role != "owner"
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	for i := range groups {
		items, err := s.listEventTypes(ctx, groups[i].ProfileID)
		if err != nil {
			return nil, err
		}
		groups[i].Items = items
	}

	return groups, nil
}

func (s *SQLiteStore) listEventTypes(ctx context.Context, profileID int64) ([]models.EventType, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, slug, description, length, scheduling_type, hidden, position
		 FROM event_types WHERE profile_id = ? ORDER BY position`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list event types: %w", err)
	}
	defer rows.Close()

	var items []models.EventType
	for rows.Next() {
		var et models.EventType
		if err := rows.Scan(&et.ID, &et.Title, &et.Slug, &et.Description,
			&et.Length, &et.SchedulingType, &et.Hidden, &et.Position); err != nil {
			return nil, fmt.Errorf("failed to scan event type: %w", err)
		}
		items = append(items, et)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event types: %w", err)
	}

	for i := range items {
		hosts, err := s.listHosts(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Hosts = hosts
	}

	return items, nil
}

func (s *SQLiteStore) listHosts(ctx context.Context, eventTypeID int64) ([]models.Host, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.display_name, u.slug
		 FROM event_type_hosts h
		 JOIN users u ON u.id = h.user_id
		 WHERE h.event_type_id = ?
		 ORDER BY u.slug`,
		eventTypeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list hosts: %w", err)
	}
	defer rows.Close()

	var hosts []models.Host
	for rows.Next() {
		var h models.Host
		if err := rows.Scan(&h.Name, &h.Username); err != nil {
			return nil, fmt.Errorf("failed to scan host: %w", err)
		}
		hosts = append(hosts, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hosts: %w", err)
	}

	return hosts, nil
}

// GetEventType retrieves a single event type by ID.
func (s *SQLiteStore) GetEventType(ctx context.Context, id int64) (*models.EventType, error) {
	et := &models.EventType{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, slug, description, length, scheduling_type, hidden, position
		 FROM event_types WHERE id = ?`,
		id,
	).Scan(&et.ID, &et.Title, &et.Slug, &et.Description,
		&et.Length, &et.SchedulingType, &et.Hidden, &et.Position)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event type %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event type: %w", err)
	}

	hosts, err := s.listHosts(ctx, et.ID)
	if err != nil {
		return nil, err
	}
	et.Hosts = hosts

	return et, nil
}

// CreateEventType inserts a new event type at the tail of the profile's
// collection and populates et.ID and et.Position.
func (s *SQLiteStore) CreateEventType(ctx context.Context, profileID int64, et *models.EventType) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM profiles WHERE id = ?)", profileID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check profile: %w", err)
	}
	if !exists {
		return fmt.Errorf("profile %d: %w", profileID, storage.ErrNotFound)
	}

	var position int
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM event_types WHERE profile_id = ?",
		profileID,
	).Scan(&position); err != nil {
		return fmt.Errorf("failed to compute position: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO event_types (profile_id, title, slug, description, length, scheduling_type, hidden, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		profileID, et.Title, et.Slug, et.Description, et.Length,
		string(et.SchedulingType), et.Hidden, position,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event type: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read event type id: %w", err)
	}
	et.ID = id
	et.Position = position

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ReorderEventTypes rewrites positions so the collection matches ids. The ids
// must be exactly the identifiers currently stored for the profile; anything
// else is rejected with storage.ErrNotPermutation.
func (s *SQLiteStore) ReorderEventTypes(ctx context.Context, profileID int64, ids []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		"SELECT id FROM event_types WHERE profile_id = ? ORDER BY position",
		profileID,
	)
	if err != nil {
		return fmt.Errorf("failed to read current order: %w", err)
	}

	var current []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan id: %w", err)
		}
		current = append(current, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate ids: %w", err)
	}

	if !ordering.SamePermutation(current, ids) {
		return fmt.Errorf("profile %d: %w", profileID, storage.ErrNotPermutation)
	}

	for pos, id := range ids {
		if _, err := tx.ExecContext(ctx,
			"UPDATE event_types SET position = ? WHERE id = ? AND profile_id = ?",
			pos, id, profileID,
		); err != nil {
			return fmt.Errorf("failed to update position of %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SetEventTypeHidden updates the hidden flag of one event type.
func (s *SQLiteStore) SetEventTypeHidden(ctx context.Context, id int64, hidden bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE event_types SET hidden = ? WHERE id = ?",
		hidden, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update hidden flag: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("event type %d: %w", id, storage.ErrNotFound)
	}

	return nil
}

// DeleteEventType removes an event type and compacts the positions of the
// remaining collection so they stay dense.
func (s *SQLiteStore) DeleteEventType(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var profileID int64
	var position int
	err = tx.QueryRowContext(ctx,
		"SELECT profile_id, position FROM event_types WHERE id = ?", id,
	).Scan(&profileID, &position)
	if err == sql.ErrNoRows {
		return fmt.Errorf("event type %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to locate event type: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM event_types WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete event type: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE event_types SET position = position - 1 WHERE profile_id = ? AND position > ?",
		profileID, position,
	); err != nil {
		return fmt.Errorf("failed to compact positions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
