package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DeathRecord is one entry of the death log.
type DeathRecord struct {
	ID          string
	Slot        int
	LevelSet    string
	AreaID      int
	Level       string
	PlayerState string
	Hardcore    bool   // Whether the death qualified as a hardcore death
	Reason      string // Exemption that spared the file, if any
	Deleted     bool   // Whether the save file was removed
	CreatedAt   time.Time
}

// RecordDeath appends a death to the log. A missing ID is generated.
// Returns the ID of the stored record.
func (s *Store) RecordDeath(rec DeathRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO deaths
		 (id, slot, level_set, area_id, level, player_state, hardcore, reason, deleted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Slot,
		rec.LevelSet,
		rec.AreaID,
		rec.Level,
		rec.PlayerState,
		boolInt(rec.Hardcore),
		rec.Reason,
		boolInt(rec.Deleted),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot record death: %w", err)
	}
	return rec.ID, nil
}

// MarkDeathDeleted records the outcome of the deletion for a death.
func (s *Store) MarkDeathDeleted(id string, deleted bool) error {
	_, err := s.db.Exec("UPDATE deaths SET deleted = ? WHERE id = ?", boolInt(deleted), id)
	if err != nil {
		return fmt.Errorf("storage: cannot update death %s: %w", id, err)
	}
	return nil
}

// RecentDeaths returns the most recent deaths, newest first.
// A slot below zero returns deaths of every slot.
func (s *Store) RecentDeaths(slot, limit int) ([]DeathRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, slot, level_set, area_id, level, player_state, hardcore, reason, deleted, created_at
		 FROM deaths
		 WHERE ? < 0 OR slot = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		slot, slot, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query deaths: %w", err)
	}
	defer rows.Close()

	var records []DeathRecord
	for rows.Next() {
		var r DeathRecord
		var hardcore, deleted int
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.Slot,
			&r.LevelSet,
			&r.AreaID,
			&r.Level,
			&r.PlayerState,
			&hardcore,
			&r.Reason,
			&deleted,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Hardcore = hardcore != 0
		r.Deleted = deleted != 0
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
