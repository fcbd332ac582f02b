package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// SaveFile is one save slot's record.
type SaveFile struct {
	Slot       int
	Name       string
	AssistMode bool
	Deaths     int
	AreaID     int
	Level      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ModData is the hardcore mode's own save data, kept as a YAML document
// inside the save file.
type ModData struct {
	HardcoreModeEnabled bool `yaml:"hardcore_mode_enabled"`
}

// CreateFile creates a new save file in the slot, replacing nothing: it
// fails if the slot is taken.
func (s *Store) CreateFile(slot int, name string) error {
	_, err := s.db.Exec(
		"INSERT INTO save_files (slot, name) VALUES (?, ?)",
		slot, name,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot create file in slot %d: %w", slot, err)
	}
	return nil
}

// FileExists reports whether a save file exists in the slot.
// Query errors are reported as "does not exist".
func (s *Store) FileExists(slot int) bool {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM save_files WHERE slot = ?", slot).Scan(&n)
	return err == nil && n > 0
}

// File returns the save file in the slot.
func (s *Store) File(slot int) (*SaveFile, error) {
	var f SaveFile
	var assist int
	var createdAt, updatedAt any

	err := s.db.QueryRow(
		`SELECT slot, name, assist_mode, deaths, area_id, level, created_at, updated_at
		 FROM save_files WHERE slot = ?`,
		slot,
	).Scan(&f.Slot, &f.Name, &assist, &f.Deaths, &f.AreaID, &f.Level, &createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSuchFile
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query slot %d: %w", slot, err)
	}

	f.AssistMode = assist != 0
	f.CreatedAt = parseTime(createdAt)
	f.UpdatedAt = parseTime(updatedAt)
	return &f, nil
}

// Files returns every save file ordered by slot.
func (s *Store) Files() ([]SaveFile, error) {
	rows, err := s.db.Query(
		`SELECT slot, name, assist_mode, deaths, area_id, level, created_at, updated_at
		 FROM save_files ORDER BY slot`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query files: %w", err)
	}
	defer rows.Close()

	var files []SaveFile
	for rows.Next() {
		var f SaveFile
		var assist int
		var createdAt, updatedAt any
		if err := rows.Scan(&f.Slot, &f.Name, &assist, &f.Deaths, &f.AreaID, &f.Level, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		f.AssistMode = assist != 0
		f.CreatedAt = parseTime(createdAt)
		f.UpdatedAt = parseTime(updatedAt)
		files = append(files, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return files, nil
}

// DeleteFile removes the save file in the slot.
// Returns ErrNoSuchFile if the slot was already empty.
func (s *Store) DeleteFile(slot int) error {
	result, err := s.db.Exec("DELETE FROM save_files WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("storage: cannot delete slot %d: %w", slot, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot confirm deletion of slot %d: %w", slot, err)
	}
	if n == 0 {
		return ErrNoSuchFile
	}
	return nil
}

// LoadModData parses the mod save data of the slot. An empty document
// yields the zero ModData.
func (s *Store) LoadModData(slot int) (ModData, error) {
	var data ModData
	var raw string

	err := s.db.QueryRow("SELECT mod_data FROM save_files WHERE slot = ?", slot).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return data, ErrNoSuchFile
	}
	if err != nil {
		return data, fmt.Errorf("storage: cannot read mod data of slot %d: %w", slot, err)
	}

	if err := yaml.Unmarshal([]byte(raw), &data); err != nil {
		return data, fmt.Errorf("storage: corrupt mod data in slot %d: %w", slot, err)
	}
	return data, nil
}

// SaveModData writes the mod save data of the slot.
func (s *Store) SaveModData(slot int, data ModData) error {
	raw, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("storage: cannot encode mod data: %w", err)
	}
	return s.setModDataRaw(slot, string(raw))
}

// setModDataRaw stores an already-encoded mod data document.
func (s *Store) setModDataRaw(slot int, raw string) error {
	result, err := s.db.Exec(
		"UPDATE save_files SET mod_data = ?, updated_at = CURRENT_TIMESTAMP WHERE slot = ?",
		raw, slot,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write mod data of slot %d: %w", slot, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNoSuchFile
	}
	return nil
}

// LoadHardcoreFlag returns the hardcore flag stored in the slot's mod data.
func (s *Store) LoadHardcoreFlag(slot int) (bool, error) {
	data, err := s.LoadModData(slot)
	if err != nil {
		return false, err
	}
	return data.HardcoreModeEnabled, nil
}

// SaveHardcoreFlag writes the hardcore flag into the slot's mod data.
func (s *Store) SaveHardcoreFlag(slot int, enabled bool) error {
	return s.SaveModData(slot, ModData{HardcoreModeEnabled: enabled})
}

// SetAssistMode turns assist mode on or off for the slot.
func (s *Store) SetAssistMode(slot int, enabled bool) error {
	v := 0
	if enabled {
		v = 1
	}
	result, err := s.db.Exec(
		"UPDATE save_files SET assist_mode = ?, updated_at = CURRENT_TIMESTAMP WHERE slot = ?",
		v, slot,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot set assist mode of slot %d: %w", slot, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNoSuchFile
	}
	return nil
}

// SaveFile writes the name, assist mode, death count and position of an
// existing save file. Mod data is left untouched.
func (s *Store) SaveFile(f SaveFile) error {
	assist := 0
	if f.AssistMode {
		assist = 1
	}
	result, err := s.db.Exec(
		`UPDATE save_files
		 SET name = ?, assist_mode = ?, deaths = ?, area_id = ?, level = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE slot = ?`,
		f.Name, assist, f.Deaths, f.AreaID, f.Level, f.Slot,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot %d: %w", f.Slot, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNoSuchFile
	}
	return nil
}

// IncrementDeaths bumps the death counter of the slot.
func (s *Store) IncrementDeaths(slot int) error {
	result, err := s.db.Exec(
		"UPDATE save_files SET deaths = deaths + 1, updated_at = CURRENT_TIMESTAMP WHERE slot = ?",
		slot,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot count death in slot %d: %w", slot, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNoSuchFile
	}
	return nil
}
