package debugmode

import "fmt"

// Setting keys used in the key/value store.
const (
	KeyDebugMode = "debug_mode"
	KeySnapshot  = "debug_mode_snapshot"
)

// KV is a persistent string key/value store.
type KV interface {
	Setting(key string) (string, bool, error)
	SetSetting(key, value string) error
	DeleteSetting(key string) error
}

// StoreSettings adapts a KV store to the Settings interface.
// The live value is held in memory and only written on SaveSettings.
type StoreSettings struct {
	kv   KV
	live DebugMode
}

// NewStoreSettings loads the live debug mode from kv. A missing or
// unreadable value starts as Default.
func NewStoreSettings(kv KV) (*StoreSettings, error) {
	s := &StoreSettings{kv: kv}
	raw, ok, err := kv.Setting(KeyDebugMode)
	if err != nil {
		return s, fmt.Errorf("debugmode: load setting: %w", err)
	}
	if ok {
		mode, parseErr := Parse(raw)
		if parseErr != nil {
			return s, parseErr
		}
		s.live = mode
	}
	return s, nil
}

func (s *StoreSettings) DebugMode() DebugMode {
	return s.live
}

func (s *StoreSettings) SetDebugMode(mode DebugMode) {
	s.live = mode
}

func (s *StoreSettings) SaveSettings() error {
	return s.kv.SetSetting(KeyDebugMode, s.live.String())
}

func (s *StoreSettings) SaveSnapshot(mode DebugMode) error {
	return s.kv.SetSetting(KeySnapshot, mode.String())
}

func (s *StoreSettings) Snapshot() (DebugMode, bool) {
	raw, ok, err := s.kv.Setting(KeySnapshot)
	if err != nil || !ok {
		return Default, false
	}
	mode, err := Parse(raw)
	if err != nil {
		return Default, false
	}
	return mode, true
}

func (s *StoreSettings) ClearSnapshot() error {
	return s.kv.DeleteSetting(KeySnapshot)
}
