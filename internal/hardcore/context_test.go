package hardcore

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hardcore-arcade/internal/config"
	"github.com/vovakirdan/hardcore-arcade/internal/core"
	"github.com/vovakirdan/hardcore-arcade/internal/death"
	"github.com/vovakirdan/hardcore-arcade/internal/debugmode"
	"github.com/vovakirdan/hardcore-arcade/internal/gameover"
	"github.com/vovakirdan/hardcore-arcade/internal/storage"
)

type memFile struct {
	name     string
	hardcore bool
	assist   bool
	deaths   int
}

// memStore is an in-memory Store that counts deletions.
type memStore struct {
	files     map[int]*memFile
	deaths    []storage.DeathRecord
	deleted   map[string]bool
	deleteErr error
	deletes   int
}

func newMemStore() *memStore {
	return &memStore{
		files:   make(map[int]*memFile),
		deleted: make(map[string]bool),
	}
}

func (m *memStore) FileExists(slot int) bool {
	_, ok := m.files[slot]
	return ok
}

func (m *memStore) LoadHardcoreFlag(slot int) (bool, error) {
	f, ok := m.files[slot]
	if !ok {
		return false, storage.ErrNoSuchFile
	}
	return f.hardcore, nil
}

func (m *memStore) DeleteFile(slot int) error {
	m.deletes++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.files[slot]; !ok {
		return storage.ErrNoSuchFile
	}
	delete(m.files, slot)
	return nil
}

func (m *memStore) File(slot int) (*storage.SaveFile, error) {
	f, ok := m.files[slot]
	if !ok {
		return nil, storage.ErrNoSuchFile
	}
	return &storage.SaveFile{Slot: slot, Name: f.name, AssistMode: f.assist, Deaths: f.deaths}, nil
}

func (m *memStore) SaveHardcoreFlag(slot int, enabled bool) error {
	f, ok := m.files[slot]
	if !ok {
		return storage.ErrNoSuchFile
	}
	f.hardcore = enabled
	return nil
}

func (m *memStore) SetAssistMode(slot int, enabled bool) error {
	f, ok := m.files[slot]
	if !ok {
		return storage.ErrNoSuchFile
	}
	f.assist = enabled
	return nil
}

func (m *memStore) IncrementDeaths(slot int) error {
	f, ok := m.files[slot]
	if !ok {
		return storage.ErrNoSuchFile
	}
	f.deaths++
	return nil
}

func (m *memStore) RecordDeath(rec storage.DeathRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = "death-" + string(rune('a'+len(m.deaths)))
	}
	m.deaths = append(m.deaths, rec)
	return rec.ID, nil
}

func (m *memStore) MarkDeathDeleted(id string, deleted bool) error {
	m.deleted[id] = deleted
	return nil
}

// memSettings is an in-memory debug mode setting.
type memSettings struct {
	live  debugmode.DebugMode
	snap  *debugmode.DebugMode
	saves int
}

func (s *memSettings) DebugMode() debugmode.DebugMode     { return s.live }
func (s *memSettings) SetDebugMode(m debugmode.DebugMode) { s.live = m }
func (s *memSettings) SaveSettings() error                { s.saves++; return nil }
func (s *memSettings) SaveSnapshot(m debugmode.DebugMode) error {
	s.snap = &m
	return nil
}
func (s *memSettings) Snapshot() (debugmode.DebugMode, bool) {
	if s.snap == nil {
		return debugmode.Default, false
	}
	return *s.snap, true
}
func (s *memSettings) ClearSnapshot() error { s.snap = nil; return nil }

type sceneLog struct {
	scenes []gameover.Scene
}

func (l *sceneLog) RequestScene(s gameover.Scene) { l.scenes = append(l.scenes, s) }

type fixture struct {
	ctx      *Context
	store    *memStore
	settings *memSettings
	scenes   *sceneLog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    newMemStore(),
		settings: &memSettings{live: debugmode.Always},
		scenes:   &sceneLog{},
	}
	f.ctx = New(Deps{
		Store:    f.store,
		Settings: f.settings,
		Scenes:   f.scenes,
		Logger:   log.New(io.Discard),
	}, config.DefaultHardcoreConfig())
	return f
}

// createHardcore walks the new-file flow for slot with hardcore toggled on.
func (f *fixture) createHardcore(t *testing.T, slot int) {
	t.Helper()
	f.ctx.OnSlotSelected(slot, false)
	if !f.ctx.ToggleNewFile(slot) {
		t.Fatal("toggle should turn hardcore on")
	}
	f.store.files[slot] = &memFile{name: "Madeline", assist: true}
	if err := f.ctx.OnNewGame(slot); err != nil {
		t.Fatalf("OnNewGame() failed: %v", err)
	}
}

var deadlyDeath = death.Context{
	LevelSetID:  "Celeste",
	AreaID:      1,
	LevelID:     "a-02",
	PlayerState: death.StateNormal,
	AreaName:    "Forsaken City",
	AreaMode:    death.ModeBSide,
}

func runToComplete(t *testing.T, seq *gameover.Sequencer) {
	t.Helper()
	confirm := core.Press(core.ActionConfirm)
	for i := 0; i < 10 && !seq.Done(); i++ {
		seq.Tick(confirm, 1.0/60.0)
	}
	if !seq.Done() {
		t.Fatalf("sequence stuck in %s", seq.Phase())
	}
}

func TestNewGameHardcoreLocksDown(t *testing.T) {
	f := newFixture(t)
	f.createHardcore(t, 0)

	if !f.store.files[0].hardcore {
		t.Error("hardcore flag should be written into the new file")
	}
	if f.store.files[0].assist {
		t.Error("assist mode should be disabled")
	}
	if f.settings.live != debugmode.Never {
		t.Errorf("debug mode = %s, want never", f.settings.live)
	}
	if !f.ctx.IsHardcoreActive() || !f.ctx.AssistLocked() {
		t.Error("hardcore run should be active")
	}
}

func TestNewGameNormalFile(t *testing.T) {
	f := newFixture(t)
	f.ctx.OnSlotSelected(1, false)
	f.store.files[1] = &memFile{name: "Theo", assist: true}
	if err := f.ctx.OnNewGame(1); err != nil {
		t.Fatalf("OnNewGame() failed: %v", err)
	}

	if f.store.files[1].hardcore {
		t.Error("normal file should not be flagged")
	}
	if !f.store.files[1].assist {
		t.Error("assist mode should be left alone")
	}
	if f.settings.live != debugmode.Always {
		t.Errorf("debug mode = %s, want always", f.settings.live)
	}
	if f.ctx.IsHardcoreActive() {
		t.Error("normal run should not be hardcore")
	}
}

func TestSlotSelectionResetsToggle(t *testing.T) {
	f := newFixture(t)

	f.ctx.ToggleNewFile(2)
	f.ctx.OnSlotSelected(2, false)
	if f.ctx.IsHardcoreFile(2) {
		t.Error("selecting an empty slot should reset its flag")
	}

	// Toggle flips both ways
	if !f.ctx.ToggleNewFile(2) {
		t.Error("first toggle should turn hardcore on")
	}
	if f.ctx.ToggleNewFile(2) {
		t.Error("second toggle should turn hardcore off")
	}
}

func TestToggleExistingFileRefused(t *testing.T) {
	f := newFixture(t)
	f.store.files[0] = &memFile{name: "Madeline"}

	if f.ctx.ToggleNewFile(0) {
		t.Error("existing normal file should stay normal")
	}
	if f.store.files[0].hardcore {
		t.Error("toggle must not touch an existing file")
	}
}

func TestContinueHardcoreFile(t *testing.T) {
	f := newFixture(t)
	f.store.files[0] = &memFile{name: "Madeline", hardcore: true, assist: true}

	if err := f.ctx.OnContinue(0); err != nil {
		t.Fatalf("OnContinue() failed: %v", err)
	}
	if f.store.files[0].assist {
		t.Error("assist mode should be disabled on continue")
	}
	if f.settings.live != debugmode.Never {
		t.Errorf("debug mode = %s, want never", f.settings.live)
	}

	if err := f.ctx.OnSaveAndQuit(); err != nil {
		t.Fatalf("OnSaveAndQuit() failed: %v", err)
	}
	if f.settings.live != debugmode.Always {
		t.Errorf("debug mode after save and quit = %s, want always", f.settings.live)
	}
	if f.ctx.IsHardcoreActive() {
		t.Error("no run should be active after save and quit")
	}
}

func TestContinueReadsFlagFromFile(t *testing.T) {
	f := newFixture(t)
	f.createHardcore(t, 0)

	// A second context over the same store caches the slot as hardcore.
	other := New(Deps{Store: f.store, Logger: log.New(io.Discard)}, config.DefaultHardcoreConfig())
	if !other.IsHardcoreFile(0) {
		t.Fatal("second context should see the hardcore file")
	}

	// The first context loses the file and starts a normal one in its place.
	runToComplete(t, f.ctx.OnPlayerDeath(deadlyDeath))
	f.ctx.OnSlotSelected(0, false)
	f.store.files[0] = &memFile{name: "Theo"}
	if err := f.ctx.OnNewGame(0); err != nil {
		t.Fatalf("OnNewGame() failed: %v", err)
	}

	if err := other.OnContinue(0); err != nil {
		t.Fatalf("OnContinue() failed: %v", err)
	}
	if other.IsHardcoreActive() {
		t.Error("continued a normal file as hardcore")
	}
	if seq := other.OnPlayerDeath(deadlyDeath); seq != nil {
		t.Error("death in a normal file started a game-over")
	}
	if !f.store.FileExists(0) {
		t.Fatal("normal file was deleted")
	}

	// And the other way round: a stale normal flag must not spare a hardcore file.
	f.store.files[1] = &memFile{name: "Badeline"}
	if other.IsHardcoreFile(1) {
		t.Fatal("slot 1 should start out normal")
	}
	f.store.files[1].hardcore = true
	if err := other.OnContinue(1); err != nil {
		t.Fatalf("OnContinue() failed: %v", err)
	}
	if !other.IsHardcoreActive() {
		t.Error("continued a hardcore file as normal")
	}
}

func TestContinueUnreadableFileIsNormal(t *testing.T) {
	f := newFixture(t)
	f.ctx.Registry().SetHardcoreFile(2, true)

	if err := f.ctx.OnContinue(2); err != nil {
		t.Fatalf("OnContinue() failed: %v", err)
	}
	if f.ctx.IsHardcoreActive() {
		t.Error("a file that cannot be read should play as a normal file")
	}
}

func TestSharedRegistry(t *testing.T) {
	f := newFixture(t)
	shared := f.ctx.Registry()
	other := New(Deps{Store: f.store, Registry: shared, Logger: log.New(io.Discard)}, config.DefaultHardcoreConfig())

	if other.Registry() != shared {
		t.Fatal("context should use the registry it was given")
	}
	f.createHardcore(t, 0)
	if !other.IsHardcoreFile(0) {
		t.Error("shared registry should see the new hardcore file")
	}
}

func TestLeaveRestoresLeftoverSnapshot(t *testing.T) {
	f := newFixture(t)
	snap := debugmode.Always
	settings := &memSettings{live: debugmode.Never, snap: &snap}
	ctx := New(Deps{Store: f.store, Settings: settings, Logger: log.New(io.Discard)}, config.DefaultHardcoreConfig())
	if !ctx.Guard().ForcedOff() {
		t.Fatal("guard should pick up the leftover snapshot")
	}

	f.store.files[0] = &memFile{name: "Madeline"}
	if err := ctx.OnContinue(0); err != nil {
		t.Fatalf("OnContinue() failed: %v", err)
	}
	if err := ctx.OnSaveAndQuit(); err != nil {
		t.Fatalf("OnSaveAndQuit() failed: %v", err)
	}
	if settings.live != debugmode.Always {
		t.Errorf("debug mode = %s, want always", settings.live)
	}
	if settings.snap != nil {
		t.Error("snapshot should be cleared")
	}
	if ctx.Guard().ForcedOff() {
		t.Error("guard should no longer be forced off")
	}
}

func TestChapterSelectCancelRestores(t *testing.T) {
	f := newFixture(t)
	f.createHardcore(t, 0)

	if err := f.ctx.OnChapterSelectCancel(); err != nil {
		t.Fatalf("OnChapterSelectCancel() failed: %v", err)
	}
	if f.settings.live != debugmode.Always {
		t.Errorf("debug mode = %s, want always", f.settings.live)
	}
	// Leaving twice is harmless
	if err := f.ctx.OnChapterSelectCancel(); err != nil {
		t.Errorf("second cancel failed: %v", err)
	}
}

func TestHardcoreDeathDeletesOnce(t *testing.T) {
	f := newFixture(t)
	f.createHardcore(t, 0)

	seq := f.ctx.OnPlayerDeath(deadlyDeath)
	if seq == nil {
		t.Fatal("hardcore death should start a game-over sequence")
	}

	// Deleted before the screen even shows
	if f.store.FileExists(0) {
		t.Error("file should be deleted immediately")
	}
	if f.store.deletes != 1 {
		t.Fatalf("deletes = %d, want 1", f.store.deletes)
	}

	runToComplete(t, seq)

	if f.store.deletes != 1 {
		t.Errorf("sequence deleted again: %d deletes", f.store.deletes)
	}
	if seq.DeletionFailed() {
		t.Error("deletion should be reported as successful")
	}
	if f.ctx.IsHardcoreFile(0) {
		t.Error("deleted slot should no longer be hardcore")
	}
	if f.settings.live != debugmode.Always {
		t.Errorf("debug mode after game over = %s, want always", f.settings.live)
	}
	if len(f.scenes.scenes) != 1 || f.scenes.scenes[0] != gameover.SceneMainMenu {
		t.Errorf("scene requests = %v, want [main-menu]", f.scenes.scenes)
	}

	sum := seq.Summary()
	if sum.FileName != "Madeline" || sum.AreaMode != death.ModeBSide {
		t.Errorf("summary = %+v", sum)
	}

	if len(f.store.deaths) != 1 || !f.store.deaths[0].Hardcore {
		t.Fatalf("death log = %+v, want one hardcore death", f.store.deaths)
	}
	if !f.store.deleted[f.store.deaths[0].ID] {
		t.Error("death log should record the deletion")
	}
}

func TestHardcoreDeathDeletionFailure(t *testing.T) {
	f := newFixture(t)
	f.createHardcore(t, 0)
	f.store.deleteErr = errors.New("disk on fire")

	seq := f.ctx.OnPlayerDeath(deadlyDeath)
	if seq == nil {
		t.Fatal("hardcore death should start a game-over sequence")
	}
	runToComplete(t, seq)

	if !seq.DeletionFailed() {
		t.Error("failure should be surfaced by the sequence")
	}
	if f.store.deletes != 1 {
		t.Errorf("deletes = %d, want 1 (no retry)", f.store.deletes)
	}
	if !f.ctx.IsHardcoreFile(0) {
		t.Error("failed deletion must not reset the flag")
	}
	if f.store.deleted[f.store.deaths[0].ID] {
		t.Error("death log should record the failed deletion")
	}
}

func TestExemptDeathSparesFile(t *testing.T) {
	tests := []struct {
		name   string
		ctx    death.Context
		reason string
	}{
		{
			name:   "cutscene",
			ctx:    death.Context{LevelSetID: "Celeste", AreaID: 1, LevelID: "a-00", PlayerState: death.StateDummy},
			reason: "no-control-state",
		},
		{
			name:   "farewell moon jump",
			ctx:    death.Context{LevelSetID: "Celeste", AreaID: 10, LevelID: "j-17", PlayerState: death.StateNormal},
			reason: "farewell-moon-jump",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.createHardcore(t, 0)

			if seq := f.ctx.OnPlayerDeath(tt.ctx); seq != nil {
				t.Fatal("exempt death should not start a game-over sequence")
			}
			if !f.store.FileExists(0) || f.store.deletes != 0 {
				t.Error("exempt death must not delete the file")
			}
			if f.store.files[0].deaths != 1 {
				t.Errorf("deaths = %d, want 1", f.store.files[0].deaths)
			}
			if got := f.store.deaths[0].Reason; got != tt.reason {
				t.Errorf("reason = %q, want %q", got, tt.reason)
			}
			if !f.ctx.IsHardcoreActive() {
				t.Error("run should continue after an exempt death")
			}
			if got := f.ctx.DeathSound(tt.ctx); got != SoundDeath {
				t.Errorf("DeathSound() = %q, want regular", got)
			}
		})
	}
}

func TestNormalFileDeath(t *testing.T) {
	f := newFixture(t)
	f.store.files[0] = &memFile{name: "Theo"}
	if err := f.ctx.OnContinue(0); err != nil {
		t.Fatalf("OnContinue() failed: %v", err)
	}

	if seq := f.ctx.OnPlayerDeath(deadlyDeath); seq != nil {
		t.Fatal("normal file death should not start a game-over sequence")
	}
	if f.store.files[0].deaths != 1 {
		t.Errorf("deaths = %d, want 1", f.store.files[0].deaths)
	}
	if f.store.deaths[0].Reason != "hardcore-disabled" {
		t.Errorf("reason = %q, want hardcore-disabled", f.store.deaths[0].Reason)
	}
	if got := f.ctx.DeathSound(deadlyDeath); got != SoundDeath {
		t.Errorf("DeathSound() = %q, want regular", got)
	}
}

func TestDeathSoundHardcore(t *testing.T) {
	f := newFixture(t)
	f.createHardcore(t, 0)

	if got := f.ctx.DeathSound(deadlyDeath); got != SoundDeathGolden {
		t.Errorf("DeathSound() = %q, want golden", got)
	}
}

func TestPauseMode(t *testing.T) {
	f := newFixture(t)

	if got := f.ctx.PauseMode(false, false); got != PauseNormal {
		t.Errorf("no run: PauseMode = %s, want normal", got)
	}

	f.createHardcore(t, 0)

	tests := []struct {
		safe, cutscene bool
		want           PauseMode
	}{
		{true, false, PauseNoRetry},
		{false, true, PauseNoRetry},
		{true, true, PauseNoRetry},
		{false, false, PauseRestricted},
	}
	for _, tt := range tests {
		if got := f.ctx.PauseMode(tt.safe, tt.cutscene); got != tt.want {
			t.Errorf("PauseMode(%v, %v) = %s, want %s", tt.safe, tt.cutscene, got, tt.want)
		}
	}
}

func TestGoldenBerries(t *testing.T) {
	f := newFixture(t)
	f.createHardcore(t, 0)

	if f.ctx.ShouldSpawnGolden(false) {
		t.Error("goldens are not forced by default")
	}
	if !f.ctx.ShouldSpawnGolden(true) {
		t.Error("vanilla spawn should always win")
	}
	if !f.ctx.FarewellHasGolden(false) {
		t.Error("hardcore run should always reach the golden room")
	}

	cfg := config.DefaultHardcoreConfig()
	cfg.Gameplay.AlwaysSpawnGoldens = true
	forced := New(Deps{Store: f.store, Logger: log.New(io.Discard)}, cfg)
	if forced.ShouldSpawnGolden(false) {
		t.Error("no active run, no forced golden")
	}
	if err := forced.OnContinue(0); err != nil {
		t.Fatalf("OnContinue() failed: %v", err)
	}
	if !forced.ShouldSpawnGolden(false) {
		t.Error("always_spawn_goldens should force the berry in a hardcore run")
	}
}

func TestDeathSlowdown(t *testing.T) {
	if s := DeathSlowdown(true); s.Rate != 0.35 || s.Duration != 1.4 {
		t.Errorf("bounced slowdown = %+v", s)
	}
	if s := DeathSlowdown(false); s.Rate != 0.30 || s.Duration != 1.75 {
		t.Errorf("straight slowdown = %+v", s)
	}
}

func TestTimingsFromConfig(t *testing.T) {
	cfg := config.DefaultHardcoreConfig()
	cfg.Timings.Intro = 3
	cfg.Timings.RevealAt = 1
	cfg.Timings.Exit = 2
	c := New(Deps{Logger: log.New(io.Discard)}, cfg)

	want := gameover.Timings{Intro: 3, RevealAt: 1, Exit: 2}
	if got := c.Timings(); got != want {
		t.Errorf("Timings() = %+v, want %+v", got, want)
	}

	c = New(Deps{Logger: log.New(io.Discard)}, config.Hardcore{})
	if got := c.Timings(); got != gameover.DefaultTimings() {
		t.Errorf("zero config Timings() = %+v, want defaults", got)
	}
}

func TestWithoutCollaborators(t *testing.T) {
	c := New(Deps{Logger: log.New(io.Discard)}, config.DefaultHardcoreConfig())

	c.OnSlotSelected(0, false)
	c.ToggleNewFile(0)
	if err := c.OnNewGame(0); err != nil {
		t.Fatalf("OnNewGame() failed: %v", err)
	}
	seq := c.OnPlayerDeath(deadlyDeath)
	if seq == nil {
		t.Fatal("toggled hardcore run should still end in a game-over")
	}
	runToComplete(t, seq)
	if !seq.DeletionFailed() {
		t.Error("without a store the deletion cannot succeed")
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	settings, err := debugmode.NewStoreSettings(store)
	if err != nil {
		t.Fatalf("NewStoreSettings() failed: %v", err)
	}

	c := New(Deps{Store: store, Settings: settings, Logger: log.New(io.Discard)}, config.DefaultHardcoreConfig())
	c.OnSlotSelected(0, false)
	c.ToggleNewFile(0)
	if err := store.CreateFile(0, "Madeline"); err != nil {
		t.Fatalf("CreateFile() failed: %v", err)
	}
	if err := c.OnNewGame(0); err != nil {
		t.Fatalf("OnNewGame() failed: %v", err)
	}

	// A fresh context over the same database sees the flag on disk
	fresh := New(Deps{Store: store, Logger: log.New(io.Discard)}, config.DefaultHardcoreConfig())
	if !fresh.IsHardcoreFile(0) {
		t.Fatal("hardcore flag should be persisted in the save file")
	}

	seq := c.OnPlayerDeath(deadlyDeath)
	if seq == nil {
		t.Fatal("expected a game-over sequence")
	}
	runToComplete(t, seq)

	if store.FileExists(0) {
		t.Error("save file should be gone")
	}
	deaths, err := store.RecentDeaths(0, 10)
	if err != nil {
		t.Fatalf("RecentDeaths() failed: %v", err)
	}
	if len(deaths) != 1 || !deaths[0].Hardcore || !deaths[0].Deleted {
		t.Errorf("death log = %+v, want one deleted hardcore death", deaths)
	}
}
