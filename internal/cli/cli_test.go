package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/cubelab/virtualcube"
	"github.com/cubelab/virtualcube/internal/storage"
)

// letterSequence strips everything but face letters, leaving the 54
// stickers in render order regardless of spacing or color codes.
func letterSequence(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case 'W', 'G', 'R', 'O', 'B', 'Y':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestRenderCubePlainMatchesString(t *testing.T) {
	cube := virtualcube.NewCube()
	cube.Apply(virtualcube.W, virtualcube.GPrime, virtualcube.R)

	if got, want := RenderCube(cube, false), cube.String(); got != want {
		t.Errorf("plain render differs from Cube.String:\n%s\nvs\n%s", got, want)
	}
}

func TestRenderCubeColoredSameStickers(t *testing.T) {
	cube := virtualcube.NewCube()
	cube.Apply(virtualcube.B, virtualcube.Y, virtualcube.OPrime)

	colored := RenderCube(cube, true)

	if got, want := letterSequence(colored), letterSequence(cube.String()); got != want {
		t.Errorf("colored render shows stickers %q, want %q", got, want)
	}
	if lines := strings.Count(colored, "\n"); lines != 9 {
		t.Errorf("colored render has %d rows, want 9", lines)
	}
}

func TestEventLogRoundTrip(t *testing.T) {
	logger := NewEventLogger()
	if err := logger.Start(t.TempDir()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	logger.SetDeviceInfo("TestCube", "session-1")

	logger.LogMove("W")
	logger.LogKeyPress("s")
	logger.LogMove("G'")
	logger.LogMove("R2")

	path := logger.FilePath()
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	log, err := LoadEventLog(path)
	if err != nil {
		t.Fatalf("LoadEventLog: %v", err)
	}

	if log.Version != "1.0" {
		t.Errorf("Version = %q, want 1.0", log.Version)
	}
	if len(log.Events) != 4 {
		t.Fatalf("loaded %d events, want 4", len(log.Events))
	}

	notations := MovesFromLog(log)
	want := []string{"W", "G'", "R2"}
	if len(notations) != len(want) {
		t.Fatalf("MovesFromLog returned %d notations, want %d", len(notations), len(want))
	}
	for i := range want {
		if notations[i] != want[i] {
			t.Errorf("notation %d = %q, want %q", i, notations[i], want[i])
		}
	}

	moves, source, err := movesFromLogFile(path)
	if err != nil {
		t.Fatalf("movesFromLogFile: %v", err)
	}
	// R2 expands to two quarter turns.
	if len(moves) != 4 {
		t.Errorf("parsed %d moves, want 4", len(moves))
	}
	if !strings.HasPrefix(source, "log ") {
		t.Errorf("source = %q, want log prefix", source)
	}
}

func TestVerifySnapshots(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	id, err := storage.NewSessionRepository(db).Create(nil, nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	moves := make([]virtualcube.Move, 30)
	for i := range moves {
		moves[i] = virtualcube.AllMoves[i%len(virtualcube.AllMoves)]
	}
	if err := storage.NewMoveRepository(db).CreateBatch(id, moves, 0); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	cube := virtualcube.NewCube()
	for i := 0; i < 25; i++ {
		cube.Apply(moves[i])
	}
	snapshots := storage.NewSnapshotRepository(db)
	if err := snapshots.Save(id, 25, storage.EncodeState(cube)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := verifySnapshots(db, id, moves); err != nil {
		t.Errorf("verifySnapshots on a consistent session: %v", err)
	}

	// A snapshot that disagrees with the replayed state must fail.
	wrong := virtualcube.NewCube()
	wrong.Apply(virtualcube.W)
	if err := snapshots.Save(id, 25, storage.EncodeState(wrong)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := verifySnapshots(db, id, moves); err == nil {
		t.Error("verifySnapshots accepted a mismatched snapshot")
	}

	// A snapshot past the stored history must fail too.
	if err := snapshots.Save(id, 25, storage.EncodeState(cube)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := snapshots.Save(id, 99, storage.EncodeState(cube)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := verifySnapshots(db, id, moves); err == nil {
		t.Error("verifySnapshots accepted a snapshot past the history")
	}
}
