package journeyrepo

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/tristhaus/rslibrecell-go/internal/engine"
)

func TestSerializeKnownVector(t *testing.T) {
	got := Serialize(17, []engine.GameId{11, 515})
	want := []byte{0x00, 0x11, 0x00, 0x02, 0x00, 0x0B, 0x02, 0x03}
	if !bytes.Equal(got, want) {
		t.Fatalf("Serialize(17, [11,515]) = % X, want % X", got, want)
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	next, skipped, err := Deserialize(Serialize(42, []engine.GameId{1, 2, 3}))
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if next != 42 {
		t.Errorf("next = %d, want 42", next)
	}
	if len(skipped) != 3 || skipped[0] != 1 || skipped[1] != 2 || skipped[2] != 3 {
		t.Errorf("skipped = %v, want [1 2 3]", skipped)
	}
}

func TestDeserializeRejectsShortHeader(t *testing.T) {
	if _, _, err := Deserialize([]byte{0x00, 0x11, 0x00}); err == nil {
		t.Fatal("expected error for fewer than 4 bytes")
	}
}

func TestDeserializeRejectsTruncatedTail(t *testing.T) {
	// Declares 2 skipped ids but only provides 1.
	data := []byte{0x00, 0x11, 0x00, 0x02, 0x00, 0x0B}
	if _, _, err := Deserialize(data); err == nil {
		t.Fatal("expected error for a truncated tail")
	}
}

func TestDiskReadMissingFileIsEmptyJourney(t *testing.T) {
	d := NewDisk(t.TempDir())
	next, skipped, err := d.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if next != engine.MinGameId {
		t.Errorf("next = %d, want %d", next, engine.MinGameId)
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %v, want empty", skipped)
	}
}

func TestDiskWriteThenRead(t *testing.T) {
	dir := t.TempDir()
	d := NewDisk(dir)

	if err := d.Write(124, []engine.GameId{117, 118}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	next, skipped, err := d.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if next != 124 {
		t.Errorf("next = %d, want 124", next)
	}
	if len(skipped) != 2 || skipped[0] != 117 || skipped[1] != 118 {
		t.Errorf("skipped = %v, want [117 118]", skipped)
	}

	if _, err := os.Stat(filepath.Join(dir, fileName)); err != nil {
		t.Fatalf("expected journey.bin to exist: %v", err)
	}
}
