// Package journeyrepo provides a file-backed journey.Repository, encoding
// the fixed byte layout of spec.md §6.2.
package journeyrepo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tristhaus/rslibrecell-go/internal/engine"
)

// ErrJourneyCorrupt is returned by Read when the on-disk bytes are shorter
// than the header declares.
var ErrJourneyCorrupt = errors.New("journeyrepo: journey file corrupt")

// ErrJourneyIO wraps unexpected filesystem failures from Read or Write.
var ErrJourneyIO = errors.New("journeyrepo: journey file I/O error")

const fileName = "journey.bin"

// Disk persists journey state as a single binary file under a data
// directory, per spec.md §6.2/§6.3. It implements journey.Repository.
type Disk struct {
	dataDir string
}

// NewDisk returns a Disk repository rooted at dataDir. The directory is
// created lazily on first Write.
func NewDisk(dataDir string) *Disk {
	return &Disk{dataDir: dataDir}
}

func (d *Disk) path() string {
	return filepath.Join(d.dataDir, fileName)
}

// Read loads (next, skipped) from disk. A missing file is treated as the
// empty journey (1, nil), per spec.md §6.2.
func (d *Disk) Read() (engine.GameId, []engine.GameId, error) {
	data, err := os.ReadFile(d.path())
	if errors.Is(err, os.ErrNotExist) {
		return engine.MinGameId, nil, nil
	}
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrJourneyIO, err)
	}

	return Deserialize(data)
}

// Write persists (next, skipped) to disk, creating the data directory if
// necessary and writing atomically via a temp-file-then-rename.
func (d *Disk) Write(next engine.GameId, skipped []engine.GameId) error {
	if err := os.MkdirAll(d.dataDir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrJourneyIO, err)
	}

	data := Serialize(next, skipped)

	tmp, err := os.CreateTemp(d.dataDir, fileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrJourneyIO, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrJourneyIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrJourneyIO, err)
	}

	if err := os.Rename(tmpPath, d.path()); err != nil {
		return fmt.Errorf("%w: %v", ErrJourneyIO, err)
	}

	return nil
}

// Serialize encodes (next, skipped) per spec.md §6.2: big-endian uint16
// next, big-endian uint16 count, then that many big-endian uint16 ids.
func Serialize(next engine.GameId, skipped []engine.GameId) []byte {
	buf := make([]byte, 4+2*len(skipped))
	binary.BigEndian.PutUint16(buf[0:2], uint16(next))
	binary.BigEndian.PutUint16(buf[2:4], uint16(len(skipped)))
	for i, id := range skipped {
		binary.BigEndian.PutUint16(buf[4+2*i:6+2*i], uint16(id))
	}
	return buf
}

// Deserialize decodes the byte layout written by Serialize, failing with
// ErrJourneyCorrupt if the buffer is shorter than the header declares.
func Deserialize(data []byte) (engine.GameId, []engine.GameId, error) {
	if len(data) < 4 {
		return 0, nil, fmt.Errorf("%w: have %d bytes, need at least 4", ErrJourneyCorrupt, len(data))
	}

	next := binary.BigEndian.Uint16(data[0:2])
	count := int(binary.BigEndian.Uint16(data[2:4]))

	want := 4 + 2*count
	if len(data) < want {
		return 0, nil, fmt.Errorf("%w: have %d bytes, need %d", ErrJourneyCorrupt, len(data), want)
	}

	skipped := make([]engine.GameId, count)
	for i := 0; i < count; i++ {
		skipped[i] = engine.GameId(binary.BigEndian.Uint16(data[4+2*i : 6+2*i]))
	}

	return engine.GameId(next), skipped, nil
}
