// Command journeyfsck independently re-validates a journey.bin file against
// the fixed byte layout of spec.md §6.2, without depending on
// internal/journeyrepo's own (de)serializer: big-endian uint16 next, a
// big-endian uint16 count N, then N big-endian uint16 skipped ids.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
)

func main() {
	path := flag.String("file", "journey.bin", "path to a journey.bin file")
	flag.Parse()

	if err := check(*path); err != nil {
		fmt.Fprintf(os.Stderr, "journeyfsck: %v\n", err)
		os.Exit(1)
	}
}

func check(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if len(data) < 4 {
		return fmt.Errorf("%s: truncated header, got %d bytes, want at least 4", path, len(data))
	}

	next := binary.BigEndian.Uint16(data[0:2])
	count := binary.BigEndian.Uint16(data[2:4])

	wantLen := 4 + int(count)*2
	if len(data) != wantLen {
		return fmt.Errorf("%s: declares %d skipped ids but file is %d bytes, want %d", path, count, len(data), wantLen)
	}

	skipped := make([]uint16, count)
	for i := 0; i < int(count); i++ {
		offset := 4 + i*2
		skipped[i] = binary.BigEndian.Uint16(data[offset : offset+2])
	}

	if next < 1 || next > 64001 {
		return fmt.Errorf("%s: next id %d out of range [1,64001]", path, next)
	}

	for _, id := range skipped {
		if id < 1 || id > 64000 {
			return fmt.Errorf("%s: skipped id %d out of range [1,64000]", path, id)
		}
	}

	fmt.Printf("%s: ok, next=%d, skipped=%d entries\n", path, next, len(skipped))
	return nil
}
