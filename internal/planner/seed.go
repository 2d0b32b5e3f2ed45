package planner

import _ "embed"

// seedJSON is the built-in starter schedule, in the same persisted format
// the codec reads and writes. It is installed on first run and by Reset.
//
//go:embed seed.json
var seedJSON []byte

func SeedJSON() []byte {
	out := make([]byte, len(seedJSON))
	copy(out, seedJSON)
	return out
}
