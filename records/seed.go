package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// LoadSeedFile reads a JSON array of raw records. Numbers are decoded as
// float64, the same shape a remote record API returns.
func LoadSeedFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return DecodeSeed(data)
}

func DecodeSeed(data []byte) ([]Record, error) {
	var recs []Record
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return recs, nil
}
