package extract

import (
	"encoding/json"
	"fmt"
	"os"
)

// Bank maps identifiers appearing in converter output to a canonical
// display name. The table is configuration data: deployments can override it
// with a JSON file, since the converter's recognized set grows over time.
type Bank struct {
	Name        string   `json:"name"`
	Identifiers []string `json:"identifiers"`
}

// DefaultBanks covers the institutions the converter currently recognizes,
// plus identifiers commonly seen in Polish statement text.
func DefaultBanks() []Bank {
	return []Bank{
		{Name: "Santander", Identifiers: []string{"santander"}},
		{Name: "Bank Pekao", Identifiers: []string{"pekao"}},
		{Name: "mBank", Identifiers: []string{"mbank"}},
		{Name: "PKO Bank Polski", Identifiers: []string{"pko bank polski", "pko bp", "ipko"}},
		{Name: "ING Bank Śląski", Identifiers: []string{"ing bank"}},
		{Name: "Bank Millennium", Identifiers: []string{"millennium"}},
	}
}

// LoadBanks reads a bank table from a JSON file: an array of
// {"name": ..., "identifiers": [...]} objects.
func LoadBanks(path string) ([]Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bank table %q: %w", path, err)
	}
	var banks []Bank
	if err := json.Unmarshal(data, &banks); err != nil {
		return nil, fmt.Errorf("failed to parse bank table %q: %w", path, err)
	}
	return banks, nil
}
