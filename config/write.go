package config

import (
	"encoding/json"
	"os"
)

// WriteJSON dumps the loaded config to path as pretty-printed JSON, for the
// telemetry output manager's per-run config snapshot.
func (c *Config) WriteJSON(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
