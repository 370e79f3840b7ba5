// Package prefs persists lightweight UI preferences as a JSON file.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const uiStateFile = "uistate.json"

// UIState is restored at startup and saved on quit.
type UIState struct {
	LastTab string `json:"last_tab"`
	Bell    bool   `json:"bell"`
}

func uiStatePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "sprout")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, uiStateFile), nil
}

func SaveUIState(s UIState) error {
	path, err := uiStatePath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadUIState returns the saved state, or defaults when none exists.
func LoadUIState() (UIState, error) {
	def := UIState{LastTab: "today", Bell: true}
	path, err := uiStatePath()
	if err != nil {
		return def, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return def, nil
		}
		return def, err
	}
	var s UIState
	if err := json.Unmarshal(data, &s); err != nil {
		return def, err
	}
	return s, nil
}
