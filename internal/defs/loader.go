// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"fmt"
	"os"

	"hex-fire-defense/internal/types"
)

// LoadTowerDefinitions reads the tower configuration file and replaces the TowerLibrary.
func LoadTowerDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read tower definitions file: %w", err)
	}

	var towerDefs []TowerDefinition
	if err := json.Unmarshal(file, &towerDefs); err != nil {
		return fmt.Errorf("failed to unmarshal tower definitions: %w", err)
	}

	TowerLibrary = make(map[string]TowerDefinition)
	for _, def := range towerDefs {
		TowerLibrary[def.ID] = def
	}

	fmt.Printf("Loaded %d tower definitions\n", len(TowerLibrary))
	return nil
}

// LoadFireDefinitions reads the fire tier configuration file and replaces the FireLibrary.
func LoadFireDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fire definitions file: %w", err)
	}

	var fireDefs []FireDefinition
	if err := json.Unmarshal(file, &fireDefs); err != nil {
		return fmt.Errorf("failed to unmarshal fire definitions: %w", err)
	}

	lib := make(map[types.FireType]FireDefinition)
	for _, def := range fireDefs {
		tier, ok := fireTypeByName[def.Type]
		if !ok {
			return fmt.Errorf("unknown fire type %q in definitions", def.Type)
		}
		lib[tier] = def
	}
	FireLibrary = lib

	fmt.Printf("Loaded %d fire definitions\n", len(FireLibrary))
	return nil
}
