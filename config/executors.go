package config

import (
	"errors"
	"fmt"

	"github.com/kilianp07/patterns/core/factory"
)

// ExecutorProfile names a configured executor: the registry type to build
// and the raw settings handed to its constructor.
type ExecutorProfile struct {
	Name string         `json:"name"`
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// Module returns the factory configuration of the profile.
func (p ExecutorProfile) Module() factory.ModuleConfig {
	return factory.ModuleConfig{Type: p.Type, Conf: p.Conf}
}

// ValidateProfiles checks that every profile has a unique name and a type.
func ValidateProfiles(profiles []ExecutorProfile) error {
	seen := make(map[string]struct{}, len(profiles))
	for i, p := range profiles {
		if p.Name == "" {
			return fmt.Errorf("profile %d: name is required", i)
		}
		if p.Type == "" {
			return fmt.Errorf("profile %s: type is required", p.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("profile %s: %w", p.Name, errDuplicateProfile)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

var errDuplicateProfile = errors.New("duplicate name")
