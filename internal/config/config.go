// Package config classifies configuration types and plans auto-passing of
// configuration objects into function parameters, based purely on the
// resolved type sets produced by the resolve package.
package config

import (
	"regexp"

	"github.com/typefold/typefold/internal/typeexpr"
)

// Matched name examples: "Config", "MyConfig1", "my_configMy"
// Ignored name examples: "Random", "Configurable", "conf", "Configg"
var configName = regexp.MustCompile(`(?i)config(?:[^a-z]|$)`)

// IsConfig reports whether a concrete type is a configuration type: it must
// be record-like and its name must contain "config" not followed by another
// letter.
func IsConfig(t *typeexpr.Concrete) bool {
	return t.IsRecord() && configName.MatchString(t.Name)
}

// Instance is a constructed configuration object: a config type together
// with the values for its fields.
type Instance struct {
	Type   *typeexpr.Concrete
	Values map[string]any
}
