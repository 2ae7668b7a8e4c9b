package theme

import "maps"

// Merge layers override on top of base. The name comes from override when it
// is non-empty. For each mode, tokens set in override win and base fills the
// rest. Component overrides merge per component and per key, so an override
// for one key never drops the other keys of the same component.
// A nil argument is treated as an empty theme.
func Merge(base, override *Config) *Config {
	if base == nil {
		base = &Config{}
	}
	if override == nil {
		override = &Config{}
	}

	name := base.name
	if override.name != "" {
		name = override.name
	}

	light := base.light.Map()
	maps.Copy(light, override.light.Map())

	dark := base.dark.Map()
	maps.Copy(dark, override.dark.Map())

	components := base.components.Map()
	for comp, keys := range override.components.Map() {
		existing, ok := components[comp]
		if !ok {
			components[comp] = keys
			continue
		}
		maps.Copy(existing, keys)
	}

	return New(name, light, dark, components)
}
