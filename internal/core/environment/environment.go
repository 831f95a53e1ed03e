// Package environment models named runtime environments: per-plugin
// configuration overrides that let one pipeline definition be parameterized
// differently per deployment context (dev, prod, ...).
//
// All types are immutable once constructed; concurrent readers need no
// synchronization. Construction errors propagate to the caller, lookups
// report absence with an ok-bool instead of an error.
package environment

import (
	"fmt"
	"sort"

	"pipewise.dev/cli/internal/core/behavior"
	"pipewise.dev/cli/internal/core/plugin"
)

// PluginKey is the composite index key for plugin overrides within an
// environment.
type PluginKey struct {
	Type plugin.Type
	Name string
}

// PluginOverride holds one plugin's configuration and extra settings within
// an environment. The config mapping is deep-copied at construction, so
// later mutation of the caller's mapping never aliases this object's state.
type PluginOverride struct {
	ref    plugin.Ref
	config map[string]any
	extras map[string]any
}

// NewPluginOverride creates a plugin override. config may be nil; extras
// holds settings outside the plugin's standard config mapping (e.g. select,
// schema) and may be nil.
func NewPluginOverride(t plugin.Type, name string, config map[string]any, extras map[string]any) *PluginOverride {
	copied := make(map[string]any, len(extras))
	for k, v := range extras {
		copied[k] = v
	}
	return &PluginOverride{
		ref:    plugin.NewRef(t, name),
		config: deepCopyMap(config),
		extras: copied,
	}
}

// Ref returns the (type, name) identity of the plugin this override applies to.
func (o *PluginOverride) Ref() plugin.Ref {
	return o.ref
}

// Type returns the plugin category.
func (o *PluginOverride) Type() plugin.Type {
	return o.ref.Type()
}

// Name returns the plugin name.
func (o *PluginOverride) Name() string {
	return o.ref.Name()
}

// Key returns the index key for this override.
func (o *PluginOverride) Key() PluginKey {
	return PluginKey{Type: o.ref.Type(), Name: o.ref.Name()}
}

// Config returns a copy of the override's configuration mapping.
func (o *PluginOverride) Config() map[string]any {
	return deepCopyMap(o.config)
}

// Extras returns a copy of the override's extra settings.
func (o *PluginOverride) Extras() map[string]any {
	out := make(map[string]any, len(o.extras))
	for k, v := range o.extras {
		out[k] = v
	}
	return out
}

// ExtraConfig returns the extra settings with each key renamed by
// prepending an underscore, the form under which extras are layered into
// plugin configuration. The result is freshly built on each call.
func (o *PluginOverride) ExtraConfig() map[string]any {
	out := make(map[string]any, len(o.extras))
	for k, v := range o.extras {
		out["_"+k] = deepCopyValue(v)
	}
	return out
}

// ConfigWithExtras returns the union of Config and ExtraConfig. On key
// collision the extras value wins: an extras key always overrides an
// identically named literal config key.
func (o *PluginOverride) ConfigWithExtras() map[string]any {
	out := deepCopyMap(o.config)
	for k, v := range o.extras {
		out["_"+k] = deepCopyValue(v)
	}
	return out
}

// CanonicalMap renders the override back into raw spec form: name, config
// (if non-empty), and extras under their unprefixed keys.
func (o *PluginOverride) CanonicalMap() map[string]any {
	out := make(map[string]any, len(o.extras)+2)
	out["name"] = o.ref.Name()
	if len(o.config) > 0 {
		out["config"] = deepCopyMap(o.config)
	}
	for k, v := range o.extras {
		out[k] = deepCopyValue(v)
	}
	return out
}

// EnvironmentConfig indexes an environment's plugin overrides by
// (plugin type, plugin name).
type EnvironmentConfig struct {
	plugins map[PluginKey]*PluginOverride
}

// NewEnvironmentConfig builds an environment configuration from a raw
// mapping carrying an optional "plugins" key: plugin type strings mapped to
// sequences of raw override specs. Each spec requires a "name", may carry a
// "config" mapping, and contributes any other keys as extras.
//
// Unknown plugin type strings fail with plugin.ErrInvalidType. Duplicate
// (type, name) pairs within one raw input silently collapse to the last
// spec seen.
func NewEnvironmentConfig(raw map[string]any) (*EnvironmentConfig, error) {
	cfg := &EnvironmentConfig{plugins: make(map[PluginKey]*PluginOverride)}

	rawPlugins, ok := raw["plugins"]
	if !ok || rawPlugins == nil {
		return cfg, nil
	}
	byType, ok := rawPlugins.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: plugins must be a mapping of plugin types, got %T", ErrInvalidConfig, rawPlugins)
	}

	for rawType, rawSpecs := range byType {
		pluginType, err := plugin.ParseType(rawType)
		if err != nil {
			return nil, err
		}
		specs, ok := rawSpecs.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a sequence of override specs, got %T", ErrInvalidConfig, rawType, rawSpecs)
		}
		for _, rawSpec := range specs {
			spec, ok := rawSpec.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: %s entry must be a mapping, got %T", ErrMalformedOverride, rawType, rawSpec)
			}
			override, err := parseOverrideSpec(pluginType, spec)
			if err != nil {
				return nil, err
			}
			cfg.plugins[override.Key()] = override
		}
	}
	return cfg, nil
}

// parseOverrideSpec splits a raw override spec into its known fields (name,
// config) and the residual extras mapping.
func parseOverrideSpec(t plugin.Type, spec map[string]any) (*PluginOverride, error) {
	rawName, ok := spec["name"]
	if !ok {
		return nil, fmt.Errorf("%w: %s spec is missing a name", ErrMalformedOverride, t)
	}
	name, ok := rawName.(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: %s spec name must be a non-empty string, got %v", ErrMalformedOverride, t, rawName)
	}

	var config map[string]any
	if rawConfig, present := spec["config"]; present && rawConfig != nil {
		config, ok = rawConfig.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: config for %s/%s must be a mapping, got %T", ErrMalformedOverride, t, name, rawConfig)
		}
	}

	extras := make(map[string]any)
	for k, v := range spec {
		if k == "name" || k == "config" {
			continue
		}
		extras[k] = v
	}
	return NewPluginOverride(t, name, config, extras), nil
}

// Plugins returns a copy of the override index.
func (c *EnvironmentConfig) Plugins() map[PluginKey]*PluginOverride {
	out := make(map[PluginKey]*PluginOverride, len(c.plugins))
	for k, v := range c.plugins {
		out[k] = v
	}
	return out
}

// Len returns the number of overrides in the index.
func (c *EnvironmentConfig) Len() int {
	return len(c.plugins)
}

// Get returns the override for the given plugin, if one is configured.
func (c *EnvironmentConfig) Get(t plugin.Type, name string) (*PluginOverride, bool) {
	override, ok := c.plugins[PluginKey{Type: t, Name: name}]
	return override, ok
}

// CanonicalMap renders the configuration back into its raw form, with
// overrides grouped by plugin type and sorted by name within each type.
func (c *EnvironmentConfig) CanonicalMap() map[string]any {
	if len(c.plugins) == 0 {
		return map[string]any{}
	}
	byType := make(map[string][]*PluginOverride)
	for _, override := range c.plugins {
		key := override.Type().String()
		byType[key] = append(byType[key], override)
	}
	plugins := make(map[string]any, len(byType))
	for rawType, overrides := range byType {
		sort.Slice(overrides, func(i, j int) bool {
			return overrides[i].Name() < overrides[j].Name()
		})
		specs := make([]any, len(overrides))
		for i, override := range overrides {
			specs[i] = override.CanonicalMap()
		}
		plugins[rawType] = specs
	}
	return map[string]any{"plugins": plugins}
}

// Environment is a named bundle of plugin configuration overrides for one
// deployment context. Name uniqueness across environments is enforced by
// the owning project registry, not here.
type Environment struct {
	name   string
	config *EnvironmentConfig
}

// NewEnvironment creates an environment from a name and an optional raw
// configuration mapping. A nil mapping yields an empty configuration.
func NewEnvironment(name string, raw map[string]any) (*Environment, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	config, err := NewEnvironmentConfig(raw)
	if err != nil {
		return nil, err
	}
	return &Environment{name: name, config: config}, nil
}

// Name returns the environment name.
func (e *Environment) Name() string {
	return e.name
}

// Config returns the environment's plugin override index.
func (e *Environment) Config() *EnvironmentConfig {
	return e.config
}

// GetPluginConfig returns the override configured for the given plugin, if
// any. Absence is not an error; callers distinguish "no override
// configured" from failure conditions.
func (e *Environment) GetPluginConfig(t plugin.Type, name string) (*PluginOverride, bool) {
	return e.config.Get(t, name)
}

// Equals reports whether other is the same environment, by name.
func (e *Environment) Equals(other *Environment) bool {
	return behavior.NameEq(e, other)
}

// CanonicalMap renders the environment back into its project-file form.
func (e *Environment) CanonicalMap() map[string]any {
	out := map[string]any{"name": e.name}
	if config := e.config.CanonicalMap(); len(config) > 0 {
		out["config"] = config
	}
	return out
}

var (
	_ behavior.Named     = (*Environment)(nil)
	_ behavior.Named     = (*PluginOverride)(nil)
	_ behavior.Canonical = (*Environment)(nil)
	_ behavior.Canonical = (*EnvironmentConfig)(nil)
	_ behavior.Canonical = (*PluginOverride)(nil)
)
