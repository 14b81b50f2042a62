// Package config loads custom source definitions from YAML files in a
// scanned directory and overlays them onto definitions from the main
// configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/david-king/TrendRadar/internal/source"
)

// DirEnv overrides the source definition directory when set.
const DirEnv = "TREND_CUSTOM_DIR"

// DefaultDir is scanned when neither the flag nor the env var is set.
const DefaultDir = "config/custom.d"

// Dir resolves the definition directory: explicit override, then the
// environment, then the default.
func Dir(override string) string {
	if override != "" {
		return override
	}
	if v := os.Getenv(DirEnv); v != "" {
		return v
	}
	return DefaultDir
}

// sourceFile is the wrapper form of a definition file. Files may also
// hold a bare list of sources, or a single source object.
type sourceFile struct {
	CustomSources []source.Config `yaml:"custom_sources"`
}

// LoadFile reads one YAML definition file in any of its three accepted
// shapes. Definitions are returned raw; validation happens in LoadDir.
func LoadFile(path string) ([]source.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper sourceFile
	if err := yaml.Unmarshal(data, &wrapper); err == nil && len(wrapper.CustomSources) > 0 {
		return wrapper.CustomSources, nil
	}

	var list []source.Config
	if err := yaml.Unmarshal(data, &list); err == nil && len(list) > 0 {
		return list, nil
	}

	var single source.Config
	if err := yaml.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return []source.Config{single}, nil
}

// LoadDir scans dir for *.yml and *.yaml files in name order and
// returns the sanitized definitions. Later files override earlier ones
// on key conflicts. Invalid definitions are collected as errors for
// logging; they never fail the load.
func LoadDir(dir string) ([]source.Config, []error) {
	var files []string
	for _, pat := range []string{"*.yml", "*.yaml"} {
		m, _ := filepath.Glob(filepath.Join(dir, pat))
		files = append(files, m...)
	}
	sort.Strings(files)

	var out []source.Config
	var errs []error
	index := make(map[string]int)

	for _, f := range files {
		defs, err := LoadFile(f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for i, raw := range defs {
			if !raw.IsEnabled() {
				continue
			}
			cfg, ok := sanitize(raw, f)
			if !ok {
				errs = append(errs, fmt.Errorf("%s: skipping invalid definition #%d", f, i+1))
				continue
			}
			if j, dup := index[cfg.Key]; dup {
				out[j] = cfg
			} else {
				index[cfg.Key] = len(out)
				out = append(out, cfg)
			}
		}
	}
	return out, errs
}

// Merge overlays directory-loaded definitions onto those from the main
// configuration; the directory wins on key conflicts. Main-config
// entries without a key are dropped.
func Merge(cfgSources, dirSources []source.Config) []source.Config {
	var out []source.Config
	index := make(map[string]int)
	for _, list := range [][]source.Config{cfgSources, dirSources} {
		for _, c := range list {
			if c.Key == "" {
				continue
			}
			if j, dup := index[c.Key]; dup {
				out[j] = c
			} else {
				index[c.Key] = len(out)
				out = append(out, c)
			}
		}
	}
	return out
}

// sanitize validates one definition and fills defaults: lowercased
// type, key derived from type and file stem when absent, name
// defaulting to key. ok is false when the definition is unusable.
func sanitize(c source.Config, path string) (source.Config, bool) {
	typ := strings.ToLower(strings.TrimSpace(c.Type))
	switch typ {
	case "rest", "rss", "html":
	default:
		return c, false
	}
	c.Type = typ

	if c.Endpoint == "" {
		return c, false
	}

	if c.Key == "" {
		base := filepath.Base(path)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		c.Key = typ + ":" + stem
	}
	if c.Name == "" {
		c.Name = c.Key
	}
	return c, true
}
