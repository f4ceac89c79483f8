package plugin

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/simdem/archive-plugins/pkg/pipeline/schema"
)

// AnyAuthor in a manifest's author field enables the plugin for every user.
const AnyAuthor = "*"

// Manifest is one entry of plugins.toml.
type Manifest struct {
	Name   string `toml:"name" yaml:"name"`
	Author string `toml:"author" yaml:"author"`
	Pre    bool   `toml:"pre" yaml:"pre"`
	Post   bool   `toml:"post" yaml:"post"`
	Target string `toml:"target" yaml:"target"`
	Path   string `toml:"path" yaml:"path"`
}

// Authors returns the trimmed, comma-separated author list.
func (m Manifest) Authors() []string {
	parts := strings.Split(m.Author, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EnabledFor reports whether user may run this plugin.
func (m Manifest) EnabledFor(user string) bool {
	if m.Author == AnyAuthor {
		return true
	}
	return slices.Contains(m.Authors(), user)
}

// RunsAt reports whether the plugin is registered for stage.
func (m Manifest) RunsAt(stage schema.Stage) bool {
	switch stage {
	case schema.StagePre:
		return m.Pre
	default:
		return m.Post
	}
}

// Registry is the decoded manifest file.
type Registry struct {
	Plugins []Manifest `toml:"plugins" yaml:"plugins"`
}

// LoadRegistry reads a TOML or YAML manifest, chosen by file extension.
func LoadRegistry(path string) (*Registry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plugin manifest: %w", err)
	}
	return ParseRegistry(b, filepath.Ext(path))
}

// ParseRegistry decodes a manifest. ext is ".toml", ".yaml" or ".yml".
func ParseRegistry(b []byte, ext string) (*Registry, error) {
	var reg Registry
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&reg); err != nil {
			return nil, fmt.Errorf("parse plugin manifest TOML: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&reg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse plugin manifest YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported plugin manifest extension %q", ext)
	}
	for i, m := range reg.Plugins {
		if strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("plugin %d: name is required", i)
		}
	}
	return &reg, nil
}

// ForAuthor returns the plugins enabled for user, sorted by name.
func (r *Registry) ForAuthor(user string) []Manifest {
	if r == nil {
		return nil
	}
	var out []Manifest
	for _, m := range r.Plugins {
		if m.EnabledFor(user) {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b Manifest) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Hooks narrows ForAuthor to plugins registered for stage and record kind.
func (r *Registry) Hooks(user, kind string, stage schema.Stage) []Manifest {
	var out []Manifest
	for _, m := range r.ForAuthor(user) {
		if m.RunsAt(stage) && schema.TargetMatches(m.Target, kind) {
			out = append(out, m)
		}
	}
	return out
}
