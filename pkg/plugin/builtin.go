package plugin

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/simdem/archive-plugins/pkg/pipeline/core"
	"github.com/simdem/archive-plugins/pkg/textfx/colons"
	"github.com/simdem/archive-plugins/pkg/textfx/quotediv"
)

// ErrUnknownPlugin is returned when a manifest does not name a builtin.
var ErrUnknownPlugin = errors.New("unknown plugin")

var builtins = map[string]core.Transformer{
	"colons":    core.TransformFunc(colons.Colonize),
	"quote_div": core.TransformFunc(func(s string) string { return quotediv.Wrap(s) }),
}

var aliases = map[string]string{
	"quotediv":  "quote_div",
	"quote-div": "quote_div",
}

// Builtin looks up a transform by name.
func Builtin(name string) (core.Transformer, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	t, ok := builtins[name]
	return t, ok
}

// BuiltinNames lists the canonical builtin names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resolve maps a manifest to its transform. The builtin is chosen by the file
// stem of Path ("plugins/colons.wasm" is "colons"), falling back to Name.
func Resolve(m Manifest) (core.Transformer, error) {
	if stem := fileStem(m.Path); stem != "" {
		if t, ok := Builtin(stem); ok {
			return t, nil
		}
	}
	if t, ok := Builtin(m.Name); ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s (path %q)", ErrUnknownPlugin, m.Name, m.Path)
}

func fileStem(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
