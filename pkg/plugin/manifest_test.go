package plugin_test

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simdem/archive-plugins/pkg/pipeline/schema"
	"github.com/simdem/archive-plugins/pkg/plugin"
)

func TestLoadRegistry_TOMLAndYAMLAgree(t *testing.T) {
	fromTOML, err := plugin.LoadRegistry(filepath.Join("testdata", "plugins.toml"))
	require.NoError(t, err)
	fromYAML, err := plugin.LoadRegistry(filepath.Join("testdata", "plugins.yaml"))
	require.NoError(t, err)

	require.Len(t, fromTOML.Plugins, 3)
	if diff := cmp.Diff(fromTOML, fromYAML); diff != "" {
		t.Fatalf("TOML and YAML registries differ (-toml +yaml):\n%s", diff)
	}
}

func TestLoadRegistry_Errors(t *testing.T) {
	_, err := plugin.LoadRegistry(filepath.Join(t.TempDir(), "missing.toml"))
	require.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)

	_, err = plugin.ParseRegistry([]byte(`{}`), ".json")
	require.Error(t, err)

	_, err = plugin.ParseRegistry([]byte("[[plugins]]\nauthor = \"*\"\n"), ".toml")
	require.ErrorContains(t, err, "name is required")

	_, err = plugin.ParseRegistry([]byte("[[plugins]]\nname = \"x\"\nbogus = 1\n"), ".toml")
	require.Error(t, err)

	reg, err := plugin.ParseRegistry(nil, ".yaml")
	require.NoError(t, err)
	assert.Empty(t, reg.Plugins)
}

func TestRegistry_ForAuthor(t *testing.T) {
	reg, err := plugin.LoadRegistry(filepath.Join("testdata", "plugins.toml"))
	require.NoError(t, err)

	tests := []struct {
		user string
		want []string
	}{
		{user: "alice", want: []string{"colons", "quote_div"}},
		{user: "bob", want: []string{"colons", "quote_div"}},
		{user: "carol", want: []string{"banner", "quote_div"}},
		{user: "dave", want: []string{"quote_div"}},
		{user: "ali", want: []string{"quote_div"}},
	}

	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			assert.Equal(t, tt.want, names(reg.ForAuthor(tt.user)))
		})
	}
}

func TestRegistry_Hooks(t *testing.T) {
	reg, err := plugin.LoadRegistry(filepath.Join("testdata", "plugins.toml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"colons", "quote_div"}, names(reg.Hooks("alice", "law", schema.StagePost)))
	assert.Equal(t, []string{"colons"}, names(reg.Hooks("alice", "eo", schema.StagePost)))
	assert.Equal(t, []string{"banner"}, names(reg.Hooks("carol", "eo", schema.StagePre)))
	assert.Empty(t, reg.Hooks("carol", "law", schema.StagePre))

	var nilReg *plugin.Registry
	assert.Empty(t, nilReg.ForAuthor("alice"))
}

func names(ms []plugin.Manifest) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Name)
	}
	return out
}
