package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/newrelic/go-cpp-codegen/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const geoBlueprint = `name: geo
namespaces:
  - name: geo
    variables:
      - {name: g, type: int, init: "1"}
`

func TestRender(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(geoBlueprint), 0644))

	tests := []struct {
		name  string
		split bool
		want  map[string]string
	}{
		{
			name: "combined",
			want: map[string]string{
				"geo.cpp": "namespace geo\n{\n\tint g = 1;\n}\n",
			},
		},
		{
			name:  "split",
			split: true,
			want: map[string]string{
				"geo.h":   "#pragma once\nnamespace geo\n{\n\textern int g;\n}\n",
				"geo.cpp": "#include \"geo.h\"\nnamespace geo\n{\n\tint g = 1;\n}\n",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := t.TempDir()
			cfg = cli.Config{Path: path, OutputDir: out, Split: tt.split}
			Render()

			for name, want := range tt.want {
				got, err := os.ReadFile(filepath.Join(out, name))
				require.NoError(t, err)
				assert.Equal(t, want, string(got), name)
			}
		})
	}
}
