package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/newrelic/go-cpp-codegen/codegraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geoUnit() *codegraph.CompilationUnit {
	g := codegraph.NewVariable(codegraph.MustBasicType("int"), "g").Init(codegraph.NewPrimitive("1"))
	return codegraph.NewCompilationUnit("geo", codegraph.NewNamespace("geo", g))
}

func TestRenderUnit(t *testing.T) {
	tests := []struct {
		name  string
		split bool
		want  []Artifact
	}{
		{
			name: "combined",
			want: []Artifact{
				{Name: "geo.cpp", Content: "namespace geo\n{\n\tint g = 1;\n}\n"},
			},
		},
		{
			name:  "split",
			split: true,
			want: []Artifact{
				{Name: "geo.h", Content: "#pragma once\nnamespace geo\n{\n\textern int g;\n}\n"},
				{Name: "geo.cpp", Content: "#include \"geo.h\"\nnamespace geo\n{\n\tint g = 1;\n}\n"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderUnit(geoUnit(), tt.split)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RenderUnit() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderUnitErrors(t *testing.T) {
	_, err := RenderUnit(nil, false)
	assert.Error(t, err)

	_, err = RenderUnit(codegraph.NewCompilationUnit(""), true)
	assert.Error(t, err)
}

func TestWriterOverwrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := &Writer{Dir: dir}

	artifacts, err := RenderUnit(geoUnit(), true)
	require.NoError(t, err)
	require.NoError(t, w.Write(artifacts...))

	for _, a := range artifacts {
		b, err := os.ReadFile(filepath.Join(dir, a.Name))
		require.NoError(t, err)
		assert.Equal(t, a.Content, string(b))
	}
}

func TestWriterDiff(t *testing.T) {
	dir := t.TempDir()
	diffFile := filepath.Join(dir, "changes.diff")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "geo.cpp"), []byte("namespace geo\n{\n\tint g = 0;\n}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "same.cpp"), []byte("int x;\n"), 0644))

	w := &Writer{Dir: dir, DiffFile: diffFile}
	require.NoError(t, w.CreateDiffFile())

	artifacts, err := RenderUnit(geoUnit(), false)
	require.NoError(t, err)
	artifacts = append(artifacts,
		Artifact{Name: "same.cpp", Content: "int x;\n"},
		Artifact{Name: "new.h", Content: "int y;\n"},
	)
	require.NoError(t, w.Write(artifacts...))

	b, err := os.ReadFile(diffFile)
	require.NoError(t, err)
	patch := string(b)
	assert.Contains(t, patch, "-\tint g = 0;\n")
	assert.Contains(t, patch, "+\tint g = 1;\n")
	assert.Contains(t, patch, "+int y;\n")
	assert.NotContains(t, patch, "same.cpp")

	original, err := os.ReadFile(filepath.Join(dir, "geo.cpp"))
	require.NoError(t, err)
	assert.Equal(t, "namespace geo\n{\n\tint g = 0;\n}\n", string(original), "diff mode must not modify files")
	assert.NoFileExists(t, filepath.Join(dir, "new.h"))
}

func TestCreateDiffFileTruncates(t *testing.T) {
	diffFile := filepath.Join(t.TempDir(), "changes.diff")
	require.NoError(t, os.WriteFile(diffFile, []byte("stale"), 0644))

	w := &Writer{DiffFile: diffFile}
	require.NoError(t, w.CreateDiffFile())

	b, err := os.ReadFile(diffFile)
	require.NoError(t, err)
	assert.Empty(t, b)
}
