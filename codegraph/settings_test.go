package codegraph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCapabilities(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    Capability
		wantErr bool
	}{
		{name: "empty", input: nil, want: NoCapabilities},
		{name: "none", input: []string{"none"}, want: NoCapabilities},
		{name: "default", input: []string{"default"}, want: DefaultCapabilities},
		{
			name:  "mixed case and spaces",
			input: []string{" Export-Keyword ", "out-of-class-templates"},
			want:  ExportKeyword | OutofClassTemplates,
		},
		{name: "unknown", input: []string{"modules"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCapabilities(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCapabilityString(t *testing.T) {
	assert.Equal(t, "none", NoCapabilities.String())
	assert.Equal(t, "exception-specifications,function-try-blocks", DefaultCapabilities.String())

	names := strings.Split((AlternateKeywords | ExportKeyword).String(), ",")
	round, err := ParseCapabilities(names)
	require.NoError(t, err)
	assert.Equal(t, AlternateKeywords|ExportKeyword, round)
}

func TestRenderContextSnapshotsSettings(t *testing.T) {
	withCapabilities(t, AlternateKeywords)
	rc := NewRenderContext()
	SetCapabilities(NoCapabilities)
	assert.True(t, rc.Capabilities().Has(AlternateKeywords))
	assert.False(t, NewRenderContext().Capabilities().Has(AlternateKeywords))
}
