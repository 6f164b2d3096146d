package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NoArgs(t *testing.T) {
	overrides, err := Parse(nil)

	require.NoError(t, err)
	assert.Empty(t, overrides.ConfigFile)
	assert.False(t, overrides.OutputFilenames)
}

func TestParse_Forms(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantConfig string
		wantOutput bool
	}{
		{"short config", []string{"-c", "/tmp/alt.xml"}, "/tmp/alt.xml", false},
		{"long config", []string{"--config", "/tmp/alt.xml"}, "/tmp/alt.xml", false},
		{"long config with equals", []string{"--config=/tmp/alt.xml"}, "/tmp/alt.xml", false},
		{"short config attached", []string{"-c/tmp/alt.xml"}, "/tmp/alt.xml", false},
		{"short output", []string{"-o"}, "", true},
		{"long output", []string{"--output"}, "", true},
		{"both", []string{"-o", "-c", "/etc/sw.xml"}, "/etc/sw.xml", true},
		{"last config wins", []string{"-c", "/a.xml", "--config", "/b.xml"}, "/b.xml", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overrides, err := Parse(tt.args)

			require.NoError(t, err)
			assert.Equal(t, tt.wantConfig, overrides.ConfigFile)
			assert.Equal(t, tt.wantOutput, overrides.OutputFilenames)
		})
	}
}

func TestParse_UnknownFlagsIgnored(t *testing.T) {
	overrides, err := Parse([]string{"--verbose", "-o", "--debug=1", "-c", "/tmp/alt.xml"})

	require.NoError(t, err)
	assert.Equal(t, "/tmp/alt.xml", overrides.ConfigFile)
	assert.True(t, overrides.OutputFilenames)
}

func TestParse_PositionalArgsIgnored(t *testing.T) {
	overrides, err := Parse([]string{"extra", "-o"})

	require.NoError(t, err)
	assert.True(t, overrides.OutputFilenames)
}

func TestParse_MissingValue(t *testing.T) {
	for _, args := range [][]string{{"-c"}, {"--config"}, {"-o", "--config"}} {
		_, err := Parse(args)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformed)
	}
}

func TestParse_Help(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"--help"}} {
		_, err := Parse(args)

		assert.ErrorIs(t, err, ErrHelp)
	}
}

func TestUsage(t *testing.T) {
	usage := Usage()

	assert.Contains(t, usage, "-c, --config string")
	assert.Contains(t, usage, "alternate config file")
	assert.Contains(t, usage, "-o, --output")
	assert.Contains(t, usage, "print the names of written backup files")
}
