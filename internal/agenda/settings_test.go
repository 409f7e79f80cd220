package agenda

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseProgressColors(t *testing.T) {
	thresholds := ParseProgressColors("#111111|50\n\n  #222222 | 10 \n#333333\n#bad|x")

	require.Equal(t, []ProgressThreshold{
		{Limit: 10, Color: "#222222"},
		{Limit: 50, Color: "#111111"},
		{Limit: 100, Color: "#333333"},
	}, thresholds)

	require.Equal(t, DefaultProgressColors(), ParseProgressColors("   "))
}

func TestParseStateOptions(t *testing.T) {
	options := ParseStateOptions("pending|#000000|core:i/clock\nunknown|#ffffff\nfailed|#123456")

	require.Equal(t, StateOption{Icon: "core:i/clock", Color: "#000000"}, options[StatePending])
	require.Equal(t, "#123456", options[StateFailed].Color)
	require.Equal(t, DefaultStateOptions()[StateFailed].Icon, options[StateFailed].Icon)
	require.Len(t, options, len(States))

	require.Equal(t, DefaultStateOptions(), ParseStateOptions(""))
}

func TestSettingsExcludes(t *testing.T) {
	settings := DefaultSettings()
	settings.ExcludedTypes = []ActivityType{TypeScorm}

	require.True(t, settings.Excludes(TypeScorm))
	require.False(t, settings.Excludes(TypeQuiz))
}
