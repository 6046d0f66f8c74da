package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testLoggingConfig struct {
	defaultLevel string
	levels       map[string]string
}

func (c *testLoggingConfig) GetComponentLevel(component string) string {
	return c.levels[component]
}

func (c *testLoggingConfig) GetDefaultLevel() string {
	return c.defaultLevel
}

func (c *testLoggingConfig) IsDevelopment() bool {
	return false
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level       string
		development bool
		wantErr     bool
	}{
		{level: "debug", development: true},
		{level: "info"},
		{level: "warn"},
		{level: "error", development: true},
		{level: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := NewLogger(tt.level, tt.development)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.level, l.GetLevel())
			require.Empty(t, l.GetComponent())
		})
	}
}

func TestLogger_SetLevel(t *testing.T) {
	l, err := NewLogger("info", false)
	require.NoError(t, err)

	child := l.WithComponent("watcher")

	require.NoError(t, l.SetLevel("error"))
	require.Equal(t, "error", l.GetLevel())
	require.Equal(t, "error", child.GetLevel(), "child follows parent level")

	require.Error(t, l.SetLevel("loud"))
	require.Equal(t, "error", l.GetLevel())
}

func TestLogger_WithComponent(t *testing.T) {
	l := NewComponentLogger("reorg-detector", "debug", false)

	require.Equal(t, "reorg-detector", l.GetComponent())
	require.Equal(t, "debug", l.GetLevel())
	require.True(t, l.Desugar().Core().Enabled(-1))
}

func TestNewComponentLogger_InvalidLevelPanics(t *testing.T) {
	require.Panics(t, func() {
		NewComponentLogger("watcher", "loud", false)
	})
}

func TestNewComponentLoggerFromConfig(t *testing.T) {
	cfg := &testLoggingConfig{
		defaultLevel: "warn",
		levels:       map[string]string{"reorg-detector": "debug"},
	}

	tests := []struct {
		name      string
		cfg       LoggingConfig
		component string
		wantLevel string
	}{
		{name: "component level", cfg: cfg, component: "reorg-detector", wantLevel: "debug"},
		{name: "default level", cfg: cfg, component: "watcher", wantLevel: "warn"},
		{name: "empty config", cfg: &testLoggingConfig{}, component: "api", wantLevel: "info"},
		{name: "nil config", cfg: nil, component: "cli", wantLevel: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewComponentLoggerFromConfig(tt.component, tt.cfg)
			require.Equal(t, tt.wantLevel, l.GetLevel())
			require.Equal(t, tt.component, l.GetComponent())
		})
	}
}

func TestNewNopLogger(t *testing.T) {
	l := NewNopLogger()

	require.NotPanics(t, func() {
		l.Infow("discarded", "height", 100)
		l.Errorf("discarded %d", 100)
	})
	require.Equal(t, "info", l.GetLevel())
}

func TestSetDefaultLogger(t *testing.T) {
	previous := GetDefaultLogger()
	t.Cleanup(func() { SetDefaultLogger(previous) })

	l := NewNopLogger()
	SetDefaultLogger(l)
	require.Same(t, l, GetDefaultLogger())
}
