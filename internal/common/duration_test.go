package common

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type intervalConfig struct {
	Interval Duration `json:"interval" yaml:"interval" toml:"interval"`
}

func TestDuration_UnmarshalText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "30s", want: 30 * time.Second},
		{input: "300ms", want: 300 * time.Millisecond},
		{input: "1h30m", want: 90 * time.Minute},
		{input: "0s", want: 0},
		{input: "", wantErr: true},
		{input: "30", wantErr: true},
		{input: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_ConfigFormats(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var cfg intervalConfig
		require.NoError(t, json.Unmarshal([]byte(`{"interval":"12s"}`), &cfg))
		require.Equal(t, 12*time.Second, cfg.Interval.Duration)

		require.Error(t, json.Unmarshal([]byte(`{"interval":"twelve"}`), &cfg))
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		var cfg intervalConfig
		require.NoError(t, yaml.Unmarshal([]byte("interval: 2m\n"), &cfg))
		require.Equal(t, 2*time.Minute, cfg.Interval.Duration)
	})

	t.Run("toml", func(t *testing.T) {
		t.Parallel()

		var cfg intervalConfig
		_, err := toml.Decode(`interval = "45s"`, &cfg)
		require.NoError(t, err)
		require.Equal(t, 45*time.Second, cfg.Interval.Duration)
	})
}

func TestDuration_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(intervalConfig{Interval: NewDuration(90 * time.Second)})
	require.NoError(t, err)
	require.JSONEq(t, `{"interval":"1m30s"}`, string(data))

	var decoded intervalConfig
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, 90*time.Second, decoded.Interval.Duration)
}

func TestDuration_JSONSchema(t *testing.T) {
	t.Parallel()

	schema := Duration{}.JSONSchema()
	require.Equal(t, "string", schema.Type)
	require.Equal(t, "Duration", schema.Title)
	require.NotEmpty(t, schema.Examples)
}
