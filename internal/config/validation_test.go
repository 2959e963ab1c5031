package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Store:      StoreConfig{Dir: "/tmp/blessing"},
		AutoScroll: AutoScrollConfig{Interval: 10 * time.Second},
		Log:        LogConfig{Level: "info"},
		Remote:     RemoteConfig{Enabled: true, BusName: "org.dailyblessing.Viewer"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*Config)
		expectedError string
	}{
		{
			name:   "Valid",
			mutate: func(*Config) {},
		},
		{
			name:          "Interval Too Short",
			mutate:        func(c *Config) { c.AutoScroll.Interval = 200 * time.Millisecond },
			expectedError: "autoscroll.interval must be at least 1s",
		},
		{
			name:          "Missing Store Dir",
			mutate:        func(c *Config) { c.Store.Dir = "" },
			expectedError: "store.dir is required",
		},
		{
			name:          "Unknown Log Level",
			mutate:        func(c *Config) { c.Log.Level = "verbose" },
			expectedError: "log.level must be one of: debug info warn error",
		},
		{
			name:          "Log File Without Path",
			mutate:        func(c *Config) { c.Log.File = LogFileConfig{Enabled: true} },
			expectedError: "log.file.path is required when Enabled true",
		},
		{
			name:          "Log File Too Large",
			mutate:        func(c *Config) { c.Log.File.MaxSizeMB = 4096 },
			expectedError: "must be at most 1024",
		},
		{
			name:          "Remote Without Bus Name",
			mutate:        func(c *Config) { c.Remote.BusName = "" },
			expectedError: "remote.busname is required when Enabled true",
		},
		{
			name: "Remote Disabled Without Bus Name",
			mutate: func(c *Config) {
				c.Remote = RemoteConfig{}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectedError == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestFormatFieldPath(t *testing.T) {
	assert.Equal(t, "autoscroll.interval", formatFieldPath("Config.AutoScroll.Interval"))
	assert.Equal(t, "store", formatFieldPath("Store"))
}
