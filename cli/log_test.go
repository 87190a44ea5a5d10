package cli

import (
	"os"
	"testing"

	"github.com/ardnew/ilc/log"
)

func TestLogConfig_Scan(t *testing.T) {
	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	tests := []struct {
		name   string
		args   []string
		level  logLevel
		format logFormat
		caller bool
		pretty bool
	}{
		{
			name:   "no log flags",
			args:   []string{"compile", "main.yaml"},
			pretty: true,
		},
		{
			name:   "assigned values",
			args:   []string{"--log-level=debug", "--log-format=json"},
			level:  "debug",
			format: "json",
			pretty: true,
		},
		{
			name:   "separate values after command",
			args:   []string{"fmt", "--log-level", "trace", "main.yaml"},
			level:  "trace",
			pretty: true,
		},
		{
			name:   "booleans",
			args:   []string{"--log-caller", "--no-log-pretty"},
			caller: true,
		},
		{
			name:   "explicit booleans",
			args:   []string{"--log-caller=false", "--no-log-pretty=false"},
			pretty: true,
		},
		{
			name:   "missing value is not consumed",
			args:   []string{"--log-level", "--log-caller"},
			caller: true,
			pretty: true,
		},
		{
			name:   "invalid boolean ignored",
			args:   []string{"--log-caller=maybe"},
			pretty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f.Level != tt.level || f.Format != tt.format ||
				f.Caller != tt.caller || f.Pretty != tt.pretty {
				t.Errorf("scan(%q) = %+v", tt.args, f)
			}
		})
	}
}

func TestLogConfig_ScanAppliesLevel(t *testing.T) {
	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	var f logConfig

	f.scan([]string{"--log-level=warn"})

	if got := log.Default().Level(); got != log.LevelWarn {
		t.Errorf("default logger level = %v, want warn", got)
	}
}

func TestLogConfig_Vars(t *testing.T) {
	vars := (&logConfig{}).vars()

	if vars["logLevelEnum"] != "trace,debug,info,warn,error" {
		t.Errorf("logLevelEnum = %q", vars["logLevelEnum"])
	}

	if vars["logFormatEnum"] != "text,json" {
		t.Errorf("logFormatEnum = %q", vars["logFormatEnum"])
	}
}
