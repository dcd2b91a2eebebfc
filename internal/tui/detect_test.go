package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectOutputMode(t *testing.T) {
	env := func(vars map[string]string) func(string) (string, bool) {
		return func(k string) (string, bool) {
			v, ok := vars[k]
			return v, ok
		}
	}
	none := env(nil)

	tests := []struct {
		name      string
		plain     bool
		noColor   bool
		noInter   bool
		stdoutTTY bool
		stdinTTY  bool
		lookup    func(string) (string, bool)
		want      OutputMode
	}{
		{name: "pipe", stdoutTTY: false, stdinTTY: true, lookup: none, want: OutputModePlain},
		{name: "plain flag", plain: true, stdoutTTY: true, stdinTTY: true, lookup: none, want: OutputModePlain},
		{name: "no color flag", noColor: true, stdoutTTY: true, stdinTTY: true, lookup: none, want: OutputModePlain},
		{name: "NO_COLOR", stdoutTTY: true, stdinTTY: true, lookup: env(map[string]string{"NO_COLOR": ""}), want: OutputModePlain},
		{name: "CI", stdoutTTY: true, stdinTTY: true, lookup: env(map[string]string{"CI": "true"}), want: OutputModePlain},
		{name: "CI false", stdoutTTY: true, stdinTTY: true, lookup: env(map[string]string{"CI": "false"}), want: OutputModeInteractive},
		{name: "stdin redirected", stdoutTTY: true, stdinTTY: false, lookup: none, want: OutputModeStyled},
		{name: "no interactive", noInter: true, stdoutTTY: true, stdinTTY: true, lookup: none, want: OutputModeStyled},
		{name: "terminal", stdoutTTY: true, stdinTTY: true, lookup: none, want: OutputModeInteractive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectOutputMode(tt.plain, tt.noColor, tt.noInter, tt.stdoutTTY, tt.stdinTTY, tt.lookup)
			assert.Equal(t, tt.want, got)
		})
	}
}
