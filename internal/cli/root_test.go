package cli

import (
	"errors"
	"testing"

	"github.com/muesli/termenv"
	"github.com/rileyhilliard/pimon/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown command error",
			err:  errors.New(`unknown command "foo" for "pimon"`),
			want: true,
		},
		{
			name: "unknown flag error",
			err:  errors.New(`unknown flag: --foo`),
			want: true,
		},
		{
			name: "other error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(tt.err))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "standard cobra format",
			err:  errors.New(`unknown command "wacth" for "pimon"`),
			want: "wacth",
		},
		{
			name: "command with hyphen",
			err:  errors.New(`unknown command "show-config" for "pimon"`),
			want: "show-config",
		},
		{
			name: "no quotes returns empty",
			err:  errors.New("unknown command foo"),
			want: "",
		},
		{
			name: "single quote returns empty",
			err:  errors.New(`unknown command "foo`),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUnknownCommand(tt.err))
		})
	}
}

func TestRootSuggestsSimilarCommands(t *testing.T) {
	assert.Equal(t, 2, rootCmd.SuggestionsMinimumDistance)
	assert.Contains(t, rootCmd.SuggestionsFor("wacth"), "watch")
	assert.Contains(t, rootCmd.SuggestionsFor("monitr"), "monitor")
}

func TestColorProfile(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		noColor  bool
		noColEnv string
		want     termenv.Profile
		wantSet  bool
	}{
		{name: "auto keeps detected profile", mode: config.ColorAuto, wantSet: false},
		{name: "always forces true color", mode: config.ColorAlways, want: termenv.TrueColor, wantSet: true},
		{name: "never forces ascii", mode: config.ColorNever, want: termenv.Ascii, wantSet: true},
		{name: "flag beats always", mode: config.ColorAlways, noColor: true, want: termenv.Ascii, wantSet: true},
		{name: "NO_COLOR beats auto", mode: config.ColorAuto, noColEnv: "1", want: termenv.Ascii, wantSet: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColEnv)

			got, set := colorProfile(tt.mode, tt.noColor)
			assert.Equal(t, tt.wantSet, set)
			if tt.wantSet {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRootCommandFlags(t *testing.T) {
	for _, name := range []string{"config", "url", "interval", "debug", "no-color"} {
		flag := rootCmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, "--%s should be a persistent flag", name)
	}
	assert.Equal(t, "false", rootCmd.PersistentFlags().Lookup("debug").DefValue)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"monitor", "watch", "init", "config", "doctor", "completion", "version"} {
		assert.True(t, names[want], "%s should be registered", want)
	}

	var sub []string
	for _, cmd := range configCmd.Commands() {
		sub = append(sub, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"show", "set"}, sub)
}
