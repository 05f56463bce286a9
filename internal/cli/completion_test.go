package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetRootCmd creates a fresh root command for testing.
func resetRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pimon",
		Short: "Kiosk dashboard for a node_exporter endpoint",
	}
}

func TestCompletionBashGeneration(t *testing.T) {
	cmd := resetRootCmd()

	var buf bytes.Buffer
	err := cmd.GenBashCompletion(&buf)

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "# bash completion for pimon")
	assert.Contains(t, output, "__pimon_debug")
	assert.Contains(t, output, "complete -o default -F __start_pimon pimon")
}

func TestCompletionZshGeneration(t *testing.T) {
	cmd := resetRootCmd()

	var buf bytes.Buffer
	err := cmd.GenZshCompletion(&buf)

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "#compdef pimon")
	assert.Contains(t, output, "_pimon()")
}

func TestCompletionFishGeneration(t *testing.T) {
	cmd := resetRootCmd()

	var buf bytes.Buffer
	err := cmd.GenFishCompletion(&buf, true)

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "fish completion for pimon")
	assert.Contains(t, output, "complete -c pimon")
}

func TestCompletionPowershellGeneration(t *testing.T) {
	cmd := resetRootCmd()

	var buf bytes.Buffer
	err := cmd.GenPowerShellCompletion(&buf)

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, strings.ToLower(output), "powershell completion")
	assert.Contains(t, output, "Register-ArgumentCompleter")
}

func TestCompletionIncludesBuiltinCommands(t *testing.T) {
	// Cobra completes subcommands dynamically through __completeNoDesc;
	// commands with local flags still get their own static functions.
	var buf bytes.Buffer
	err := rootCmd.GenBashCompletion(&buf)

	require.NoError(t, err)
	output := buf.String()

	assert.Contains(t, output, "__completeNoDesc", "should use dynamic completion")
	assert.Contains(t, output, "__start_pimon", "should have start function")
	assert.Contains(t, output, "_pimon_root_command", "should have root command function")
	assert.Contains(t, output, "_pimon_monitor()")
	assert.Contains(t, output, "_pimon_watch()")
	assert.Contains(t, output, "_pimon_init()")
	assert.Contains(t, output, "_pimon_completion()")
}

func TestCompletionCommandValidArgs(t *testing.T) {
	assert.Contains(t, completionCmd.ValidArgs, "bash")
	assert.Contains(t, completionCmd.ValidArgs, "zsh")
	assert.Contains(t, completionCmd.ValidArgs, "fish")
	assert.Contains(t, completionCmd.ValidArgs, "powershell")
	assert.Len(t, completionCmd.ValidArgs, 4)
}

func TestCompletionCommandWritesToCommandOutput(t *testing.T) {
	var buf bytes.Buffer
	completionCmd.SetOut(&buf)
	defer completionCmd.SetOut(nil)

	err := completionCmd.RunE(completionCmd, []string{"zsh"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "#compdef pimon")
}

func TestConfigSetCompletesKeys(t *testing.T) {
	keys, directive := configSetCmd.ValidArgsFunction(configSetCmd, nil, "")
	assert.Contains(t, keys, "url")
	assert.Contains(t, keys, "interval")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	keys, _ = configSetCmd.ValidArgsFunction(configSetCmd, []string{"url"}, "")
	assert.Empty(t, keys)
}
