package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// completionGenerators maps each supported shell to its cobra generator
var completionGenerators = map[string]func(w io.Writer) error{
	"bash":       func(w io.Writer) error { return rootCmd.GenBashCompletionV2(w, true) },
	"zsh":        rootCmd.GenZshCompletion,
	"fish":       func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
	"powershell": rootCmd.GenPowerShellCompletionWithDesc,
}

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a shell completion script for jot.

Completion covers commands, flags and the tags already used in the journal
(for --tag).

Bash:
  source <(jot completion bash)
  jot completion bash > ~/.local/share/bash-completion/completions/jot

Zsh:
  jot completion zsh > "${fpath[1]}/_jot"

Fish:
  jot completion fish > ~/.config/fish/completions/jot.fish

PowerShell:
  jot completion powershell | Out-String | Invoke-Expression`,
	ValidArgs: supportedShells(),
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// supportedShells returns the shells completion can be generated for
func supportedShells() []string {
	shells := make([]string, 0, len(completionGenerators))
	for shell := range completionGenerators {
		shells = append(shells, shell)
	}
	slices.Sort(shells)
	return shells
}

// generateCompletion writes the completion script for shell to stdout
func generateCompletion(shell string) {
	generate, ok := completionGenerators[shell]
	if !ok {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintf(deps.Stderr, "Supported shells: %s\n", strings.Join(supportedShells(), ", "))
		deps.Exit(1)
		return
	}

	if err := generate(deps.Stdout); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to generate %s completion: %v\n", shell, err)
		deps.Exit(1)
	}
}
