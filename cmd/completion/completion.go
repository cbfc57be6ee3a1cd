// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCommand returns the completion command.
func NewCommand(rootCmd *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for finrep.

Install instructions:
  Bash:       finrep completion bash > /etc/bash_completion.d/finrep
              echo 'source <(finrep completion bash)' >> ~/.bashrc
  Zsh:        finrep completion zsh > ~/.zsh/completions/_finrep
  Fish:       finrep completion fish > ~/.config/fish/completions/finrep.fish
  PowerShell: finrep completion powershell >> $PROFILE`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				fmt.Fprintln(os.Stdout, "# finrep bash completion")
				fmt.Fprintln(os.Stdout, "# Install: finrep completion bash > /etc/bash_completion.d/finrep")
				fmt.Fprintln(os.Stdout, "# Or:      echo 'source <(finrep completion bash)' >> ~/.bashrc")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				fmt.Fprintln(os.Stdout, "# finrep zsh completion")
				fmt.Fprintln(os.Stdout, "# Install: finrep completion zsh > ~/.zsh/completions/_finrep")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				fmt.Fprintln(os.Stdout, "# finrep fish completion")
				fmt.Fprintln(os.Stdout, "# Install: finrep completion fish > ~/.config/fish/completions/finrep.fish")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				fmt.Fprintln(os.Stdout, "# finrep PowerShell completion")
				fmt.Fprintln(os.Stdout, "# Install: finrep completion powershell >> $PROFILE")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", args[0])
			}
		},
	}
	return cmd
}
