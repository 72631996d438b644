package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for amas.

To load completions:

Bash:
  $ source <(amas completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ amas completion bash > /etc/bash_completion.d/amas
  # macOS:
  $ amas completion bash > $(brew --prefix)/etc/bash_completion.d/amas

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ amas completion zsh > "${fpath[1]}/_amas"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ amas completion fish | source

  # To load completions for each session, execute once:
  $ amas completion fish > ~/.config/fish/completions/amas.fish

PowerShell:
  PS> amas completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> amas completion powershell > amas.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return genCompletion(cmd.Root(), args[0], stdout)
		},
	}

	return cmd
}

func genCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	}
	return nil
}
