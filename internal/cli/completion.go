package cli

import (
	"strings"

	"github.com/spf13/cobra"

	webio "github.com/matzehuels/spiderweb/pkg/io"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for spiderweb.

To load completions:

Bash:
  $ source <(spiderweb completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ spiderweb completion bash > /etc/bash_completion.d/spiderweb
  # macOS:
  $ spiderweb completion bash > $(brew --prefix)/etc/bash_completion.d/spiderweb

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ spiderweb completion zsh > "${fpath[1]}/_spiderweb"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ spiderweb completion fish | source

  # To load completions for each session, execute once:
  $ spiderweb completion fish > ~/.config/fish/completions/spiderweb.fish

PowerShell:
  PS> spiderweb completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> spiderweb completion powershell > spiderweb.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}

// completeNodes completes FILE as a path and every later argument as a node
// name read from FILE.
func completeNodes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	w, err := webio.Import(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []string
	for _, id := range w.Nodes() {
		if name := w.Name(id); strings.HasPrefix(name, toComplete) {
			out = append(out, name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
