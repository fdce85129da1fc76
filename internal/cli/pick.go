package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// pickCommand creates the pick command.
func (c *CLI) pickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick FILE",
		Short: "Choose two nodes interactively and route between them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.loadWeb(args[0])
			if err != nil {
				return err
			}

			entries := make([]NodeEntry, 0, w.NodeCount())
			for _, id := range w.Nodes() {
				next, err := w.Neighbors(id)
				if err != nil {
					return err
				}
				entries = append(entries, NodeEntry{Name: w.Name(id), Links: len(next)})
			}

			p := tea.NewProgram(NewNodePickerModel(entries),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.ErrOrStderr()),
			)
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("picker: %w", err)
			}
			m := final.(NodePickerModel)
			if !m.Done() {
				printInfo(cmd.OutOrStdout(), "Nothing selected")
				return nil
			}
			return routeOnce(cmd.Context(), cmd.OutOrStdout(), w, m.Source, m.Dest)
		},
	}
}
