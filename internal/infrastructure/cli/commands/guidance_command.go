package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asoraledecnal/vantage/internal/app"
	"github.com/asoraledecnal/vantage/internal/domain"
)

// NewGuidanceCommand creates the guidance command with subcommands
func NewGuidanceCommand(container *app.Container) *cobra.Command {
	guidanceCmd := &cobra.Command{
		Use:   "guidance",
		Short: "Inspect the diagnostic tool catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listGuidance(cmd.OutOrStdout(), container)
		},
	}

	guidanceCmd.AddCommand(
		newGuidanceListCommand(container),
		newGuidanceShowCommand(container),
	)
	return guidanceCmd
}

func newGuidanceListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List supported tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listGuidance(cmd.OutOrStdout(), container)
		},
	}
}

func newGuidanceShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <tool>",
		Short: "Show guidance details for one tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guidance, found := container.Guidance.Lookup(args[0])
			if !found {
				return fmt.Errorf("unknown tool %q (supported: %s)",
					args[0], strings.Join(container.Guidance.SupportedTools(), ", "))
			}
			showGuidance(cmd.OutOrStdout(), guidance)
			return nil
		},
	}
}

func listGuidance(out io.Writer, container *app.Container) error {
	for _, g := range container.Guidance.All() {
		fmt.Fprintf(out, "%-16s %s\n", g.Key, g.Title)
	}
	return nil
}

func showGuidance(out io.Writer, g domain.ToolGuidance) {
	fmt.Fprintf(out, "%s (%s)\n", g.Title, g.Key)
	fmt.Fprintln(out, g.Description)
	for _, use := range g.Usage {
		fmt.Fprintf(out, "  - %s\n", use)
	}
	if g.Example != "" {
		fmt.Fprintf(out, "Example: %s\n", g.Example)
	}
}
