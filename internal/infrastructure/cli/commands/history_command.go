package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/asoraledecnal/vantage/internal/app"
)

const msgNoHistoryRecorded = "No history recorded yet."

// NewHistoryCommand creates the history command with subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect conversation history",
	}

	historyCmd.AddCommand(newHistoryListCommand(container))
	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var (
		session string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent conversation turns for a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if session == "" {
				return fmt.Errorf("--session is required")
			}
			if limit <= 0 {
				limit = container.Config.RecentHistoryLimit()
			}
			return listHistoryEntries(cmd.OutOrStdout(), container, session, limit)
		},
	}

	cmd.Flags().StringVarP(&session, "session", "s", "", "Session identifier")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max entries to show")
	return cmd
}

func listHistoryEntries(out io.Writer, container *app.Container, session string, limit int) error {
	records, err := container.History.Recent(session, limit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, msgNoHistoryRecorded)
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(out, "[%s] Q: %s\n", rec.CreatedAt.Format("2006-01-02 15:04"), rec.Question)
		fmt.Fprintf(out, "     A: %s (%s, %s)\n", rec.AnswerText, rec.Provider, rec.Confidence)
	}
	return nil
}
