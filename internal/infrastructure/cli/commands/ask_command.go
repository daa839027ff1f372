package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/asoraledecnal/vantage/internal/app"
	"github.com/asoraledecnal/vantage/internal/domain"
)

// NewAskCommand creates the ask command
func NewAskCommand(container *app.Container) *cobra.Command {
	var (
		tool    string
		session string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a diagnostics question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			req := domain.AssistantRequest{
				Context:   ctx,
				Question:  strings.Join(args, " "),
				ToolHint:  tool,
				SessionID: session,
			}
			if session != "" {
				if rec, found, err := container.History.Latest(session); err == nil && found {
					req.Recent = &domain.RecentActivity{
						Tool:      rec.Tool,
						Summary:   rec.Question,
						Timestamp: rec.CreatedAt,
					}
				}
			}

			answer := container.Assistant.Answer(req)
			renderAnswer(cmd.OutOrStdout(), answer)

			if session != "" {
				record := domain.ConversationRecord{
					SessionID:  session,
					Question:   req.Question,
					Tool:       answer.Tool,
					AnswerText: answer.Text,
					Provider:   answer.Provider,
					Confidence: answer.Confidence,
				}
				if err := container.History.Save(record); err != nil {
					container.Logger.Warn("history save failed", map[string]interface{}{
						"error": err.Error(),
					})
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tool, "tool", "t", "", "Hint which diagnostic tool the question is about")
	cmd.Flags().StringVarP(&session, "session", "s", "", "Session identifier for conversation history")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "Override request timeout")

	return cmd
}

// renderAnswer prints an answer in a readable terminal form
func renderAnswer(out io.Writer, answer domain.Answer) {
	fmt.Fprintln(out, answer.Text)
	if answer.Tool != "" {
		fmt.Fprintf(out, "\nTool: %s\n", answer.Tool)
	}
	if answer.Example != "" {
		fmt.Fprintf(out, "Example: %s\n", answer.Example)
	}
	for _, tip := range answer.Tips {
		fmt.Fprintf(out, "  - %s\n", tip)
	}
	fmt.Fprintf(out, "\nConfidence: %s", answer.Confidence)
	if answer.Provider != "" {
		fmt.Fprintf(out, " (via %s)", answer.Provider)
	}
	fmt.Fprintln(out)
}
