package commands

import (
	"github.com/spf13/cobra"

	"github.com/asoraledecnal/vantage/internal/app"
	"github.com/asoraledecnal/vantage/internal/infrastructure/httpapi"
)

// NewServeCommand creates the serve command
func NewServeCommand(container *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the assistant HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			listen := addr
			if listen == "" {
				listen = container.Config.Server.ListenAddr
			}
			server := &httpapi.Server{
				Assistant:   container.Assistant,
				Guidance:    container.Guidance,
				History:     container.History,
				Doctor:      container.Doctor,
				Logger:      container.Logger,
				RecentLimit: container.Config.RecentHistoryLimit(),
			}
			return server.Run(cmd.Context(), listen)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}
