package commands

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/smart-schedule/pkg/api"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the schedule HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = app.Cfg.HTTPAddr
			}

			gin.SetMode(gin.ReleaseMode)
			app.Logger.Debug("serve command", zap.String("addr", addr))

			server := api.NewServer(app.Cfg, app.DB, app.Logger)
			return server.ListenAndServe(app.Ctx, addr)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default: httpAddr from config)")

	return cmd
}
