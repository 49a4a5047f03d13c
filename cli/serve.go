package cli

import (
	"github.com/spf13/cobra"
	"github.com/theMomax/openmeteogram/config"
	"github.com/theMomax/openmeteogram/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the meteograms and their verification",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.WithField("address", server.Address()).Info("starting server")
		return server.Run()
	},
}

func init() {
	config.RootCtx.AddCommand(serveCmd)
}
