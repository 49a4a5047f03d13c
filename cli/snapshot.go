package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/theMomax/openmeteogram/config"
	"github.com/theMomax/openmeteogram/publish"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Commit the forecast repository and push it",
	Long: `snapshot commits every change of the forecast repository's working tree and
pushes the branch. Unless overwriting is enabled, the push fails if the remote
branch moved since it was fetched. The access token is read from ` + publish.TokenEnv + `.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := interruptible()
		defer cancel()
		return snapshot(ctx, cmd.OutOrStdout())
	},
}

func init() {
	config.RootCtx.AddCommand(snapshotCmd)
}

func snapshot(ctx context.Context, w io.Writer) error {
	p, err := publish.New(publish.Configured())
	if errors.Is(err, publish.ErrMissingToken) {
		log.WithField("env", publish.TokenEnv).Fatal("Missing access token!")
	}
	if err != nil {
		return err
	}

	if _, err := p.Run(ctx); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, "Push succeeded.")
	return err
}
