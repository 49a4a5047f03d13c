package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/theMomax/openmeteogram/config"
)

func init() {
	config.OnInitialize(func() {
		log = config.NewLogger()
	})
}

var log = logrus.New()

// Execute executes the root command.
func Execute() error {
	err := config.RootCtx.Execute()
	if err != nil {
		log.WithError(err).Error("command failed")
	}
	return err
}

// interruptible returns a context that is cancelled on SIGINT or SIGTERM.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
