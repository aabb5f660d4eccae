package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/skycast/internal/transport/cli"
	"github.com/sandevgo/skycast/pkg/log"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the weather assistant in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		d, err := initDeps(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := d.db.Close(); err != nil {
				log.FromCtx(ctx).Error().Err(err).Msg("failed to close database")
			}
		}()

		sess := d.newSession()

		refr := d.newRefresher(sess)
		if err := refr.Start(ctx); err != nil {
			return err
		}
		defer func() { _ = refr.Shutdown(ctx) }()

		rl, err := cli.NewReadLine(d.app, sess, d.weather, d.describer, d.history)
		if err != nil {
			return err
		}
		defer func() { _ = rl.Shutdown(ctx) }()

		return rl.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
