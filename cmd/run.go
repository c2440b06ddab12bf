package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jngu/ngubot/internal/adapters/discord"
	"github.com/jngu/ngubot/internal/adapters/heartbeat"
	"github.com/jngu/ngubot/internal/application"
)

func newRunCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Connect to Discord and serve until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gateway, err := discord.NewGateway(app.cfg.DiscordToken, app.cfg.Aliases, app.log)
			if err != nil {
				return err
			}

			responder := application.NewResponder(
				app.history,
				app.actions,
				app.channels,
				app.completer,
				gateway,
				app.clock,
				app.cfg.ReplyLimit,
				app.log,
			)

			bot := discord.NewBot(gateway, discord.Deps{
				Responder: responder,
				History:   app.history,
				Actions:   app.actions,
				Channels:  app.channels,
				Clock:     app.clock,
				Log:       app.log,
			})

			if err := bot.Open(); err != nil {
				return err
			}
			defer func() {
				if err := bot.Close(); err != nil {
					app.log.Warn().Err(err).Msg("session close failed")
				}
			}()

			health := heartbeat.NewServer(app.cfg.HealthAddr, app.log)
			healthErr := make(chan error, 1)
			go func() {
				healthErr <- health.Run(ctx)
			}()

			if app.cfg.SelfPingURL != "" {
				pinger := heartbeat.NewPinger(app.cfg.SelfPingURL, app.cfg.SelfPingInterval, app.log)
				go pinger.Run(ctx)
			}

			app.log.Info().Str("model", app.cfg.Model).Msg("ngubot is running, press ctrl+c to exit")

			select {
			case <-ctx.Done():
				return nil
			case err := <-healthErr:
				if err != nil {
					return fmt.Errorf("health endpoint: %w", err)
				}
				return nil
			}
		},
	}
}
