package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"os-help-bot/internal/config"
	"os-help-bot/internal/pkg/logger"
	"os-help-bot/pkg/events"
	pktNats "os-help-bot/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	natsURL     string
	durableName string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Tail resolved turns from the SUPPORT stream",
	Long: `Print every resolved turn published to NATS JetStream as it arrives.

Without --durable only new turns are shown. With --durable the consumer
remembers its position across runs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		url := natsURL
		if url == "" {
			url = config.Load().App.NatsURL
		}
		if url == "" {
			return fmt.Errorf("no NATS url: pass --nats or set NATS_URL")
		}

		sub, err := pktNats.NewSubscriber(url, logger.NewIsolatedLogger(logFile))
		if err != nil {
			return fmt.Errorf("connecting to NATS: %w", err)
		}
		defer sub.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := sub.Subscribe(ctx, events.TypeTurnResolved, durableName, func(ctx context.Context, event events.Event) error {
			printTurn(event)
			return nil
		}); err != nil {
			return err
		}

		color.Cyan("Watching %s on %s (Ctrl-C to stop)", pktNats.Subject(events.TypeTurnResolved), url)
		<-ctx.Done()
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&natsURL, "nats", "", "NATS url (defaults to NATS_URL)")
	watchCmd.Flags().StringVar(&durableName, "durable", "", "durable consumer name")
}

func printTurn(event events.Event) {
	p := event.Payload()
	fmt.Printf("%s %s %s\n",
		color.New(color.Faint).Sprint(event.Timestamp().Format("15:04:05")),
		color.CyanString("%v", p["user_id"]),
		color.New(color.Faint).Sprintf("[%v · %vms]", p["path"], p["duration_ms"]),
	)
	color.Yellow("  > %v", p["message"])
	color.Green("  %v", p["reply"])
}
