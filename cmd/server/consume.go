package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/queue"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Append booking hand-offs from RabbitMQ to the booking log",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, closeLog, err := setup()
		if err != nil {
			return err
		}
		defer closeLog()
		if cfg.AMQPURL == "" {
			return errors.New("RABBITMQ_URL is required")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info("booking consumer started", "queue", queue.BookingQueue, "dir", cfg.BookingLogDir)
		err = queue.NewConsumer(cfg.AMQPURL, cfg.BookingLogDir, log).Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}
