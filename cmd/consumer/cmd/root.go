package cmd

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"bitbucket.org/Amartha/go-fp-ledger/cmd/setup"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/graceful"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/deliveries/consumer"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "consumer",
	Short: "Consumer runs the kafka consumer groups reading ledger events",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runConsumerCmd, listCmd)

	runConsumerCmd.Flags().StringP(runConsumerCmdName, "n", "", "consumer name")
	_ = runConsumerCmd.MarkFlagRequired(runConsumerCmdName)
}

var (
	runConsumerCmd = &cobra.Command{
		Use:     "run",
		Short:   "Run consumer",
		Long:    "Run one consumer group, available consumers: " + strings.Join(consumer.Names(), ", "),
		Example: "consumer run -n=notification",
		Run:     runConsumer,
	}
	runConsumerCmdName = "name"

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List available consumers",
		Run: func(ccmd *cobra.Command, _ []string) {
			for _, name := range consumer.Names() {
				ccmd.Println(name)
			}
		},
	}
)

func runConsumer(ccmd *cobra.Command, _ []string) {
	var (
		ctx, cancel = context.WithCancel(context.Background())
		starters    []graceful.ProcessStarter
		stoppers    []graceful.ProcessStopper
	)
	defer cancel()

	consumerName, _ := ccmd.Flags().GetString(runConsumerCmdName)

	s, stopperContract, err := setup.Init("consumer-" + consumerName)
	if err != nil {
		_ = graceful.StopProcess(5*time.Second, stopperContract...)
		xlog.Fatalf(ctx, "failed to setup app: %v", err)
	}
	xlog.Info(ctx, "initializing consumer", xlog.String("consumer", consumerName))

	consumerProcess, err := consumer.NewKafkaConsumer(ctx, consumerName, s.Config, s.PublisherClient.DLQ, s.Metrics)
	if err != nil {
		_ = graceful.StopProcess(s.Config.App.GracefulTimeout, stopperContract...)
		xlog.Fatalf(ctx, "failed to setup consumer: %v", err)
	}

	httpServer := consumer.NewHTTPServer(s.Config, s.Metrics, s.RepoSQL, s.RepoCache)

	starters = append(starters, consumerProcess.Start(), httpServer.Start())
	// StopProcess runs in reverse: health port, consumer group, then the contract
	stoppers = append(stoppers, stopperContract...)
	stoppers = append(stoppers, consumerProcess.Stop())
	stoppers = append(stoppers, func(context.Context) error {
		cancel()
		return nil
	})
	stoppers = append(stoppers, httpServer.Stop())

	graceful.StartProcessAtBackground(starters...)
	xlog.Info(ctx, "consumer started, waiting for shutdown signal", xlog.String("consumer", consumerName))

	graceful.StopProcessAtBackground(s.Config.App.GracefulTimeout, stoppers...)
	xlog.Info(ctx, "consumer stopped", xlog.String("consumer", consumerName))
}
