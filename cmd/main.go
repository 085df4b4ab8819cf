package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mstgnz/goepay/infra/config"
	"github.com/mstgnz/goepay/infra/logger"
	"github.com/mstgnz/goepay/infra/opensearch"
)

var (
	envFile string
	// store is set when ENABLE_OPENSEARCH_LOGGING is on.
	store *opensearch.Logger
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.GetGlobalLogger().Wait()
		os.Exit(1)
	}
	logger.GetGlobalLogger().Wait()
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "goepay",
		Short: "GoEpay - ePay.bg payment request and notification tool",
		Long: `GoEpay builds signed ePay.bg payment requests, renders the payment form,
registers easypay payments and verifies gateway notifications.

Merchant settings are read from EPAY_* environment variables or a .env file.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to the .env file")

	rootCmd.AddCommand(
		newParamsCommand(),
		newFormCommand(),
		newIDNCommand(),
		newParseCommand(),
		newHistoryCommand(),
	)

	return rootCmd
}

// setup loads the .env file and the global logger. Logs go to stderr so
// command output stays machine readable.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	config.ResetAppConfig()

	appConfig := config.GetAppConfig()
	store = nil
	var sink logger.Sink
	if appConfig.EnableLogging {
		client, err := opensearch.NewClient(appConfig)
		if err != nil {
			return err
		}
		store = opensearch.NewLogger(client)
		sink = store
	}

	logger.InitGlobalLogger(sink, cmd.ErrOrStderr())
	return nil
}
