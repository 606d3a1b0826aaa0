package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type options struct {
	baseURL string
	token   string
	timeout time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "escrowledger-cli",
		Short:         "Escrow ledger CLI tool",
		Long:          `A command line interface for the escrow ledger API: reserve calculations, wallet and escrow inspection, operator tokens.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", envOr("ESCROWLEDGER_URL", "http://localhost:8080"), "Base URL of the escrow ledger API")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("ESCROWLEDGER_TOKEN"), "Bearer token for authenticated APIs")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		reserveCmd(),
		walletCmd(opts),
		escrowCmd(opts),
		tokenCmd(),
	)

	return rootCmd
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
