// Command chatcli talks to the answer pipeline from a terminal and tails
// resolved turns from NATS.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	userID  string
	logFile string
)

var rootCmd = &cobra.Command{
	Use:           "chatcli",
	Short:         "Terminal client for OS Help Bot",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "cli-user", "user id the turns are sent as")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "logs/chatcli.log", "pipeline log file")

	rootCmd.AddCommand(askCmd, replCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
