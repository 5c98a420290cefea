package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"os-help-bot/internal/bootstrap"
	"os-help-bot/internal/config"
	"os-help-bot/internal/pkg/logger"
	"os-help-bot/pkg/rag/executor"
	"os-help-bot/pkg/rag/response"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <message>...",
	Short: "Send one or more messages in order and print each reply",
	Long: `Send each argument as a separate turn of the same conversation.

A new conversation starts in onboarding, so a full question usually looks like:
  chatcli ask "windows 10" "technical" "short" "my screen is blue"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pipeline, err := newPipeline()
		if err != nil {
			return err
		}
		for _, message := range args {
			printUser(message)
			if err := turn(cmd.Context(), pipeline, message); err != nil {
				return err
			}
		}
		return nil
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Chat interactively; type /start to restart, Ctrl-D to quit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pipeline, err := newPipeline()
		if err != nil {
			return err
		}

		color.Cyan("%s", response.WelcomePrompt)
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print(color.YellowString("> "))
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			message := scanner.Text()
			if strings.TrimSpace(message) == "" {
				continue
			}
			if err := turn(cmd.Context(), pipeline, message); err != nil {
				color.Red("Failed: %v", err)
			}
		}
	},
}

func newPipeline() (*executor.Orchestrator, error) {
	cfg := config.Load()
	// keep the terminal for the conversation
	log := logger.NewIsolatedLogger(logFile)
	pipeline, _, err := bootstrap.NewPipeline(cfg, bootstrap.ConnectRedis(cfg.App.RedisURL), log)
	return pipeline, err
}

func turn(ctx context.Context, pipeline *executor.Orchestrator, message string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	reply, err := pipeline.HandleIncoming(ctx, userID, message)
	if err != nil {
		return err
	}
	color.Green("%s", reply.Text)
	color.New(color.Faint).Printf("  [%s · %s]\n", reply.Path, reply.State)
	return nil
}

func printUser(message string) {
	color.Yellow("> %s", message)
}
