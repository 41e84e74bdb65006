package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"automerger/internal/config"
	"automerger/internal/notifier"
	"automerger/tasks"
)

// Exit codes are deliberately distinguished so callers can tell a
// failed check/merge pass from a failed notification.
const (
	exitSuccess            = 0
	exitNotificationFailed = 1
	exitPassFailed         = 2
)

// cfgFile holds the path to the configuration file specified via
// command-line flag. If empty, the application looks for config.yaml in
// the current directory.
var cfgFile string

// appConfig stores the parsed configuration from the YAML file, before
// command-line flags are applied on top.
var appConfig config.Config

var (
	debug           bool
	printResults    bool
	requiredLabels  []string
	blockingLabels  []string
	emailRecipients []string
	approvals       int
)

// rootCmd represents the base command when called without any
// subcommands.
var rootCmd = &cobra.Command{
	Use:   "automerger",
	Short: "Check and auto-merge GitHub pull requests by label and approval criteria",
	Long: `Automerger inspects the open pull requests of the configured repositories:
  - PRs carrying a blocking label are reported as blocked
  - PRs carrying all required labels with enough approvals are eligible
  - "check" reports the results, "merge" also merges the eligible PRs
  - The summary can be printed and sent by email`,
}

// Execute is the main entry point for the CLI application. It is called
// by main() and should only be invoked once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitPassFailed)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&printResults, "print-results", false, "print blocked/approved summaries to standard output")
	rootCmd.PersistentFlags().StringSliceVar(&requiredLabels, "github-labels", nil, "labels that must all be present for a pull request to be eligible")
	rootCmd.PersistentFlags().StringSliceVar(&blockingLabels, "blocking-labels", nil, "labels whose presence excludes a pull request regardless of approvals")
	rootCmd.PersistentFlags().StringSliceVar(&emailRecipients, "send-email", nil, "recipient addresses for the summary email")
	rootCmd.PersistentFlags().IntVar(&approvals, "approvals", 2, "minimum approval count required")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(mergeCmd)
}

// initConfig reads the configuration file and unmarshals it into the
// appConfig struct. If no config file is specified it looks for
// config.yaml in the current directory. Environment variables matching
// config keys override file values.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
	}

	if err := viper.Unmarshal(&appConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to decode config into struct: %v\n", err)
	}
}

// newLogger builds the one logger for the run, at DEBUG or INFO level
// per the --debug flag. It is passed explicitly to everything that
// logs.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// applyFlags overrides config file values with any flags that were set
// on the command line.
func applyFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("github-labels") {
		appConfig.GitHub.RequiredLabels = requiredLabels
	}
	if cmd.Flags().Changed("blocking-labels") {
		appConfig.GitHub.BlockingLabels = blockingLabels
	}
	if cmd.Flags().Changed("approvals") {
		appConfig.GitHub.Approvals = approvals
	}
}

// runPass performs one check (and optionally merge) pass and returns
// the process exit code.
func runPass(cmd *cobra.Command, merge bool) int {
	logger := newLogger()
	applyFlags(cmd)

	if err := appConfig.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return exitPassFailed
	}

	ctx := context.Background()

	task := tasks.NewAutoMergeTask(ctx, appConfig.GitHub, merge, logger)
	summary, err := task.Run(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("check/merge pass failed")
		return exitPassFailed
	}

	if printResults {
		if report := summary.BlockedReport(); report != "" {
			fmt.Print(report)
		}
		if report := summary.EligibleReport(); report != "" {
			fmt.Print(report)
		}
	}

	if err := notify(ctx, summary.HTMLReport(), logger); err != nil {
		logger.Error().Err(err).Msg("failed to send summary notification")
		return exitNotificationFailed
	}

	return exitSuccess
}

// notify sends the rendered summary through the configured transport:
// the Apprise webhook when one is configured, direct SMTP otherwise.
// An empty summary is not sent.
func notify(ctx context.Context, body string, logger zerolog.Logger) error {
	if body == "" {
		logger.Debug().Msg("nothing to report, skipping notification")
		return nil
	}

	var notif notifier.Notifier
	if appConfig.Notifier.AppriseAPIURL != "" {
		notif = notifier.NewWebhookNotifier(appConfig.Notifier.AppriseAPIURL, appConfig.Notifier.GetServiceURLs(), logger)
	} else {
		smtp := appConfig.SMTP
		notif = notifier.NewEmailNotifier(smtp.Host, smtp.GetPort(), smtp.Username, smtp.Password,
			smtp.From, emailRecipients, logger)
	}

	subject := fmt.Sprintf("Pull request statuses for organization https://github.com/%s", appConfig.GitHub.Namespace)
	return notif.SendNotification(ctx, subject, body)
}
