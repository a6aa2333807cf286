package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/loykin/audiofetch/internal/common"
	"github.com/loykin/audiofetch/internal/config"
	"github.com/loykin/audiofetch/internal/credential"
	"github.com/loykin/audiofetch/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "audiofetch",
	Short: "MCP tool-server that downloads audio files with per-host authentication",
	RunE:  run,
}

func init() {
	v := viper.GetViper()
	v.SetDefault("config", "")

	rootCmd.PersistentFlags().String("config", v.GetString("config"), "path to a config yaml")
	rootCmd.Flags().String("host", "", "host to bind the server to (overrides environment)")
	rootCmd.Flags().Int("port", 0, "port to run the server on (overrides environment)")

	_ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return err
	}

	// Command-line overrides apply after environment load, before binding.
	if cmd.Flags().Changed("host") {
		cfg.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}

	level := common.ParseLogLevel(cfg.LogLevel)
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, ferr := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if ferr != nil {
			return fmt.Errorf("open log file: %w", ferr)
		}
		defer func() { _ = f.Close() }()
		out = io.MultiWriter(os.Stdout, f)
	}
	common.SetDefaultLogger(common.NewLoggerTo(out, level))

	router := credential.Build(config.EnvPairs(), cfg.AccountSID, cfg.AuthToken)

	fmt.Printf("Starting %s on http://%s\n", config.ServerName, cfg.Addr())
	fmt.Printf("MCP endpoint available at: http://%s/mcp\n", cfg.Addr())
	if cfg.TwilioConfigured() {
		fmt.Println("Twilio authentication configured")
	} else {
		fmt.Println("Twilio authentication not configured - set TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN")
	}
	if domains := router.Domains(); len(domains) > 0 {
		fmt.Printf("Additional authentication configured for: %s\n", strings.Join(domains, ", "))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, router).Start(ctx)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		common.GetLogger().Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
