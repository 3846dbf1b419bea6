package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/routeway/routeway/pkg/config"
	"github.com/routeway/routeway/pkg/engine"
	"github.com/routeway/routeway/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	configPath string
	routesDir  string
	host       string
	port       int
	tlsCert    string
	tlsKey     string
	logLevel   string
	logFormat  string
}

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gateway",
	Example: `  # Start with a config file
  routeway serve --config gateway.yaml

  # Merge route files from a directory
  routeway serve --routes-dir ./routes

  # Serve HTTPS
  routeway serve --config gateway.yaml --tls-cert cert.pem --tls-key key.pem`,
	RunE: runServe,
}

func init() {
	f := &serveFlagVals

	serveCmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to the gateway config file (YAML or JSON)")
	serveCmd.Flags().StringVar(&f.routesDir, "routes-dir", "", "Directory of route files to merge (alternative to --config)")
	serveCmd.Flags().StringVar(&f.host, "host", "", "Bind address (overrides config)")
	serveCmd.Flags().IntVarP(&f.port, "port", "p", -1, "Listen port, 0 = OS-assigned (overrides config)")
	serveCmd.Flags().StringVar(&f.tlsCert, "tls-cert", "", "Path to the TLS certificate file")
	serveCmd.Flags().StringVar(&f.tlsKey, "tls-key", "", "Path to the TLS private key file")
	serveCmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&f.logFormat, "log-format", "text", "Log format (text, json)")
	serveCmd.MarkFlagsMutuallyExclusive("config", "routes-dir")
	serveCmd.MarkFlagsRequiredTogether("tls-cert", "tls-key")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	f := &serveFlagVals

	cfg, err := loadConfig(f.configPath, f.routesDir)
	if err != nil {
		return err
	}
	applyOverrides(cfg, f)

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Config-file logging settings apply unless the flag was given.
	level := cfg.Logging.Level
	if cmd.Flags().Changed("log-level") || level == "" {
		level = f.logLevel
	}
	format := cfg.Logging.Format
	if cmd.Flags().Changed("log-format") || format == "" {
		format = f.logFormat
	}
	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(level),
		Format: logging.ParseFormat(format),
	})

	router, err := engine.NewRouter(cfg.Routes, engine.WithLogger(log.With("component", "router")))
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	srv := engine.NewServer(cfg.Server, router,
		engine.WithServerLogger(log.With("component", "server")))
	if err := srv.Start(); err != nil {
		return err
	}

	log.Info("gateway started", "addr", srv.Addr(), "routes", len(cfg.Routes))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down gateway")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

func loadConfig(configPath, routesDir string) (*config.Config, error) {
	switch {
	case configPath != "":
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
		return config.Load(configPath)
	case routesDir != "":
		return config.LoadDir(routesDir)
	default:
		return nil, errors.New("either --config or --routes-dir is required")
	}
}

func applyOverrides(cfg *config.Config, f *serveFlags) {
	if f.host != "" {
		cfg.Server.Host = f.host
	}
	if f.port >= 0 {
		cfg.Server.Port = f.port
	}
	if f.tlsCert != "" {
		cfg.Server.TLS = &config.TLSConfig{CertFile: f.tlsCert, KeyFile: f.tlsKey}
	}
}
