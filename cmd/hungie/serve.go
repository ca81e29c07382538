package main

import (
	"github.com/spf13/cobra"

	"github.com/yeschef/hungie/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Hungie server",
	Long: `Start the Hungie HTTP server.

The server opens the recipe database, loads rulesets from the home
directory, and (if enabled in config) watches the inbox directory for
dropped PDFs. When the server shuts down (via Ctrl+C or SIGTERM) the
database is closed cleanly.

The server provides:
  - /health      - Basic server health check
  - /ready       - Readiness check (includes database status)
  - /api/search  - Recipe search
  - /api/extract - Run extraction on a PDF

Examples:
  hungie serve                   # Start on default port 8080
  hungie serve --port 3000       # Start on custom port
  hungie serve --host 0.0.0.0    # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		h, err := getHome()
		if err != nil {
			return err
		}
		cm, err := getConfig(h)
		if err != nil {
			return err
		}
		cm.WatchConfig()

		conf := cm.Get()
		host, port := serveHost, servePort
		if !cmd.Flags().Changed("host") && conf.Server.Host != "" {
			host = conf.Server.Host
		}
		if !cmd.Flags().Changed("port") && conf.Server.Port != "" {
			port = conf.Server.Port
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			Home:          h,
			ConfigManager: cm,
			Logger:        newLogger(conf),
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}
