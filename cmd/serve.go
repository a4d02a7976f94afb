package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataview-cli/internal/server"
)

var (
	serveAddr      string
	serveBodyLimit int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the render pipeline over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = settings().ServerAddress
		}
		r, err := newRenderer()
		if err != nil {
			return err
		}
		app := server.New(r, server.Config{BodyLimit: serveBodyLimit})

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(stop)
		go func() {
			<-stop
			log.Info().Msg("shutting down")
			if err := app.Shutdown(); err != nil {
				log.Error().Err(err).Msg("shutdown failed")
			}
		}()

		fmt.Fprintf(cmd.OutOrStdout(), "%s Listening on %s\n", okMark, addr)
		log.Info().Str("addr", addr).Msg("http server starting")
		return app.Listen(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().IntVar(&serveBodyLimit, "body-limit", 0, "max request body in bytes (0 = 4 MiB)")
}
