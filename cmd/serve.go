package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/LEKKALAGANESH/HEIC-to-JPG-Converter/internal/codec"
	"github.com/LEKKALAGANESH/HEIC-to-JPG-Converter/internal/handlers"
	"github.com/LEKKALAGANESH/HEIC-to-JPG-Converter/internal/session"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		port          string
		maxUploadMB   int64
		sessionTTL    time.Duration
		sweepInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the conversion web service",
		Long: `Starts the heic2jpg web service on the specified port.

Uploaded HEIC/HEIF files are converted to JPEG inside an isolated
per-request session; the converted files can then be downloaded once
as a single ZIP archive, after which the session is deleted. Sessions
that are never downloaded are reaped after the idle timeout.`,
		Example: `  # Start server on default port 8888
  heic2jpg serve

  # Start server on custom port with a shorter session timeout
  heic2jpg serve --port 3000 --session-ttl 10m`,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := session.NewManager(codec.NewHEIF(), "")
			if err != nil {
				return err
			}
			handler := handlers.New(manager, maxUploadMB*1024*1024)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/convert", handler.HandleConvert)
			mux.HandleFunc("/api/download/", handler.HandleDownload)
			mux.HandleFunc("/api/sessions/", handler.HandleSessionExpire)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Reap sessions that were populated but never downloaded
			go func() {
				ticker := time.NewTicker(sweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-cmd.Context().Done():
						return
					case <-ticker.C:
						if n := manager.Sweep(sessionTTL); n > 0 {
							slog.Info("Reaped idle sessions", "count", n)
						}
					}
				}
			}()

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("heic2jpg service available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().Int64Var(&maxUploadMB, "max-upload-mb", 500, "Maximum total upload size in MiB")
	cmd.Flags().DurationVar(&sessionTTL, "session-ttl", 30*time.Minute, "Idle time before an undownloaded session is deleted")
	cmd.Flags().DurationVar(&sweepInterval, "sweep-interval", 5*time.Minute, "How often to sweep for expired sessions")

	return cmd
}
