package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/stickerpress/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the sticker editor web API",
		Long: `Starts the Stickerpress editing API on the specified port.

The API backs the browser editor: upload or crop source artwork into
a working set, run background matting, touch up individual stickers
in an editing session, and download the final pack zip.`,
		Example: `  # Start server on default port 8888
  stickerpress serve

  # Start server on custom port
  stickerpress serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := handlers.New()

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/items", handler.HandleItems)
			mux.HandleFunc("/api/items/", handler.HandleItemDetail)
			mux.HandleFunc("/api/upload", handler.HandleUpload)
			mux.HandleFunc("/api/crop", handler.HandleCrop)
			mux.HandleFunc("/api/process", handler.HandleProcess)
			mux.HandleFunc("/api/suggest", handler.HandleSuggest)
			mux.HandleFunc("/api/role", handler.HandleRole)
			mux.HandleFunc("/api/export", handler.HandleExport)
			mux.HandleFunc("/api/edit/", handler.HandleEdit)
			mux.HandleFunc("/api/edit/canvas.png", handler.HandleEditCanvas)
			mux.HandleFunc("/previews/", handler.HandlePreview)
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

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Stickerpress API available", "addr", addr, "url", "http://localhost"+addr)
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

	return cmd
}
