package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msto63/nestedencoder/internal/encoder/handler"
	"github.com/msto63/nestedencoder/internal/encoder/server"
	"github.com/msto63/nestedencoder/internal/encoder/service"
	"github.com/msto63/nestedencoder/pkg/core/version"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
)

var (
	serveHTTPOnly bool
	serveGRPCOnly bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Startet HTTP- und gRPC-Server",
	Long: `Startet die nenc Server.

Beide Server teilen sich einen Kodierungsdienst mit Cache und Verlauf.

Server:
  http  - REST-API und WebSocket (:8080)
  grpc  - nenc.v1.EncoderService (:9090)

Beispiele:
  nenc serve              # Beide Server starten
  nenc serve --http-only  # Nur HTTP starten`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveHTTPOnly, "http-only", false, "Nur den HTTP-Server starten")
	serveCmd.Flags().BoolVar(&serveGRPCOnly, "grpc-only", false, "Nur den gRPC-Server starten")
	serveCmd.MarkFlagsMutuallyExclusive("http-only", "grpc-only")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := newService(true)
	if err != nil {
		return err
	}
	defer svc.Close()

	if _, err := svc.PruneHistory(ctx, appConfig.History.Retention.Duration); err != nil {
		printError("Verlauf bereinigen", err)
	}
	go pruneLoop(ctx, svc, appConfig.History.Retention.Duration)

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("nenc v%s\n", version.Platform)
	fmt.Println("==========")

	errCh := make(chan error, 2)

	var httpServer *handler.Server
	if !serveGRPCOnly {
		httpServer = handler.NewServer(handler.ServerConfig{
			Host:           appConfig.Server.Host,
			Port:           appConfig.Server.HTTPPort,
			ReadTimeout:    appConfig.Server.ReadTimeout.Duration,
			WriteTimeout:   appConfig.Server.WriteTimeout.Duration,
			MaxRequestSize: appConfig.Server.MaxRequestSize,
			CORSEnabled:    appConfig.Server.CORS.Enabled,
			AllowedOrigins: appConfig.Server.CORS.AllowedOrigins,
		}, svc)

		go func() {
			if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("http: %w", err)
			}
		}()
		fmt.Printf("  [+] HTTP  %s\n", httpServer.Address())
	}

	var grpcServer *server.Server
	if !serveHTTPOnly {
		grpcServer = server.New(server.Config{
			Host:             appConfig.Server.Host,
			Port:             appConfig.Server.GRPCPort,
			EnableReflection: appConfig.Server.EnableReflection,
			MaxRecvMsgSize:   int(appConfig.Server.MaxRequestSize),
		}, svc)

		go func() {
			if err := grpcServer.Start(); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				errCh <- fmt.Errorf("grpc: %w", err)
			}
		}()
		fmt.Printf("  [+] gRPC  %s\n", grpcServer.Address())
	}

	fmt.Println()
	fmt.Println("Druecke Ctrl+C zum Beenden")

	var runErr error
	select {
	case <-sigCh:
		fmt.Println("\nFahre herunter...")
	case runErr = <-errCh:
		printError("Server gestoppt", runErr)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		if err := httpServer.Stop(shutdownCtx); err != nil {
			printError("HTTP-Server stoppen", err)
		}
	}
	if grpcServer != nil {
		grpcServer.Stop(shutdownCtx)
	}

	return runErr
}

// pruneLoop removes expired history entries once per hour
func pruneLoop(ctx context.Context, svc *service.Service, retention time.Duration) {
	if retention <= 0 {
		return
	}
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.PruneHistory(ctx, retention); err != nil {
				appLogger.WarnWithErr("History prune failed", err)
			}
		}
	}
}
