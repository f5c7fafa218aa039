package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-extras/cobraflags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/01moynul/inventory-golang/internal/config"
	"github.com/01moynul/inventory-golang/internal/database"
	"github.com/01moynul/inventory-golang/internal/handlers"
	"github.com/01moynul/inventory-golang/internal/images"
	"github.com/01moynul/inventory-golang/internal/middleware"
	"github.com/01moynul/inventory-golang/internal/routes"
)

const (
	addrFlag    = "addr"
	envFileFlag = "env-file"
)

var rootFlags = map[string]cobraflags.Flag{
	addrFlag: &cobraflags.StringFlag{
		Name:  addrFlag,
		Value: "",
		Usage: "Listen address (overrides PORT), e.g. :3000",
	},
	envFileFlag: &cobraflags.StringFlag{
		Name:  envFileFlag,
		Value: ".env",
		Usage: "File of KEY=VALUE pairs loaded into the environment before configuration is read",
	},
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "inventory",
		Short:         "Inventory web application",
		Long:          "Serves the category and item inventory pages backed by a document database.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}
	cobraflags.RegisterMap(cmd, rootFlags)
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func serve(cmd *cobra.Command, _ []string) error {
	// 0. --- Load Environment Variables (.env) ---
	envFile := rootFlags[envFileFlag].GetString()
	loaded, err := config.LoadEnvFile(envFile)
	if err != nil {
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	if !loaded {
		log.Printf("WARNING: Could not find %s. Relying on system environment variables.", envFile)
	}

	cfg, err := config.Load(config.New())
	if err != nil {
		return err
	}
	if addr := rootFlags[addrFlag].GetString(); addr != "" {
		cfg.Server.Addr = addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. --- Database Connection ---
	st, err := database.OpenStore(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Database.Driver, err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Printf("ERROR: closing store: %v", err)
		}
	}()
	log.Printf("Connected to %s store", cfg.Database.Driver)

	// 2. --- Image Storage ---
	imgStore, uploadDir, err := openImageStore(ctx, cfg.Images)
	if err != nil {
		return fmt.Errorf("failed to set up image storage: %w", err)
	}

	// 3. --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// --- Router Setup ---
	app := handlers.New(st, imgStore, cfg.Images.MaxUploadBytes)
	router, err := routes.SetupRouter(app, routes.Options{
		Limiter:          middleware.NewRateLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window),
		Registry:         registry,
		Development:      cfg.Server.Development(),
		UploadDir:        uploadDir,
		UploadPublicPath: cfg.Images.PublicPath,
	})
	if err != nil {
		return err
	}

	// --- Start Server ---
	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s (%s)", cfg.Server.Addr, cfg.Server.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// openImageStore returns the configured image store and, for local storage,
// the directory the router should serve uploads from.
func openImageStore(ctx context.Context, cfg config.ImageConfig) (images.Store, string, error) {
	if cfg.Store == config.ImageStoreS3 {
		s, err := images.NewS3(ctx, images.S3Options{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
		})
		return s, "", err
	}

	s, err := images.NewLocal(cfg.UploadDir, cfg.PublicPath)
	if err != nil {
		return nil, "", err
	}
	return s, cfg.UploadDir, nil
}
