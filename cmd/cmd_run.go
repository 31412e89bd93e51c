package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"github.com/wrightcode/ladybugs/internal/config"
	"github.com/wrightcode/ladybugs/internal/postgres"
	"github.com/wrightcode/ladybugs/modules/minter"
	"github.com/wrightcode/ladybugs/modules/minter/api/httphandler"
	minterpostgres "github.com/wrightcode/ladybugs/modules/minter/repository/postgres"
	"github.com/wrightcode/ladybugs/pkg/automaxprocs"
	"github.com/wrightcode/ladybugs/pkg/errorhandler"
	"github.com/wrightcode/ladybugs/pkg/logger"
	"github.com/wrightcode/ladybugs/pkg/logger/slogx"
	"github.com/wrightcode/ladybugs/pkg/middleware/requestlogger"
)

func NewRunCommand() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start ladybugs service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := automaxprocs.Init(); err != nil {
				logger.Error("Failed to set GOMAXPROCS", slogx.Error(err))
			}
			return runHandler(cmd, args)
		},
	}

	// Add local flags
	flags := runCmd.Flags()
	flags.Bool("api-only", false, "Run only API server")

	// Bind flags to configuration
	config.BindPFlag("api_only", flags.Lookup("api-only"))

	return runCmd
}

const shutdownTimeout = 60 * time.Second

func runHandler(cmd *cobra.Command, _ []string) error {
	conf := config.Load()

	// Initialize application process context
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	injector := do.New()
	do.ProvideValue(injector, conf)
	do.ProvideValue(injector, ctx)

	// Initialize HTTP server
	do.Provide(injector, func(i do.Injector) (*fiber.App, error) {
		app := fiber.New(fiber.Config{
			AppName:      "Ladybugs Minter",
			ErrorHandler: errorhandler.NewHTTPErrorHandler(),
		})
		app.
			Use(favicon.New()).
			Use(cors.New()).
			Use(requestid.New()).
			Use(requestlogger.New(conf.HTTPServer.Logger)).
			Use(fiberrecover.New(fiberrecover.Config{
				EnableStackTrace: true,
				StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
					buf := make([]byte, 1024) // bufLen = 1024
					buf = buf[:runtime.Stack(buf, false)]
					logger.ErrorContext(c.UserContext(), "Something went wrong, panic in http handler", slogx.Any("panic", e), slog.String("stacktrace", string(buf)))
				},
			})).
			Use(compress.New(compress.Config{
				Level: compress.LevelDefault,
			}))

		// Health check
		app.Get("/", func(c *fiber.Ctx) error {
			return errors.WithStack(c.SendStatus(http.StatusOK))
		})

		return app, nil
	})

	// Initialize minter module
	initialPrice, err := conf.Modules.Minter.InitialPriceWei()
	if err != nil {
		return errors.Wrap(err, "invalid minter configuration")
	}
	engine, err := minter.New(minter.Options{
		Owner:        conf.Modules.Minter.Owner,
		TotalSupply:  conf.Modules.Minter.TotalSupply,
		Reserved:     conf.Modules.Minter.Reserved,
		InitialPrice: initialPrice,
	})
	if err != nil {
		return errors.Wrap(err, "invalid minter configuration")
	}

	pg, err := postgres.NewPool(ctx, conf.Modules.Minter.Postgres)
	if err != nil {
		return errors.Wrap(err, "can't create Postgres connection pool")
	}
	defer pg.Close()

	service := minter.NewService(engine, minterpostgres.NewRepository(pg))
	if err := service.Load(ctx); err != nil {
		return errors.Wrap(err, "can't load minter state")
	}

	httpServer := do.MustInvoke[*fiber.App](injector)
	minterHandler := httphandler.New(service)
	if err := minterHandler.Mount(httpServer); err != nil {
		return errors.Wrap(err, "can't mount minter API")
	}
	logger.InfoContext(ctx, "Mounted minter HTTP handler")

	// Run API server
	go func() {
		// stop main process if API stopped
		defer stop()

		logger.InfoContext(ctx, "Started HTTP server", slog.Int("port", conf.HTTPServer.Port))
		if err := httpServer.Listen(fmt.Sprintf(":%d", conf.HTTPServer.Port)); err != nil {
			logger.PanicContext(ctx, "Something went wrong, error during running HTTP server", slogx.Error(err))
		}
	}()

	logger.InfoContext(ctx, "Ladybugs Minter started")

	// Wait for interrupt signal to gracefully stop the server
	<-ctx.Done()

	// Force shutdown if timeout exceeded or got signal again
	go func() {
		defer os.Exit(1)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		select {
		case <-ctx.Done():
			logger.FatalContext(ctx, "Received exit signal again. Force shutdown...")
		case <-time.After(shutdownTimeout + 15*time.Second):
			logger.FatalContext(ctx, "Shutdown timeout exceeded. Force shutdown...")
		}
	}()

	if err := httpServer.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.ErrorContext(ctx, "Failed while shutting down HTTP server", slogx.Error(err))
	}

	if err := injector.Shutdown(); err != nil {
		logger.PanicContext(ctx, "Failed while gracefully shutting down", slogx.Error(err))
	}

	return nil
}
