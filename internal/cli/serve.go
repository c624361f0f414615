package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/totegamma/todolist/internal/infra/database"
	"github.com/totegamma/todolist/internal/infra/providers"
	"github.com/totegamma/todolist/internal/infra/repository"
	"github.com/totegamma/todolist/internal/infra/tracing"
	"github.com/totegamma/todolist/internal/present/rest"
	restmiddleware "github.com/totegamma/todolist/internal/present/rest/middleware"
	"github.com/totegamma/todolist/internal/usecase"
)

func newServeCommand() *cobra.Command {
	var migrate bool

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, migrate)
		},
	}

	serveCmd.Flags().BoolVar(&migrate, "migrate", true, "migrate the database before serving")

	return serveCmd
}

func serve(ctx context.Context, migrate bool) error {
	server := conf.Server

	if server.EnableTrace {
		shutdown, err := tracing.Setup(ctx, server.TraceEndpoint)
		if err != nil {
			return errors.Wrap(err, "setup tracing")
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				slog.Error("failed to flush traces", slog.String("error", err.Error()))
			}
		}()
	}

	db, err := providers.NewDatabase(server)
	if err != nil {
		return errors.Wrap(err, "connect database")
	}
	if migrate {
		if err := providers.MigrateDatabase(db); err != nil {
			return errors.Wrap(err, "migrate database")
		}
	}

	signals, err := providers.NewSignal(ctx, server)
	if err != nil {
		return errors.Wrap(err, "connect redis")
	}

	itemRepo := repository.NewItemRepository(db)
	categoryRepo := repository.NewCategoryRepository(db, providers.NewCategoryCache(server))
	linkRepo := repository.NewCategoryItemRepository(db)

	itemUsecase := usecase.NewItemUsecase(conf.Domain(), itemRepo, categoryRepo, linkRepo, signals)
	categoryUsecase := usecase.NewCategoryUsecase(categoryRepo)

	handler := rest.NewHandler(itemUsecase, categoryUsecase, signals, func(ctx context.Context) error {
		return database.Ping(ctx, db)
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if server.EnableTrace {
		e.Use(otelecho.Middleware("todolist"))
		e.Use(restmiddleware.TraceID)
	}

	handler.RegisterRoutes(e)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server started", slog.String("addr", server.ListenAddr))
		if err := e.Start(server.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}
