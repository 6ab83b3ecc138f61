// Пакет richtext - HTTP-сервис сборки редактора: отдает конфигурацию редактора, принимает загрузки изображений, экспортирует документы в PDF и Word и хранит документы.
//
// Основные возможности:
//   - Конфигурация редактора по имени сборки с подстановкой значений из окружения.
//   - Адаптер простой загрузки и возобновляемая загрузка по протоколу tus.
//   - Экспорт разметки редактора в PDF и DOCX.
//   - Хранение документов и привязка к ним загруженных файлов.
//   - Метрики Prometheus на отдельном порту и плановая очистка хранилища.
package richtext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aisa-it/richtext/internal/richtext/config"
	"github.com/aisa-it/richtext/internal/richtext/cronmanager"
	"github.com/aisa-it/richtext/internal/richtext/dao"
	"github.com/aisa-it/richtext/internal/richtext/editorconfig"
	"github.com/aisa-it/richtext/internal/richtext/export"
	filestorage "github.com/aisa-it/richtext/internal/richtext/file-storage"
	policy "github.com/aisa-it/richtext/internal/richtext/html-policy"
	"github.com/aisa-it/richtext/internal/richtext/maintenance"
	"github.com/aisa-it/richtext/internal/richtext/plugins"
	"github.com/aisa-it/richtext/pkg/limiter"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

//go:generate echo "Generate docs"
//go:generate go run ../../cmd/docsgen/main.go -src apierrors/apierrors.go -out ../../docs/editor.md

var (
	cfg        *config.Config
	appVersion string
)

const (
	tusPath    = "/api/editor/tus/"
	bodyLimit  = "5M"
	stopPeriod = 10 * time.Second
)

type Services struct {
	db         *gorm.DB
	storage    filestorage.FileStorage
	manifest   *plugins.Manifest
	policy     *policy.Policy
	exporter   *export.Exporter
	metrics    *serviceMetrics
	tusHandler echo.HandlerFunc
}

// NewServices собирает зависимости обработчиков. Метрики регистрируются в reg.
func NewServices(db *gorm.DB, storage filestorage.FileStorage, reg prometheus.Registerer) (*Services, error) {
	fonts, err := export.LoadFonts(cfg.FontsPath)
	if err != nil {
		return nil, fmt.Errorf("load export fonts: %w", err)
	}

	metrics, err := newServiceMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	s := &Services{
		db:       db,
		storage:  storage,
		manifest: plugins.ClassicBuild(),
		policy:   policy.Default,
		metrics:  metrics,
		exporter: export.NewExporter(export.ChainImageSource{
			filestorage.ImageSource{Storage: storage, Host: cfg.WebURL.Host},
			export.NewHTTPImageSource(cfg.WebURL),
		}, fonts),
	}

	s.tusHandler, err = storage.GetTUSHandler(cfg, tusPath, s.tusUploadValidator, s.tusPostUploadHook)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func ServerHeader(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderServer, "RichText")
		return next(c)
	}
}

func isTusPath(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, tusPath)
}

// NewEcho создает сервер API с глобальными middleware и маршрутами.
func NewEcho(s *Services, reg prometheus.Registerer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}

		// Ignore 404
		if code == http.StatusNotFound {
			c.NoContent(http.StatusNotFound)
			return
		}
		slog.Error("Unhandled error in endpoint", "url", c.Request().URL, "err", err)
		EErrorMsgStatus(c, nil, code)
	}

	// Global middlewares
	e.Use(ServerHeader)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowCredentials: true,
	}))
	e.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Limit: bodyLimit,
		Skipper: func(c echo.Context) bool {
			return c.Path() == config.UploadPath || isTusPath(c)
		},
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level:     9,
		MinLength: 2048,
		Skipper:   isTusPath,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsNamespace,
		Registerer: reg,
	}))
	e.Pre(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		Skipper: isTusPath,
	}))

	e.Validator = NewRequestValidator()
	e.JSONSerializer = RawHTMLSerializer{}

	apiGroup := e.Group("/api/")

	s.AddEditorServices(apiGroup)
	s.AddDocumentServices(apiGroup)

	// Version endpoint
	apiGroup.GET("version/", func(c echo.Context) error {
		builds := editorconfig.BuildNames()
		return c.JSON(http.StatusOK, map[string]interface{}{
			"version":        appVersion,
			"builds":         builds,
			"cloud_services": cfg.CloudServicesEnabled(),
			"upload_max_mb":  cfg.UploadMaxSizeMB,
		})
	})

	// Health endpoint
	apiGroup.GET("_health/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// Stored file
	apiGroup.GET("file/:fileName/", s.getFile)

	// Front handler
	if cfg.FrontFilesPath != "" {
		slog.Info("Start front routing")
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:  cfg.FrontFilesPath,
			HTML5: true,
			Skipper: func(c echo.Context) bool {
				return strings.HasPrefix(c.Request().URL.Path, "/api/")
			},
		}))
	}

	return e
}

func start(e *echo.Echo, addr string) error {
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func Server(db *gorm.DB, c *config.Config, version string) {
	cfg = c
	appVersion = version

	storage, err := filestorage.New(cfg)
	if err != nil {
		slog.Error("Fail init file storage", "err", err)
		os.Exit(1)
	}

	dao.FileStorage = storage
	limiter.Init(cfg)

	s, err := NewServices(db, storage, prometheus.DefaultRegisterer)
	if err != nil {
		slog.Error("Fail init services", "err", err)
		os.Exit(1)
	}

	jobRegistry := cronmanager.JobRegistry{}
	if !cfg.AssetsCleanerDisabled {
		cleaner := maintenance.NewAssetCleaner(db, storage)
		jobRegistry["assets_clean"] = cronmanager.Job{
			Func: func(ctx context.Context) error {
				_, err := cleaner.CleanAssets(ctx)
				return err
			},
			Schedule: "0 1 * * *", // daily at 01:00
		}
	}

	cronManager := cronmanager.NewCronManager(jobRegistry)
	if err := cronManager.LoadJobs(); err != nil {
		slog.Error("Failed to load cron jobs", "err", err)
		os.Exit(1)
	}
	cronManager.Start()

	e := NewEcho(s, prometheus.DefaultRegisterer)

	metrics := echo.New()
	metrics.HideBanner = true
	metrics.HidePort = true
	metrics.GET("/metrics", echoprometheus.NewHandler())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return start(e, cfg.ListenAddr)
	})
	g.Go(func() error {
		return start(metrics, cfg.MetricsAddr)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down gracefully, press Ctrl+C again to force")
		stop()
		cronManager.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), stopPeriod)
		defer cancel()
		return errors.Join(e.Shutdown(shutdownCtx), metrics.Shutdown(shutdownCtx))
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server fail", "err", err)
		os.Exit(1)
	}
}
