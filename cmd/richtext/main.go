// Основной пакет сервиса сборки редактора. Отвечает за чтение конфигурации, подключение к базе данных, миграцию моделей и запуск HTTP-сервера.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aisa-it/richtext/internal/richtext"
	"github.com/aisa-it/richtext/internal/richtext/config"
	"github.com/aisa-it/richtext/internal/richtext/dao"
	"github.com/aisa-it/richtext/internal/richtext/gormlogger"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLog "gorm.io/gorm/logger"
)

var version string = "DEV"

// dialector выбирает драйвер по DSN: postgres для postgres:// и key=value строк, иначе sqlite.
func dialector(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=") {
		return postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: false,
		})
	}
	return sqlite.Open(dsn)
}

// Пример запуска: go run main.go --noMigration --trace
func main() {
	noTranslateFlag := flag.Bool("noTranslate", false, "Turn off BD errors translate")
	paramQueries := flag.Bool("paramQueries", true, "Mask queries params in log")
	noMigration := flag.Bool("noMigration", false, "Turn off DB migration")
	trace := flag.Bool("trace", false, "Verbose logs and sql trace")
	flag.Parse()

	PrintBanner()

	cfg := config.ReadConfig()

	if *trace {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Set prod log format
	if version != "DEV" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})))
	}

	slog.Info("RichText start.")

	var logger gormLog.Interface = gormlogger.NewGormLogger(slog.Default(), time.Second*4, *paramQueries)
	if *trace {
		logger = logger.LogMode(gormLog.Info)
	}

	db, err := gorm.Open(dialector(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: !*noTranslateFlag,
		Logger:         logger,
	})
	if err != nil {
		slog.Error("Fail init DB connection", "err", err)
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Fail set settings to conn pool", "err", err)
		os.Exit(1)
	}
	if db.Dialector.Name() == "sqlite" {
		// sqlite не допускает параллельной записи
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetMaxIdleConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
		sqlDB.SetConnMaxIdleTime(time.Minute * 15)
	}

	if !*noMigration {
		slog.Info("Migrate models")
		if err := db.AutoMigrate(dao.Models()...); err != nil {
			slog.Error("Fail migrate models", "err", err)
			os.Exit(1)
		}
	}

	richtext.Server(db, cfg, version)
}

func PrintBanner() {
	banner := `
 ___ _    _    _____         _
| _ (_)__| |_ |_   _|____ __| |_
|   / / _| ' \  | |/ -_) \ /  _|
|_|_\_\__|_||_| |_|\___/_\_\\__| %s
Editor build configuration, uploads and export
----------------------------------------------
`
	colorReset := "\033[0m"
	colorYellow := "\033[33m"

	formattedVersion := version
	if version == "DEV" {
		formattedVersion = colorYellow + version + colorReset
	}

	fmt.Printf(banner, formattedVersion)
}
