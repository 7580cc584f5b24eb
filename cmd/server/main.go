// @title           NoteKeeper API
// @version         1.0
// @description     Local notes backend (NoteKeeper).
// @description     Provides a session, per-user notes and the theme preference.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа HTTP API NoteKeeper.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации (по умолчанию ~/.notekeeper/config.yaml, путь меняется флагом -config);
//   - открытие хранилища слотов и восстановление сессии, темы и заметок;
//   - создание middleware и HTTP-обработчиков;
//   - запуск сервера с заданными таймаутами;
//   - обработку системных сигналов завершения (SIGINT, SIGTERM, SIGQUIT);
//   - корректное (graceful) завершение работы сервера с таймаутом.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
// HTTP API реализовано в пакете internal/server/api и документируется с помощью OpenAPI (Swagger).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/app"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/config"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/kv"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/theme"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/server/api"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/server/middleware"
	h "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/server/net/http"
	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/go-yandex-notekeeper/swagger/docs"
)

func main() {
	defaultPath, _ := config.DefaultPath()
	configPath := flag.String("config", defaultPath, "path to config.yaml")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		// .env не обязателен
		fmt.Fprintf(os.Stderr, "no .env file loaded: %v\n", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cfg.ValidateServer(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.File, cfg.Log.Level)
	defer log.Sync()
	sugar := log.Sugar()

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// открываем хранилище слотов
	store, err := kv.Open(ctx, cfg.Storage)
	if err != nil {
		sugar.Fatal(err)
	}

	preferDark := theme.DetectPreferDark()
	if cfg.Theme.PreferDark != nil {
		preferDark = *cfg.Theme.PreferDark
	}

	// восстанавливаем сессию, тему и заметки
	core := app.New(store, log, preferDark)
	defer core.Close()
	if err := core.Start(ctx); err != nil {
		sugar.Warnw("restore failed, starting without session", zap.Error(err))
	}

	jwtCfg := crypto.JWTConfig{
		Issuer:     cfg.Auth.Issuer,
		SigningKey: cfg.Auth.SigningKey,
		AccessTTL:  cfg.Auth.AccessTTL,
	}
	// токен принимается только пока его владелец — текущий пользователь сессии
	verifier := middleware.NewJWTVerifier(jwtCfg.SigningKey, jwtCfg.Issuer, "", core.Session)
	handler := api.NewHandler(core, log, verifier, jwtCfg)
	router := h.NewRouter(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infof("server started on %s", addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-gctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		// дописываем заметки, если последняя запись не удалась
		if err := core.Notes.Flush(shutdownCtx); err != nil && !errors.Is(err, serr.ErrNotReady) {
			sugar.Warnw("flush on shutdown failed", zap.Error(err))
		}
		return nil
	})

	// ожидание и единная обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}
