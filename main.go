package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kyraongithub/compliance-gateway/internal/config"
	"github.com/kyraongithub/compliance-gateway/internal/gelf"
	"github.com/kyraongithub/compliance-gateway/internal/handler"
	"github.com/kyraongithub/compliance-gateway/internal/router"
)

func main() {
	cfg := config.Load()

	zcfg := zap.NewProductionConfig()
	logger, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// GELF UDP log shipping
	if cfg.GelfAddr != "" {
		gelfWriter, gerr := gelf.New(cfg.GelfAddr)
		if gerr != nil {
			logger.Warn("gelf init failed", zap.Error(gerr))
		} else {
			encoder := zapcore.NewJSONEncoder(zcfg.EncoderConfig)
			gelfCore := zapcore.NewCore(encoder, zapcore.AddSync(gelfWriter), zcfg.Level)
			logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
				return zapcore.NewTee(core, gelfCore)
			}))
			logger.Info("gelf logging enabled", zap.String("addr", cfg.GelfAddr))
		}
	}

	// Handlers
	proxy := handler.NewProxy(cfg.BackendURL, logger)
	authH := handler.NewAuthHandler(cfg.BackendURL)
	assessmentH := handler.NewAssessmentHandler(proxy)
	submissionH := handler.NewSubmissionHandler(proxy)
	templateH := handler.NewTemplateHandler(proxy)

	// Router
	r := router.New(logger, authH, assessmentH, submissionH, templateH)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("gateway listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("backend", cfg.BackendURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
