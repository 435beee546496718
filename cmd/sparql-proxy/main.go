// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main wires the SPARQL caching/rate-limiting proxy together:
// configuration, cache store, job queue, backend client, HTTP front-end,
// and the admin live channel. Build components, start background workers,
// serve HTTP, wait on a signal, then stop the queue sweeper and query log
// before shutting the HTTP servers down.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/reika0717/sparql-proxy/internal/backend"
	"github.com/reika0717/sparql-proxy/internal/cachestore"
	"github.com/reika0717/sparql-proxy/internal/chunk"
	"github.com/reika0717/sparql-proxy/internal/compressor"
	"github.com/reika0717/sparql-proxy/internal/config"
	"github.com/reika0717/sparql-proxy/internal/httpapi"
	"github.com/reika0717/sparql-proxy/internal/httpmw"
	"github.com/reika0717/sparql-proxy/internal/live"
	"github.com/reika0717/sparql-proxy/internal/metrics"
	"github.com/reika0717/sparql-proxy/internal/querylog"
	"github.com/reika0717/sparql-proxy/internal/queue"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	registry := compressor.NewRegistry()
	comp, err := registry.Get(cfg.Compressor)
	if err != nil {
		log.Fatalf("compressor: %v", err)
	}

	store, err := cachestore.New(cachestore.Options{
		Kind:       cachestore.Kind(cfg.CacheStore),
		FileRoot:   cfg.CacheStorePath,
		RedisAddr:  cfg.CacheRedisAddr,
		RedisDB:    cfg.CacheRedisDB,
		Compressor: comp,
	})
	if err != nil {
		log.Fatalf("cachestore: %v", err)
	}

	q := queue.New(cfg.MaxConcurrency, cfg.MaxWaiting, cfg.DurationToKeepOldJobs)

	be := backend.New(cfg.SPARQLBackend)

	qlog, err := querylog.Open(cfg.QueryLogPath)
	if err != nil {
		log.Fatalf("querylog: %v", err)
	}

	adminSecret := cfg.AdminCookieSecret
	if adminSecret == "" {
		adminSecret = randomSecret()
		logger.Warn("ADMIN_COOKIE_SECRET not set, generated a random per-process secret; admin sessions will not survive a restart")
	}
	adminCookie := httpapi.NewAdminCookie(adminSecret)

	handler := &httpapi.Handler{
		Store:        store,
		CompressorID: comp.ID(),
		Queue:        q,
		Backend:      be,
		ChunkConfig: chunk.Config{
			Enabled:       cfg.EnableQuerySplitting,
			MaxChunkLimit: cfg.MaxChunkLimit,
			MaxLimit:      cfg.MaxLimit,
		},
		JobTimeoutMs:  cfg.JobTimeout.Milliseconds(),
		TrustProxy:    cfg.TrustProxy,
		AdminUser:     cfg.AdminUser,
		AdminPassword: cfg.AdminPassword,
		AdminCookie:   adminCookie,
		Logger:        logger,
		QueryLog:      qlog,
	}

	liveHandler := live.NewHandler(q, store, adminCookie, logger)

	router := mux.NewRouter()
	router.Use(httpmw.Recovery(logger))
	router.Use(httpmw.Logging(logger))
	router.Handle("/admin/live", liveHandler)
	handler.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", metrics.Handler())
		metricsServer = &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux}
		go func() {
			logger.Infof("metrics listening on %s", cfg.MetricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Error("metrics server failed")
			}
		}()
	}

	go func() {
		logger.Infof("sparql-proxy listening on :%d", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("could not listen on :%d: %v", cfg.Port, err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	q.Close()
	if qlog != nil {
		if err := qlog.Close(); err != nil {
			logger.WithError(err).Warn("querylog close failed")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			logger.WithError(err).Warn("metrics server shutdown failed")
		}
	}

	logger.Info("stopped")
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("failed to generate admin cookie secret: %v", err)
	}
	return hex.EncodeToString(b)
}
