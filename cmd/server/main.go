package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	adminhttp "gatekeeper/internal/admin"
	"gatekeeper/internal/bot"
	"gatekeeper/internal/captcha"
	invitesvc "gatekeeper/internal/invite/service"
	invitestore "gatekeeper/internal/invite/store"
	"gatekeeper/internal/messaging"
	"gatekeeper/internal/platform/config"
	"gatekeeper/internal/platform/httpserver"
	"gatekeeper/internal/platform/logger"
	"gatekeeper/internal/platform/metrics"
	"gatekeeper/internal/platform/redis"
	"gatekeeper/internal/ratelimit/service/attemptlimit"
	"gatekeeper/internal/ratelimit/service/requestlimit"
	"gatekeeper/internal/ratelimit/store/attempts"
	"gatekeeper/internal/ratelimit/store/requestwindow"
	reviewsvc "gatekeeper/internal/review/service"
	reviewstore "gatekeeper/internal/review/store"
	"gatekeeper/internal/telegram"
	verifysvc "gatekeeper/internal/verification/service"
	sessionstore "gatekeeper/internal/verification/store"
	"gatekeeper/pkg/platform/audit"
	kafkaaudit "gatekeeper/pkg/platform/audit/publishers/kafka"
	"gatekeeper/pkg/platform/audit/publisher"
	auditmemory "gatekeeper/pkg/platform/audit/store/memory"
	auditpostgres "gatekeeper/pkg/platform/audit/store/postgres"
	"gatekeeper/pkg/platform/circuit"
	adminmw "gatekeeper/pkg/platform/middleware/admin"
	"gatekeeper/pkg/platform/middleware/metadata"
	"gatekeeper/pkg/platform/middleware/requesttime"
)

const (
	auditBufferSize = 256
	shutdownTimeout = 10 * time.Second
)

// main wires the chat bot and the admin panel around one set of services and
// runs both until SIGINT or SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("gatekeeper stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("redis enabled for request windows and tokens")
	}

	auditPublisher, closeAudit, err := buildAudit(ctx, cfg.Audit, log, m)
	if err != nil {
		return err
	}
	defer closeAudit()

	tg, err := telegram.New(cfg.Telegram.Token,
		telegram.WithLogger(log),
		telegram.WithPollTimeout(int(cfg.Telegram.PollTimeout/time.Second)),
		telegram.WithIssuanceBreaker(circuit.New("invite_issuance")),
	)
	if err != nil {
		return err
	}
	admins := messaging.AdminCheck{AdminID: cfg.Telegram.AdminID}

	var (
		windows requestlimit.Store
		tokens  invitestore.Store
	)
	if redisClient != nil {
		windows = requestwindow.NewRedisStore(redisClient.Client)
		tokens = invitestore.NewRedis(redisClient.Client)
	} else {
		memWindows := requestwindow.NewInMemoryStore()
		m.WatchSize("request_windows", memWindows.Len)
		windows = memWindows
		tokens = invitestore.NewInMemory()
	}
	attemptStore := attempts.New()
	m.WatchSize("attempt_records", attemptStore.Len)
	sessions := sessionstore.New()
	m.WatchSize("sessions", sessions.Len)

	requests, err := requestlimit.New(windows,
		requestlimit.WithConfig(cfg.Limits),
		requestlimit.WithLogger(log),
		requestlimit.WithAuditPublisher(auditPublisher),
		requestlimit.WithMetrics(m),
	)
	if err != nil {
		return err
	}
	attemptSvc, err := attemptlimit.New(attemptStore,
		attemptlimit.WithConfig(cfg.Limits),
		attemptlimit.WithLogger(log),
		attemptlimit.WithAuditPublisher(auditPublisher),
		attemptlimit.WithMetrics(m),
	)
	if err != nil {
		return err
	}
	invites, err := invitesvc.New(tokens, admins,
		invitesvc.WithLogger(log),
		invitesvc.WithAuditPublisher(auditPublisher),
		invitesvc.WithMetrics(m),
	)
	if err != nil {
		return err
	}
	reviews, err := reviewsvc.New(reviewstore.NewInMemoryQueue(), tg, tg, admins,
		reviewsvc.WithGroupID(cfg.Telegram.GroupID),
		reviewsvc.WithReviewerChatID(cfg.Telegram.AdminID),
		reviewsvc.WithLogger(log),
		reviewsvc.WithAuditPublisher(auditPublisher),
		reviewsvc.WithMetrics(m),
	)
	if err != nil {
		return err
	}
	verifier, err := verifysvc.New(verifysvc.Deps{
		Sessions:  sessions,
		Requests:  requests,
		Attempts:  attemptSvc,
		Tokens:    invites,
		Review:    reviews,
		Captcha:   captcha.New(),
		Messenger: tg,
		Issuer:    tg,
	},
		verifysvc.WithGroupID(cfg.Telegram.GroupID),
		verifysvc.WithLogger(log),
		verifysvc.WithAuditPublisher(auditPublisher),
		verifysvc.WithMetrics(m),
	)
	if err != nil {
		return err
	}
	dispatcher, err := bot.New(verifier, invites, reviews, tg, admins, bot.WithLogger(log))
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	router.Use(metadata.RequestMetadata, requesttime.Middleware)
	router.Get("/healthz", healthz(redisClient, tg))
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	router.Group(func(r chi.Router) {
		r.Use(adminmw.RequireBasicAuth(cfg.Server.AdminUser, cfg.Server.AdminPass, cfg.Telegram.AdminID, log))
		adminhttp.New(reviews, invites, auditPublisher, log).Register(r)
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("bot polling for updates")
		return dispatcher.Run(gctx, tg.Updates(gctx))
	})
	g.Go(func() error {
		log.Info("admin panel listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("admin server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// buildAudit keeps the most recent events in memory and mirrors to Postgres
// and Kafka when they are configured.
func buildAudit(ctx context.Context, cfg config.AuditConfig, log *slog.Logger, m *metrics.Metrics) (*publisher.Publisher, func(), error) {
	var (
		mirrors []audit.Store
		closers []func()
	)
	if cfg.DatabaseURL != "" {
		pg, err := auditpostgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		mirrors = append(mirrors, pg)
		closers = append(closers, func() { _ = pg.Close() })
		log.Info("audit mirrored to postgres")
	}
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := kafkaaudit.New(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, nil, err
		}
		mirrors = append(mirrors, kp)
		closers = append(closers, kp.Close)
		log.Info("audit mirrored to kafka", "topic", cfg.KafkaTopic)
	}

	recent := auditmemory.NewInMemoryStore(auditmemory.WithCapacity(cfg.MemoryCapacity))
	m.WatchSize("audit_events", recent.Len)

	p := publisher.NewPublisher(recent,
		publisher.WithAsyncBuffer(auditBufferSize),
		publisher.WithMirror(mirrors...),
		publisher.WithLogger(log),
	)
	return p, func() {
		// Drain the publisher before its sinks go away.
		p.Close()
		for _, c := range closers {
			c()
		}
	}, nil
}

func healthz(client *redis.Client, tg *telegram.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !tg.IssuanceHealthy() {
			http.Error(w, "invite issuance failing", http.StatusServiceUnavailable)
			return
		}
		if client != nil {
			if err := client.Health(r.Context()); err != nil {
				http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
