// 管理端审批服务入口：装配工作流引擎、各业务适配器与查询接口。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	adminapp "github.com/wyfcoding/investplatform/internal/admin/application"
	admindomain "github.com/wyfcoding/investplatform/internal/admin/domain"
	adminmysql "github.com/wyfcoding/investplatform/internal/admin/infrastructure/persistence/mysql"
	adminhttp "github.com/wyfcoding/investplatform/internal/admin/interfaces/http"
	"github.com/wyfcoding/investplatform/internal/approval"
	auditapp "github.com/wyfcoding/investplatform/internal/audit/application"
	auditdomain "github.com/wyfcoding/investplatform/internal/audit/domain"
	auditmsg "github.com/wyfcoding/investplatform/internal/audit/infrastructure/messaging"
	auditmysql "github.com/wyfcoding/investplatform/internal/audit/infrastructure/persistence/mysql"
	audithttp "github.com/wyfcoding/investplatform/internal/audit/interfaces/http"
	regapp "github.com/wyfcoding/investplatform/internal/companyregistration/application"
	regdomain "github.com/wyfcoding/investplatform/internal/companyregistration/domain"
	regmysql "github.com/wyfcoding/investplatform/internal/companyregistration/infrastructure/persistence/mysql"
	reghttp "github.com/wyfcoding/investplatform/internal/companyregistration/interfaces/http"
	notifyapp "github.com/wyfcoding/investplatform/internal/notification/application"
	notifydomain "github.com/wyfcoding/investplatform/internal/notification/domain"
	notifymysql "github.com/wyfcoding/investplatform/internal/notification/infrastructure/persistence/mysql"
	"github.com/wyfcoding/investplatform/internal/notification/infrastructure/sender"
	notifyhttp "github.com/wyfcoding/investplatform/internal/notification/interfaces/http"
	reqapp "github.com/wyfcoding/investplatform/internal/request/application"
	reqdomain "github.com/wyfcoding/investplatform/internal/request/domain"
	reqmysql "github.com/wyfcoding/investplatform/internal/request/infrastructure/persistence/mysql"
	reqhttp "github.com/wyfcoding/investplatform/internal/request/interfaces/http"
	triageapp "github.com/wyfcoding/investplatform/internal/triage/application"
	triagedomain "github.com/wyfcoding/investplatform/internal/triage/domain"
	triagemysql "github.com/wyfcoding/investplatform/internal/triage/infrastructure/persistence/mysql"
	triagehttp "github.com/wyfcoding/investplatform/internal/triage/interfaces/http"
	"github.com/wyfcoding/investplatform/pkg/config"
	"github.com/wyfcoding/investplatform/pkg/db"
	"github.com/wyfcoding/investplatform/pkg/logger"
	"github.com/wyfcoding/investplatform/pkg/metrics"
	"github.com/wyfcoding/investplatform/pkg/middleware"
	"github.com/wyfcoding/investplatform/pkg/mq"
	"github.com/wyfcoding/investplatform/pkg/utils"
)

// BootstrapName 服务标识。
const BootstrapName = "admin"

func main() {
	configPath := flag.String("config", "configs/admin.toml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("service bootstrap failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	if err := logger.Init(cfg.Logger); err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	bootLog := slog.With("module", "bootstrap")
	bootLog.Info("starting service", "service", cfg.ServiceName, "environment", cfg.Environment)

	m := metrics.New(cfg.ServiceName)

	// 1. 基础设施
	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(
		&reqdomain.Request{},
		&regdomain.RegistrationRequest{},
		&regdomain.RegisteredCompany{},
		&auditdomain.AuditEntry{},
		&triagedomain.FolderNode{},
		&notifydomain.Notification{},
		&admindomain.Admin{},
		&admindomain.UserProfile{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	var producer *mq.KafkaProducer
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			return fmt.Errorf("kafka producer init failed: %w", err)
		}
		defer producer.Close()
	}

	idgen := utils.NewSnowflakeID(1)

	// 2. 身份与通知
	identity := adminapp.NewIdentityService(
		adminmysql.NewAdminRepository(database),
		adminmysql.NewProfileRepository(database),
	)

	notifySender, err := buildSender(cfg, producer)
	if err != nil {
		return err
	}
	dispatcher := notifyapp.NewDispatcher(
		notifymysql.NewNotificationRepository(database),
		notifySender,
		m,
		idgen,
	)

	// 3. 工作流引擎
	engineOpts := []approval.Option{
		approval.WithNotifier(dispatcher),
		approval.WithMetrics(m),
		approval.WithNotifyTimeout(time.Duration(cfg.Notify.Timeout) * time.Second),
	}
	if producer != nil {
		engineOpts = append(engineOpts,
			approval.WithEventPublisher(auditmsg.NewKafkaEventPublisher(producer, cfg.Kafka.AuditTopic)))
	}
	engine := approval.NewEngine(database, identity, idgen, engineOpts...)

	// 4. 业务组件装配
	requestRepo := reqmysql.NewRequestRepository(database.DB)
	requestService := reqapp.NewRequestService(engine, requestRepo, idgen)

	registrationRepo := regmysql.NewRegistrationRepository(database.DB)
	companyRepo := regmysql.NewCompanyRepository(database.DB)
	registrationService := regapp.NewRegistrationService(engine, registrationRepo, companyRepo, idgen)

	auditReader := auditapp.NewTrailReader(auditmysql.NewEntryRepository(database.DB), identity)

	aggregator := triageapp.NewAggregator(database, triagemysql.NewFolderRepository(database.DB), idgen)
	aggregator.RegisterMemberSource(requestRepo)
	aggregator.RegisterMemberSource(registrationRepo)
	aggregator.RegisterStatusSource("request", []string{
		string(reqdomain.StatusPending),
		string(reqdomain.StatusProcessing),
		string(reqdomain.StatusCompleted),
		string(reqdomain.StatusRejected),
	}, requestRepo)
	aggregator.RegisterStatusSource("company_registration", regdomain.Statuses(), registrationRepo)

	// 5. 审计事件消费（缓存失效）
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if producer != nil {
		consumer, err := mq.NewConsumer(mq.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			GroupID: cfg.Kafka.GroupID,
		}, cfg.Kafka.AuditTopic)
		if err != nil {
			return fmt.Errorf("kafka consumer init failed: %w", err)
		}
		eventConsumer := auditmsg.NewEventConsumer(consumer, auditReader)
		defer eventConsumer.Close()
		go func() {
			if err := eventConsumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("audit event consumer stopped", "error", err)
			}
		}()
	}

	// 6. HTTP 服务
	router := buildRouter(cfg, m)
	reqhttp.NewRequestHandler(requestService).RegisterRoutes(router)
	reghttp.NewRegistrationHandler(registrationService).RegisterRoutes(router)
	audithttp.NewAuditHandler(auditReader).RegisterRoutes(router)
	triagehttp.NewTriageHandler(aggregator).RegisterRoutes(router)
	notifyhttp.NewNotificationHandler(dispatcher).RegisterRoutes(router)
	adminhttp.NewIdentityHandler(identity).RegisterRoutes(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		bootLog.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	bootLog.Info("performing graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	bootLog.Info("service stopped")
	return nil
}

func buildSender(cfg *config.Config, producer *mq.KafkaProducer) (notifydomain.Sender, error) {
	switch cfg.Notify.Sender {
	case "smtp":
		return sender.NewSMTPSender(sender.SMTPConfig{
			Host:     cfg.Notify.SMTPHost,
			Port:     cfg.Notify.SMTPPort,
			Username: cfg.Notify.SMTPUsername,
			Password: cfg.Notify.SMTPPassword,
			From:     cfg.Notify.From,
		}), nil
	case "kafka":
		if producer == nil {
			return nil, fmt.Errorf("kafka sender requires kafka brokers")
		}
		return sender.NewKafkaSender(producer, cfg.Kafka.NotifyTopic), nil
	case "mock", "":
		return sender.NewMockSender(), nil
	}
	return nil, fmt.Errorf("unsupported notify sender: %s", cfg.Notify.Sender)
}

func buildRouter(cfg *config.Config, m *metrics.Metrics) *gin.Engine {
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.CORS(), m.GinMiddleware())

	sys := router.Group("/sys")
	{
		sys.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "UP",
				"service":   cfg.ServiceName,
				"timestamp": time.Now().Unix(),
			})
		})
		sys.GET("/ready", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "READY"})
		})
	}

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	return router
}
