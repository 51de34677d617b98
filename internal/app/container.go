package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"next-hire/internal/config"
	"next-hire/internal/database"
	"next-hire/internal/database/migration"
	dbpostgres "next-hire/internal/database/postgres"
	"next-hire/internal/domain/notification"
	"next-hire/internal/infrastructure/cache"
	"next-hire/internal/infrastructure/document"
	"next-hire/internal/infrastructure/llm"
	"next-hire/internal/infrastructure/mail"
	"next-hire/internal/infrastructure/persistence/postgres"
	"next-hire/internal/pkg/credential"
	"next-hire/internal/pkg/jwt"
	"next-hire/internal/pkg/logger"
	"next-hire/internal/repository"
	"next-hire/internal/usecase/auth"
	jobuc "next-hire/internal/usecase/job"
	"next-hire/internal/usecase/resume"
	"next-hire/internal/ws"

	"go.uber.org/zap"
)

type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	Auth   *auth.Service
	Jobs   *jobuc.Catalog
	Resume *resume.Analyzer

	stopHub context.CancelFunc
}

func NewContainer(cfg config.Config, l *zap.Logger) (*Container, error) {
	l = logger.OrNop(l)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := (migration.Runner{}).Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, err
		}
		l.Info("database migrations applied")
	}

	c := &Container{
		Config: cfg,
		Logger: l,
		DB:     db,
		Cache:  cache.NewRedis(ctx, cfg.Redis, l),
		Hub:    ws.NewHub(l),
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	c.stopHub = stopHub
	go c.Hub.Run(hubCtx)

	tokens := jwt.NewHMACService(cfg.JWT.Secret, jwt.Options{
		AccessExpiresIn:  cfg.JWT.AccessExpiresIn,
		RefreshExpiresIn: cfg.JWT.RefreshExpiresIn,
		ResetExpiresIn:   cfg.JWT.ResetExpiresIn,
	})

	c.Auth = auth.NewService(
		postgres.NewUserRepository(db),
		postgres.NewPendingRegistrationRepository(db),
		postgres.NewResetTokenRepository(db),
		credential.NewPasswordHasher(cfg.Security.BcryptCost),
		tokens,
		newMailer(cfg.SMTP, l),
		l,
		auth.Options{
			OTPTTL:      cfg.Security.OTPTTL,
			ResetTTL:    cfg.JWT.ResetExpiresIn,
			FrontendURL: cfg.App.FrontendURL,
		},
	)

	c.Jobs = jobuc.NewCatalog(repository.NewPostgresJobRepository(db), c.Cache, c.Hub, cfg.Redis.TTL, l)

	c.Resume = resume.NewAnalyzer(document.NewExtractor(), newCompleter(ctx, cfg.LLM, l), l)

	return c, nil
}

func newMailer(cfg config.SMTPConfig, l *zap.Logger) notification.Sender {
	if cfg.Host == "" {
		l.Warn("SMTP_HOST not set, emails will be logged instead of sent")
		return mail.NewLogSender(l)
	}
	return mail.NewSMTPSender(cfg, l)
}

func newCompleter(ctx context.Context, cfg config.LLMConfig, l *zap.Logger) resume.Completer {
	client, err := llm.New(ctx, cfg, l)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			l.Warn("LLM_API_KEY not set, resume analysis is disabled")
		} else {
			l.Error("llm client unavailable, resume analysis is disabled", zap.Error(err))
		}
		return llm.Disabled{}
	}
	return client
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.stopHub != nil {
		c.stopHub()
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
