// Package main is the entry point for the student fee portal terminal client.
//
// The architecture follows Clean Architecture:
// - Domain: records, sessions, and the error taxonomy, no external deps
// - Application: roster query engine, auth/profile commands, payment flow
// - Infrastructure: credential HTTP client, record channel, session file
// - Interface: terminal router, page handlers, presenters
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/feehub/student-fee-portal/config"
	"github.com/feehub/student-fee-portal/internal/application/command"
	"github.com/feehub/student-fee-portal/internal/application/flow"
	"github.com/feehub/student-fee-portal/internal/domain/session"
	"github.com/feehub/student-fee-portal/internal/domain/student"
	"github.com/feehub/student-fee-portal/internal/infrastructure/external/gateway"
	"github.com/feehub/student-fee-portal/internal/infrastructure/persistence/localstore"
	"github.com/feehub/student-fee-portal/internal/interface/term"
	"github.com/feehub/student-fee-portal/internal/interface/term/handler"
	"github.com/feehub/student-fee-portal/pkg/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := setupLogger(cfg)
	log.Info("starting student fee portal",
		logger.String("env", string(cfg.App.Environment)),
		logger.Bool("debug", cfg.App.Debug))

	// ─────────────────────────────────────────────────────────────────────────
	// INFRASTRUCTURE
	// ─────────────────────────────────────────────────────────────────────────
	sessions := localstore.New(cfg.Session.Path)

	credentialConfig := gateway.DefaultClientConfig(cfg.Credential.BaseURL)
	credentialConfig.Timeout = cfg.Credential.Timeout
	credentialConfig.Logger = log
	credentials := gateway.NewClient(credentialConfig)

	gateways := handler.GatewayFactory(func(sess session.Session) student.RecordGateway {
		channelConfig := gateway.DefaultChannelConfig(cfg.Channel.URL)
		channelConfig.HandshakeTimeout = cfg.Channel.HandshakeTimeout
		channelConfig.Token = sess.Token
		channelConfig.Logger = log
		return gateway.NewChannel(channelConfig)
	})

	// ─────────────────────────────────────────────────────────────────────────
	// APPLICATION
	// ─────────────────────────────────────────────────────────────────────────
	auth := command.NewAuthenticator(credentials, sessions)
	paymentConfig := flow.PaymentConfig{ProcessingDelay: cfg.Payment.ProcessingDelay}

	// ─────────────────────────────────────────────────────────────────────────
	// INTERFACE
	// ─────────────────────────────────────────────────────────────────────────
	router := term.NewRouter(term.RouterConfig{
		Sessions: sessions,
		In:       os.Stdin,
		Out:      os.Stdout,
		Logger:   log,
	})

	router.Register(term.PageHome, handler.NewHome(auth))
	router.Register(term.PageSignUp, handler.NewSignUp(auth))
	router.Register(term.PageLogin, handler.NewLogin(auth))
	router.RegisterProtected(term.PageStudentList, handler.NewStudentList(gateways))
	router.RegisterProtected(term.PageMyProfile, handler.NewMyProfile(gateways))
	router.RegisterProtected(term.PagePayFee, handler.NewPayFee(gateways, paymentConfig))

	err = router.Run(ctx)
	log.Info("portal stopped")
	return err
}

func setupLogger(cfg *config.Config) *logger.Logger {
	level := logger.LevelInfo
	if cfg.App.Debug {
		level = logger.LevelDebug
	}
	return logger.New(logger.Options{
		Level:  level,
		Output: os.Stderr,
	})
}
