package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/http/controller"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/http/middleware"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/http/router"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/repository/implementations"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/repository/memory"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/config"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/idgen"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/notifier"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/usecase/services"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// The store being unreachable at startup is the only fatal condition.
	if err := implementations.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := implementations.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	var emailNotifier notifier.Notifier
	if cfg.RabbitMQURL != "" {
		amqpNotifier, err := notifier.NewAMQPNotifier(cfg.RabbitMQURL, cfg.NotificationExchange)
		if err != nil {
			log.Printf("amqp notifier unavailable, notifications disabled: %v", err)
			emailNotifier = notifier.Discard{}
		} else {
			defer amqpNotifier.Close()
			emailNotifier = amqpNotifier
		}
	} else {
		emailNotifier = notifier.Discard{}
	}

	dispatcher := notifier.NewDispatcher(emailNotifier, 64)
	defer dispatcher.Close()

	accountRepo := implementations.NewAccountRepository(db)
	ledgerRepo := implementations.NewLedgerRepository(db)
	bankRepo := memory.NewBankRepository()
	digits := idgen.NewRandomSource()

	accountService := services.NewAccountService(accountRepo, bankRepo, digits, dispatcher)
	transactionService := services.NewTransactionService(accountRepo, ledgerRepo)
	transferService := services.NewTransferService(accountRepo)
	updateService := services.NewUpdateService(accountRepo, digits, dispatcher)

	adminAuth := middleware.BasicAuth(cfg.AdminChannelID, cfg.AdminChannelKey)

	mux := router.New(
		adminAuth,
		controller.NewAccountController(accountService),
		controller.NewTransactionController(transactionService),
		controller.NewTransferController(transferService),
		controller.NewUpdateController(updateService),
		controller.NewAdminController(accountService),
	)

	addr := ":" + cfg.ServerPort
	log.Printf("banking server listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
