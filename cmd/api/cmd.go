package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/programmableapple/financialAdvisor/internal/bootstrap"
	"github.com/programmableapple/financialAdvisor/internal/config"
	"github.com/programmableapple/financialAdvisor/internal/crypto"
	"github.com/programmableapple/financialAdvisor/internal/handlers"
	"github.com/programmableapple/financialAdvisor/internal/middleware"
	"github.com/programmableapple/financialAdvisor/internal/response"
	"github.com/programmableapple/financialAdvisor/internal/router"
	"github.com/programmableapple/financialAdvisor/internal/services"
	"github.com/programmableapple/financialAdvisor/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// helpers
	kmsHelper := crypto.NewKMS(bs.KMS, cfg.KMSKeyName)

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	sstore := store.NewSessionStore(bs.Firestore, kmsHelper)
	tstore := store.NewTransactionStore(bs.Firestore)
	bstore := store.NewBudgetStore(bs.Firestore)
	gstore := store.NewGoalStore(bs.Firestore)
	rstore := store.NewRecurringStore(bs.Firestore)
	cstore := store.NewCategoryStore(bs.Firestore)

	// services
	ledger := services.NewGoalLedger(gstore)
	tserv := services.NewTransactionService(tstore, ledger)
	aserv := services.NewAuthService(ustore, sstore, cfg.AccessTokenSecret, cfg.RefreshTokenSecret)
	anserv := services.NewAnalyticsService(tstore, tserv)
	buserv := services.NewBudgetService(bstore, tstore, tserv)
	goserv := services.NewGoalService(gstore)
	reserv := services.NewRecurringService(rstore, tstore)
	caserv := services.NewCategoryService(cstore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.AuthSvc = aserv
	deps.TransactionSvc = tserv
	deps.AnalyticsSvc = anserv
	deps.BudgetSvc = buserv
	deps.GoalSvc = goserv
	deps.RecurringSvc = reserv
	deps.CategorySvc = caserv

	// router
	mw := middleware.NewMiddleware(cfg.AccessTokenSecret)
	r := router.NewRouter(deps, mw)
	err = http.ListenAndServe(":8080", r)
	exitOnError("server start failed", err, bs.Log)
}
