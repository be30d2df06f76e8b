package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/programmableapple/financialAdvisor/internal/handlers"
	"github.com/programmableapple/financialAdvisor/internal/middleware"
)

func NewRouter(deps *handlers.Deps, mw *middleware.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)

	ah := handlers.NewAuthHandlers(deps)
	th := handlers.NewTransactionHandlers(deps)
	bh := handlers.NewBudgetHandlers(deps)
	gh := handlers.NewGoalHandlers(deps)
	rh := handlers.NewRecurringHandlers(deps)
	ch := handlers.NewCategoryHandlers(deps)

	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", ah.AuthRoutes(mw.BearerAuth))

		api.Group(func(protected chi.Router) {
			protected.Use(mw.BearerAuth)
			protected.Mount("/transactions", th.TransactionRoutes())
			protected.Mount("/budgets", bh.BudgetRoutes())
			protected.Mount("/goals", gh.GoalRoutes())
			protected.Mount("/recurring", rh.RecurringRoutes())
			protected.Mount("/categories", ch.CategoryRoutes())
		})
	})
	return r
}
