package handlers

import (
	"log/slog"

	"github.com/programmableapple/financialAdvisor/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	AuthSvc         authService
	TransactionSvc  transactionService
	AnalyticsSvc    analyticsService
	BudgetSvc       budgetService
	GoalSvc         goalService
	RecurringSvc    recurringService
	CategorySvc     categoryService
}
