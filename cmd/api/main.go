package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "bank-credit-portal/internal/adapter/http"
	"bank-credit-portal/internal/adapter/middleware"
	"bank-credit-portal/internal/adapter/repository/mysql"
	"bank-credit-portal/internal/config"
	"bank-credit-portal/internal/infrastructure/cache"
	"bank-credit-portal/internal/infrastructure/db"
	assessmentUC "bank-credit-portal/internal/usecase/assessment"
	enterpriseUC "bank-credit-portal/internal/usecase/enterprise"
	ledgerUC "bank-credit-portal/internal/usecase/ledger"
	lendingUC "bank-credit-portal/internal/usecase/lending"
	reportingUC "bank-credit-portal/internal/usecase/reporting"
)

func main() {
	_ = godotenv.Load() // best-effort; env wins

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "err", err)
		os.Exit(1)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		slog.Error("mysql connect failed", "err", err)
		os.Exit(1)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		slog.Error("redis connect failed", "err", err)
		os.Exit(1)
	}

	// repositories + transaction boundary
	ents := mysql.NewEnterpriseRepository(gdb)
	accts := mysql.NewAccountRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	history := mysql.NewAssessmentRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	// usecases
	enterprises := enterpriseUC.NewUsecase(ents, uow)
	ledger := ledgerUC.NewUsecase(ents, accts, uow)
	lending := lendingUC.NewUsecase(ents, loans, uow, cfg.LoanAPR, cfg.RepayInterestRate)
	assessments := assessmentUC.NewUsecase(ents, history)
	reporting := reportingUC.NewUsecase(ents, loans, history)

	// handlers
	h := httpadp.NewHandler()
	entH := httpadp.NewEnterpriseHandler(enterprises)
	ledH := httpadp.NewLedgerHandler(ledger)
	loanH := httpadp.NewLoanHandler(lending)
	assH := httpadp.NewAssessmentHandler(assessments)
	repH := httpadp.NewReportingHandler(reporting)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)

	e.POST("/enterprises", entH.Register)
	e.GET("/enterprises/:enterprise_id", entH.Get)

	e.GET("/enterprises/:enterprise_id/account", ledH.GetAccount)
	e.POST("/enterprises/:enterprise_id/account/deposit", ledH.Deposit, idemp)
	e.POST("/enterprises/:enterprise_id/account/withdraw", ledH.Withdraw, idemp)
	e.GET("/enterprises/:enterprise_id/transactions", ledH.ListTransactions)

	e.POST("/enterprises/:enterprise_id/loans", loanH.Apply, idemp)
	e.GET("/enterprises/:enterprise_id/loans", loanH.List)
	e.GET("/enterprises/:enterprise_id/repayments", loanH.ListRepayments)
	e.GET("/loans/:loan_id", loanH.Get)
	e.POST("/loans/:loan_id/approve", loanH.Approve)
	e.POST("/loans/:loan_id/reject", loanH.Reject)
	e.POST("/loans/:loan_id/repay", loanH.Repay, idemp)

	e.POST("/enterprises/:enterprise_id/assessments", assH.Assess)
	e.GET("/enterprises/:enterprise_id/assessments/latest", assH.Latest)
	e.GET("/enterprises/:enterprise_id/assessments", assH.History)

	e.GET("/reports/overview", repH.Overview)

	addr := ":" + cfg.AppPort
	slog.Info("listening", "addr", addr)
	if err := e.Start(addr); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
