package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "credit-approval/internal/adapter/http"
	"credit-approval/internal/adapter/middleware"
	"credit-approval/internal/adapter/repository/mysql"
	"credit-approval/internal/config"
	"credit-approval/internal/credit"
	"credit-approval/internal/infrastructure/cache"
	"credit-approval/internal/infrastructure/db"
	customerUC "credit-approval/internal/usecase/customer"
	loanUC "credit-approval/internal/usecase/loan"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	customers := mysql.NewCustomerRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	tx := mysql.NewGormUoW(gdb)
	engine := credit.NewEngine()

	h := httpadp.NewHandler()
	ch := httpadp.NewCustomerHandler(customerUC.NewUsecase(customers))
	lh := httpadp.NewLoanHandler(loanUC.NewUsecase(customers, loans, tx, engine))

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idem := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// routes
	e.GET("/health", h.Health)
	e.POST("/register", ch.Register, idem)
	e.POST("/check-eligibility", lh.CheckEligibility)
	e.POST("/create-loan", lh.CreateLoan, idem)
	e.GET("/view-loan/:loan_id", lh.GetLoan)
	e.GET("/view-loans/:customer_id", lh.ListCustomerLoans)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
