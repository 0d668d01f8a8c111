package main

import (
	"context"
	"flag"
	"log"
	"os"

	"credit-approval/internal/adapter/repository/mysql"
	"credit-approval/internal/config"
	"credit-approval/internal/importer"
	"credit-approval/internal/infrastructure/db"
)

func main() {
	customerFile := flag.String("customer-file", "customer_data.xlsx", "path to the customer data workbook")
	loanFile := flag.String("loan-file", "loan_data.xlsx", "path to the loan data workbook")
	flag.Parse()

	for _, p := range []string{*customerFile, *loanFile} {
		if _, err := os.Stat(p); err != nil {
			log.Fatalf("input file %s: %v", p, err)
		}
	}

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

	im := importer.New(mysql.NewGormUoW(gdb))
	sum, err := im.Run(context.Background(), *customerFile, *loanFile)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("job %s: %d customers imported (%d skipped), %d loans imported (%d skipped)",
		sum.JobID, sum.CustomersImported, sum.CustomersSkipped, sum.LoansImported, sum.LoansSkipped)
}
