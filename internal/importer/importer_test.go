package importer

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"credit-approval/internal/adapter/repository/mysql"
	loanDomain "credit-approval/internal/domain/loan"
)

// --- SQLite-friendly schema only for tests (no ENUM/CHAR/DECIMAL types) ---

type customerSQLite struct {
	ID            uint64          `gorm:"primaryKey;column:id"`
	CustomerID    string          `gorm:"size:32;column:customer_id"`
	FirstName     string          `gorm:"column:first_name"`
	LastName      string          `gorm:"column:last_name"`
	PhoneNumber   string          `gorm:"size:15;column:phone_number"`
	MonthlySalary decimal.Decimal `gorm:"type:text;column:monthly_salary"`
	ApprovedLimit decimal.Decimal `gorm:"type:text;column:approved_limit"`
	CurrentDebt   decimal.Decimal `gorm:"type:text;column:current_debt"`
	Age           int             `gorm:"column:age"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (customerSQLite) TableName() string { return "customers" }

type loanSQLite struct {
	ID                 uint64          `gorm:"primaryKey;column:id"`
	LoanID             string          `gorm:"size:32;column:loan_id"`
	CustomerID         string          `gorm:"size:32;column:customer_id"`
	LoanAmount         decimal.Decimal `gorm:"type:text;column:loan_amount"`
	Tenure             int             `gorm:"column:tenure"`
	InterestRate       decimal.Decimal `gorm:"type:text;column:interest_rate"`
	MonthlyInstallment decimal.Decimal `gorm:"type:text;column:monthly_installment"`
	EMIsPaidOnTime     int             `gorm:"column:emis_paid_on_time"`
	StartDate          time.Time       `gorm:"column:start_date"`
	EndDate            time.Time       `gorm:"column:end_date"`
	Status             string          `gorm:"type:text;column:status"`
	CreatedAt          time.Time       `gorm:"column:created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "loans" }

func openImportTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&customerSQLite{}, &loanSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

// writeWorkbook creates an xlsx file with a header row plus data rows.
func writeWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

func writeCustomerWorkbook(t *testing.T, dir string, rows [][]any) string {
	t.Helper()
	path := filepath.Join(dir, "customer_data.xlsx")
	header := []any{"first_name", "last_name", "phone_number", "monthly_salary", "approved_limit", "current_debt", "age"}
	writeWorkbook(t, path, append([][]any{header}, rows...))
	return path
}

func writeLoanWorkbook(t *testing.T, dir string, rows [][]any) string {
	t.Helper()
	path := filepath.Join(dir, "loan_data.xlsx")
	header := []any{"customer_phone_number", "loan_amount", "tenure", "interest_rate", "start_date", "end_date", "emis_paid_on_time", "status"}
	writeWorkbook(t, path, append([][]any{header}, rows...))
	return path
}

func TestRun_ImportsCustomersAndLoans(t *testing.T) {
	db := openImportTestDB(t)
	dir := t.TempDir()
	ctx := context.Background()

	customerPath := writeCustomerWorkbook(t, dir, [][]any{
		{"Asha", "Verma", "08012345678", "50000", "1800000", "0", "30"},
		{"Budi", "Santoso", "08155554444", "75000", "", "", "42"}, // limit falls back to 36x
	})
	loanPath := writeLoanWorkbook(t, dir, [][]any{
		{"08012345678", "100000", "12", "10", "2025-01-01", "", "5", "approved"},
		{"08012345678", "500000", "24", "12.5", "2024-06-15", "2026-06-15", "24", "closed"},
		{"08155554444", "200000", "12", "0", "2025-03-01", "", "0", ""}, // status defaults to approved
	})

	im := New(mysql.NewGormUoW(db))
	sum, err := im.Run(ctx, customerPath, loanPath)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.JobID == "" {
		t.Fatal("missing job id")
	}
	if sum.CustomersImported != 2 || sum.CustomersSkipped != 0 {
		t.Fatalf("customers = %d/%d skipped, want 2/0", sum.CustomersImported, sum.CustomersSkipped)
	}
	if sum.LoansImported != 3 || sum.LoansSkipped != 0 {
		t.Fatalf("loans = %d/%d skipped, want 3/0", sum.LoansImported, sum.LoansSkipped)
	}

	customers := mysql.NewCustomerRepository(db)
	loans := mysql.NewLoanRepository(db)

	asha, err := customers.GetByPhone(ctx, "08012345678")
	if err != nil {
		t.Fatalf("GetByPhone asha: %v", err)
	}
	if !asha.ApprovedLimit.Equal(decimal.NewFromInt(1800000)) {
		t.Errorf("asha limit = %s", asha.ApprovedLimit)
	}
	if len(asha.CustomerID) != 32 {
		t.Errorf("asha customer_id = %q", asha.CustomerID)
	}

	// blank limit cell -> raw 36x salary, no rounding to 100k
	budi, err := customers.GetByPhone(ctx, "08155554444")
	if err != nil {
		t.Fatalf("GetByPhone budi: %v", err)
	}
	if !budi.ApprovedLimit.Equal(decimal.NewFromInt(2700000)) {
		t.Errorf("budi limit = %s, want 2700000", budi.ApprovedLimit)
	}

	ashaLoans, err := loans.ListByCustomerID(ctx, asha.CustomerID)
	if err != nil {
		t.Fatalf("ListByCustomerID: %v", err)
	}
	if len(ashaLoans) != 2 {
		t.Fatalf("asha loans = %d, want 2", len(ashaLoans))
	}
	// installment is recomputed from the terms, not read from the sheet
	for _, l := range ashaLoans {
		switch l.Tenure {
		case 12:
			if !l.MonthlyInstallment.Equal(decimal.RequireFromString("8791.59")) {
				t.Errorf("installment = %s, want 8791.59", l.MonthlyInstallment)
			}
		case 24:
			if !l.MonthlyInstallment.Equal(decimal.RequireFromString("23653.65")) {
				t.Errorf("installment = %s, want 23653.65", l.MonthlyInstallment)
			}
		}
	}

	budiLoans, err := loans.ListApprovedByCustomerID(ctx, budi.CustomerID)
	if err != nil {
		t.Fatalf("ListApprovedByCustomerID: %v", err)
	}
	if len(budiLoans) != 1 {
		t.Fatalf("budi approved loans = %d, want 1", len(budiLoans))
	}
	// zero-rate loan: principal / tenure
	if !budiLoans[0].MonthlyInstallment.Equal(decimal.RequireFromString("16666.67")) {
		t.Errorf("zero-rate installment = %s, want 16666.67", budiLoans[0].MonthlyInstallment)
	}
	if budiLoans[0].Status != loanDomain.StatusApproved {
		t.Errorf("status = %s, want approved", budiLoans[0].Status)
	}
}

func TestRun_SkipsBadRowsAndUnknownPhones(t *testing.T) {
	db := openImportTestDB(t)
	dir := t.TempDir()
	ctx := context.Background()

	customerPath := writeCustomerWorkbook(t, dir, [][]any{
		{"Asha", "Verma", "08012345678", "50000", "1800000", "0", "30"},
		{"Nope", "NoPhone", "", "50000", "", "", "30"},        // no phone digits
		{"Bad", "Salary", "08100000001", "oops", "", "", "30"}, // unparseable salary
		{"Too", "Young", "08100000002", "50000", "", "", "12"}, // age below range
	})
	loanPath := writeLoanWorkbook(t, dir, [][]any{
		{"08012345678", "100000", "12", "10", "2025-01-01", "", "5", "approved"},
		{"08999999999", "100000", "12", "10", "2025-01-01", "", "5", "approved"},  // unknown phone
		{"08012345678", "100000", "12", "10", "not-a-date", "", "5", "approved"},  // bad date
		{"08012345678", "100000", "12", "10", "2025-01-01", "", "13", "approved"}, // paid > tenure
		{"08012345678", "100000", "12", "10", "2025-01-01", "", "5", "weird"},     // bad status
	})

	im := New(mysql.NewGormUoW(db))
	sum, err := im.Run(ctx, customerPath, loanPath)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.CustomersImported != 1 || sum.CustomersSkipped != 3 {
		t.Fatalf("customers = %d imported / %d skipped, want 1/3", sum.CustomersImported, sum.CustomersSkipped)
	}
	if sum.LoansImported != 1 || sum.LoansSkipped != 4 {
		t.Fatalf("loans = %d imported / %d skipped, want 1/4", sum.LoansImported, sum.LoansSkipped)
	}
}

func TestRun_MissingFileFails(t *testing.T) {
	db := openImportTestDB(t)
	dir := t.TempDir()

	im := New(mysql.NewGormUoW(db))
	if _, err := im.Run(context.Background(), filepath.Join(dir, "nope.xlsx"), filepath.Join(dir, "nope2.xlsx")); err == nil {
		t.Fatal("expected error for missing workbook")
	}
}

func TestLoanFromRow_EndDateDerivedFromTenure(t *testing.T) {
	header := map[string]int{
		"customer_phone_number": 0, "loan_amount": 1, "tenure": 2,
		"interest_rate": 3, "start_date": 4,
	}
	l, phone, err := loanFromRow(header, []string{"08012345678", "100000", "12", "10", "2025-01-15"})
	if err != nil {
		t.Fatalf("loanFromRow: %v", err)
	}
	if phone != "08012345678" {
		t.Fatalf("phone = %q", phone)
	}
	want := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !l.EndDate.Equal(want) {
		t.Fatalf("end date = %v, want %v", l.EndDate, want)
	}
}
