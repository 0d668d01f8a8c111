package importer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"credit-approval/internal/credit"
	customerDomain "credit-approval/internal/domain/customer"
	loanDomain "credit-approval/internal/domain/loan"
	"credit-approval/internal/domain/uow"
	"credit-approval/pkg/id"
)

// Importer loads historical customer and loan records from xlsx workbooks.
// It reuses the same derivation rules as the online path: installments always
// come from credit.Installment and a missing approved limit falls back to the
// raw 36x default (import records may override the limit, unlike
// registration).
type Importer struct {
	uow uow.UnitOfWork
}

func New(u uow.UnitOfWork) *Importer { return &Importer{uow: u} }

// Summary reports one import run. Skipped rows are logged and counted, never
// fatal: a loan whose customer phone is unknown must not abort the batch.
type Summary struct {
	JobID             string
	CustomersImported int
	CustomersSkipped  int
	LoansImported     int
	LoansSkipped      int
}

// Run imports customers first, then loans keyed by customer phone number.
// Each sheet is applied in its own transaction.
func (im *Importer) Run(ctx context.Context, customerPath, loanPath string) (*Summary, error) {
	s := &Summary{JobID: uuid.NewString()}
	log.Printf("import %s: starting (customers=%s loans=%s)", s.JobID, customerPath, loanPath)

	if err := im.importCustomers(ctx, customerPath, s); err != nil {
		return nil, fmt.Errorf("import customers: %w", err)
	}
	if err := im.importLoans(ctx, loanPath, s); err != nil {
		return nil, fmt.Errorf("import loans: %w", err)
	}

	log.Printf("import %s: done customers=%d/%d loans=%d/%d (imported/skipped counts: %d skipped customers, %d skipped loans)",
		s.JobID, s.CustomersImported, s.CustomersImported+s.CustomersSkipped,
		s.LoansImported, s.LoansImported+s.LoansSkipped,
		s.CustomersSkipped, s.LoansSkipped)
	return s, nil
}

func (im *Importer) importCustomers(ctx context.Context, path string, s *Summary) error {
	rows, header, err := readSheet(path)
	if err != nil {
		return err
	}
	return im.uow.WithinTx(ctx, func(r uow.Repos) error {
		for i, row := range rows {
			c, err := customerFromRow(header, row)
			if err != nil {
				log.Printf("import %s: customer row %d skipped: %v", s.JobID, i+2, err)
				s.CustomersSkipped++
				continue
			}
			if err := r.Customers.Create(ctx, c); err != nil {
				return err
			}
			s.CustomersImported++
		}
		return nil
	})
}

func (im *Importer) importLoans(ctx context.Context, path string, s *Summary) error {
	rows, header, err := readSheet(path)
	if err != nil {
		return err
	}
	return im.uow.WithinTx(ctx, func(r uow.Repos) error {
		for i, row := range rows {
			l, phone, err := loanFromRow(header, row)
			if err != nil {
				log.Printf("import %s: loan row %d skipped: %v", s.JobID, i+2, err)
				s.LoansSkipped++
				continue
			}
			c, err := r.Customers.GetByPhone(ctx, phone)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					log.Printf("import %s: loan row %d skipped: no customer with phone %s", s.JobID, i+2, phone)
					s.LoansSkipped++
					continue
				}
				return err
			}
			l.CustomerID = c.CustomerID
			if err := r.Loans.Create(ctx, l); err != nil {
				return err
			}
			s.LoansImported++
		}
		return nil
	})
}

// readSheet opens the first sheet and splits it into a header index and data rows.
func readSheet(path string) ([][]string, map[string]int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 1 {
		return nil, nil, fmt.Errorf("sheet %q is empty", sheet)
	}
	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return rows[1:], header, nil
}

func cell(header map[string]int, row []string, name string) (string, bool) {
	i, ok := header[name]
	if !ok || i >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[i])
	return v, v != ""
}

func customerFromRow(header map[string]int, row []string) (*customerDomain.Customer, error) {
	first, _ := cell(header, row, "first_name")
	last, _ := cell(header, row, "last_name")
	phoneRaw, ok := cell(header, row, "phone_number")
	if !ok {
		return nil, errors.New("missing phone_number")
	}
	phone := digitsOnly(phoneRaw)
	if phone == "" {
		return nil, fmt.Errorf("phone_number %q has no digits", phoneRaw)
	}

	salaryRaw, ok := cell(header, row, "monthly_salary")
	if !ok {
		return nil, errors.New("missing monthly_salary")
	}
	salary, err := decimal.NewFromString(salaryRaw)
	if err != nil || salary.IsNegative() {
		return nil, fmt.Errorf("bad monthly_salary %q", salaryRaw)
	}

	ageRaw, ok := cell(header, row, "age")
	if !ok {
		return nil, errors.New("missing age")
	}
	age, err := strconv.Atoi(ageRaw)
	if err != nil || age < 18 || age > 120 {
		return nil, fmt.Errorf("bad age %q", ageRaw)
	}

	// historical records may carry their own limit; otherwise the raw 36x
	// default applies (not the registration rounding rule)
	limit := credit.DefaultLimit(salary)
	if v, ok := cell(header, row, "approved_limit"); ok {
		if d, err := decimal.NewFromString(v); err == nil {
			limit = d
		}
	}
	debt := decimal.Zero
	if v, ok := cell(header, row, "current_debt"); ok {
		if d, err := decimal.NewFromString(v); err == nil && !d.IsNegative() {
			debt = d
		}
	}

	return &customerDomain.Customer{
		CustomerID:    id.NewID32(),
		FirstName:     first,
		LastName:      last,
		PhoneNumber:   phone,
		MonthlySalary: salary.Round(2),
		ApprovedLimit: limit.Round(2),
		CurrentDebt:   debt.Round(2),
		Age:           age,
	}, nil
}

func loanFromRow(header map[string]int, row []string) (*loanDomain.Loan, string, error) {
	phoneRaw, ok := cell(header, row, "customer_phone_number")
	if !ok {
		return nil, "", errors.New("missing customer_phone_number")
	}
	phone := digitsOnly(phoneRaw)

	amountRaw, ok := cell(header, row, "loan_amount")
	if !ok {
		return nil, "", errors.New("missing loan_amount")
	}
	amount, err := decimal.NewFromString(amountRaw)
	if err != nil || !amount.IsPositive() {
		return nil, "", fmt.Errorf("bad loan_amount %q", amountRaw)
	}

	tenureRaw, ok := cell(header, row, "tenure")
	if !ok {
		return nil, "", errors.New("missing tenure")
	}
	tenure, err := strconv.Atoi(tenureRaw)
	if err != nil || tenure < 1 || tenure > 360 {
		return nil, "", fmt.Errorf("bad tenure %q", tenureRaw)
	}

	rateRaw, ok := cell(header, row, "interest_rate")
	if !ok {
		return nil, "", errors.New("missing interest_rate")
	}
	rate, err := decimal.NewFromString(rateRaw)
	if err != nil || rate.IsNegative() {
		return nil, "", fmt.Errorf("bad interest_rate %q", rateRaw)
	}

	startRaw, ok := cell(header, row, "start_date")
	if !ok {
		return nil, "", errors.New("missing start_date")
	}
	start, err := parseDate(startRaw)
	if err != nil {
		return nil, "", fmt.Errorf("bad start_date %q", startRaw)
	}
	end := start.AddDate(0, tenure, 0)
	if v, ok := cell(header, row, "end_date"); ok {
		if d, err := parseDate(v); err == nil {
			end = d
		}
	}

	paid := 0
	if v, ok := cell(header, row, "emis_paid_on_time"); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			paid = n
		}
	}
	if paid > tenure {
		return nil, "", fmt.Errorf("emis_paid_on_time %d exceeds tenure %d", paid, tenure)
	}

	// bulk import may set any terminal status directly
	status := loanDomain.StatusApproved
	if v, ok := cell(header, row, "status"); ok {
		switch st := loanDomain.Status(strings.ToLower(v)); st {
		case loanDomain.StatusPending, loanDomain.StatusApproved, loanDomain.StatusRejected, loanDomain.StatusClosed:
			status = st
		default:
			return nil, "", fmt.Errorf("bad status %q", v)
		}
	}

	// installment is always recomputed, never taken from the workbook
	installment, err := credit.Installment(amount, rate, tenure)
	if err != nil {
		return nil, "", err
	}

	return &loanDomain.Loan{
		LoanID:             id.NewID32(),
		LoanAmount:         amount.Round(2),
		Tenure:             tenure,
		InterestRate:       rate.Round(2),
		MonthlyInstallment: installment,
		EMIsPaidOnTime:     paid,
		StartDate:          start,
		EndDate:            end,
		Status:             status,
	}, phone, nil
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06 15:04",
	"01/02/2006",
	"02/01/2006",
	time.RFC3339,
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func digitsOnly(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
