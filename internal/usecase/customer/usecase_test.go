package customer

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "credit-approval/internal/domain/customer"
	"credit-approval/internal/testutil/customermock"
)

func TestRegister_DerivesRoundedLimit(t *testing.T) {
	var created *domain.Customer
	uc := NewUsecase(&customermock.Repo{
		GetByPhoneFn: func(ctx context.Context, phone string) (*domain.Customer, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, c *domain.Customer) error {
			created = c
			return nil
		},
	})

	dto, err := uc.Register(context.Background(), RegisterInput{
		FirstName:     "Asha",
		LastName:      "Verma",
		Age:           30,
		MonthlyIncome: decimal.NewFromInt(50000),
		PhoneNumber:   "+91 98765-43210",
	})
	if err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if created == nil {
		t.Fatal("Create was not called")
	}
	if !created.ApprovedLimit.Equal(decimal.NewFromInt(1_800_000)) {
		t.Fatalf("approved limit = %s, want 1800000", created.ApprovedLimit)
	}
	if !created.CurrentDebt.IsZero() {
		t.Fatalf("current debt = %s, want 0", created.CurrentDebt)
	}
	if len(created.CustomerID) != 32 {
		t.Fatalf("customer id length = %d", len(created.CustomerID))
	}
	if dto.Name != "Asha Verma" {
		t.Fatalf("name = %q", dto.Name)
	}
	if !dto.ApprovedLimit.Equal(created.ApprovedLimit) {
		t.Fatalf("dto limit = %s", dto.ApprovedLimit)
	}
}

func TestRegister_CanonicalizesPhone(t *testing.T) {
	var created *domain.Customer
	var lookedUp string
	uc := NewUsecase(&customermock.Repo{
		GetByPhoneFn: func(ctx context.Context, phone string) (*domain.Customer, error) {
			lookedUp = phone
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, c *domain.Customer) error {
			created = c
			return nil
		},
	})

	_, err := uc.Register(context.Background(), RegisterInput{
		FirstName: "A", LastName: "B", Age: 25,
		MonthlyIncome: decimal.NewFromInt(10000),
		PhoneNumber:   "(080) 1234-5678",
	})
	if err != nil {
		t.Fatalf("Register err: %v", err)
	}
	const want = "08012345678"
	if lookedUp != want {
		t.Fatalf("duplicate lookup used %q, want %q", lookedUp, want)
	}
	if created.PhoneNumber != want {
		t.Fatalf("stored phone %q, want %q", created.PhoneNumber, want)
	}
}

func TestRegister_RejectsPhoneWithoutDigits(t *testing.T) {
	uc := NewUsecase(&customermock.Repo{
		CreateFn: func(ctx context.Context, c *domain.Customer) error {
			t.Fatal("Create must not be called")
			return nil
		},
	})
	_, err := uc.Register(context.Background(), RegisterInput{
		FirstName: "A", LastName: "B", Age: 25,
		MonthlyIncome: decimal.NewFromInt(10000),
		PhoneNumber:   "none",
	})
	if !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("err = %v, want ErrInvalidPhone", err)
	}
}

func TestRegister_DuplicatePhone(t *testing.T) {
	uc := NewUsecase(&customermock.Repo{
		GetByPhoneFn: func(ctx context.Context, phone string) (*domain.Customer, error) {
			return &domain.Customer{CustomerID: "existing", PhoneNumber: phone}, nil
		},
		CreateFn: func(ctx context.Context, c *domain.Customer) error {
			t.Fatal("Create must not be called for a taken phone")
			return nil
		},
	})
	_, err := uc.Register(context.Background(), RegisterInput{
		FirstName: "A", LastName: "B", Age: 25,
		MonthlyIncome: decimal.NewFromInt(10000),
		PhoneNumber:   "08012345678",
	})
	if !errors.Is(err, domain.ErrPhoneTaken) {
		t.Fatalf("err = %v, want ErrPhoneTaken", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	uc := NewUsecase(&customermock.Repo{})
	_, err := uc.Get(context.Background(), "ffffffffffffffffffffffffffffffff")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
