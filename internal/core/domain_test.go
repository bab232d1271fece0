package core

import (
	"errors"
	"testing"
)

func validPayment() Payment {
	return Payment{
		ID:          "TRX-1",
		Amount:      25000,
		Currency:    Currency,
		Status:      StatusCompleted,
		Method:      MethodCash,
		Type:        TypeExpense,
		Description: "almuerzo",
		Category:    CategoryFood,
	}
}

func TestPaymentValidate(t *testing.T) {
	if err := validPayment().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Payment)
		want   error
	}{
		{"negative amount", func(p *Payment) { p.Amount = -1 }, ErrInvalidAmount},
		{"empty description", func(p *Payment) { p.Description = "   " }, ErrEmptyDescription},
		{"bad status", func(p *Payment) { p.Status = "done" }, ErrInvalidStatus},
		{"bad method", func(p *Payment) { p.Method = "cheque" }, ErrInvalidMethod},
		{"bad type", func(p *Payment) { p.Type = "transfer" }, ErrInvalidType},
		{"bad category", func(p *Payment) { p.Category = "misc" }, ErrInvalidCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPayment()
			tc.mutate(&p)
			if err := p.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPaymentValidateZeroAmount(t *testing.T) {
	p := validPayment()
	p.Amount = 0
	if err := p.Validate(); err != nil {
		t.Fatalf("zero amount should be valid, got %v", err)
	}
}

func TestPaymentValidateLongDescription(t *testing.T) {
	p := validPayment()
	for len(p.Description) <= 200 {
		p.Description += p.Description
	}
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for long description")
	}
}
