package core

import (
	"errors"
	"strings"
	"time"
)

// Currency is fixed: amounts are whole Colombian pesos.
const Currency = "COP"

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

const (
	TypeIncome  Type = "ingreso"
	TypeExpense Type = "gasto"
)

const (
	MethodCash     Method = "efectivo"
	MethodDebit    Method = "tarjeta_debito"
	MethodCredit   Method = "tarjeta_credito"
	MethodTransfer Method = "transferencia"
	MethodNequi    Method = "nequi"
	MethodDavi     Method = "daviplata"
	MethodOther    Method = "otro"
)

const (
	CategoryFood          Category = "alimentacion"
	CategoryTransport     Category = "transporte"
	CategoryUtilities     Category = "servicios"
	CategoryHealth        Category = "salud"
	CategoryEntertainment Category = "entretenimiento"
	CategoryEducation     Category = "educacion"
	CategoryHousing       Category = "vivienda"
	CategoryClothing      Category = "ropa"
	CategoryTech          Category = "tecnologia"
	CategorySports        Category = "deporte"
	CategoryPets          Category = "mascotas"
	CategorySavings       Category = "ahorro"
	CategoryLoan          Category = "prestamo"
	CategoryOther         Category = "otro"
)

type (
	Status   string
	Type     string
	Method   string
	Category string

	// Payment is a single income or expense transaction belonging to one user.
	// Amount is in whole pesos; there is no minor unit.
	Payment struct {
		ID          string     `json:"id"`
		Amount      int64      `json:"amount"`
		Currency    string     `json:"currency"`
		Status      Status     `json:"status"`
		Method      Method     `json:"method"`
		Type        Type       `json:"type"`
		Description string     `json:"description"`
		Category    Category   `json:"category"`
		Notes       string     `json:"notes,omitempty"`
		CreatedAt   time.Time  `json:"createdAt"`
		UpdatedAt   time.Time  `json:"updatedAt"`
		CompletedAt *time.Time `json:"completedAt,omitempty"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidMethod    = errors.New("invalid payment method")
	ErrInvalidType      = errors.New("invalid payment type")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrEmptyDescription = errors.New("empty description")

	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
)

// IsValidationError reports whether err is one of the payment validation
// failures, as opposed to a storage or infrastructure fault.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidAmount, ErrInvalidStatus, ErrInvalidMethod,
		ErrInvalidType, ErrInvalidCategory, ErrEmptyDescription,
		ErrDescriptionTooLong,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusCompleted:
		return nil
	}
	return ErrInvalidStatus
}

func (t Type) Validate() error {
	switch t {
	case TypeIncome, TypeExpense:
		return nil
	}
	return ErrInvalidType
}

func (m Method) Validate() error {
	switch m {
	case MethodCash, MethodDebit, MethodCredit, MethodTransfer, MethodNequi, MethodDavi, MethodOther:
		return nil
	}
	return ErrInvalidMethod
}

func (c Category) Validate() error {
	switch c {
	case CategoryFood, CategoryTransport, CategoryUtilities, CategoryHealth,
		CategoryEntertainment, CategoryEducation, CategoryHousing, CategoryClothing,
		CategoryTech, CategorySports, CategoryPets, CategorySavings, CategoryLoan,
		CategoryOther:
		return nil
	}
	return ErrInvalidCategory
}

func (p Payment) Validate() error {
	if p.Amount < 0 {
		return ErrInvalidAmount
	}
	if len(strings.TrimSpace(p.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(p.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if err := p.Status.Validate(); err != nil {
		return err
	}
	if err := p.Method.Validate(); err != nil {
		return err
	}
	if err := p.Type.Validate(); err != nil {
		return err
	}
	return p.Category.Validate()
}

// Completed reports whether the payment has settled.
func (p Payment) Completed() bool {
	return p.Status == StatusCompleted
}
