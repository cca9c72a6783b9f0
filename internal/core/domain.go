package core

import (
	"errors"
	"strings"
)

const (
	// Debit records money coming in and increases totals, Credit records
	// money going out and decreases them. The naming is inverted relative
	// to common accounting usage; it is kept as-is because every stored
	// record and every consumer already follows this convention.
	Debit  OrderType = "debit"
	Credit OrderType = "credit"
)

type (
	OrderType string

	// Category is a user-defined label with a display color.
	Category struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
	}

	// Order is a single recorded financial transaction. CreatedAt is
	// milliseconds since the Unix epoch. CategoryID may reference a
	// category that has since been deleted; Amount is always a positive
	// magnitude, the cash-flow direction is carried by Type.
	Order struct {
		ID         int64     `json:"id"`
		CreatedAt  int64     `json:"created_at"`
		CategoryID int64     `json:"category_id"`
		Amount     Money     `json:"amount"`
		Note       string    `json:"note"`
		Type       OrderType `json:"type"`
	}

	Money struct {
		Cents int64 `json:"cents"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidType     = errors.New("invalid order type")
	ErrInvalidCreated  = errors.New("invalid created_at timestamp")
	ErrInvalidCategory = errors.New("invalid category reference")
	ErrEmptyName       = errors.New("empty category name")
	ErrEmptyColor      = errors.New("empty category color")
)

func (t OrderType) Valid() bool {
	switch t {
	case Debit, Credit:
		return true
	default:
		return false
	}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if len(strings.TrimSpace(c.Color)) == 0 {
		return ErrEmptyColor
	}
	return nil
}

func (o Order) Validate() error {
	if o.CreatedAt <= 0 {
		return ErrInvalidCreated
	}
	if o.CategoryID < 0 {
		return ErrInvalidCategory
	}
	if err := o.Amount.Validate(); err != nil {
		return err
	}
	if !o.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}
