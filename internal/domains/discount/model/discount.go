package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType is a closed set: every switch over it must handle
// DiscountTypeFixed and DiscountTypePercentage.
type DiscountType uint8

const (
	DiscountTypeFixed DiscountType = iota + 1
	DiscountTypePercentage
)

const (
	discountTypeFixedName      = "fixed"
	discountTypePercentageName = "percentage"
)

// ParseDiscountType accepts "fixed" or "percentage", case-insensitive
func ParseDiscountType(s string) (DiscountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case discountTypeFixedName:
		return DiscountTypeFixed, nil
	case discountTypePercentageName:
		return DiscountTypePercentage, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDiscountType, s)
	}
}

func (t DiscountType) String() string {
	switch t {
	case DiscountTypeFixed:
		return discountTypeFixedName
	case DiscountTypePercentage:
		return discountTypePercentageName
	default:
		return fmt.Sprintf("DiscountType(%d)", uint8(t))
	}
}

func (t DiscountType) Valid() bool {
	return t == DiscountTypeFixed || t == DiscountTypePercentage
}

func (t DiscountType) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, ErrInvalidDiscountType
	}
	return json.Marshal(t.String())
}

func (t *DiscountType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidDiscountType
	}
	parsed, err := ParseDiscountType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Scan reads the text column discounts.discount_type
func (t *DiscountType) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("scan discount_type: unsupported type %T", src)
	}

	parsed, err := ParseDiscountType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t DiscountType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, ErrInvalidDiscountType
	}
	return t.String(), nil
}

// Discount is a reusable code with a limited number of remaining uses.
// MaxDiscountAmount only applies to percentage discounts; nil means uncapped.
type Discount struct {
	ID                int64            `json:"id"`
	DiscountType      DiscountType     `json:"discount_type"`
	DiscountValue     decimal.Decimal  `json:"discount_value"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount"`
	RemainingUses     int              `json:"user_left"`
	ValidUntil        time.Time        `json:"valid_until"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// Available reports whether the code can still be applied
func (d *Discount) Available() bool {
	return d.RemainingUses > 0
}
