package price

import (
	"math"
	"strings"
	"time"
)

// Price is a single priced catalog entry. JSON field names follow the
// storage API wire format, which the original deployment established.
type Price struct {
	ID          string    `json:"id"`
	Brand       string    `json:"marca"`
	Code        string    `json:"codigo"`
	Value       float64   `json:"preco"`
	Description string    `json:"descricao"`
	UpdatedAt   time.Time `json:"timestamp"`
}

// Fields carries the user-editable part of a Price.
type Fields struct {
	Brand       string  `json:"marca"`
	Code        string  `json:"codigo"`
	Value       float64 `json:"preco"`
	Description string  `json:"descricao"`
}

// Normalize trims surrounding whitespace from the text fields.
func (f *Fields) Normalize() {
	f.Brand = strings.TrimSpace(f.Brand)
	f.Code = strings.TrimSpace(f.Code)
	f.Description = strings.TrimSpace(f.Description)
}

// Validate checks the required-field rules. Callers are expected to
// Normalize first.
func (f Fields) Validate() error {
	if f.Brand == "" {
		return &ValidationError{Field: "marca", Err: ErrFieldRequired}
	}
	if f.Code == "" {
		return &ValidationError{Field: "codigo", Err: ErrFieldRequired}
	}
	if f.Description == "" {
		return &ValidationError{Field: "descricao", Err: ErrFieldRequired}
	}
	if f.Value < 0 || math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
		return &ValidationError{Field: "preco", Err: ErrInvalidValue}
	}
	return nil
}

// Apply returns a Price with the given id and timestamp carrying these
// fields.
func (f Fields) Apply(id string, ts time.Time) Price {
	return Price{
		ID:          id,
		Brand:       f.Brand,
		Code:        f.Code,
		Value:       f.Value,
		Description: f.Description,
		UpdatedAt:   ts,
	}
}

// FieldsOf extracts the editable fields from a Price.
func FieldsOf(p Price) Fields {
	return Fields{
		Brand:       p.Brand,
		Code:        p.Code,
		Value:       p.Value,
		Description: p.Description,
	}
}
