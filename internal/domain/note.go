package domain

import "github.com/shopspring/decimal"

// Unit is the normalized tag of a quantity unit
type Unit string

const (
	UnitNone     Unit = ""
	UnitUnits    Unit = "units"
	UnitVials    Unit = "vials"
	UnitSyringes Unit = "syringes"
	UnitBoxes    Unit = "boxes"
)

// SourceField is one named text column of a note (e.g. "tratamiento", "notas")
type SourceField struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// BrandHit is a canonical brand matched at a byte offset of the normalized text
type BrandHit struct {
	Position int
	Brand    string
}

// QuantityHit is a number+unit mention at a byte offset of the normalized text
type QuantityHit struct {
	Position int
	Quantity decimal.Decimal
	Unit     Unit
}

// ConsumptionEvent is one (brand, service, quantity, unit) record extracted from a note.
// Quantity is invalid (null) and Unit is empty when no quantity was linked.
type ConsumptionEvent struct {
	Brand    string              `json:"brand"`
	Service  string              `json:"service"`
	Quantity decimal.NullDecimal `json:"quantity"`
	Unit     Unit                `json:"unit,omitempty"`
}

// HasQuantity reports whether a quantity was linked to the event
func (e ConsumptionEvent) HasQuantity() bool {
	return e.Quantity.Valid
}

// DebtSignal describes a DEUDA mention in a note
type DebtSignal struct {
	Flagged bool                `json:"flagged"` // false when the debt was paid or cancelled
	Amount  decimal.NullDecimal `json:"amount"`
}

// ResolutionResult is the structured classification of one note
type ResolutionResult struct {
	BrandsDetected   []string           `json:"brands_detected"`
	ServicesDetected []string           `json:"services_detected"`
	Events           []ConsumptionEvent `json:"events"`
	Debt             *DebtSignal        `json:"debt,omitempty"`
}

// NewResolutionResult returns an empty result whose lists encode as [] rather than null
func NewResolutionResult() *ResolutionResult {
	return &ResolutionResult{
		BrandsDetected:   []string{},
		ServicesDetected: []string{},
		Events:           []ConsumptionEvent{},
	}
}

// PrimaryService returns the highest-priority detected service, or ""
func (r *ResolutionResult) PrimaryService() string {
	if r == nil || len(r.ServicesDetected) == 0 {
		return ""
	}
	return r.ServicesDetected[0]
}

// PrimaryBrand returns the first detected brand, or ""
func (r *ResolutionResult) PrimaryBrand() string {
	if r == nil || len(r.BrandsDetected) == 0 {
		return ""
	}
	return r.BrandsDetected[0]
}

// Clone returns a deep copy of the result
func (r *ResolutionResult) Clone() *ResolutionResult {
	if r == nil {
		return nil
	}
	out := &ResolutionResult{
		BrandsDetected:   append([]string{}, r.BrandsDetected...),
		ServicesDetected: append([]string{}, r.ServicesDetected...),
		Events:           append([]ConsumptionEvent{}, r.Events...),
	}
	if r.Debt != nil {
		debt := *r.Debt
		out.Debt = &debt
	}
	return out
}

// ResolveRequest represents a note resolution request.
// Fields, when present, are concatenated in order and take precedence over Text.
type ResolveRequest struct {
	Text   string        `json:"text,omitempty"`
	Fields []SourceField `json:"fields,omitempty"`
}

// NoteRecord is one note of a batch
type NoteRecord struct {
	ID     string        `json:"id"`
	Fields []SourceField `json:"fields"`
}

// BatchItem pairs a batch note id with its resolution.
// PrimaryService and PrimaryBrand are the "main product" columns of the export, "" when none.
type BatchItem struct {
	ID             string            `json:"id"`
	PrimaryService string            `json:"primary_service"`
	PrimaryBrand   string            `json:"primary_brand"`
	Result         *ResolutionResult `json:"result"`
}

// NewBatchItem builds the batch row of one resolved note
func NewBatchItem(id string, result *ResolutionResult) BatchItem {
	return BatchItem{
		ID:             id,
		PrimaryService: result.PrimaryService(),
		PrimaryBrand:   result.PrimaryBrand(),
		Result:         result,
	}
}
