package gateway

import (
	"strings"

	"github.com/paladino/propiedades-web/internal/models"
	"github.com/shopspring/decimal"
)

// ListingFilter narrows a listing collection. Every field is optional and
// the set fields are combined with AND. The same filter runs over live and
// fallback data.
type ListingFilter struct {
	Zone        string
	Status      string
	Type        string
	Operation   string
	Search      string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	MinBedrooms int
}

var operationAliases = map[string]string{
	"comprar":  "venta",
	"alquilar": "alquiler",
}

// MapOperation translates the verbs used by the search form into the
// operation names stored upstream. Unknown values pass through.
func MapOperation(op string) string {
	op = strings.ToLower(strings.TrimSpace(op))
	if mapped, ok := operationAliases[op]; ok {
		return mapped
	}
	return op
}

// IsZero reports whether no predicate is set.
func (f ListingFilter) IsZero() bool {
	return f == ListingFilter{}
}

// Matches reports whether l satisfies every predicate that is set.
func (f ListingFilter) Matches(l models.Listing) bool {
	if f.Search != "" && !containsFold(l.Nombre, f.Search) {
		return false
	}
	if f.Zone != "" && !containsFold(l.ZoneName(), f.Zone) {
		return false
	}
	if f.Status != "" && !containsFold(l.Estado.String(), f.Status) {
		return false
	}
	if f.Type != "" && !containsFold(l.TypeLabel(), f.Type) {
		return false
	}
	if f.Operation != "" && !containsFold(l.Operacion.String(), MapOperation(f.Operation)) {
		return false
	}

	// A listing without a price never satisfies a price bound.
	if f.MinPrice != nil && (!l.Precio.Amount.Valid || l.Precio.Amount.Decimal.LessThan(*f.MinPrice)) {
		return false
	}
	if f.MaxPrice != nil && (!l.Precio.Amount.Valid || l.Precio.Amount.Decimal.GreaterThan(*f.MaxPrice)) {
		return false
	}

	if f.MinBedrooms > 0 && l.Bedrooms() < f.MinBedrooms {
		return false
	}
	return true
}

// Apply returns the matching listings in their original order. The result
// is never nil.
func (f ListingFilter) Apply(items []models.Listing) []models.Listing {
	out := make([]models.Listing, 0, len(items))
	if f.IsZero() {
		return append(out, items...)
	}
	for _, l := range items {
		if f.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(substr)))
}
