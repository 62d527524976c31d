package gateway

import (
	"strings"
	"testing"

	"github.com/paladino/propiedades-web/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func slugs(items []models.Listing) []string {
	out := make([]string, 0, len(items))
	for _, l := range items {
		out = append(out, l.Slug)
	}
	return out
}

func TestFilterIsConjunctive(t *testing.T) {
	rental := models.Listing{
		ID:        99,
		Slug:      "departamento-alquiler-caballito",
		Nombre:    "Departamento en alquiler en Caballito",
		Operacion: "Alquiler",
		Tipo:      "Departamento",
		Estado:    "Usado",
		Zona:      "Caballito",
		Precio:    models.Price{Amount: decimal.NewNullDecimal(decimal.NewFromInt(800))},
	}
	items := append(FallbackListings(), rental)

	tests := []struct {
		filter ListingFilter
		want   int
	}{
		{ListingFilter{Type: "Casa", MinBedrooms: 3}, 2},
		{ListingFilter{Zone: "palermo"}, 1},
		{ListingFilter{Status: "nuevo", MaxPrice: dec(400000)}, 2},
		{ListingFilter{MinPrice: dec(100000), MaxPrice: dec(600000), Type: "departamento"}, 2},
		{ListingFilter{Search: "EN", Operation: "comprar"}, 6},
		{ListingFilter{Search: "casa", Operation: "comprar"}, 2},
		{ListingFilter{Operation: "alquilar"}, 1},
		{ListingFilter{Operation: "alquilar", Zone: "palermo"}, 0},
	}

	for _, tt := range tests {
		f := tt.filter
		got := f.Apply(items)
		require.Len(t, got, tt.want, "filter %+v", f)

		for _, l := range got {
			if f.Search != "" {
				assert.Contains(t, strings.ToLower(l.Nombre), strings.ToLower(f.Search))
			}
			if f.Operation != "" {
				assert.Contains(t, strings.ToLower(l.Operacion.String()), MapOperation(f.Operation))
			}
			if f.Type != "" {
				assert.Contains(t, strings.ToLower(l.TypeLabel()), strings.ToLower(f.Type))
			}
			if f.Zone != "" {
				assert.Contains(t, strings.ToLower(l.ZoneName()), strings.ToLower(f.Zone))
			}
			if f.Status != "" {
				assert.Contains(t, strings.ToLower(l.Estado.String()), strings.ToLower(f.Status))
			}
			if f.MinBedrooms > 0 {
				assert.GreaterOrEqual(t, l.Bedrooms(), f.MinBedrooms)
			}
			if f.MinPrice != nil {
				assert.True(t, l.Precio.Amount.Decimal.GreaterThanOrEqual(*f.MinPrice))
			}
			if f.MaxPrice != nil {
				assert.True(t, l.Precio.Amount.Decimal.LessThanOrEqual(*f.MaxPrice))
			}
		}
	}

	assert.Equal(t, []string{"departamento-alquiler-caballito"}, slugs(ListingFilter{Operation: "alquilar"}.Apply(items)))
}

func TestFilterCasaWithThreeBedrooms(t *testing.T) {
	got := ListingFilter{Type: "Casa", MinBedrooms: 3}.Apply(FallbackListings())
	assert.Equal(t, []string{"casa-moderna-recoleta", "casa-quinta-san-isidro"}, slugs(got))
}

func TestFilterPriceRange(t *testing.T) {
	got := ListingFilter{MinPrice: dec(95000), MaxPrice: dec(350000)}.Apply(FallbackListings())
	assert.Equal(t, []string{"hermoso-departamento-palermo", "casa-moderna-recoleta", "ph-belgrano"}, slugs(got))
}

func TestFilterNullPriceFailsBounds(t *testing.T) {
	items := []models.Listing{
		{Slug: "sin-precio"},
		{Slug: "con-precio", Precio: models.Price{Amount: decimal.NewNullDecimal(decimal.NewFromInt(1000))}},
	}

	assert.Equal(t, []string{"con-precio"}, slugs(ListingFilter{MinPrice: dec(0)}.Apply(items)))
	assert.Equal(t, []string{"con-precio"}, slugs(ListingFilter{MaxPrice: dec(5000)}.Apply(items)))
	assert.Len(t, ListingFilter{}.Apply(items), 2)
}

func TestFilterNoMatchIsEmptyNotNil(t *testing.T) {
	got := ListingFilter{Zone: "Mendoza"}.Apply(FallbackListings())
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterSearchAndZoneFallbackField(t *testing.T) {
	items := []models.Listing{
		{Slug: "a", Nombre: "Cabaña en el lago", CatalogoDeZona: "Villa Carlos Paz"},
		{Slug: "b", Nombre: "Lote", Zona: "Cosquín"},
	}

	assert.Equal(t, []string{"a"}, slugs(ListingFilter{Search: "CABAÑA"}.Apply(items)))
	assert.Equal(t, []string{"a"}, slugs(ListingFilter{Zone: "carlos paz"}.Apply(items)))
}

func TestMapOperation(t *testing.T) {
	assert.Equal(t, "venta", MapOperation("comprar"))
	assert.Equal(t, "alquiler", MapOperation(" Alquilar "))
	assert.Equal(t, "temporario", MapOperation("temporario"))
}

func TestListingFilterIsZero(t *testing.T) {
	assert.True(t, ListingFilter{}.IsZero())
	assert.False(t, ListingFilter{MinBedrooms: 1}.IsZero())
	assert.False(t, ListingFilter{MaxPrice: dec(0)}.IsZero())
}

func TestZeroFilterKeepsEverything(t *testing.T) {
	items := FallbackListings()
	got := ListingFilter{}.Apply(items)
	assert.Equal(t, slugs(items), slugs(got))

	got[0].Slug = "otro"
	assert.Equal(t, "hermoso-departamento-palermo", items[0].Slug)

	empty := ListingFilter{}.Apply(nil)
	require.NotNil(t, empty)
	assert.Empty(t, empty)
}
