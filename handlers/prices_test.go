package handlers

import (
	"testing"

	"wastebank/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestQuoteBasket(t *testing.T) {
	glass := models.WasteProduct{ID: primitive.NewObjectID(), Waste: "Glass", Unit: "kg", Price: 500}
	metal := models.WasteProduct{ID: primitive.NewObjectID(), Waste: "Metal Cans", Unit: "kg", Price: 8000}
	products := map[string]models.WasteProduct{
		glass.ID.Hex(): glass,
		metal.ID.Hex(): metal,
	}

	items := []basketItem{
		{WasteProductID: glass.ID.Hex(), Quantity: 3},
		{WasteProductID: metal.ID.Hex(), Quantity: 0.5},
	}

	quoted, total, err := quoteBasket(items, products)
	if err != nil {
		t.Fatalf("quoteBasket returned error: %v", err)
	}
	if len(quoted) != 2 {
		t.Fatalf("got %d quoted items, want 2", len(quoted))
	}
	if quoted[0].Subtotal != 1500 {
		t.Errorf("quoted[0].Subtotal = %v, want 1500", quoted[0].Subtotal)
	}
	if quoted[1].Subtotal != 4000 {
		t.Errorf("quoted[1].Subtotal = %v, want 4000", quoted[1].Subtotal)
	}
	if total != 5500 {
		t.Errorf("total = %v, want 5500", total)
	}
}

func TestQuoteBasketUnknownProduct(t *testing.T) {
	products := map[string]models.WasteProduct{}
	items := []basketItem{{WasteProductID: primitive.NewObjectID().Hex(), Quantity: 1}}

	if _, _, err := quoteBasket(items, products); err == nil {
		t.Error("expected error for unknown product, got nil")
	}
}

func TestQuoteBasketRejectsNonPositiveQuantity(t *testing.T) {
	glass := models.WasteProduct{ID: primitive.NewObjectID(), Waste: "Glass", Unit: "kg", Price: 500}
	products := map[string]models.WasteProduct{glass.ID.Hex(): glass}

	items := []basketItem{{WasteProductID: glass.ID.Hex(), Quantity: -1}}
	if _, _, err := quoteBasket(items, products); err == nil {
		t.Error("expected error for negative quantity, got nil")
	}
}
