package controllers

import (
	"testing"

	"wastebank/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testProducts() (map[string]models.WasteProduct, []primitive.ObjectID) {
	plastic := models.WasteProduct{ID: primitive.NewObjectID(), Waste: "Plastic Bottles", Unit: "kg", Price: 3000}
	paper := models.WasteProduct{ID: primitive.NewObjectID(), Waste: "Cardboard", Unit: "kg", Price: 1500}
	products := map[string]models.WasteProduct{
		plastic.ID.Hex(): plastic,
		paper.ID.Hex():   paper,
	}
	return products, []primitive.ObjectID{plastic.ID, paper.ID}
}

func TestPriceItems(t *testing.T) {
	products, ids := testProducts()

	inputs := []models.TransactionItemInput{
		{WasteProductID: ids[0].Hex(), Quantity: 2},
		{WasteProductID: ids[1].Hex(), Quantity: 4},
	}

	items, total, err := priceItems(inputs, products)
	if err != nil {
		t.Fatalf("priceItems returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Subtotal != 6000 {
		t.Errorf("items[0].Subtotal = %v, want 6000", items[0].Subtotal)
	}
	if items[1].Subtotal != 6000 {
		t.Errorf("items[1].Subtotal = %v, want 6000", items[1].Subtotal)
	}
	if total != 12000 {
		t.Errorf("total = %v, want 12000", total)
	}
}

func TestPriceItemsUnknownProduct(t *testing.T) {
	products, _ := testProducts()

	inputs := []models.TransactionItemInput{
		{WasteProductID: primitive.NewObjectID().Hex(), Quantity: 1},
	}

	if _, _, err := priceItems(inputs, products); err == nil {
		t.Fatal("expected error for unknown product, got nil")
	}
}

func TestPriceItemsQuantityBelowOne(t *testing.T) {
	products, ids := testProducts()

	inputs := []models.TransactionItemInput{
		{WasteProductID: ids[0].Hex(), Quantity: 0},
	}

	if _, _, err := priceItems(inputs, products); err == nil {
		t.Fatal("expected error for zero quantity, got nil")
	}
}

func TestNormalizeItemsDanglingReference(t *testing.T) {
	products, ids := testProducts()

	deleted := primitive.NewObjectID()
	items := []models.TransactionItem{
		{WasteProductID: ids[0], Quantity: 2, Subtotal: 6000},
		{WasteProductID: deleted, Quantity: 1, Subtotal: 1500},
	}

	normalized := normalizeItems(items, products)
	if len(normalized) != 2 {
		t.Fatalf("got %d items, want 2", len(normalized))
	}
	if normalized[0].Waste != "Plastic Bottles" {
		t.Errorf("normalized[0].Waste = %q, want Plastic Bottles", normalized[0].Waste)
	}
	if normalized[1].Waste != "Unknown" || normalized[1].Unit != "Unknown" {
		t.Errorf("dangling reference = %+v, want Unknown placeholders", normalized[1])
	}
	if normalized[1].Subtotal != 1500 {
		t.Errorf("dangling reference Subtotal = %v, want 1500 (amounts are kept)", normalized[1].Subtotal)
	}
}

func TestNormalizeTransactionUnknownUser(t *testing.T) {
	products, ids := testProducts()

	transaction := models.Transaction{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		WasteProducts: []models.TransactionItem{
			{WasteProductID: ids[0], Quantity: 1, Subtotal: 3000},
		},
		Total: 3000,
	}

	normalized := normalizeTransaction(transaction, map[string]string{}, products)
	if normalized.Fullname != "Unknown" {
		t.Errorf("Fullname = %q, want Unknown", normalized.Fullname)
	}
	if normalized.Total != 3000 {
		t.Errorf("Total = %v, want 3000", normalized.Total)
	}
}

func TestParseTransactionDate(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2024-01-15", false},
		{"2024-01-15T10:30:00Z", false},
		{"15/01/2024", true},
		{"", true},
		{"not-a-date", true},
	}

	for _, tt := range tests {
		_, err := parseTransactionDate(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTransactionDate(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
		}
	}
}
