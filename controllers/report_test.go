package controllers

import (
	"testing"
	"time"

	"wastebank/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func tx(date time.Time, total float64, quantities ...float64) models.Transaction {
	items := make([]models.TransactionItem, 0, len(quantities))
	for _, q := range quantities {
		items = append(items, models.TransactionItem{
			WasteProductID: primitive.NewObjectID(),
			Quantity:       q,
		})
	}
	return models.Transaction{
		ID:            primitive.NewObjectID(),
		Date:          date,
		UserID:        primitive.NewObjectID(),
		WasteProducts: items,
		Total:         total,
	}
}

func TestAggregateTransactionsMonthlySeries(t *testing.T) {
	jan := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)

	transactions := []models.Transaction{
		tx(feb, 200, 4),
		tx(jan, 100, 2),
		tx(jan, 50, 1),
	}

	report := aggregateTransactions(transactions, 0)

	if report.TotalBalance != 350 {
		t.Errorf("TotalBalance = %v, want 350", report.TotalBalance)
	}
	if report.TotalTransactions != 3 {
		t.Errorf("TotalTransactions = %d, want 3", report.TotalTransactions)
	}
	if report.TotalQuantity != 7 {
		t.Errorf("TotalQuantity = %v, want 7", report.TotalQuantity)
	}

	if len(report.MonthlySeries) != 2 {
		t.Fatalf("MonthlySeries has %d entries, want 2", len(report.MonthlySeries))
	}
	if report.MonthlySeries[0].Label != "Jan 2024" || report.MonthlySeries[0].Revenue != 150 {
		t.Errorf("first month = %+v, want Jan 2024 / 150", report.MonthlySeries[0])
	}
	if report.MonthlySeries[1].Label != "Feb 2024" || report.MonthlySeries[1].Revenue != 200 {
		t.Errorf("second month = %+v, want Feb 2024 / 200", report.MonthlySeries[1])
	}
}

func TestAggregateTransactionsChronologicalOrder(t *testing.T) {
	dates := []time.Time{
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	transactions := make([]models.Transaction, 0, len(dates))
	for _, d := range dates {
		transactions = append(transactions, tx(d, 10, 1))
	}

	report := aggregateTransactions(transactions, 0)

	for i := 1; i < len(report.MonthlySeries); i++ {
		prev, cur := report.MonthlySeries[i-1], report.MonthlySeries[i]
		if prev.Year > cur.Year || (prev.Year == cur.Year && prev.Month >= cur.Month) {
			t.Errorf("series not chronological at %d: %+v then %+v", i, prev, cur)
		}
	}
}

func TestAggregateTransactionsZeroDate(t *testing.T) {
	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		tx(jan, 100, 1),
		tx(time.Time{}, 40, 2),
	}

	report := aggregateTransactions(transactions, 0)

	if report.TotalBalance != 140 {
		t.Errorf("TotalBalance = %v, want 140 (zero-date counts toward totals)", report.TotalBalance)
	}
	if len(report.MonthlySeries) != 1 {
		t.Fatalf("MonthlySeries has %d entries, want 1 (zero-date has no month)", len(report.MonthlySeries))
	}
}

func TestAggregateTransactionsYearFilter(t *testing.T) {
	transactions := []models.Transaction{
		tx(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 100, 2),
		tx(time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC), 80, 1),
	}

	report := aggregateTransactions(transactions, 2024)

	// the year filter prunes the series only, totals cover everything
	if report.TotalBalance != 180 {
		t.Errorf("TotalBalance = %v, want 180", report.TotalBalance)
	}
	if report.TotalTransactions != 2 {
		t.Errorf("TotalTransactions = %d, want 2", report.TotalTransactions)
	}
	if report.TotalQuantity != 3 {
		t.Errorf("TotalQuantity = %v, want 3", report.TotalQuantity)
	}
	if len(report.MonthlySeries) != 1 {
		t.Fatalf("MonthlySeries = %+v, want single 2024 entry", report.MonthlySeries)
	}
	if report.MonthlySeries[0].Year != 2024 || report.MonthlySeries[0].Revenue != 100 {
		t.Errorf("series entry = %+v, want 2024 / 100", report.MonthlySeries[0])
	}

	// filtering again with the same year changes nothing
	again := aggregateTransactions(transactions, 2024)
	if again.TotalBalance != report.TotalBalance || len(again.MonthlySeries) != len(report.MonthlySeries) {
		t.Errorf("filter not idempotent: %+v vs %+v", again, report)
	}
}

func TestAggregateTransactionsTotalsIgnoreYearFilter(t *testing.T) {
	transactions := []models.Transaction{
		tx(time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC), 10, 1),
		tx(time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), 20, 1),
		tx(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), 30, 1),
	}

	unfiltered := aggregateTransactions(transactions, 0)
	filtered := aggregateTransactions(transactions, 2023)

	if filtered.TotalBalance != unfiltered.TotalBalance {
		t.Errorf("filtered TotalBalance = %v, want %v", filtered.TotalBalance, unfiltered.TotalBalance)
	}
	if filtered.TotalTransactions != len(transactions) {
		t.Errorf("filtered TotalTransactions = %d, want %d", filtered.TotalTransactions, len(transactions))
	}
	if filtered.TotalQuantity != unfiltered.TotalQuantity {
		t.Errorf("filtered TotalQuantity = %v, want %v", filtered.TotalQuantity, unfiltered.TotalQuantity)
	}
	if len(filtered.MonthlySeries) != 1 || filtered.MonthlySeries[0].Year != 2023 {
		t.Errorf("filtered MonthlySeries = %+v, want single 2023 entry", filtered.MonthlySeries)
	}
}
