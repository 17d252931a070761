package controllers

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"

	"wastebank/config"
	"wastebank/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type MonthlyRevenue struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
}

type Report struct {
	TotalBalance      float64          `json:"total_balance"`
	TotalQuantity     float64          `json:"total_quantity"`
	TotalTransactions int              `json:"total_transactions"`
	MonthlySeries     []MonthlyRevenue `json:"monthly_series"`
}

// aggregateTransactions folds transactions into overall totals and a
// chronological monthly revenue series. The totals always cover every
// transaction; the year filter prunes the monthly series only.
// Transactions with a zero date count toward the totals but have no
// month to land in, so the series skips them. A year of 0 means no
// filter.
func aggregateTransactions(transactions []models.Transaction, year int) Report {
	report := Report{MonthlySeries: []MonthlyRevenue{}}

	type monthKey struct {
		year  int
		month int
	}
	byMonth := map[monthKey]float64{}

	for _, t := range transactions {
		report.TotalBalance += t.Total
		report.TotalTransactions++
		for _, item := range t.WasteProducts {
			report.TotalQuantity += item.Quantity
		}
		if t.Date.IsZero() {
			continue
		}
		if year != 0 && t.Date.Year() != year {
			continue
		}
		key := monthKey{year: t.Date.Year(), month: int(t.Date.Month())}
		byMonth[key] += t.Total
	}

	for key, revenue := range byMonth {
		label := time.Date(key.year, time.Month(key.month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
		report.MonthlySeries = append(report.MonthlySeries, MonthlyRevenue{
			Year:    key.year,
			Month:   key.month,
			Label:   label,
			Revenue: revenue,
		})
	}

	sort.Slice(report.MonthlySeries, func(i, j int) bool {
		a, b := report.MonthlySeries[i], report.MonthlySeries[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})

	return report
}

// Dashboard returns overall totals, monthly revenue and the user
// count. ?year=2024 narrows the monthly series to that year.
func Dashboard(c *gin.Context) {
	year := 0
	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.TransactionCollection.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transactions"})
		return
	}
	defer cursor.Close(ctx)

	transactions := []models.Transaction{}
	if err := cursor.All(ctx, &transactions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing transactions"})
		return
	}

	report := aggregateTransactions(transactions, year)

	totalUsers, err := config.UserCollection.CountDocuments(ctx, bson.M{"role": "client"})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_balance":      report.TotalBalance,
		"total_quantity":     report.TotalQuantity,
		"total_transactions": report.TotalTransactions,
		"total_users":        totalUsers,
		"monthly_series":     report.MonthlySeries,
	})
}
