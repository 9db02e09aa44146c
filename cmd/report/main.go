package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"finanzas/models"
	"finanzas/pkg/reports"
)

// Month-bounded console report for one user: totals, per-category breakdown
// and optionally every transaction of the month.
func main() {
	email := flag.String("email", "", "email of the user to report on")
	month := flag.String("month", time.Now().Format("2006-01"), "month to report, YYYY-MM")
	list := flag.Bool("list", false, "also list the individual transactions")
	flag.Parse()
	if *email == "" {
		log.Fatal("--email is required")
	}

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	var user models.User
	if err := db.Where("email = ?", strings.TrimSpace(strings.ToLower(*email))).First(&user).Error; err != nil {
		log.Fatalf("user not found: %v", err)
	}

	from, err := time.Parse("2006-01", *month)
	if err != nil {
		log.Fatalf("invalid month format, expected YYYY-MM: %v", err)
	}
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	agg := reports.NewAggregator(db)
	filter := reports.TransactionFilter{UserID: user.ID, DateFrom: &from, DateTo: &to}
	ctx := context.Background()

	result, err := agg.List(ctx, filter, 1, 1000, "date", "asc")
	if err != nil {
		log.Fatalf("listing failed: %v", err)
	}
	breakdown, err := agg.CategorySummary(ctx, filter)
	if err != nil {
		log.Fatalf("summary failed: %v", err)
	}

	fmt.Printf("Report for %s %s (%s)\n", user.FirstName, user.LastName, *month)
	fmt.Printf("  transactions: %d\n", result.Totals.Count)
	fmt.Printf("  income:       %s\n", result.Totals.Income)
	fmt.Printf("  expenses:     %s\n", result.Totals.Expenses)
	fmt.Printf("  net:          %s\n", result.Totals.Net)

	if len(breakdown) > 0 {
		fmt.Println("By category:")
		for _, entry := range breakdown {
			fmt.Printf("  %-24s %-8s %4d x  total %s\n",
				entry.Category, entry.Type, entry.Count, entry.Total)
		}
	}

	if *list {
		fmt.Println("Transactions:")
		for _, row := range result.Transactions {
			fmt.Printf("  %s  %-8s %10s  %-20s %s\n",
				row.Date.Format("2006-01-02"), row.Type, row.Amount, row.Category, row.Description)
		}
	}
}
