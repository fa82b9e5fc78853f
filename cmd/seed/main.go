// cmd/seed/main.go
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing seed CSV files",
		Value:   "./data/seeds",
		EnvVars: []string{"SEED_DATA_DIR"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with initial data",
		Commands: []*cli.Command{
			{
				Name:   "catalog",
				Usage:  "Seed catalog data (styles, SKUs, materials, BOM lines)",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: seedCatalog,
			},
			{
				Name:   "operations",
				Usage:  "Seed operational data (suppliers, inventory, work orders)",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: seedOperations,
			},
			{
				Name:  "all",
				Usage: "Seed catalog and operational data",
				Flags: []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: func(c *cli.Context) error {
					if err := seedCatalog(c); err != nil {
						return err
					}
					return seedOperations(c)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func seedCatalog(c *cli.Context) error {
	return withTx(c, func(ctx context.Context, tx *sql.Tx, dataDir string) error {
		if err := seedTable(ctx, tx, "styles",
			[]string{"code", "name", "category", "season", "description"},
			filepath.Join(dataDir, "styles.csv")); err != nil {
			return fmt.Errorf("failed to seed styles: %w", err)
		}

		if err := seedTable(ctx, tx, "skus",
			[]string{"code", "style_code", "color", "size", "selling_price"},
			filepath.Join(dataDir, "skus.csv")); err != nil {
			return fmt.Errorf("failed to seed skus: %w", err)
		}

		if err := seedTable(ctx, tx, "materials",
			[]string{"code", "description", "category", "unit", "cost_per_unit", "min_order_qty"},
			filepath.Join(dataDir, "materials.csv")); err != nil {
			return fmt.Errorf("failed to seed materials: %w", err)
		}

		if err := seedTable(ctx, tx, "bom_lines",
			[]string{"sku_code", "style_code", "material_code", "consumption", "wastage_pct"},
			filepath.Join(dataDir, "bom_lines.csv")); err != nil {
			return fmt.Errorf("failed to seed bom lines: %w", err)
		}

		return nil
	})
}

func seedOperations(c *cli.Context) error {
	return withTx(c, func(ctx context.Context, tx *sql.Tx, dataDir string) error {
		if err := seedTable(ctx, tx, "suppliers",
			[]string{"name", "contact", "email", "phone", "lead_time_days", "rating"},
			filepath.Join(dataDir, "suppliers.csv")); err != nil {
			return fmt.Errorf("failed to seed suppliers: %w", err)
		}

		if err := seedTable(ctx, tx, "inventory_items",
			[]string{"material_code", "quantity_on_hand", "min_stock_level", "location", "grn_ref", "po_ref"},
			filepath.Join(dataDir, "inventory_items.csv")); err != nil {
			return fmt.Errorf("failed to seed inventory: %w", err)
		}

		if err := seedTable(ctx, tx, "work_orders",
			[]string{"number", "sku_code", "quantity", "status"},
			filepath.Join(dataDir, "work_orders.csv")); err != nil {
			return fmt.Errorf("failed to seed work orders: %w", err)
		}

		return nil
	})
}

func withTx(c *cli.Context, fn func(ctx context.Context, tx *sql.Tx, dataDir string) error) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	log.Println("Starting database seeding...")

	if err := fn(ctx, tx, c.String("data-dir")); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func seedTable(ctx context.Context, tx *sql.Tx, tableName string, columns []string, filePath string) error {
	log.Printf("Seeding %s from %s\n", tableName, filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, col := range columns {
		if _, ok := colIndex[col]; !ok {
			return fmt.Errorf("column %q missing from %s", col, filePath)
		}
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING",
		tableName, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert for %s: %w", tableName, err)
	}
	defer stmt.Close()

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = nullIfEmpty(strings.TrimSpace(record[colIndex[col]]))
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", tableName, err)
		}
		rows++
	}

	log.Printf("Seeded %d rows into %s\n", rows, tableName)
	return nil
}

// nullIfEmpty returns NULL if the string is empty, otherwise returns the string
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
