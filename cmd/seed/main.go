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
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newFileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "file",
		Usage:    "CSV fixture to load",
		Required: true,
	}
}

// nullIfEmpty returns NULL if the string is empty, otherwise returns the string
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) *sql.DB {
	db, _ := c.Context.Value(dbKey).(*sql.DB)
	return db
}

func openCSV(path string) (*csv.Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	// Skip the header row
	if _, err := r.Read(); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	return r, f, nil
}

func parseFloat(field, value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", field, value, err)
	}
	return v, nil
}

func seedForecasts(c *cli.Context) error {
	db := dbFrom(c)
	r, f, err := openCSV(c.String("file"))
	if err != nil {
		return err
	}
	defer f.Close()

	query := `
		INSERT INTO demand_forecasts (
			item_code, item_name, customer, company, territory,
			predicted_qty, confidence_score, movement_type, risk_score,
			current_stock, reorder_level, safety_stock, lead_time_days,
			preferred_supplier
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (item_code, company, COALESCE(customer, ''))
		DO UPDATE SET
			predicted_qty = EXCLUDED.predicted_qty,
			confidence_score = EXCLUDED.confidence_score,
			movement_type = EXCLUDED.movement_type,
			risk_score = EXCLUDED.risk_score,
			current_stock = EXCLUDED.current_stock,
			reorder_level = EXCLUDED.reorder_level,
			safety_stock = EXCLUDED.safety_stock,
			lead_time_days = EXCLUDED.lead_time_days,
			preferred_supplier = EXCLUDED.preferred_supplier
	`

	count := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read forecast row: %w", err)
		}
		if len(row) < 14 {
			return fmt.Errorf("forecast row has %d fields, want 14", len(row))
		}

		predictedQty, err := parseFloat("predicted_qty", row[5])
		if err != nil {
			return err
		}
		confidence, err := parseFloat("confidence_score", row[6])
		if err != nil {
			return err
		}
		risk, err := parseFloat("risk_score", row[8])
		if err != nil {
			return err
		}
		stock, err := parseFloat("current_stock", row[9])
		if err != nil {
			return err
		}
		reorder, err := parseFloat("reorder_level", row[10])
		if err != nil {
			return err
		}
		safety, err := parseFloat("safety_stock", row[11])
		if err != nil {
			return err
		}
		leadTime, err := parseFloat("lead_time_days", row[12])
		if err != nil {
			return err
		}

		_, err = db.ExecContext(c.Context, query,
			row[0], row[1], nullIfEmpty(row[2]), row[3], nullIfEmpty(row[4]),
			predictedQty, confidence, row[7], risk,
			stock, reorder, safety, int(leadTime),
			nullIfEmpty(row[13]),
		)
		if err != nil {
			return fmt.Errorf("insert forecast for %s: %w", row[0], err)
		}
		count++
	}

	log.Printf("seeded %d forecast records", count)
	return nil
}

func seedSuppliers(c *cli.Context) error {
	db := dbFrom(c)
	r, f, err := openCSV(c.String("file"))
	if err != nil {
		return err
	}
	defer f.Close()

	query := `
		INSERT INTO suppliers (name, reliability, disabled)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET
			reliability = EXCLUDED.reliability,
			disabled = EXCLUDED.disabled
	`

	count := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read supplier row: %w", err)
		}
		if len(row) < 3 {
			return fmt.Errorf("supplier row has %d fields, want 3", len(row))
		}

		disabled := row[2] == "1" || row[2] == "true"
		if _, err := db.ExecContext(c.Context, query, row[0], nullIfEmpty(row[1]), disabled); err != nil {
			return fmt.Errorf("insert supplier %s: %w", row[0], err)
		}
		count++
	}

	log.Printf("seeded %d suppliers", count)
	return nil
}

func seedItems(c *cli.Context) error {
	db := dbFrom(c)
	r, f, err := openCSV(c.String("file"))
	if err != nil {
		return err
	}
	defer f.Close()

	query := `
		INSERT INTO items (item_code, item_name, default_supplier)
		VALUES ($1, $2, $3)
		ON CONFLICT (item_code) DO UPDATE SET
			item_name = EXCLUDED.item_name,
			default_supplier = EXCLUDED.default_supplier
	`

	count := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read item row: %w", err)
		}
		if len(row) < 3 {
			return fmt.Errorf("item row has %d fields, want 3", len(row))
		}

		if _, err := db.ExecContext(c.Context, query, row[0], row[1], nullIfEmpty(row[2])); err != nil {
			return fmt.Errorf("insert item %s: %w", row[0], err)
		}
		count++
	}

	log.Printf("seeded %d items", count)
	return nil
}

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "seed",
		Usage: "Load procurement fixtures into the database",
		Commands: []*cli.Command{
			{
				Name:   "forecasts",
				Usage:  "Load demand forecast records from a CSV file",
				Flags:  []cli.Flag{newDBURLFlag(), newFileFlag()},
				Before: initDB,
				After:  closeDB,
				Action: seedForecasts,
			},
			{
				Name:   "suppliers",
				Usage:  "Load the supplier directory from a CSV file",
				Flags:  []cli.Flag{newDBURLFlag(), newFileFlag()},
				Before: initDB,
				After:  closeDB,
				Action: seedSuppliers,
			},
			{
				Name:   "items",
				Usage:  "Load item master data from a CSV file",
				Flags:  []cli.Flag{newDBURLFlag(), newFileFlag()},
				Before: initDB,
				After:  closeDB,
				Action: seedItems,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
