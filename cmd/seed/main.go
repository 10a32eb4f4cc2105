package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ikkim/permit-backend/config"
	"github.com/ikkim/permit-backend/internal/app/service"
	"github.com/ikkim/permit-backend/internal/db"
	"github.com/ikkim/permit-backend/internal/report"
)

// Loads legacy permit records exported from the dashboard spreadsheet.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path> [--yes]")
	}

	filePath := os.Args[1]
	assumeYes := len(os.Args) > 2 && (os.Args[2] == "--yes" || os.Args[2] == "-y")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	count, rowErrs, err := readWorkbook(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}
	fmt.Printf("Applications to import: %d (unreadable rows: %d)\n", count, len(rowErrs))

	if !assumeYes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX:", err)
	}
	defer f.Close()

	adminService := service.NewAdminService(db.GetDB(), nil)
	result, err := adminService.Import(f)
	if err != nil {
		log.Fatal("Failed to import applications:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Imported: %d\n", result.Imported)
	for _, rowErr := range result.Skipped {
		fmt.Printf("Skipped %s\n", rowErr.Error())
	}
}

func readWorkbook(filePath string) (int, []report.RowError, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()

	rows, rowErrs, err := report.Read(f)
	if err != nil {
		return 0, nil, err
	}
	return len(rows), rowErrs, nil
}
