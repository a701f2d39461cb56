// cmd/tools/catalog-tool/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"winhouse-quote/internal/catalog"
	"winhouse-quote/internal/format"
	"winhouse-quote/pkg/catalogfile"
)

var catalogPath string

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	for _, fs := range []*flag.FlagSet{exportCmd, updateCmd, validateCmd} {
		fs.StringVar(&catalogPath, "path", "configs/catalog.json", "Path to catalog file")
	}

	// Update command flags
	idUpdate := updateCmd.String("id", "", "Module ID to update")
	field := updateCmd.String("field", "", "Field to update (basePrice, monthlyPrice, estimatedDays, required, popular)")
	value := updateCmd.String("value", "", "New value for the field")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		if err := catalogfile.Save(catalogfile.Export(catalog.Default(), time.Now()), catalogPath); err != nil {
			fmt.Printf("Error exporting catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported built-in catalog to %s\n", catalogPath)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateModule(*idUpdate, *field, *value); err != nil {
			fmt.Printf("Error updating module: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated module %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateCatalog(); err != nil {
			fmt.Printf("Catalog validation failed: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func updateModule(id, field, value string) error {
	f, err := catalogfile.Load(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	found := false
	for i := range f.Modules {
		if f.Modules[i].ID != id {
			continue
		}
		found = true
		m := &f.Modules[i]
		switch field {
		case "basePrice", "monthlyPrice":
			price, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid price value: %w", err)
			}
			if field == "basePrice" {
				m.BasePrice = price
			} else {
				m.MonthlyPrice = price
			}
		case "estimatedDays":
			days, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid days value: %w", err)
			}
			m.EstimatedDays = days
		case "required", "popular":
			flagValue, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean value: %w", err)
			}
			if field == "required" {
				m.IsRequired = flagValue
			} else {
				m.IsPopular = flagValue
			}
		default:
			return fmt.Errorf("unknown field: %s", field)
		}
		break
	}

	if !found {
		return fmt.Errorf("module with ID %s not found", id)
	}

	// The edited file must still build a valid catalog.
	if _, err := f.Catalog(); err != nil {
		return err
	}
	f.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	return catalogfile.Save(f, catalogPath)
}

func validateCatalog() error {
	c, err := catalogfile.LoadCatalog(catalogPath)
	if err != nil {
		return err
	}

	var total int64
	for _, m := range c.Modules() {
		total += m.BasePrice
	}
	fmt.Printf("Catalog validation passed. Found %d industries, %d modules (%s in total), %d styles.\n",
		len(c.Industries()), len(c.Modules()), format.Currency(total), len(c.Styles()))
	return nil
}

func help() {
	fmt.Print(`
Usage: catalog-tool <command> [flags]

Commands:
  export    Write the built-in catalog to a file
  update    Update a module field in a catalog file
  validate  Validate a catalog file
  help      Show this help message

Examples:
  catalog-tool export -path configs/catalog.json
  catalog-tool update -path configs/catalog.json -id cms -field basePrice -value 9000000
  catalog-tool validate -path configs/catalog.json

Use 'catalog-tool <command> -h' for more information about a command.
`)
}
