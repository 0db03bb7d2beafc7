package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/rxclient/internal/app"
	"github.com/felixgeelhaar/rxclient/internal/domain"
)

func cmdCatalog(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("catalog command required (list, search, show)")
	}

	switch args[0] {
	case "list":
		var params domain.MedicineSearchParams
		if len(args) > 1 {
			params.Form = domain.MedicineForm(strings.ToUpper(args[1]))
		}
		return withApp(func(ctx context.Context, a *app.App) error {
			meds, err := a.Services.Catalog.ListMedicines(ctx, params)
			if err != nil {
				return err
			}
			printMedicines(meds)
			return nil
		})
	case "search":
		if len(args) < 2 {
			return fmt.Errorf("query required (e.g., rx catalog search paracetamol)")
		}
		query := strings.Join(args[1:], " ")
		return withApp(func(ctx context.Context, a *app.App) error {
			meds, err := a.Services.Catalog.SearchMedicines(ctx, query)
			if err != nil {
				return err
			}
			printMedicines(meds)
			return nil
		})
	case "show":
		if len(args) < 2 {
			return fmt.Errorf("medicine id required")
		}
		return withApp(func(ctx context.Context, a *app.App) error {
			med, err := a.Services.Catalog.GetMedicine(ctx, args[1])
			if err != nil {
				return err
			}
			if med == nil {
				return fmt.Errorf("medicine %s: %w", args[1], domain.ErrNotFound)
			}
			printMedicine(med)
			return nil
		})
	default:
		return fmt.Errorf("unknown catalog command: %s (valid: list, search, show)", args[0])
	}
}

func printMedicines(meds []domain.Medicine) {
	if len(meds) == 0 {
		fmt.Println("No medicines found")
		return
	}
	for _, m := range meds {
		rx := ""
		if m.PrescriptionRequired {
			rx = " [Rx]"
		}
		stock := "in stock"
		if !m.InStock {
			stock = "out of stock"
		}
		fmt.Printf("%-38s %-30s %-10s %8.2f  %s%s\n", m.ID, m.Name+" "+m.Strength, m.Form, m.MinPrice, stock, rx)
	}
}

func printMedicine(m *domain.Medicine) {
	fmt.Printf("%s %s\n", m.Name, m.Strength)
	fmt.Println(strings.Repeat("=", len(m.Name)+len(m.Strength)+1))
	if m.GenericName != "" {
		fmt.Printf("Generic:       %s\n", m.GenericName)
	}
	if m.Manufacturer != "" {
		fmt.Printf("Manufacturer:  %s\n", m.Manufacturer)
	}
	fmt.Printf("Form:          %s\n", m.Form)
	fmt.Printf("Prescription:  %t\n", m.PrescriptionRequired)
	if m.Schedule != "" {
		fmt.Printf("Schedule:      %s\n", m.Schedule)
	}
	fmt.Printf("Price:         %.2f (MRP %.2f, up to %.0f%% off)\n", m.MinPrice, m.MinMRP, m.MaxDiscount)
	fmt.Printf("Stock:         %d\n", m.TotalStock)
	if m.Description != "" {
		fmt.Printf("\n%s\n", m.Description)
	}
}
