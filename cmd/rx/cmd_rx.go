package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/rxclient/internal/app"
	"github.com/felixgeelhaar/rxclient/internal/domain"
)

// cmdPrescription manages uploaded prescriptions
func cmdPrescription(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("rx command required (list, show, upload, delete, download)")
	}

	needID := func() error {
		if len(args) < 2 {
			return fmt.Errorf("prescription id required (e.g., rx %s <id>)", args[0])
		}
		return nil
	}

	switch args[0] {
	case "list":
		return withPatient(func(ctx context.Context, a *app.App) error {
			list, err := a.Services.Prescription.List(ctx)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Println("No prescriptions")
				return nil
			}
			for _, p := range list {
				fmt.Printf("%-38s %-9s %-10s %s\n", p.ID, p.PrescriptionType, p.Status, p.CreatedAt)
			}
			return nil
		})
	case "show":
		if err := needID(); err != nil {
			return err
		}
		return withPatient(func(ctx context.Context, a *app.App) error {
			p, err := a.Services.Prescription.Get(ctx, args[1])
			if err != nil {
				return err
			}
			printPrescription(p)
			return nil
		})
	case "upload":
		if len(args) < 2 {
			return fmt.Errorf("file required (e.g., rx upload scan.jpg)")
		}
		return withPatient(func(ctx context.Context, a *app.App) error {
			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[1], err)
			}
			defer f.Close()

			p, err := a.Services.Prescription.Upload(ctx, args[1], f)
			if err != nil {
				return err
			}
			fmt.Printf("Uploaded prescription %s (%s)\n", p.ID, p.Status)
			return nil
		})
	case "delete":
		if err := needID(); err != nil {
			return err
		}
		return withPatient(func(ctx context.Context, a *app.App) error {
			if err := a.Services.Prescription.Delete(ctx, args[1]); err != nil {
				return err
			}
			fmt.Println("Prescription deleted")
			return nil
		})
	case "download":
		if err := needID(); err != nil {
			return err
		}
		return withPatient(func(ctx context.Context, a *app.App) error {
			return downloadPrescription(ctx, a, args[1], args[2:])
		})
	default:
		return fmt.Errorf("unknown rx command: %s (valid: list, show, upload, delete, download)", args[0])
	}
}

func withPatient(fn func(ctx context.Context, a *app.App) error) error {
	return withApp(func(ctx context.Context, a *app.App) error {
		if err := requirePatient(a); err != nil {
			return err
		}
		return fn(ctx, a)
	})
}

func downloadPrescription(ctx context.Context, a *app.App, id string, rest []string) error {
	p, err := a.Services.Prescription.Get(ctx, id)
	if err != nil {
		return err
	}
	if p == nil || !p.HasFile() {
		return fmt.Errorf("prescription %s has no file: %w", id, domain.ErrNotFound)
	}

	data, err := a.Services.Prescription.StreamFile(ctx, p.FileURL)
	if err != nil {
		return err
	}

	out := filepath.Base(p.FileURL)
	if len(rest) > 0 {
		out = rest[0]
	}
	if err := os.WriteFile(out, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Printf("Saved %d bytes to %s\n", len(data), out)
	return nil
}

func printPrescription(p *domain.Prescription) {
	fmt.Printf("Prescription %s\n", p.ID)
	fmt.Printf("  type:     %s\n", p.PrescriptionType)
	fmt.Printf("  status:   %s\n", p.Status)
	if p.RejectionReason != "" {
		fmt.Printf("  reason:   %s\n", p.RejectionReason)
	}
	if p.VerifiedAt != "" {
		fmt.Printf("  verified: %s\n", p.VerifiedAt)
	}
	if p.ExpiresAt != "" {
		fmt.Printf("  expires:  %s\n", p.ExpiresAt)
	}
	if p.HasFile() {
		fmt.Printf("  file:     %s (%s)\n", p.FileURL, p.FileType)
	}
}
