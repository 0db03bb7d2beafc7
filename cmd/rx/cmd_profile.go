package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/rxclient/internal/app"
	"github.com/felixgeelhaar/rxclient/internal/domain"
)

func cmdProfile(args []string) error {
	subCmd := "show"
	if len(args) > 0 {
		subCmd = args[0]
	}

	switch subCmd {
	case "show":
		return withApp(func(ctx context.Context, a *app.App) error {
			if err := requirePatient(a); err != nil {
				return err
			}
			p, err := a.Services.Patient.GetProfile(ctx)
			if err != nil {
				return err
			}
			printProfile(p)
			return nil
		})
	case "create":
		if len(args) < 3 {
			return fmt.Errorf("first and last name required (e.g., rx profile create Asha Rao)")
		}
		return withApp(func(ctx context.Context, a *app.App) error {
			if err := requirePatient(a); err != nil {
				return err
			}
			p, err := a.Services.Patient.CreateProfile(ctx, domain.CreatePatientRequest{
				FirstName: args[1],
				LastName:  args[2],
			})
			if err != nil {
				return err
			}
			printProfile(p)
			return nil
		})
	case "update":
		req, err := parseProfileUpdate(args[1:])
		if err != nil {
			return err
		}
		return withApp(func(ctx context.Context, a *app.App) error {
			if err := requirePatient(a); err != nil {
				return err
			}
			p, err := a.Services.Patient.UpdateProfile(ctx, req)
			if err != nil {
				return err
			}
			printProfile(p)
			return nil
		})
	default:
		return fmt.Errorf("unknown profile command: %s (valid: show, create, update)", subCmd)
	}
}

// parseProfileUpdate turns key=value pairs into a partial update. List
// fields take comma-separated values.
func parseProfileUpdate(pairs []string) (domain.UpdatePatientRequest, error) {
	var req domain.UpdatePatientRequest
	if len(pairs) == 0 {
		return req, fmt.Errorf("at least one key=value required (e.g., rx profile update city=Pune)")
	}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return req, fmt.Errorf("expected key=value, got %q", pair)
		}
		v := value
		switch strings.ToLower(key) {
		case "first", "firstname":
			req.FirstName = &v
		case "last", "lastname":
			req.LastName = &v
		case "dob", "dateofbirth":
			req.DateOfBirth = &v
		case "gender":
			g := domain.Gender(strings.ToUpper(v))
			req.Gender = &g
		case "line1", "addressline1":
			req.AddressLine1 = &v
		case "line2", "addressline2":
			req.AddressLine2 = &v
		case "city":
			req.City = &v
		case "state":
			req.State = &v
		case "postalcode", "zip":
			req.PostalCode = &v
		case "country":
			req.Country = &v
		case "emergencyname":
			req.EmergencyContactName = &v
		case "emergencyphone":
			req.EmergencyContactPhone = &v
		case "allergies":
			req.Allergies = splitList(v)
		case "conditions":
			req.MedicalConditions = splitList(v)
		default:
			return req, fmt.Errorf("unknown profile field %q", key)
		}
	}
	return req, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printProfile(p *domain.Patient) {
	if p == nil {
		fmt.Println("No profile yet (run 'rx profile create <first> <last>')")
		return
	}
	fmt.Printf("%s %s\n", p.FirstName, p.LastName)
	fmt.Println(strings.Repeat("=", len(p.FirstName)+len(p.LastName)+1))
	if p.DateOfBirth != "" {
		fmt.Printf("Born:        %s\n", p.DateOfBirth)
	}
	if p.Gender != "" {
		fmt.Printf("Gender:      %s\n", p.Gender)
	}
	addr := p.ShippingAddress()
	if addr.AddressLine1 != "" {
		fmt.Printf("Address:     %s, %s, %s %s, %s\n", addr.AddressLine1, addr.City, addr.State, addr.PostalCode, addr.Country)
	}
	if len(p.Allergies) > 0 {
		fmt.Printf("Allergies:   %s\n", strings.Join(p.Allergies, ", "))
	}
	if len(p.MedicalConditions) > 0 {
		fmt.Printf("Conditions:  %s\n", strings.Join(p.MedicalConditions, ", "))
	}
	if p.EmergencyContactName != "" {
		fmt.Printf("Emergency:   %s %s\n", p.EmergencyContactName, p.EmergencyContactPhone)
	}
}
