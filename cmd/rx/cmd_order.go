package main

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/rxclient/internal/app"
	"github.com/felixgeelhaar/rxclient/internal/domain"
)

func cmdOrder(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("order command required (create, list, show)")
	}

	switch args[0] {
	case "create":
		return withApp(cmdOrderCreate)
	case "list":
		return withApp(func(ctx context.Context, a *app.App) error {
			if err := requirePatient(a); err != nil {
				return err
			}
			orders, err := a.Services.Order.ListOrders(ctx)
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Println("No orders yet")
				return nil
			}
			for _, o := range orders {
				fmt.Printf("%-14s %-12s %-10s %10.2f  %s\n", o.OrderNumber, o.Status, o.PaymentStatus, o.TotalAmount, o.CreatedAt)
			}
			return nil
		})
	case "show":
		if len(args) < 2 {
			return fmt.Errorf("order id required")
		}
		return withApp(func(ctx context.Context, a *app.App) error {
			if err := requirePatient(a); err != nil {
				return err
			}
			order, err := a.Services.Order.GetOrder(ctx, args[1])
			if err != nil {
				return err
			}
			printOrder(order)
			return nil
		})
	default:
		return fmt.Errorf("unknown order command: %s (valid: create, list, show)", args[0])
	}
}

// cmdOrderCreate checks out the cart, prompting for any address field the
// patient profile does not supply
func cmdOrderCreate(ctx context.Context, a *app.App) error {
	if err := requirePatient(a); err != nil {
		return err
	}

	addr, err := a.CheckoutAddress(ctx)
	if err != nil {
		return err
	}

	fields := []struct {
		label string
		value *string
	}{
		{"Address line 1", &addr.AddressLine1},
		{"City", &addr.City},
		{"State", &addr.State},
		{"Postal code", &addr.PostalCode},
		{"Country", &addr.Country},
	}
	for _, f := range fields {
		if *f.value != "" {
			continue
		}
		v, err := prompt(f.label + ": ")
		if err != nil {
			return err
		}
		*f.value = v
	}

	order, err := a.Checkout(ctx, addr)
	if err != nil {
		return err
	}
	fmt.Printf("Order %s placed (%s), total %.2f\n", order.OrderNumber, order.Status, order.TotalAmount)
	return nil
}

func printOrder(o *domain.Order) {
	fmt.Printf("Order %s\n", o.OrderNumber)
	fmt.Println("==========================")
	fmt.Printf("Status:    %s\n", o.Status)
	fmt.Printf("Payment:   %s\n", o.PaymentStatus)
	if o.TrackingNumber != "" {
		fmt.Printf("Tracking:  %s (%s)\n", o.TrackingNumber, o.CourierName)
	}

	addr := o.Address()
	if addr.AddressLine1 != "" {
		fmt.Printf("Ship to:   %s, %s, %s %s, %s\n", addr.AddressLine1, addr.City, addr.State, addr.PostalCode, addr.Country)
	}

	fmt.Println("\nItems")
	fmt.Println("-----")
	for _, it := range o.Items {
		fmt.Printf("%-30s x%-3d %8.2f\n", it.MedicineName, it.Quantity, it.TotalPrice)
	}
	fmt.Println()
	fmt.Printf("Subtotal:  %10.2f\n", o.Subtotal)
	fmt.Printf("Discount:  %10.2f\n", o.DiscountAmount)
	fmt.Printf("Tax:       %10.2f\n", o.TaxAmount)
	fmt.Printf("Shipping:  %10.2f\n", o.ShippingCharges)
	fmt.Printf("Total:     %10.2f\n", o.TotalAmount)
}
