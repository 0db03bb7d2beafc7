package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/felixgeelhaar/rxclient/internal/app"
	"github.com/felixgeelhaar/rxclient/internal/domain"
)

func cmdCart(args []string) error {
	subCmd := "show"
	if len(args) > 0 {
		subCmd = args[0]
	}

	switch subCmd {
	case "show":
		return withCart(func(ctx context.Context, a *app.App) (*domain.Cart, error) {
			return a.RefreshCart(ctx)
		})
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("medicine id required (e.g., rx cart add <id> 2)")
		}
		qty := 1
		if len(args) > 2 {
			n, err := parseQuantity(args[2])
			if err != nil {
				return err
			}
			qty = n
		}
		return withCart(func(ctx context.Context, a *app.App) (*domain.Cart, error) {
			return a.AddToCart(ctx, args[1], qty)
		})
	case "update":
		if len(args) < 3 {
			return fmt.Errorf("item id and quantity required (e.g., rx cart update <item> 3)")
		}
		qty, err := parseQuantity(args[2])
		if err != nil {
			return err
		}
		return withCart(func(ctx context.Context, a *app.App) (*domain.Cart, error) {
			return a.UpdateCartItem(ctx, args[1], qty)
		})
	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("item id required")
		}
		return withCart(func(ctx context.Context, a *app.App) (*domain.Cart, error) {
			return a.RemoveFromCart(ctx, args[1])
		})
	case "clear":
		return withApp(func(ctx context.Context, a *app.App) error {
			if err := requirePatient(a); err != nil {
				return err
			}
			if err := a.ClearCart(ctx); err != nil {
				return err
			}
			fmt.Println("Cart cleared")
			return nil
		})
	default:
		return fmt.Errorf("unknown cart command: %s (valid: show, add, update, remove, clear)", subCmd)
	}
}

// withCart runs a cart operation for the signed-in patient and prints the
// resulting cart
func withCart(fn func(ctx context.Context, a *app.App) (*domain.Cart, error)) error {
	return withApp(func(ctx context.Context, a *app.App) error {
		if err := requirePatient(a); err != nil {
			return err
		}
		cart, err := fn(ctx, a)
		if err != nil {
			return err
		}
		printCart(cart)
		return nil
	})
}

func parseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid quantity %q: %w", s, domain.ErrInvalidQuantity)
	}
	return n, nil
}

func printCart(cart *domain.Cart) {
	if cart.IsEmpty() {
		fmt.Println("Cart is empty")
		return
	}

	fmt.Println("Cart")
	fmt.Println("====")
	for _, it := range cart.Items {
		note := ""
		if !it.InStock {
			note = "  (out of stock)"
		}
		fmt.Printf("%-38s %-28s x%-3d %8.2f%s\n", it.ID, it.MedicineName, it.Quantity, it.TotalPrice, note)
	}
	fmt.Println()
	fmt.Printf("Items:     %d\n", cart.ItemCount)
	fmt.Printf("Subtotal:  %.2f\n", cart.Subtotal)
	fmt.Printf("Discount:  %.2f\n", cart.TotalDiscount)
	fmt.Printf("Total:     %.2f\n", cart.Total)
}
