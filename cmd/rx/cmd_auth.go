package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/rxclient/internal/app"
	"github.com/felixgeelhaar/rxclient/internal/domain"
)

func cmdLogin(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("email required (e.g., rx login asha@example.com)")
	}
	pw, err := password()
	if err != nil {
		return err
	}

	return withApp(func(ctx context.Context, a *app.App) error {
		user, err := a.Login(ctx, args[0], pw)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		fmt.Printf("Signed in as %s (%s)\n", user.DisplayName(), user.Role)
		if n := a.Stores.Cart.ItemCount(); n > 0 {
			fmt.Printf("Cart: %d item(s), %.2f\n", n, a.Stores.Cart.Total())
		}
		return nil
	})
}

func cmdRegister(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("email required (e.g., rx register asha@example.com)")
	}
	role := domain.RolePatient
	if len(args) > 1 {
		role = domain.Role(strings.ToUpper(args[1]))
	}
	pw, err := password()
	if err != nil {
		return err
	}
	phone, err := prompt("Phone (optional): ")
	if err != nil {
		return err
	}

	return withApp(func(ctx context.Context, a *app.App) error {
		user, err := a.Register(ctx, domain.RegisterRequest{
			Email:    args[0],
			Password: pw,
			Phone:    phone,
			Role:     role,
		})
		if err != nil {
			return fmt.Errorf("register: %w", err)
		}
		if a.Session().IsAuthenticated() {
			fmt.Printf("Registered and signed in as %s (%s)\n", user.Email, user.Role)
		} else {
			fmt.Printf("Registered %s. Run 'rx login %s' to sign in.\n", user.Email, user.Email)
		}
		return nil
	})
}

func cmdLogout() error {
	return withApp(func(ctx context.Context, a *app.App) error {
		a.Logout()
		fmt.Println("Signed out")
		return nil
	})
}

func cmdWhoami() error {
	return withApp(func(ctx context.Context, a *app.App) error {
		sess := a.Session()
		if !sess.IsAuthenticated() {
			fmt.Println("Not signed in")
			return nil
		}
		fmt.Printf("%s <%s>\n", sess.User.DisplayName(), sess.User.Email)
		fmt.Printf("  id:   %s\n", sess.User.ID)
		fmt.Printf("  role: %s\n", sess.User.Role)
		return nil
	})
}
