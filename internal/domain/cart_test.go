package domain

import (
	"errors"
	"testing"
)

func TestAddToCartRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     AddToCartRequest
		wantErr error
	}{
		{"valid", AddToCartRequest{MedicineID: "m1", Quantity: 2}, nil},
		{"missing medicine", AddToCartRequest{Quantity: 1}, ErrInvalidInput},
		{"zero quantity", AddToCartRequest{MedicineID: "m1"}, ErrInvalidQuantity},
		{"negative quantity", AddToCartRequest{MedicineID: "m1", Quantity: -3}, ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateCartItemRequest_Validate(t *testing.T) {
	if err := (UpdateCartItemRequest{Quantity: 0}).Validate(); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("Validate() error = %v, want ErrInvalidQuantity", err)
	}
	if err := (UpdateCartItemRequest{Quantity: 1}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestCart_IsEmpty(t *testing.T) {
	var nilCart *Cart
	if !nilCart.IsEmpty() {
		t.Error("nil cart should be empty")
	}
	if !(&Cart{}).IsEmpty() {
		t.Error("cart without items should be empty")
	}
	if (&Cart{Items: []CartItem{{ID: "i1", Quantity: 1}}}).IsEmpty() {
		t.Error("cart with items should not be empty")
	}
}
