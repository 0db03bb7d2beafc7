package domain

import (
	"errors"
	"testing"
)

func TestNewCreateOrderRequest(t *testing.T) {
	addr := ShippingAddress{
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "KA",
		PostalCode:   "560001",
		Country:      "India",
	}

	req, err := NewCreateOrderRequest(addr)
	if err != nil {
		t.Fatalf("NewCreateOrderRequest() error = %v", err)
	}

	order := Order{ShippingAddress: req.ShippingAddress}
	if got := order.Address(); got != addr {
		t.Errorf("Address() = %+v, want %+v", got, addr)
	}
}

func TestNewCreateOrderRequest_MissingFields(t *testing.T) {
	_, err := NewCreateOrderRequest(ShippingAddress{City: "Pune"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestOrder_Address_Malformed(t *testing.T) {
	order := Order{ShippingAddress: "not json"}
	if got := order.Address(); got != (ShippingAddress{}) {
		t.Errorf("Address() = %+v, want zero value", got)
	}
}

func TestMedicineSearchParams_Values(t *testing.T) {
	if got := (MedicineSearchParams{}).Values().Encode(); got != "" {
		t.Errorf("empty params encoded to %q", got)
	}

	rx := false
	p := MedicineSearchParams{Search: "para", Form: FormTablet, PrescriptionRequired: &rx}
	v := p.Values()
	if v.Get("search") != "para" || v.Get("form") != "TABLET" || v.Get("prescriptionRequired") != "false" {
		t.Errorf("Values() = %v", v)
	}
	if v.Has("schedule") {
		t.Error("unset schedule should be omitted")
	}
}
