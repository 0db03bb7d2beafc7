package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Order is a placed order as returned by the order service
type Order struct {
	ID                   string      `json:"id"`
	OrderNumber          string      `json:"orderNumber"`
	PatientID            string      `json:"patientId"`
	PrescriptionID       string      `json:"prescriptionId,omitempty"`
	Status               string      `json:"status"`
	Subtotal             float64     `json:"subtotal"`
	DiscountAmount       float64     `json:"discountAmount"`
	TaxAmount            float64     `json:"taxAmount"`
	ShippingCharges      float64     `json:"shippingCharges"`
	TotalAmount          float64     `json:"totalAmount"`
	PaymentStatus        string      `json:"paymentStatus"`
	PaymentMethod        string      `json:"paymentMethod,omitempty"`
	PaymentTransactionID string      `json:"paymentTransactionId,omitempty"`
	ShippingAddress      string      `json:"shippingAddress"`
	VerifiedBy           string      `json:"verifiedBy,omitempty"`
	VerifiedAt           string      `json:"verifiedAt,omitempty"`
	ShippedAt            string      `json:"shippedAt,omitempty"`
	DeliveredAt          string      `json:"deliveredAt,omitempty"`
	TrackingNumber       string      `json:"trackingNumber,omitempty"`
	CourierName          string      `json:"courierName,omitempty"`
	Items                []OrderItem `json:"items"`
	CreatedAt            string      `json:"createdAt"`
	UpdatedAt            string      `json:"updatedAt"`
}

// Address decodes the JSON-encoded shipping address.
// A malformed address yields the zero value.
func (o *Order) Address() ShippingAddress {
	var addr ShippingAddress
	_ = json.Unmarshal([]byte(o.ShippingAddress), &addr)
	return addr
}

// OrderItem is a single order line
type OrderItem struct {
	ID                 string  `json:"id"`
	MedicineID         string  `json:"medicineId"`
	MedicineName       string  `json:"medicineName"`
	MedicineImageURL   string  `json:"medicineImageUrl,omitempty"`
	InventoryID        string  `json:"inventoryId,omitempty"`
	PrescriptionItemID string  `json:"prescriptionItemId,omitempty"`
	Quantity           int     `json:"quantity"`
	UnitPrice          float64 `json:"unitPrice"`
	DiscountPercentage float64 `json:"discountPercentage"`
	TotalPrice         float64 `json:"totalPrice"`
	CreatedAt          string  `json:"createdAt"`
}

// ShippingAddress is the structured form of Order.ShippingAddress
type ShippingAddress struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

// Validate checks the required address lines
func (a ShippingAddress) Validate() error {
	missing := []string{}
	for name, v := range map[string]string{
		"addressLine1": a.AddressLine1,
		"city":         a.City,
		"state":        a.State,
		"postalCode":   a.PostalCode,
		"country":      a.Country,
	} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

// CreateOrderRequest is the payload for POST /orders.
// The order service expects the address as a JSON string.
type CreateOrderRequest struct {
	ShippingAddress string `json:"shippingAddress"`
}

// NewCreateOrderRequest encodes addr into a CreateOrderRequest
func NewCreateOrderRequest(addr ShippingAddress) (CreateOrderRequest, error) {
	if err := addr.Validate(); err != nil {
		return CreateOrderRequest{}, err
	}
	data, err := json.Marshal(addr)
	if err != nil {
		return CreateOrderRequest{}, fmt.Errorf("encode shipping address: %w", err)
	}
	return CreateOrderRequest{ShippingAddress: string(data)}, nil
}
