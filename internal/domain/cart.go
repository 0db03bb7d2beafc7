package domain

import "strings"

// Cart is the server-computed cart snapshot. Subtotal, Total and ItemCount
// are authoritative and never recomputed on the client.
type Cart struct {
	ID            string     `json:"id"`
	PatientID     string     `json:"patientId"`
	Items         []CartItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	TotalDiscount float64    `json:"totalDiscount"`
	Total         float64    `json:"total"`
	ItemCount     int        `json:"itemCount"`
	CreatedAt     string     `json:"createdAt"`
	UpdatedAt     string     `json:"updatedAt"`
}

// IsEmpty reports whether the cart holds no lines
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// CartItem is a single cart line
type CartItem struct {
	ID                 string  `json:"id"`
	MedicineID         string  `json:"medicineId"`
	MedicineName       string  `json:"medicineName"`
	MedicineImageURL   string  `json:"medicineImageUrl,omitempty"`
	Quantity           int     `json:"quantity"`
	UnitPrice          float64 `json:"unitPrice"`
	DiscountPercentage float64 `json:"discountPercentage"`
	TotalPrice         float64 `json:"totalPrice"`
	InStock            bool    `json:"inStock"`
}

// AddToCartRequest is the payload for POST /cart/items
type AddToCartRequest struct {
	MedicineID string `json:"medicineId"`
	Quantity   int    `json:"quantity"`
}

// Validate performs client-side sanity checks only; stock and pricing are
// enforced by the cart service.
func (r AddToCartRequest) Validate() error {
	if strings.TrimSpace(r.MedicineID) == "" {
		return ErrInvalidInput
	}
	if r.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// UpdateCartItemRequest is the payload for PUT /cart/items/{id}
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// Validate rejects non-positive quantities
func (r UpdateCartItemRequest) Validate() error {
	if r.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}
