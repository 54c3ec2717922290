package models

type AddItemRequest struct {
	ProductID string   `json:"product_id" validate:"required"`
	VariantID string   `json:"variant_id" validate:"required"`
	Quantity  *float64 `json:"quantity,omitempty"`
}

type UpdateQuantityRequest struct {
	ProductID string   `json:"product_id" validate:"required"`
	VariantID string   `json:"variant_id" validate:"required"`
	Quantity  *float64 `json:"quantity" validate:"required"`
}

type RemoveItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id" validate:"required"`
}

type CartEventRequest struct {
	Event     string   `json:"event" validate:"required,oneof=increase decrease remove set"`
	ProductID string   `json:"product_id" validate:"required"`
	VariantID string   `json:"variant_id" validate:"required"`
	Quantity  *float64 `json:"quantity,omitempty"`
}

type SelectionRequest struct {
	Options  map[string]string `json:"options"`
	Quantity *float64          `json:"quantity,omitempty"`
}
