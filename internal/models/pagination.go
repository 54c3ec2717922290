package models

// ProductPage is one page of the product grid as served to the client.
type ProductPage struct {
	Mode     Mode       `json:"mode"`
	Page     int        `json:"page"`
	Products []*Product `json:"products"`
	Notice   string     `json:"notice,omitempty"`
}
