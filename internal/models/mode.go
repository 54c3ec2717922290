package models

type Mode string

const (
	ModeLive Mode = "live"
	ModeDemo Mode = "demo"
)

type ModeStatus struct {
	Mode                 Mode `json:"mode"`
	StorefrontConfigured bool `json:"storefront_configured"`
}

type SetModeRequest struct {
	Demo *bool `json:"demo" validate:"required"`
}

type CheckoutHandoff struct {
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
	Demo    bool   `json:"demo"`
}
