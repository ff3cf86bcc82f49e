package dto

import "encoding/json"

type BrandProfileRequest struct {
	BusinessName   string          `json:"business_name"`
	Website        string          `json:"website"`
	WhatsAppNumber string          `json:"whatsapp_number"`
	Links          json.RawMessage `json:"links"`
}

type StaffProfileRequest struct {
	StoreName     string `json:"store_name"`
	StoreLocation string `json:"store_location"`
	Phone         string `json:"phone"`
}
