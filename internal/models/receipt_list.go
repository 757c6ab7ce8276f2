package models

// ReceiptList is one page of receipts plus the unpaginated total.
type ReceiptList struct {
	Items []Receipt `json:"items"`
	Total int64     `json:"total"`
}
