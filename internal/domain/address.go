package domain

// Address is a shipping or billing address owned by a user.
type Address struct {
	ID           string  `json:"id" db:"id"`
	UserID       string  `json:"user_id" db:"user_id"`
	AddressLine1 string  `json:"address_line1" db:"address_line1"`
	AddressLine2 *string `json:"address_line2" db:"address_line2"`
	City         string  `json:"city" db:"city"`
	State        string  `json:"state" db:"state"`
	PostalCode   string  `json:"postal_code" db:"postal_code"`
	Country      string  `json:"country" db:"country"`
}
