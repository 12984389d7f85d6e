package models

// Customer represents a row of the customers table
type Customer struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	ImageURL string `json:"image_url" db:"image_url"`
}

// CustomerField is the id/name pair used by the customer select of the invoice forms
type CustomerField struct {
	ID   string `json:"id" example:"3958dc9e-712f-4377-85e9-fec4b6a6442a"`
	Name string `json:"name" example:"Lee Robinson"`
}
