package models

type User struct {
	ID       string `json:"id" example:"410544b2-4001-4271-9855-fec4b6a6442a"` // User ID
	Name     string `json:"name" example:"User"`                               // Display name
	Email    string `json:"email" example:"user@nextmail.com"`                 // Login email
	Password string `json:"-"`                                                 // argon2id hash
}
