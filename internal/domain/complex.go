package domain

// Complex is one residential complex managed as a single billing tenant.
// Created by the superadmin; never mutated or deleted after creation.
type Complex struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}
