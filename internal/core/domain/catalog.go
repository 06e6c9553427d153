package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")

// Product is a dish offered on the menu.
type Product struct {
	ID          int     `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
}

// Restaurant is a partner venue listed to the user.
type Restaurant struct {
	ID      int     `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Address string  `json:"address" yaml:"address"`
	Cuisine string  `json:"cuisine" yaml:"cuisine"`
	Rating  float64 `json:"rating" yaml:"rating"`
}
