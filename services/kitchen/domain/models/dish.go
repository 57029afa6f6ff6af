package models

// Dish is one plate coming out of the kitchen.
type Dish struct {
	Description string
	Delivered   bool
}

// NewDish returns an undelivered dish.
func NewDish(description string) Dish {
	return Dish{Description: description}
}

// Deliver returns a copy of d marked as delivered.
func Deliver(d Dish) Dish {
	d.Delivered = true
	return d
}

// Menu is the fixed set of dishes the kitchen cooks.
var Menu = []Dish{
	NewDish("Sesame chicken"),
	NewDish("Lo mein noodles, plain"),
	NewDish("Sweet & sour beef"),
}
