package room

import "fmt"

// Category is a fixed room classification carrying a nightly base rate.
type Category string

const (
	AnyCategory Category = ""
	Standard    Category = "STANDARD"
	Deluxe      Category = "DELUXE"
	Suite       Category = "SUITE"
)

var categories = []Category{Standard, Deluxe, Suite}

var baseRates = map[Category]float64{
	Standard: 100.0,
	Deluxe:   200.0,
	Suite:    350.0,
}

// Categories lists every category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Rate is the nightly base rate; zero for an unknown category.
func (c Category) Rate() float64 { return baseRates[c] }

func (c Category) Valid() bool {
	_, ok := baseRates[c]
	return ok
}

type Room struct {
	Number    int      `json:"number"`
	Category  Category `json:"category"`
	Capacity  int      `json:"capacity"`
	Available bool     `json:"available"`
}

func (r Room) String() string {
	status := "Available"
	if !r.Available {
		status = "Occupied"
	}
	return fmt.Sprintf("Room %d | %s | $%.2f/night | Capacity: %d | %s",
		r.Number, r.Category, r.Category.Rate(), r.Capacity, status)
}
