package notification

import "fmt"

// Band groups stock levels into message templates.
type Band int

const (
	BandOutOfStock Band = iota
	BandLowStock
	BandUpdate
)

const lowStockLimit = 3

// BandFor returns the band for a stock level.
func BandFor(quantity int64) Band {
	switch {
	case quantity <= 0:
		return BandOutOfStock
	case quantity <= lowStockLimit:
		return BandLowStock
	default:
		return BandUpdate
	}
}

// Subject renders the alert subject line.
func Subject(title string) string {
	return "Stock alert: " + title
}

// Body renders the alert text for the stock level.
func Body(title string, quantity int64) string {
	switch BandFor(quantity) {
	case BandOutOfStock:
		return fmt.Sprintf("%s is now out of stock.", title)
	case BandLowStock:
		return fmt.Sprintf("%s: low stock, %d left.", title, quantity)
	default:
		return fmt.Sprintf("%s: stock update, %d left.", title, quantity)
	}
}
