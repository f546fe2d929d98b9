package model

import "time"

// Book is a catalogue title together with its authoritative stock counter.
type Book struct {
	ID        int64
	Title     string
	Author    string
	Publisher string
	ISBN      string
	Price     int64
	Discount  int64
	Quantity  int64
	UpdatedAt time.Time
}
