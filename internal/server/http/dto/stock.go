package dto

// RestockRequest adds copies of a book.
type RestockRequest struct {
	Delta int64 `json:"delta"`
}

// StockResponse reports the stock level after a change.
type StockResponse struct {
	BookID   int64 `json:"book_id"`
	Quantity int64 `json:"quantity"`
}
