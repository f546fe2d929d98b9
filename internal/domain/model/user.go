package model

// User is the authenticated customer handed over by the identity layer.
type User struct {
	ID        int64
	Email     string
	GradeName string
	Points    int64
}
