package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Books() BookRepository
	Orders() OrderRepository
	Grades() GradeRepository
	Subscriptions() SubscriptionRepository
}
