package token

// Backend is the durable side of the store. It holds at most one access
// token and survives process restarts.
type Backend interface {
	Load() (string, error)
	Save(token string) error
	Delete() error
	Close() error
}
