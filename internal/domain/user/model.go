package user

// Principal is the authenticated caller of an owner-scoped operation.
type Principal struct {
	UserID string
	Email  string
}
