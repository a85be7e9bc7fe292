package user

type ID int64

// Principal is the authenticated user as recognized by the login boundary.
// Attributes carries provider-specific profile claims that this service
// does not interpret.
type Principal struct {
	ID         ID
	Email      string
	Name       string
	Role       string
	Attributes map[string]any
}
