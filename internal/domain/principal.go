package domain

// Principal is the authenticated identity attached to a request after the
// bearer token has been verified. It carries the subject and the single
// authority derived from the user-type claim.
type Principal struct {
	UserID string
	Role   UserType
}
