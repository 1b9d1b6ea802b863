package domain

// Identity is the authenticated user a document is stored under. It is the
// subject of the session token.
type Identity string

func (i Identity) String() string { return string(i) }
