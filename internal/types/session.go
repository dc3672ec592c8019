package types

// Session identifies the signed-in owner for a request. It is passed
// explicitly to every service call; there is no ambient signed-in-user
// state anywhere in the codebase.
type Session struct {
	OwnerID    uint
	OwnerEmail string
}
