// README: Opaque identity type shared across modules.
package types

// ID is an opaque entity identifier (UUID for packages/travels, the
// identity provider's uid for users).
type ID string

func (id ID) IsZero() bool { return id == "" }
