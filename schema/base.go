package schema

// Base is a base schema for embedding in concrete payload types.
type Base struct{}

// String implements Schema interface
func (r Base) String() string {
	return ""
}
