package order

// Owner is the optional identity an order belongs to. Orders without an owner
// are only visible in unfiltered (admin) contexts.
type Owner struct {
	Name  string
	Email string
}
