package models

// Connection is an unordered pair of location names linked directly.
type Connection struct {
	From string
	To   string
}

// GeocodeTask is a location waiting for its coordinates to be resolved.
type GeocodeTask struct {
	ID   int    // ID is the location identifier.
	Name string // Name is the location name passed to the provider.
}
