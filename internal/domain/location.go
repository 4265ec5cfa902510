package domain

// Country, State and City form the read-only location hierarchy.
type Country struct {
	ID        int64
	Name      string
	PhoneCode int
}

type State struct {
	ID          int64
	Name        string
	CountryID   int64
	CountryCode string
}

type City struct {
	ID        int64
	Name      string
	StateID   int64
	CountryID int64
}

// LocationNames are the user-supplied names; nil or empty means absent.
type LocationNames struct {
	Country *string
	State   *string
	City    *string
}

// ResolvedLocation holds the ids of a validated location. Absent levels are nil.
type ResolvedLocation struct {
	CountryID *int64
	StateID   *int64
	CityID    *int64
}
