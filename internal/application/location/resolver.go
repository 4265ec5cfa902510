// Package location resolves country/state/city names into foreign keys.
package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-api-signup/internal/domain"
)

// Lookup is the read-only view of the location tables used for resolution.
// Each method returns domain.ErrNotFound when no row matches.
type Lookup interface {
	CountryIDByName(ctx context.Context, name string) (int64, error)
	StateIDByName(ctx context.Context, countryID int64, name string) (int64, error)
	CityIDByName(ctx context.Context, countryID, stateID int64, name string) (int64, error)
}

// Resolve validates the names top-down. A level is only looked up under a
// resolved parent; names are matched case-insensitively.
func Resolve(ctx context.Context, lookup Lookup, names domain.LocationNames) (domain.ResolvedLocation, error) {
	var loc domain.ResolvedLocation

	if country, ok := present(names.Country); ok {
		id, err := lookup.CountryIDByName(ctx, country)
		if err != nil {
			return loc, notFound(err, domain.ErrInvalidCountry, country)
		}
		loc.CountryID = &id
	}

	if state, ok := present(names.State); ok {
		if loc.CountryID == nil {
			return loc, domain.ErrStateWithoutCountry
		}
		id, err := lookup.StateIDByName(ctx, *loc.CountryID, state)
		if err != nil {
			return loc, notFound(err, domain.ErrInvalidState, state)
		}
		loc.StateID = &id
	}

	if city, ok := present(names.City); ok {
		if loc.CountryID == nil || loc.StateID == nil {
			return loc, domain.ErrCityWithoutParent
		}
		id, err := lookup.CityIDByName(ctx, *loc.CountryID, *loc.StateID, city)
		if err != nil {
			return loc, notFound(err, domain.ErrInvalidCity, city)
		}
		loc.CityID = &id
	}

	return loc, nil
}

func present(s *string) (string, bool) {
	if s == nil || *s == "" {
		return "", false
	}
	return *s, true
}

// notFound turns a missing row into the level's sentinel; other errors pass through.
func notFound(err, sentinel error, name string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %s", sentinel, name)
	}
	return fmt.Errorf("resolve location: %w", err)
}
