package postgres

import "context"

// Location lookups are case-insensitive equality on lower(name); names are
// never treated as patterns.

func (q *Queries) CountryIDByName(ctx context.Context, name string) (int64, error) {
	return q.lookupID(ctx, `
		SELECT id FROM countries
		WHERE lower(name) = lower($1)
		ORDER BY id LIMIT 1`, name)
}

func (q *Queries) StateIDByName(ctx context.Context, countryID int64, name string) (int64, error) {
	return q.lookupID(ctx, `
		SELECT id FROM states
		WHERE country_id = $1 AND lower(name) = lower($2)
		ORDER BY id LIMIT 1`, countryID, name)
}

func (q *Queries) CityIDByName(ctx context.Context, countryID, stateID int64, name string) (int64, error) {
	return q.lookupID(ctx, `
		SELECT id FROM cities
		WHERE country_id = $1 AND state_id = $2 AND lower(name) = lower($3)
		ORDER BY id LIMIT 1`, countryID, stateID, name)
}

func (q *Queries) lookupID(ctx context.Context, sql string, args ...any) (int64, error) {
	var id int64
	if err := q.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, mapError(err)
	}
	return id, nil
}
