package services

// SQL for the rental ledger. Expected schema (managed out of band):
//
//	users   (id bigserial PK, card_no text UNIQUE, name text, created_at timestamptz)
//	bikes   (id bigserial PK, name text)
//	rentals (id bigserial PK, user_id FK, bike_id FK, start_time timestamptz,
//	         end_time timestamptz NULL)
//	credits (id bigserial PK, user_id FK, bike_id FK NULL, kind text,
//	         amount bigint, created_at timestamptz)
const (
	queryUserByToken = `
		SELECT id, card_no, name, created_at
		FROM users
		WHERE card_no = $1`

	queryBalance = `
		SELECT COALESCE(SUM(CASE WHEN kind = 'Top Up' THEN amount ELSE -amount END), 0)
		FROM credits
		WHERE user_id = $1`

	queryInsertEntry = `
		INSERT INTO credits (user_id, bike_id, kind, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	queryAvailableBikes = `
		SELECT b.id, b.name
		FROM bikes b
		WHERE NOT EXISTS (
			SELECT 1 FROM rentals r
			WHERE r.bike_id = b.id AND r.end_time IS NULL
		)
		ORDER BY b.id`

	queryOpenRental = `
		SELECT id, user_id, bike_id, start_time, end_time
		FROM rentals
		WHERE user_id = $1 AND end_time IS NULL`

	// Commit-time re-checks: the open rental and the bike row are locked so
	// a concurrent session for the same user or bike blocks until this
	// transaction resolves.
	queryLockOpenRental = `
		SELECT r.id, r.bike_id, r.start_time, b.name
		FROM rentals r
		JOIN bikes b ON b.id = r.bike_id
		WHERE r.user_id = $1 AND r.end_time IS NULL
		FOR UPDATE OF r`

	queryLockOpenRentalID = `
		SELECT id
		FROM rentals
		WHERE user_id = $1 AND end_time IS NULL
		FOR UPDATE`

	queryLockBike = `
		SELECT id, name
		FROM bikes
		WHERE id = $1
		FOR UPDATE`

	queryBikeHasOpenRental = `
		SELECT EXISTS (
			SELECT 1 FROM rentals
			WHERE bike_id = $1 AND end_time IS NULL
		)`

	queryInsertRental = `
		INSERT INTO rentals (user_id, bike_id, start_time)
		VALUES ($1, $2, $3)
		RETURNING id`

	queryCloseRental = `
		UPDATE rentals
		SET end_time = $1
		WHERE id = $2 AND end_time IS NULL`
)
