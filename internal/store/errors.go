package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameTaken is returned when registration hits the unique
	// constraint on users.username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUserNotFound is returned when no credential record matches the
	// requested username.
	ErrUserNotFound = errors.New("user not found")

	// ErrGameStateNotFound is returned when the resource or building record
	// of a user does not exist.
	ErrGameStateNotFound = errors.New("game state not found")

	// ErrCollectConflict is returned when the guarded collection update
	// matched no row: another collection changed last_collected first.
	ErrCollectConflict = errors.New("resources were collected concurrently")

	// ErrUnsupportedDriver is returned for a driver other than pgx or sqlite3.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors. These are wrapped by repository
// methods when a SQL-level operation fails before any domain logic can be
// applied.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")
)
