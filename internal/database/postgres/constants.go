package postgres

// PostgreSQL Error Codes
const (
	// PgErrorClassIntegrityViolation is the two-character class prefix for
	// all integrity constraint violations (unique, foreign key, check).
	PgErrorClassIntegrityViolation = "23"

	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)
