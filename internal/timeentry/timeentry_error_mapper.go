package timeentry

import (
	"errors"
	"strings"

	timeentryerrors "zeiterfassung/internal/timeentry/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates store failures into domain errors. A unique
// violation on the open-session index means another clock-in won the race.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return timeentryerrors.ErrEntryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_time_entries_open_session" {
			return timeentryerrors.ErrDuplicateSession
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_time_entries_open_session") {
		return timeentryerrors.ErrDuplicateSession
	}

	return err
}
