package judge_errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

const (
	CodeUniqueConstraint     = "23505"
	CodeForeignKeyConstraint = "23503"
)

var (
	ErrInternal            = errors.New("internal service error. please try again later")
	ErrInvalidInput        = errors.New("invalid request")
	ErrNotFound            = errors.New("entity not found")
	ErrUnAuthorized        = errors.New("user not allowed to perform this action")
	ErrTooManyRequests     = errors.New("too many requests. please retry after some time")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// HandleDBErrors folds low level database errors into service level
// sentinels. errMsgs maps a pg error code to a map of constraint names
// and their user readable messages.
func HandleDBErrors(
	err error,
	errMsgs map[string]map[string]string,
	contextMessage string,
) error {
	if errors.Is(err, pgx.ErrNoRows) {
		log.Error(fmt.Sprintf("%s, %v", contextMessage, ErrNotFound))
		return ErrNotFound
	}

	// assume its an internal error first
	err = fmt.Errorf(
		"%w, %s, %w",
		ErrInternal,
		contextMessage,
		err,
	)

	// check if its a pg error
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		log.Error(err)
		return err
	}

	if errMsgs == nil {
		log.Warnf("got null errMsgs")
		log.Error(err)
		return err
	}

	// check if its a foreign key error
	if pgErr.Code == CodeForeignKeyConstraint {
		msgForeignKey, ok := errMsgs[CodeForeignKeyConstraint]
		if !ok {
			log.Warnf("no msg map found for foreign key constraint.")
			return fmt.Errorf(
				"%w, %s",
				ErrInvalidInput,
				pgErr.Detail,
			)
		}
		return handleConstraintError(pgErr, msgForeignKey)
	}

	// check if its a unique key error
	if pgErr.Code == CodeUniqueConstraint {
		msgUniqueConstraint, ok := errMsgs[CodeUniqueConstraint]
		if !ok {
			log.Warnf("no msg map found for unique key constraint.")
			return fmt.Errorf(
				"%w, %s",
				ErrInvalidInput,
				pgErr.Detail,
			)
		}
		return handleConstraintError(pgErr, msgUniqueConstraint)
	}

	// unknown error
	log.Error(err)
	return err
}

func handleConstraintError(pgErr *pgconn.PgError, msgs map[string]string) error {
	msg, ok := msgs[pgErr.ConstraintName]
	if !ok {
		log.Warnf(
			"unknown constraint violation %s with code %s",
			pgErr.ConstraintName,
			pgErr.Code,
		)
		msg = pgErr.Detail
	}
	err := fmt.Errorf(
		"%w, %s",
		ErrInvalidInput,
		msg,
	)
	log.Error(err)
	return err
}
