package services

import (
	"errors"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
)

// checkDatabaseError maps a missing row to the given error key and leaves
// anything else untouched for the HTTP layer to report as unexpected.
func checkDatabaseError(err error, notFoundKey string, notFoundCause error) error {
	if errors.Is(err, common.ErrNoRows) {
		return models.WrapErrMap(notFoundKey, notFoundCause)
	}

	return err
}

func accountAlreadyExists() error {
	return models.WrapErrMap(models.ErrKeyAccountAlreadyExists, common.ErrAccountAlreadyExists)
}
