package app

import (
	"fmt"

	"toronto_stays/internal/domain"
)

// storageErr passes domain errors through and wraps anything else as a
// StorageError so handlers can answer with a generic 500.
func storageErr(op string, err error) error {
	if err == nil || domain.IsDomain(err) {
		return err
	}
	return &domain.StorageError{Op: op, Err: err}
}

func listingKey(id int64) string { return fmt.Sprintf("listing:%d", id) }

func hostKey(id int64) string { return fmt.Sprintf("host:%d", id) }

func suggestKey(q string) string { return "nbhd:" + q }
