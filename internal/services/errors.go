package services

import (
	"propmatch_backend/internal/repositories"
	"propmatch_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// storeError classifies a failed write: a unique-key clash is a Conflict,
// anything else is a DependencyFailure whose cause is only logged.
func storeError(err error, domain string) error {
	if repositories.IsDuplicateKey(err) {
		return apperrors.NewConflictError(domain, "Resource already exists").WithError(err)
	}
	return apperrors.DependencyFailure(err, domain)
}

func begin(db *gorm.DB, domain string) (*gorm.DB, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DependencyFailure(tx.Error, domain)
	}
	return tx, nil
}
