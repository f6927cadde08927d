package services

import (
	"fmt"

	pkgvalidator "github.com/ghuser/geoitems/pkg/validator"
	itemdomain "github.com/ghuser/geoitems/services/item/domain"
	"github.com/ghuser/geoitems/services/item/domain/models"
)

// ValidateRecord runs the persisted-record consistency check (the validate
// tags on models.Item) and reports failures as ErrConstraintViolation with
// the offending fields in the message.
func ValidateRecord(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("%w: item cannot be nil", itemdomain.ErrConstraintViolation)
	}
	if err := pkgvalidator.Validate(item); err != nil {
		return fmt.Errorf("%w: %s", itemdomain.ErrConstraintViolation, pkgvalidator.Describe(err))
	}
	return nil
}
