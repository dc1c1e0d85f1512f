// Package addressrepo provides read-only access to customers' stored
// addresses. The address table is owned by the accounts service; the
// fulfillment core only reads the default address for reservation.
package addressrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddressDTO represents the account-owned address row. The state column may
// hold a full state name rather than a UF code.
type AddressDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID    uuid.UUID `gorm:"type:uuid;index"`
	PostalCode string
	Street     string
	Number     string
	District   string
	City       string
	State      string
	IsDefault  bool
}

// TableName specifies the database table name for address entities.
func (AddressDTO) TableName() string {
	return "addresses"
}

// GormAddressBook implements ports.AddressBook over the shared database.
type GormAddressBook struct {
	db *gorm.DB
}

// NewGormAddressBook creates a read-only GORM address book.
func NewGormAddressBook(db *gorm.DB) *GormAddressBook {
	return &GormAddressBook{db: db}
}

// DefaultAddress loads the owner's default address.
func (b *GormAddressBook) DefaultAddress(
	ctx context.Context,
	ownerID kernel.UUID,
) (ports.StoredAddress, error) {
	if err := ownerID.Validate(); err != nil {
		return ports.StoredAddress{}, err
	}

	var dto AddressDTO
	err := b.db.WithContext(ctx).
		First(&dto, "owner_id = ? AND is_default", ownerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.StoredAddress{}, errs.NewObjectNotFoundError("address", ownerID.String())
		}
		return ports.StoredAddress{}, err
	}

	return ports.StoredAddress{
		PostalCode: dto.PostalCode,
		Street:     dto.Street,
		Number:     dto.Number,
		District:   dto.District,
		City:       dto.City,
		State:      dto.State,
	}, nil
}
