package database

import (
	"context"
	"errors"
	"time"

	"parcel-delivery/models/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IdentityDirectory mirrors signed-in accounts into the identities table.
type IdentityDirectory struct {
	db *gorm.DB
}

func NewIdentityDirectory(db *gorm.DB) *IdentityDirectory {
	return &IdentityDirectory{db: db}
}

// Record upserts by uid, merging the sign-in provider into the known set.
func (d *IdentityDirectory) Record(ctx context.Context, identity user.Identity, provider string, at time.Time) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing user.Identity
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("uid = ?", identity.UID).
			First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			identity.LastSignInAt = &at
			if provider != "" {
				identity.Providers = user.StringSlice{provider}
			}
			return tx.Create(&identity).Error
		}

		existing.Email = identity.Email
		existing.EmailVerified = identity.EmailVerified
		if identity.DisplayName != "" {
			existing.DisplayName = identity.DisplayName
		}
		if identity.PhotoURL != "" {
			existing.PhotoURL = identity.PhotoURL
		}
		if provider != "" && !existing.Providers.Has(provider) {
			existing.Providers = append(existing.Providers, provider)
		}
		existing.LastSignInAt = &at
		return tx.Save(&existing).Error
	})
}
