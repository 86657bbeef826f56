package models

import (
	"gorm.io/gorm"
)

// ReplaceAll replaces both collections wholesale with the imported data.
//
// The previous contents are removed permanently, including soft-deleted
// records. Replacement happens in a single transaction: when any record
// cannot be written, the previous state is kept.
func ReplaceAll(db *gorm.DB, categories []Category, spends []Spend) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().Where("true").Delete(&Spend{}).Error
		if err != nil {
			return err
		}

		err = tx.Unscoped().Where("true").Delete(&Category{}).Error
		if err != nil {
			return err
		}

		for i := range categories {
			err := tx.Create(&categories[i]).Error
			if err != nil {
				return err
			}
		}

		for i := range spends {
			err := tx.Create(&spends[i]).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteAll removes all resources on the instance.
func DeleteAll(db *gorm.DB) error {
	return ReplaceAll(db, nil, nil)
}
