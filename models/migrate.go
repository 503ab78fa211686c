package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every storefront table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{}, &Product{}, &Order{}, &User{},
		&StoreInfo{}, &BankDetails{}, &AboutPage{}, &Owner{}, &Section{},
	)
}
