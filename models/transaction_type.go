package models

// TransactionType is seeded reference data. The description is free text in
// storage; posting maps it onto a closed kind and treats anything it does not
// recognize as invalid.
type TransactionType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Description string `gorm:"size:32;not null;uniqueIndex" json:"description"`
}
