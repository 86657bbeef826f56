package models

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Category represents a billing account, e.g. a credit card, that owns
// spends.
type Category struct {
	DefaultModel
	Name       string `json:"name" gorm:"uniqueIndex:category_name" example:"Sapphire Card" default:""` // Name of the category
	Color      string `json:"color" example:"#2196F3" default:""`                                      // Display color
	Group      string `json:"group" example:"Credit Cards" default:""`                                 // Group the category belongs to
	CardNumber string `json:"cardNumber" example:"4582" default:""`                                    // Last digits of the card, for display only
	Icon       string `json:"icon" example:"credit-card" default:""`                                   // Display icon

	// NextBillDate is the next expected statement date. It is advanced
	// only by the settlement engine when a recurring spend owned by this
	// category is paid.
	NextBillDate *time.Time `json:"nextBillDate" example:"2024-04-01T00:00:00Z"`
}

// BeforeSave trims whitespace and normalizes the next bill date to UTC.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Color = strings.TrimSpace(c.Color)
	c.Group = strings.TrimSpace(c.Group)
	c.CardNumber = strings.TrimSpace(c.CardNumber)
	c.Icon = strings.TrimSpace(c.Icon)

	if c.NextBillDate != nil {
		next := c.NextBillDate.In(time.UTC)
		c.NextBillDate = &next
	}

	return nil
}

// Spends returns all spends for this category.
//
// Deleting a category does not cascade to its spends, so the reverse
// lookup can legitimately return records for a category that no longer
// exists.
func (c Category) Spends(db *gorm.DB) ([]Spend, error) {
	var spends []Spend

	err := db.Where("category_id = ?", c.ID).Find(&spends).Error
	if err != nil {
		return nil, err
	}

	return spends, nil
}

// Returns all categories on this instance for export
func (Category) Export() (json.RawMessage, error) {
	var categories []Category
	err := DB.Unscoped().Where(&Category{}).Find(&categories).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&categories)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
