package db

import (
	"github.com/dmelnik/taskfence/internal/db/models"
	"gorm.io/gorm"
)

// RulesForUser returns every location-label rule owned by the user.
func RulesForUser(database *gorm.DB, userID int64) ([]models.LocationLabel, error) {
	var rules []models.LocationLabel
	if err := database.Where("user_id = ?", userID).Order("id").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// RulesForLabel returns the user's rules matching one label id.
func RulesForLabel(database *gorm.DB, userID, labelID int64) ([]models.LocationLabel, error) {
	var rules []models.LocationLabel
	if err := database.Where("user_id = ? AND label_id = ?", userID, labelID).Order("id").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// GroupRulesByLabel buckets rules by label id. Built as a direct map append,
// so the result does not depend on the order the store returned the rows:
// every rule lands in exactly one bucket.
func GroupRulesByLabel(rules []models.LocationLabel) map[int64][]models.LocationLabel {
	grouped := make(map[int64][]models.LocationLabel)
	for _, rule := range rules {
		grouped[rule.LabelID] = append(grouped[rule.LabelID], rule)
	}
	return grouped
}

// CreateRule inserts a new rule.
func CreateRule(database *gorm.DB, rule *models.LocationLabel) error {
	return database.Create(rule).Error
}

// GetRule loads a rule by id, scoped to its owner.
func GetRule(database *gorm.DB, userID int64, id uint) (*models.LocationLabel, error) {
	var rule models.LocationLabel
	if err := database.Where("user_id = ?", userID).First(&rule, id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

// UpdateRule saves changes to an existing rule.
func UpdateRule(database *gorm.DB, rule *models.LocationLabel) error {
	return database.Save(rule).Error
}

// DeleteRule removes a rule, scoped to its owner. Returns
// gorm.ErrRecordNotFound when the row does not exist or belongs to
// someone else.
func DeleteRule(database *gorm.DB, userID int64, id uint) error {
	result := database.Where("user_id = ?", userID).Delete(&models.LocationLabel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
