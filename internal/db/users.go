package db

import (
	"github.com/dmelnik/taskfence/internal/db/models"
	"gorm.io/gorm"
)

// GetUser loads a user by Todoist user id.
func GetUser(database *gorm.DB, id int64) (*models.User, error) {
	var user models.User
	if err := database.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertUserToken creates the user row on first login and replaces the
// stored token on every later login. No locking: two simultaneous callbacks
// for the same provider user race on first insert, which is acceptable for
// a single-operator deployment.
func UpsertUserToken(database *gorm.DB, id int64, token string) (*models.User, error) {
	var user models.User
	err := database.First(&user, id).Error
	if err == gorm.ErrRecordNotFound {
		user = models.User{ID: id, OAuthToken: token}
		if err := database.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	user.OAuthToken = token
	if err := database.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
