package main

import (
	"strings"

	"paytracker/models"

	"golang.org/x/crypto/bcrypt"
)

// registerUser creates a new account after checking email uniqueness.
func registerUser(name, email, password string) error {
	email = strings.TrimSpace(email)
	// pre-check existing (optimistic)
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return newError(errExistentUser, "This user is already registered!")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := models.User{Name: name, Email: email, Password: string(hashed)}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return newError(errExistentUser, "This user is already registered!")
		}
		return err
	}
	return nil
}

// findUserByEmail resolves a principal by its token subject.
func findUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, newError(errNotFound, "User not found: "+email)
	}
	return &user, nil
}

// authenticate matches a login attempt against the stored hash. An unknown
// email surfaces as not-found, a wrong password as bad credentials.
func authenticate(email, password string) (*models.User, error) {
	user, err := findUserByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, newError(errBadCredentials, "Bad credentials!")
	}
	return user, nil
}
