package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"eventomir_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser inserts a user, hashing a raw password when one is given.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	user.IsVerified = true

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("Failed to create user %s: %v", user.Email, result.Error)
		return result.Error
	}
	return nil
}

// CreateAndLoginUser creates a user and logs in through the API.
func CreateAndLoginUser(t *testing.T, ts *TestServer, db *gorm.DB, name, email, password string, role models.UserRole) (string, *models.User) {
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: password,
		Role:         role,
	}
	err := CreateUser(t, db, user)
	assert.NoError(t, err, "Creating a test user must not fail")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Login must succeed. Response: "+bodyStr)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	err = json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err, "Failed to parse login JSON")
	assert.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, user
}

// CreateAndLoginCustomer creates a customer with a unique email.
func CreateAndLoginCustomer(t *testing.T, ts *TestServer, db *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("customer_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, db, "Test Customer", email, "password123", models.UserRoleCustomer)
}

// CreateAndLoginPerformer creates a performer with a unique email.
func CreateAndLoginPerformer(t *testing.T, ts *TestServer, db *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("performer_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, db, "Test Performer", email, "password123", models.UserRolePerformer)
}

// CreateAndLoginAdmin creates an admin with a unique email.
func CreateAndLoginAdmin(t *testing.T, ts *TestServer, db *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("admin_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, db, "Test Admin", email, "password123", models.UserRoleAdmin)
}

// CreateApprovedListing inserts a listing already past moderation.
func CreateApprovedListing(t *testing.T, db *gorm.DB, performerID, title string) models.Listing {
	listing := models.Listing{
		PerformerID: performerID,
		Title:       title,
		Description: "Test description",
		Category:    models.ListingCategoryDJ,
		City:        "Almaty",
		Price:       150000,
		Status:      models.ModerationStatusApproved,
	}
	if err := db.Create(&listing).Error; err != nil {
		t.Fatalf("Failed to create test listing: %v", err)
	}
	return listing
}
