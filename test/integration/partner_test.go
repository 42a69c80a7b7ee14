package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"eventomir_backend/internal/models"
	"eventomir_backend/internal/repositories"
	"eventomir_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyForPartnership(t *testing.T, ts *helpers.TestServer, token string) string {
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/partners/apply", token, map[string]interface{}{
		"company_name": "Event Agency LLP",
		"website":      "https://agency.example.com",
		"message":      "We bring corporate clients",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "Application must be accepted. Response: "+body)

	var application struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &application))
	assert.Equal(t, string(models.PartnerStatusPending), application.Status)
	return application.ID
}

func TestPartnerApplicationFlow(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, ts.DB)
	userToken, user := helpers.CreateAndLoginCustomer(t, ts, ts.DB)

	applicationID := applyForPartnership(t, ts, userToken)

	// A second application while one is pending is rejected.
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/partners/apply", userToken, map[string]interface{}{
		"company_name": "Another LLP",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	// Approval mints a referral code and notifies the applicant.
	res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/admin/partners/"+applicationID+"/decide", adminToken, map[string]interface{}{
		"approve": true,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var decided struct {
		Status       string `json:"status"`
		ReferralCode string `json:"referral_code"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &decided))
	assert.Equal(t, string(models.PartnerStatusApproved), decided.Status)
	require.NotEmpty(t, decided.ReferralCode)

	n := latestNotification(t, ts, user.ID)
	assert.Equal(t, repositories.NotificationTypePartnerResult, n.Type)
	assert.Contains(t, n.Message, decided.ReferralCode)

	// Deciding twice is rejected.
	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/admin/partners/"+applicationID+"/decide", adminToken, map[string]interface{}{
		"approve": false,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestReferralRegistrationIncrementsCounter(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, ts.DB)
	partnerToken, _ := helpers.CreateAndLoginCustomer(t, ts, ts.DB)

	applicationID := applyForPartnership(t, ts, partnerToken)
	res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/admin/partners/"+applicationID+"/decide", adminToken, map[string]interface{}{
		"approve": true,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var decided struct {
		ReferralCode string `json:"referral_code"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &decided))

	email := fmt.Sprintf("referred_%d@test.com", time.Now().UnixNano())
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":         email,
		"password":      "password123",
		"name":          "Referred User",
		"role":          "customer",
		"referral_code": decided.ReferralCode,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var application models.PartnerApplication
	require.NoError(t, ts.DB.Where("referral_code = ?", decided.ReferralCode).First(&application).Error)
	assert.EqualValues(t, 1, application.ReferralCount)

	var referred models.User
	require.NoError(t, ts.DB.Where("email = ?", email).First(&referred).Error)
	assert.Equal(t, decided.ReferralCode, referred.ReferredBy)
}

func TestUnknownReferralCodeIsIgnored(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	email := fmt.Sprintf("noref_%d@test.com", time.Now().UnixNano())
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":         email,
		"password":      "password123",
		"name":          "No Referral",
		"role":          "performer",
		"referral_code": "DOESNOTEXIST",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var user models.User
	require.NoError(t, ts.DB.Where("email = ?", email).First(&user).Error)
	assert.Empty(t, user.ReferredBy)
}

func TestRejectedApplicantMayReapply(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, ts.DB)
	userToken, _ := helpers.CreateAndLoginCustomer(t, ts, ts.DB)

	applicationID := applyForPartnership(t, ts, userToken)
	res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/admin/partners/"+applicationID+"/decide", adminToken, map[string]interface{}{
		"approve": false,
		"comment": "Not enough volume",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	applyForPartnership(t, ts, userToken)
}
