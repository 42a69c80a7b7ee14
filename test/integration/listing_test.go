package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"eventomir_backend/internal/models"
	"eventomir_backend/internal/repositories"
	"eventomir_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createListing(t *testing.T, ts *helpers.TestServer, token string) string {
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/listings", token, map[string]interface{}{
		"title":       "Wedding photography",
		"description": "Full day coverage",
		"category":    "photographer",
		"city":        "Almaty",
		"price":       200000,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "Listing must be created. Response: "+body)

	var listing struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &listing))
	assert.Equal(t, string(models.ModerationStatusPending), listing.Status)
	return listing.ID
}

func TestListingModerationFlow(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, ts.DB)
	performerToken, performer := helpers.CreateAndLoginPerformer(t, ts, ts.DB)
	customerToken, _ := helpers.CreateAndLoginCustomer(t, ts, ts.DB)

	listingID := createListing(t, ts, performerToken)

	// Invisible to other users until approved.
	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/listings/"+listingID, customerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// The owner still sees it.
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/listings/"+listingID, performerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Approve and notify.
	res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/admin/listings/"+listingID+"/moderate", adminToken, map[string]interface{}{
		"approve": true,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	n := latestNotification(t, ts, performer.ID)
	assert.Equal(t, repositories.NotificationTypeModerationResult, n.Type)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(n.Data, &data))
	assert.Equal(t, "approved", data["status"])

	// Now publicly visible.
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/listings/"+listingID, customerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// A second moderation attempt is rejected.
	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/admin/listings/"+listingID+"/moderate", adminToken, map[string]interface{}{
		"approve": false,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestListingRejectionCarriesComment(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, ts.DB)
	performerToken, performer := helpers.CreateAndLoginPerformer(t, ts, ts.DB)

	listingID := createListing(t, ts, performerToken)

	res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/admin/listings/"+listingID+"/moderate", adminToken, map[string]interface{}{
		"approve": false,
		"comment": "Photos are missing",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	n := latestNotification(t, ts, performer.ID)
	assert.Equal(t, repositories.NotificationTypeModerationResult, n.Type)
	assert.Contains(t, n.Message, "Photos are missing")
}

func TestListingEditResetsModeration(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, ts.DB)
	performerToken, _ := helpers.CreateAndLoginPerformer(t, ts, ts.DB)

	listingID := createListing(t, ts, performerToken)

	res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/admin/listings/"+listingID+"/moderate", adminToken, map[string]interface{}{
		"approve": true,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/listings/"+listingID, performerToken, map[string]interface{}{
		"title": "Wedding photography deluxe",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var updated struct {
		Status string `json:"status"`
		Title  string `json:"title"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &updated))
	assert.Equal(t, string(models.ModerationStatusPending), updated.Status, "an edit goes back to the moderation queue")
	assert.Equal(t, "Wedding photography deluxe", updated.Title)
}

func TestOnlyPerformersCreateListings(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	customerToken, _ := helpers.CreateAndLoginCustomer(t, ts, ts.DB)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/listings", customerToken, map[string]interface{}{
		"title":    "Not a performer",
		"category": "dj",
		"city":     "Almaty",
		"price":    1000,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestPublicCatalogueOnlyShowsApproved(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	customerToken, _ := helpers.CreateAndLoginCustomer(t, ts, ts.DB)
	performerToken, performer := helpers.CreateAndLoginPerformer(t, ts, ts.DB)

	createListing(t, ts, performerToken)
	helpers.CreateApprovedListing(t, ts.DB, performer.ID, "Approved gig")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/listings", customerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var list struct {
		Listings []struct {
			Title  string `json:"title"`
			Status string `json:"status"`
		} `json:"listings"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list.Listings, 1)
	assert.Equal(t, "Approved gig", list.Listings[0].Title)
}
