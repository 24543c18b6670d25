package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/app/routes"
	"github.com/shashiranjanraj/foodshare/pkg/database"
	"github.com/shashiranjanraj/foodshare/pkg/router"
)

func setupAPI(t *testing.T) http.Handler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.FoodListing{}, &models.FoodRequest{}, &models.Notification{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	r := router.New()
	routes.RegisterAPI(r)
	return r.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// registerUser signs up through the API and returns the access token.
func registerUser(t *testing.T, h http.Handler, email, role string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":                 email,
		"password":              "secret-pass",
		"password_confirmation": "secret-pass",
		"full_name":             "Test User",
		"role":                  role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode(t, rec)
	data := body["data"].(map[string]interface{})
	tokens := data["tokens"].(map[string]interface{})
	return tokens["access"].(string)
}

func TestRegisterValidation(t *testing.T) {
	h := setupAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":    "not-an-email",
		"password": "short",
		"role":     "Superuser",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode(t, rec)
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "role")
	assert.Contains(t, errs, "full_name")
}

func TestLoginFlow(t *testing.T) {
	h := setupAPI(t)
	registerUser(t, h, "login@example.com", "NGO/Volunteer")

	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "login@example.com", "password": "secret-pass",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "login@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := setupAPI(t)

	for _, path := range []string{"/api/food", "/api/requests", "/api/notifications", "/api/auth/profile"} {
		rec := doJSON(t, h, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestFoodCRUDFlow(t *testing.T) {
	h := setupAPI(t)
	providerTok := registerUser(t, h, "provider@example.com", "FoodProvider")
	ngoTok := registerUser(t, h, "ngo@example.com", "NGO/Volunteer")

	// NGO may not create listings.
	rec := doJSON(t, h, http.MethodPost, "/api/food", ngoTok, map[string]interface{}{
		"title": "Nope", "quantity": 1, "location": "X",
		"expiry_time": time.Now().Add(24 * time.Hour),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/food", providerTok, map[string]interface{}{
		"title":       "Bread crates",
		"description": "Two crates of day-old bread",
		"quantity":    2,
		"location":    "9 Mill Ln",
		"expiry_time": time.Now().Add(24 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	data := decode(t, rec)["data"].(map[string]interface{})
	listingID := uint(data["id"].(float64))
	assert.Equal(t, "Available", data["status"])

	// Owner sees it in the index and in detail.
	rec = doJSON(t, h, http.MethodGet, "/api/food", providerTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/food/%d", listingID), providerTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Patch the title.
	rec = doJSON(t, h, http.MethodPatch, fmt.Sprintf("/api/food/%d", listingID), providerTok,
		map[string]string{"title": "Bread crates (pickup tonight)"})
	assert.Equal(t, http.StatusOK, rec.Code)

	// The available feed shows it to the NGO.
	rec = doJSON(t, h, http.MethodGet, "/api/food/available", ngoTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Providers are not allowed on the available feed.
	rec = doJSON(t, h, http.MethodGet, "/api/food/available", providerTok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequestLifecycleFlow(t *testing.T) {
	h := setupAPI(t)
	providerTok := registerUser(t, h, "provider@example.com", "FoodProvider")
	ngoTok := registerUser(t, h, "ngo@example.com", "NGO/Volunteer")

	rec := doJSON(t, h, http.MethodPost, "/api/food", providerTok, map[string]interface{}{
		"title": "Soup", "quantity": 4, "location": "1 Pier Rd",
		"expiry_time": time.Now().Add(24 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	listingID := uint(decode(t, rec)["data"].(map[string]interface{})["id"].(float64))

	// NGO requests the listing.
	rec = doJSON(t, h, http.MethodPost, "/api/requests", ngoTok, map[string]interface{}{
		"food_item": listingID, "message": "Picking up at 6pm",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	reqID := uint(decode(t, rec)["data"].(map[string]interface{})["id"].(float64))

	// A second request from the same NGO is rejected.
	rec = doJSON(t, h, http.MethodPost, "/api/requests", ngoTok, map[string]interface{}{
		"food_item": listingID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The NGO cannot approve its own request.
	rec = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/requests/%d", reqID), ngoTok,
		map[string]string{"status": "Approved"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The provider approves, then completes.
	rec = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/requests/%d", reqID), providerTok,
		map[string]string{"status": "Approved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/requests/%d", reqID), providerTok,
		map[string]string{"status": "Completed"})
	require.Equal(t, http.StatusOK, rec.Code)

	// The listing ends Distributed.
	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/food/%d", listingID), providerTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Distributed", decode(t, rec)["data"].(map[string]interface{})["status"])

	// Incoming and outgoing request feeds.
	rec = doJSON(t, h, http.MethodGet, "/api/requests/for-my-food", providerTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, h, http.MethodGet, "/api/requests/my-requests", ngoTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Role gates on the feeds.
	rec = doJSON(t, h, http.MethodGet, "/api/requests/for-my-food", ngoTok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequestNotFoundForStranger(t *testing.T) {
	h := setupAPI(t)
	providerTok := registerUser(t, h, "provider@example.com", "FoodProvider")
	ngoTok := registerUser(t, h, "ngo@example.com", "NGO/Volunteer")
	strangerTok := registerUser(t, h, "stranger@example.com", "NGO/Volunteer")

	rec := doJSON(t, h, http.MethodPost, "/api/food", providerTok, map[string]interface{}{
		"title": "Rice", "quantity": 1, "location": "2 Gate St",
		"expiry_time": time.Now().Add(24 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	listingID := uint(decode(t, rec)["data"].(map[string]interface{})["id"].(float64))

	rec = doJSON(t, h, http.MethodPost, "/api/requests", ngoTok, map[string]interface{}{
		"food_item": listingID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	reqID := uint(decode(t, rec)["data"].(map[string]interface{})["id"].(float64))

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/requests/%d", reqID), strangerTok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGraphQLListings(t *testing.T) {
	h := setupAPI(t)
	providerTok := registerUser(t, h, "provider@example.com", "FoodProvider")

	rec := doJSON(t, h, http.MethodPost, "/api/food", providerTok, map[string]interface{}{
		"title": "Apples", "quantity": 8, "location": "Orchard Rd",
		"expiry_time": time.Now().Add(24 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/graphql", providerTok, map[string]string{
		"query": `{ listings { id title status } }`,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	require.NotNil(t, body["data"], rec.Body.String())
	listings := body["data"].(map[string]interface{})["listings"].([]interface{})
	require.Len(t, listings, 1)
	assert.Equal(t, "Apples", listings[0].(map[string]interface{})["title"])
}

func TestHealthEndpoint(t *testing.T) {
	h := setupAPI(t)
	rec := doJSON(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
