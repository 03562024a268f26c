package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AdamZoda/voiture/internal/auth"
	"github.com/AdamZoda/voiture/internal/handler"
	"github.com/AdamZoda/voiture/internal/model"
	"github.com/AdamZoda/voiture/internal/repository"
	"github.com/AdamZoda/voiture/internal/router"
	"github.com/AdamZoda/voiture/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "letmein"
)

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	tokens, err := auth.NewTokenService("0123456789abcdef", time.Hour)
	require.NoError(t, err)
	passwords := auth.NewPasswordService(4)

	// Initialize repositories
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	categoryRepo := repository.NewCategoryRepository(testDB.Pool, logger)
	userRepo := repository.NewUserRepository(testDB.Pool, logger)

	// Initialize services
	productService := service.NewProductService(productRepo, categoryRepo, logger)
	categoryService := service.NewCategoryService(categoryRepo, productRepo, logger)
	authService := service.NewAuthService(userRepo, tokens, passwords, logger)

	// Initialize handlers
	productHandler := handler.NewProductHandler(productService, "1234567890", logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)
	authHandler := handler.NewAuthHandler(authService, time.Hour, logger)

	return router.New(productHandler, categoryHandler, authHandler, tokens, logger)
}

// seedAdmin creates the admin account the login tests sign in with.
func seedAdmin(t *testing.T, testDB *TestDB) {
	t.Helper()

	logger := zerolog.Nop()
	tokens, err := auth.NewTokenService("0123456789abcdef", time.Hour)
	require.NoError(t, err)
	authService := service.NewAuthService(
		repository.NewUserRepository(testDB.Pool, logger),
		tokens,
		auth.NewPasswordService(4),
		logger,
	)

	_, err = authService.SignUp(context.Background(), testAdminEmail, testAdminPassword)
	require.NoError(t, err)
}

// login signs in through the API and returns the session cookie.
func login(t *testing.T, server http.Handler) *http.Cookie {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			return c
		}
	}
	t.Fatal("login response carried no session cookie")
	return nil
}

func TestStorefrontAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("GET /api/products returns the gallery", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp handler.GalleryResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Len(t, resp.Featured, 2)
		assert.Len(t, resp.Products, 3)
		assert.ElementsMatch(t, []string{"Sports", "Off-Road", "Bikes"}, resp.Categories)
	})

	t.Run("GET /api/products filters by search and category", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/api/products?search=banshee&category=Sports", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp handler.GalleryResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp.Featured, 1)
		assert.Equal(t, "Banshee 900R", resp.Featured[0].Name)
		assert.Empty(t, resp.Products)
	})

	t.Run("GET /api/products/{id} returns detail with order link", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/api/products/11111111-1111-1111-1111-111111111111", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp handler.DetailResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Banshee 900R", resp.Product.Name)
		assert.Equal(t, "$565000.00", resp.Price)
		assert.Contains(t, resp.OrderURL, "https://wa.me/1234567890?text=")
	})

	t.Run("GET /api/products/{id} returns 404 for unknown product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/api/products/99999999-9999-9999-9999-999999999999", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GET /health returns 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAdminAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("Admin routes reject requests without a session", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		body := []byte(`{"name": "Boats"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/admin/categories", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Login then manage the catalogue end to end", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seedAdmin(t, testDB)
		cookie := login(t, server)

		// Create a category
		body := []byte(`{"name": "Boats"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/admin/categories", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		// Create a product in it
		input := model.ProductInput{
			Name:     "Dinghy",
			Price:    "25000",
			Category: "Boats",
			Featured: true,
		}
		productBody, err := json.Marshal(input)
		require.NoError(t, err)

		req = httptest.NewRequest(http.MethodPost, "/api/admin/products", bytes.NewBuffer(productBody))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(cookie)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		var created model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.NotEmpty(t, created.ID)

		// The category is now in use and refuses deletion
		req = httptest.NewRequest(http.MethodDelete, "/api/admin/categories/Boats", nil)
		req.AddCookie(cookie)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusConflict, w.Code)

		// The product shows up in the public gallery
		req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var gallery handler.GalleryResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&gallery))
		require.Len(t, gallery.Featured, 1)
		assert.Equal(t, "Dinghy", gallery.Featured[0].Name)

		// Delete the product, then the category goes too
		req = httptest.NewRequest(http.MethodDelete, "/api/admin/products/"+created.ID, nil)
		req.AddCookie(cookie)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusNoContent, w.Code)

		req = httptest.NewRequest(http.MethodDelete, "/api/admin/categories/Boats", nil)
		req.AddCookie(cookie)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Product creation validates against the category table", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seedAdmin(t, testDB)
		cookie := login(t, server)

		input := model.ProductInput{
			Name:     "Ghost",
			Price:    "100",
			Category: "Nonexistent",
		}
		body, err := json.Marshal(input)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/admin/products", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Session endpoint resolves the signed-in user", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seedAdmin(t, testDB)
		cookie := login(t, server)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp handler.SessionResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.NotNil(t, resp.User)
		assert.Equal(t, testAdminEmail, resp.User.Email)
	})

	t.Run("User management forbids self-deletion", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seedAdmin(t, testDB)
		cookie := login(t, server)

		// Find our own ID through the session endpoint
		req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var session handler.SessionResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&session))
		require.NotNil(t, session.User)

		req = httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+session.User.ID, nil)
		req.AddCookie(cookie)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)

		// A second account can be created and removed.
		body := []byte(`{"email": "second@example.com", "password": "hunter2"}`)
		req = httptest.NewRequest(http.MethodPost, "/api/admin/users", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(cookie)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		var second model.User
		require.NoError(t, json.NewDecoder(w.Body).Decode(&second))

		req = httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+second.ID, nil)
		req.AddCookie(cookie)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestCORS_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("OPTIONS request returns CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "GET")
	})
}
