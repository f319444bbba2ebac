package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/umoor-sehhat/sehhat-backend/pkg/jwt"
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func injectClaims(claims *jwt.UserClaims) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("validatedToken", claims)
		c.Next()
	}
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func TestHasValidAPIKey(t *testing.T) {
	router := gin.New()
	router.GET("/test", HasValidAPIKey([]string{"key-1", "key-2"}), okHandler)

	cases := []struct {
		name       string
		apiKey     string
		wantStatus int
	}{
		{"valid key", "key-2", http.StatusOK},
		{"invalid key", "key-3", http.StatusBadRequest},
		{"missing key", "", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tc.apiKey != "" {
				req.Header.Set("Api-Key", tc.apiKey)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tc.wantStatus)
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	cases := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{"admin passes", types.ROLE_ADMIN, http.StatusOK},
		{"aamil blocked", types.ROLE_AAMIL, http.StatusUnauthorized},
		{"unknown role blocked", "superuser", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/test", injectClaims(&jwt.UserClaims{ID: "u1", Role: tc.role}), IsAdmin(), okHandler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tc.wantStatus)
			}
		})
	}
}

func TestHasMozeManagementAccess(t *testing.T) {
	cases := []struct {
		name       string
		claims     *jwt.UserClaims
		wantStatus int
	}{
		{"admin passes without assignment", &jwt.UserClaims{ID: "u1", Role: types.ROLE_ADMIN}, http.StatusOK},
		{"managing aamil passes", &jwt.UserClaims{ID: "u2", Role: types.ROLE_AAMIL, ManagedMozes: []string{"houston-north"}}, http.StatusOK},
		{"aamil of other moze blocked", &jwt.UserClaims{ID: "u3", Role: types.ROLE_AAMIL, ManagedMozes: []string{"karachi-central"}}, http.StatusUnauthorized},
		{"student with assignment blocked", &jwt.UserClaims{ID: "u4", Role: types.ROLE_STUDENT, ManagedMozes: []string{"houston-north"}}, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/moze/:mozeKey", injectClaims(tc.claims), HasMozeManagementAccess(), okHandler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/moze/houston-north", nil))
			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tc.wantStatus)
			}
		})
	}
}

func TestRequirePayload(t *testing.T) {
	router := gin.New()
	router.POST("/test", RequirePayload(), okHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty payload: status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"a":1}`)))
	if w.Code != http.StatusOK {
		t.Errorf("with payload: status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRequireQueryParams(t *testing.T) {
	router := gin.New()
	router.GET("/test", RequireQueryParams([]string{"value"}), okHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing param: status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test?value=true", nil))
	if w.Code != http.StatusOK {
		t.Errorf("with param: status = %d, want %d", w.Code, http.StatusOK)
	}
}
