package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Grey-kingreys/restaurant/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func TestHasCapability(t *testing.T) {
	cases := []struct {
		role       string
		capability Capability
		want       bool
	}{
		{models.RoleTable, CapUseCart, true},
		{models.RoleTable, CapPlaceOrder, true},
		{models.RoleTable, CapServeOrders, false},
		{models.RoleTable, CapViewLedger, false},
		{models.RoleServer, CapServeOrders, true},
		{models.RoleServer, CapManageMenu, false},
		{models.RoleCook, CapManageMenu, true},
		{models.RoleCook, CapServeOrders, false},
		{models.RoleAccountant, CapViewLedger, true},
		{models.RoleAccountant, CapRecordSpend, true},
		{models.RoleAccountant, CapManageUsers, false},
		{models.RoleAdmin, CapManageUsers, true},
		{models.RoleAdmin, CapManageTables, true},
		{models.RoleAdmin, CapUseCart, false},
		{"UNKNOWN", CapBrowseMenu, false},
	}

	for _, tc := range cases {
		if got := HasCapability(tc.role, tc.capability); got != tc.want {
			t.Errorf("HasCapability(%s, %s) = %v, want %v", tc.role, tc.capability, got, tc.want)
		}
	}
}

func performWithRole(t *testing.T, role string, capability Capability) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/probe", func(ctx *gin.Context) {
		if role != "" {
			ctx.Set("user", jwt.MapClaims{"role": role})
		}
	}, RequireCapability(capability), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestRequireCapability(t *testing.T) {
	if got := performWithRole(t, models.RoleAccountant, CapViewLedger).Code; got != http.StatusOK {
		t.Errorf("expected accountant to reach the ledger, got %d", got)
	}
	if got := performWithRole(t, models.RoleServer, CapViewLedger).Code; got != http.StatusForbidden {
		t.Errorf("expected server to be denied the ledger, got %d", got)
	}
	if got := performWithRole(t, "", CapViewLedger).Code; got != http.StatusUnauthorized {
		t.Errorf("expected missing claims to be unauthorized, got %d", got)
	}
}
