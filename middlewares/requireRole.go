package middlewares

import (
	"net/http"

	"github.com/Grey-kingreys/restaurant/models"
	"github.com/gin-gonic/gin"
)

// Capability names one kind of operation the API exposes. Permissions
// are resolved through a single closed table below instead of role
// comparisons scattered through the handlers.
type Capability string

const (
	CapBrowseMenu   Capability = "browse_menu"
	CapManageMenu   Capability = "manage_menu"
	CapUseCart      Capability = "use_cart"
	CapPlaceOrder   Capability = "place_order"
	CapServeOrders  Capability = "serve_orders"
	CapViewLedger   Capability = "view_ledger"
	CapRecordSpend  Capability = "record_spend"
	CapViewReports  Capability = "view_reports"
	CapManageUsers  Capability = "manage_users"
	CapManageTables Capability = "manage_tables"
)

var roleCapabilities = map[string][]Capability{
	models.RoleTable: {
		CapBrowseMenu, CapUseCart, CapPlaceOrder,
	},
	models.RoleServer: {
		CapBrowseMenu, CapServeOrders,
	},
	models.RoleCook: {
		CapBrowseMenu, CapManageMenu,
	},
	models.RoleAccountant: {
		CapViewLedger, CapRecordSpend, CapViewReports,
	},
	models.RoleAdmin: {
		CapBrowseMenu, CapManageMenu, CapServeOrders, CapViewLedger,
		CapRecordSpend, CapViewReports, CapManageUsers, CapManageTables,
	},
}

// HasCapability reports whether a role may perform the operation.
func HasCapability(role string, capability Capability) bool {
	for _, granted := range roleCapabilities[role] {
		if granted == capability {
			return true
		}
	}
	return false
}

// RequireCapability guards a route group with the capability table.
func RequireCapability(capability Capability) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role, ok := UserRole(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
			return
		}
		if !HasCapability(role, capability) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied for role " + role})
			return
		}
		ctx.Next()
	}
}
