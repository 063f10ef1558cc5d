package service

import (
	"github.com/Shunea/be-easyreserv-sub000/internal/model"

	"github.com/google/uuid"
)

// Actor identifies the authenticated caller as carried in the JWT claims.
type Actor struct {
	ID           uuid.UUID
	Role         string
	RestaurantID uuid.UUID
}

// elevatedRoles see stock bookkeeping failures as request errors. Guests
// (USER) and kitchen roles get silent partial success instead: their order
// went through, the discrepancy is the restaurant's to reconcile.
var elevatedRoles = map[string]bool{
	model.RoleAdmin:         true,
	model.RoleWaiter:        true,
	model.RoleHostess:       true,
	model.RoleSeniorHostess: true,
}

func surfaceStockError(role string) bool { return elevatedRoles[role] }
