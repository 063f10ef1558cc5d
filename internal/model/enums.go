package model

// Roles carried in the JWT claims issued by the auth service.
// USER is a restaurant guest ordering through the self-service app;
// everything else is staff.
const (
	RoleAdmin         = "ADMIN"
	RoleWaiter        = "WAITER"
	RoleHostess       = "HOSTESS"
	RoleSeniorHostess = "SENIOR_HOSTESS"
	RoleCook          = "COOK"
	RoleBarman        = "BARMAN"
	RoleUser          = "USER"
)

// Subscription plan tiers. Stock deduction for staff-placed orders is only
// active on PRO.
const (
	PlanBasic    = "BASIC"
	PlanStandard = "STANDARD"
	PlanPro      = "PRO"
)

// Order lifecycle: PENDING → PREPARING → READY → COMPLETED,
// CANCELLED reachable from any non-terminal state.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// Preparation zones route an order to a kitchen station or the bar.
const (
	ZoneHot    = "HOT"
	ZoneCold   = "COLD"
	ZoneFish   = "FISH"
	ZoneGrill  = "GRILL"
	ZoneDesert = "DESERT"
	ZoneBar    = "BAR"
	ZoneHookah = "HOOKAH"
)

// Advisory stock levels derived from volume vs. reorder limit.
const (
	StockStatusOK       = "OK"
	StockStatusLow      = "LOW"
	StockStatusCritical = "CRITICAL"
	StockStatusExpired  = "EXPIRED"
)

// ZoneAllowsDoneness reports whether a doneness level (rare, medium, …) is
// legal for products prepared in the given zone.
func ZoneAllowsDoneness(zone string) bool {
	switch zone {
	case ZoneGrill, ZoneFish, ZoneHot:
		return true
	}
	return false
}

// IsDrinkZone reports whether the zone is served by the bar rather than the
// kitchen. Used for the existDrinks/onlyDrinks notification flags.
func IsDrinkZone(zone string) bool {
	switch zone {
	case ZoneBar, ZoneHookah:
		return true
	}
	return false
}
