package service

import "github.com/Shunea/be-easyreserv-sub000/internal/model"

// allowedTransitions is the forward order lifecycle. CANCELLED is reachable
// from any non-terminal state; COMPLETED and CANCELLED are terminal.
var allowedTransitions = map[string][]string{
	model.OrderStatusPending:   {model.OrderStatusPreparing, model.OrderStatusCancelled},
	model.OrderStatusPreparing: {model.OrderStatusReady, model.OrderStatusCancelled},
	model.OrderStatusReady:     {model.OrderStatusCompleted, model.OrderStatusCancelled},
}

func canTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
