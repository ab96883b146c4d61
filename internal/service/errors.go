package service

import (
	"fmt"
	"net/http"
)

// WorkflowError is an order workflow failure with its client-facing HTTP
// status. The detail string is what callers see in the error envelope.
type WorkflowError struct {
	Status int
	Detail string
}

func (e *WorkflowError) Error() string {
	return e.Detail
}

func errProductNotFound(productID string) *WorkflowError {
	return &WorkflowError{
		Status: http.StatusNotFound,
		Detail: fmt.Sprintf("Product %s not found in inventory", productID),
	}
}

func errInsufficientStock(productID string, available, requested int) *WorkflowError {
	return &WorkflowError{
		Status: http.StatusBadRequest,
		Detail: fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d", productID, available, requested),
	}
}

func errReservationFailed(productID string) *WorkflowError {
	return &WorkflowError{
		Status: http.StatusInternalServerError,
		Detail: fmt.Sprintf("Failed to reserve inventory for %s", productID),
	}
}

func errUpstreamUnavailable(service string, cause error) *WorkflowError {
	return &WorkflowError{
		Status: http.StatusServiceUnavailable,
		Detail: fmt.Sprintf("Unable to reach %s service: %v", service, cause),
	}
}

func errMalformedResponse(service string) *WorkflowError {
	return &WorkflowError{
		Status: http.StatusBadGateway,
		Detail: fmt.Sprintf("Invalid response from %s service", service),
	}
}

// failureReason labels a workflow error for the orders_failed_total metric.
func failureReason(err *WorkflowError) string {
	switch err.Status {
	case http.StatusNotFound:
		return "product_not_found"
	case http.StatusBadRequest:
		return "insufficient_stock"
	case http.StatusServiceUnavailable:
		return "inventory_unavailable"
	case http.StatusBadGateway:
		return "malformed_response"
	default:
		return "reservation_failed"
	}
}
