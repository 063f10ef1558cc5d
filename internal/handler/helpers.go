package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Shunea/be-easyreserv-sub000/internal/apierror"
	"github.com/Shunea/be-easyreserv-sub000/internal/middleware"
	"github.com/Shunea/be-easyreserv-sub000/internal/service"
	"github.com/Shunea/be-easyreserv-sub000/internal/unit"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		validationFailed(c, err)
		return false
	}
	return true
}

// validationFailed writes the 422 fields envelope for validator errors. Used
// for body and query-string validation alike so clients see one shape.
func validationFailed(c *gin.Context, err error) {
	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
}

// actorFromClaims converts JWT claims into the service-layer caller identity.
func actorFromClaims(c *gin.Context) service.Actor {
	claims := middleware.GetClaims(c)
	id, _ := uuid.Parse(claims.UserID)
	restaurantID, _ := uuid.Parse(claims.RestaurantID)
	return service.Actor{ID: id, Role: claims.Role, RestaurantID: restaurantID}
}

// respondServiceError maps domain errors to status codes: missing records are
// 404, rule violations are 400, anything else bubbles to the error handler
// as a 500 without leaking detail.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrStockNotFound),
		errors.Is(err, service.ErrInvalidDoneness),
		errors.Is(err, service.ErrInvalidStatusTransition),
		errors.Is(err, unit.ErrUnknownUnit),
		errors.Is(err, unit.ErrInvalidPiece):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		// ErrorHandler middleware turns attached errors into a safe 500.
		_ = c.Error(err)
	}
}
