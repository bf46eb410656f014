package handler

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/younger1612/Rd-storev1/internal/apierror"
	"github.com/younger1612/Rd-storev1/internal/dto"

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
		c.JSON(http.StatusBadRequest, apierror.Envelope(apierror.NewValidation("invalid JSON: "+err.Error())))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var fields []string
		for _, fe := range err.(validator.ValidationErrors) {
			fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
		}
		c.JSON(http.StatusBadRequest, apierror.Envelope(
			apierror.NewValidation("validation failed: "+strings.Join(fields, ", "))))
		return false
	}
	return true
}

// parseID reads the :id path param as a UUID or writes a 400.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Envelope(apierror.NewValidation("invalid id")))
		return uuid.Nil, false
	}
	return id, true
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, dto.DataEnvelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string, data any) {
	c.JSON(status, dto.DataEnvelope{Success: true, Message: message, Data: data})
}

func fail(c *gin.Context, err error) {
	c.JSON(apierror.Status(err), apierror.Envelope(err))
}
