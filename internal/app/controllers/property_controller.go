package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services/container"
	"github.com/Urbanbaseprops/property-manager/internal/error/code"
	"github.com/Urbanbaseprops/property-manager/internal/error/response"
)

// InterfacePropertyController defines the property controller interface
type InterfacePropertyController interface {
	GetProperties()
	GetProperty()
	CreateProperty()
	UpdateProperty()
	DeleteProperty()
	TogglePaid()
}

// PropertyController handles property requests
type PropertyController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPropertyController creates a property controller
func NewPropertyController(ctx *gin.Context, container *container.ServiceContainer) *PropertyController {
	return &PropertyController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandlePropertyFunc returns a gin handler for property requests
func HandlePropertyFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPropertyController(ctx, container)

		switch method {
		case "getProperties":
			controller.GetProperties()
		case "getProperty":
			controller.GetProperty()
		case "createProperty":
			controller.CreateProperty()
		case "updateProperty":
			controller.UpdateProperty()
		case "deleteProperty":
			controller.DeleteProperty()
		case "togglePaid":
			controller.TogglePaid()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *PropertyController) service() services.InterfacePropertyService {
	return c.Container.GetService("property").(services.InterfacePropertyService)
}

// 1. GetProperties lists every property
// @Summary  List properties
// @Tags     Property
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} models.Property
// @Router   /properties [get]
func (c *PropertyController) GetProperties() {
	properties, err := c.service().ListProperties(c.Ctx.Request.Context())
	if err != nil {
		respondError(c.Ctx, err, code.ErrPropertyNotFound)
		return
	}
	response.Success(c.Ctx, properties)
}

// 2. GetProperty returns one property
func (c *PropertyController) GetProperty() {
	property, err := c.service().GetProperty(c.Ctx.Request.Context(), c.Ctx.Param("id"))
	if err != nil {
		respondError(c.Ctx, err, code.ErrPropertyNotFound)
		return
	}
	response.Success(c.Ctx, property)
}

// 3. CreateProperty stores a property from a JSON object of fields. A missing name
// answers written=false.
// @Summary  Create property
// @Tags     Property
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} models.Property
// @Failure  400 {object} ErrorResponse
// @Router   /properties [post]
func (c *PropertyController) CreateProperty() {
	var fields map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&fields); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body: "+err.Error(), nil)
		return
	}

	property, err := c.service().CreateProperty(c.Ctx.Request.Context(), fields)
	if err != nil {
		respondError(c.Ctx, err, code.ErrPropertyNotFound)
		return
	}
	response.Success(c.Ctx, property)
}

// 4. UpdateProperty writes only the fields present in the body
func (c *PropertyController) UpdateProperty() {
	var fields map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&fields); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body: "+err.Error(), nil)
		return
	}

	property, err := c.service().UpdateProperty(c.Ctx.Request.Context(), c.Ctx.Param("id"), fields)
	if err != nil {
		respondError(c.Ctx, err, code.ErrPropertyNotFound)
		return
	}
	response.Success(c.Ctx, property)
}

// 5. DeleteProperty removes a property
func (c *PropertyController) DeleteProperty() {
	if err := c.service().DeleteProperty(c.Ctx.Request.Context(), c.Ctx.Param("id")); err != nil {
		respondError(c.Ctx, err, code.ErrPropertyNotFound)
		return
	}
	response.Success(c.Ctx, gin.H{"deleted": true})
}

// 6. TogglePaid flips tenantPaid or landlordPaid
// @Summary  Toggle a paid flag
// @Tags     Property
// @Produce  json
// @Security BearerAuth
// @Param    id    path string true "property id"
// @Param    field path string true "tenantPaid or landlordPaid"
// @Success  200 {object} models.Property
// @Router   /properties/{id}/toggle/{field} [post]
func (c *PropertyController) TogglePaid() {
	field, err := models.ParsePaidField(c.Ctx.Param("field"))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrInvalidPaidField, err.Error(), nil)
		return
	}

	property, err := c.service().TogglePaid(c.Ctx.Request.Context(), c.Ctx.Param("id"), field)
	if err != nil {
		respondError(c.Ctx, err, code.ErrPropertyNotFound)
		return
	}
	response.Success(c.Ctx, property)
}
