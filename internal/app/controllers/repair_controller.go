package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services/container"
	"github.com/Urbanbaseprops/property-manager/internal/error/code"
	"github.com/Urbanbaseprops/property-manager/internal/error/response"
)

// RepairController handles repair tickets and contractors
type RepairController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRepairController creates a repair controller
func NewRepairController(ctx *gin.Context, container *container.ServiceContainer) *RepairController {
	return &RepairController{
		Ctx:       ctx,
		Container: container,
	}
}

// RepairFieldRequest sets one field of a repair
type RepairFieldRequest struct {
	Field string      `json:"field" binding:"required" example:"status"`
	Value interface{} `json:"value" example:"completed"`
}

// HandleRepairFunc returns a gin handler for repair and contractor requests
func HandleRepairFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRepairController(ctx, container)

		switch method {
		case "getRepairs":
			controller.GetRepairs()
		case "createRepair":
			controller.CreateRepair()
		case "updateRepair":
			controller.UpdateRepair()
		case "deleteRepair":
			controller.DeleteRepair()
		case "contractorLink":
			controller.ContractorLink()
		case "getContractors":
			controller.GetContractors()
		case "saveContractor":
			controller.SaveContractor()
		case "deleteContractor":
			controller.DeleteContractor()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *RepairController) repairs() services.InterfaceRepairService {
	return c.Container.GetService("repair").(services.InterfaceRepairService)
}

func (c *RepairController) contractors() services.InterfaceContractorService {
	return c.Container.GetService("contractor").(services.InterfaceContractorService)
}

// 1. GetRepairs lists repairs matching ?q and ?status
// @Summary  List repairs
// @Tags     Repair
// @Produce  json
// @Security BearerAuth
// @Param    q      query string false "search over property and contractor"
// @Param    status query string false "all, pending, in progress or completed"
// @Success  200 {array} models.Repair
// @Router   /repairs [get]
func (c *RepairController) GetRepairs() {
	var filter services.RepairFilter
	if err := c.Ctx.ShouldBindQuery(&filter); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid query: "+err.Error(), nil)
		return
	}

	repairs, err := c.repairs().ListRepairs(c.Ctx.Request.Context(), filter)
	if err != nil {
		respondError(c.Ctx, err, code.ErrRepairNotFound)
		return
	}
	response.Success(c.Ctx, repairs)
}

// 2. CreateRepair opens a ticket
func (c *RepairController) CreateRepair() {
	var repair models.Repair
	if err := c.Ctx.ShouldBindJSON(&repair); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body: "+err.Error(), nil)
		return
	}
	repair.ID = ""

	created, err := c.repairs().CreateRepair(c.Ctx.Request.Context(), repair)
	if err != nil {
		respondError(c.Ctx, err, code.ErrRepairNotFound)
		return
	}
	response.Success(c.Ctx, created)
}

// 3. UpdateRepair sets one field
// @Summary  Update one repair field
// @Tags     Repair
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id      path string             true "repair id"
// @Param    request body RepairFieldRequest true "field and value"
// @Success  200 {object} models.Repair
// @Router   /repairs/{id} [patch]
func (c *RepairController) UpdateRepair() {
	var req RepairFieldRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body: "+err.Error(), nil)
		return
	}

	repair, err := c.repairs().UpdateRepairField(c.Ctx.Request.Context(), c.Ctx.Param("id"), req.Field, req.Value)
	if errors.Is(err, services.ErrInvalidInput) {
		response.FailWithMessage(c.Ctx, code.ErrInvalidRepairField, err.Error(), nil)
		return
	}
	if err != nil {
		respondError(c.Ctx, err, code.ErrRepairNotFound)
		return
	}
	response.Success(c.Ctx, repair)
}

// 4. DeleteRepair removes a ticket
func (c *RepairController) DeleteRepair() {
	if err := c.repairs().DeleteRepair(c.Ctx.Request.Context(), c.Ctx.Param("id")); err != nil {
		respondError(c.Ctx, err, code.ErrRepairNotFound)
		return
	}
	response.Success(c.Ctx, gin.H{"deleted": true})
}

// 5. ContractorLink returns the WhatsApp link that sends the job to the contractor
func (c *RepairController) ContractorLink() {
	link, err := c.repairs().ContractorLink(c.Ctx.Request.Context(), c.Ctx.Param("id"))
	if err != nil {
		respondError(c.Ctx, err, code.ErrRepairNotFound)
		return
	}
	response.Success(c.Ctx, gin.H{"url": link})
}

// 6. GetContractors lists saved contractors
func (c *RepairController) GetContractors() {
	contractors, err := c.contractors().ListContractors(c.Ctx.Request.Context())
	if err != nil {
		respondError(c.Ctx, err, code.ErrContractorNotFound)
		return
	}
	response.Success(c.Ctx, contractors)
}

// 7. SaveContractor creates or replaces the contractor with the given name
func (c *RepairController) SaveContractor() {
	var contractor models.Contractor
	if err := c.Ctx.ShouldBindJSON(&contractor); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body: "+err.Error(), nil)
		return
	}

	saved, err := c.contractors().SaveContractor(c.Ctx.Request.Context(), contractor)
	if err != nil {
		respondError(c.Ctx, err, code.ErrContractorNotFound)
		return
	}
	response.Success(c.Ctx, saved)
}

// 8. DeleteContractor removes the contractor saved under :name
func (c *RepairController) DeleteContractor() {
	if err := c.contractors().DeleteContractor(c.Ctx.Request.Context(), c.Ctx.Param("name")); err != nil {
		respondError(c.Ctx, err, code.ErrContractorNotFound)
		return
	}
	response.Success(c.Ctx, gin.H{"deleted": true})
}
