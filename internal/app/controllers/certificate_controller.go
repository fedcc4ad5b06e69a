package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services/container"
	"github.com/Urbanbaseprops/property-manager/internal/error/code"
	"github.com/Urbanbaseprops/property-manager/internal/error/response"
)

// CertificateController handles compliance certificates
type CertificateController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewCertificateController creates a certificate controller
func NewCertificateController(ctx *gin.Context, container *container.ServiceContainer) *CertificateController {
	return &CertificateController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleCertificateFunc returns a gin handler for certificate requests
func HandleCertificateFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewCertificateController(ctx, container)

		switch method {
		case "getCertificates":
			controller.GetCertificates()
		case "createCertificate":
			controller.CreateCertificate()
		case "deleteCertificate":
			controller.DeleteCertificate()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *CertificateController) service() services.InterfaceCertificateService {
	return c.Container.GetService("certificate").(services.InterfaceCertificateService)
}

// 1. GetCertificates lists certificates; ?expiring=true keeps those expiring within the window of ?date
func (c *CertificateController) GetCertificates() {
	if c.Ctx.Query("expiring") != "true" {
		certificates, err := c.service().ListCertificates(c.Ctx.Request.Context())
		if err != nil {
			respondError(c.Ctx, err, code.ErrCertificateNotFound)
			return
		}
		response.Success(c.Ctx, certificates)
		return
	}

	ref, ok := referenceDate(c.Ctx)
	if !ok {
		return
	}
	certificates, err := c.service().ExpiringCertificates(c.Ctx.Request.Context(), ref)
	if err != nil {
		respondError(c.Ctx, err, code.ErrCertificateNotFound)
		return
	}
	response.Success(c.Ctx, certificates)
}

// 2. CreateCertificate stores a certificate
func (c *CertificateController) CreateCertificate() {
	var certificate models.Certificate
	if err := c.Ctx.ShouldBindJSON(&certificate); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body: "+err.Error(), nil)
		return
	}
	if certificate.Type != "" {
		if _, ok := models.ParseCertificateType(string(certificate.Type)); !ok {
			response.Fail(c.Ctx, code.ErrInvalidCertificateType, nil)
			return
		}
	}
	certificate.ID = ""

	created, err := c.service().CreateCertificate(c.Ctx.Request.Context(), certificate)
	if err != nil {
		respondError(c.Ctx, err, code.ErrCertificateNotFound)
		return
	}
	response.Success(c.Ctx, created)
}

// 3. DeleteCertificate removes a certificate
func (c *CertificateController) DeleteCertificate() {
	if err := c.service().DeleteCertificate(c.Ctx.Request.Context(), c.Ctx.Param("id")); err != nil {
		respondError(c.Ctx, err, code.ErrCertificateNotFound)
		return
	}
	response.Success(c.Ctx, gin.H{"deleted": true})
}
