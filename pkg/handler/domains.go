package handler

import (
	"errors"
	"net/http"

	"github.com/arca-digital/complaints-book-backend/pkg/api"
	"github.com/arca-digital/complaints-book-backend/pkg/dao"
	"github.com/arca-digital/complaints-book-backend/pkg/domains"
	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/labstack/echo/v4"
)

type DomainHandler struct {
	DaoRegistry dao.DaoRegistry
	Registrar   *domains.Registrar
}

func RegisterDomainRoutes(engine *echo.Group, daoReg *dao.DaoRegistry, registrar *domains.Registrar) {
	if engine == nil {
		panic("engine is nil")
	}
	if daoReg == nil {
		panic("daoReg is nil")
	}
	if registrar == nil {
		panic("registrar is nil")
	}

	domainHandler := DomainHandler{
		DaoRegistry: *daoReg,
		Registrar:   registrar,
	}
	engine.GET("", domainHandler.listDomains)
	engine.GET("/", domainHandler.listDomains)
	engine.POST("", domainHandler.addDomain)
	engine.POST("/", domainHandler.addDomain)
	engine.GET("/verify", domainHandler.verifyDomain)
}

// listDomains returns the tenant's domains, primary first.
func (dh *DomainHandler) listDomains(c echo.Context) error {
	tenant, err := tenantFromContext(c)
	if err != nil {
		return err
	}
	list, err := dh.DaoRegistry.TenantDomain.ListForTenant(c.Request().Context(), tenant.ID)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForError(err), "Error listing domains", err.Error())
	}
	response := api.TenantDomainCollectionResponse{Data: make([]api.TenantDomainResponse, 0, len(list))}
	for _, d := range list {
		response.Data = append(response.Data, tenantDomainResponse(d))
	}
	return c.JSON(http.StatusOK, response)
}

// addDomain registers a custom domain. A domain failing verification is
// answered with 422 and the verification outcome including a hint.
func (dh *DomainHandler) addDomain(c echo.Context) error {
	tenant, err := tenantFromContext(c)
	if err != nil {
		return err
	}
	var request api.AddDomainRequest
	if err := c.Bind(&request); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error binding parameters", err.Error())
	}
	if err := api.Validate(request); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Invalid domain", err.Error())
	}

	result, err := dh.Registrar.AddCustomDomain(c.Request().Context(), tenant, request.Domain, request.MakePrimary)
	response := api.AddDomainResponse{
		Verification:         verificationResponse(result.Verification, result.Hint),
		ProvisioningEnqueued: result.ProvisioningEnqueued,
		EnqueueOutcome:       result.EnqueueOutcome,
		EnqueueError:         result.EnqueueError,
	}
	switch {
	case errors.Is(err, domains.ErrNotVerified):
		return c.JSON(http.StatusUnprocessableEntity, response)
	case err != nil:
		return ce.NewErrorResponse(ce.HttpCodeForError(err), "Error adding domain", err.Error())
	}
	if result.Domain != nil {
		d := tenantDomainResponse(*result.Domain)
		response.Domain = &d
	}
	return c.JSON(http.StatusCreated, response)
}

// verifyDomain checks a domain without storing it.
func (dh *DomainHandler) verifyDomain(c echo.Context) error {
	tenant, err := tenantFromContext(c)
	if err != nil {
		return err
	}
	var request api.VerifyDomainRequest
	if err := echo.QueryParamsBinder(c).String("domain", &request.Domain).BindError(); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error binding parameters", err.Error())
	}
	if err := api.Validate(request); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Invalid domain", err.Error())
	}

	result, err := dh.Registrar.CheckDomain(c.Request().Context(), tenant, request.Domain)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForError(err), "Error verifying domain", err.Error())
	}
	return c.JSON(http.StatusOK, verificationResponse(result.Verification, result.Hint))
}
