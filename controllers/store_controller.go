package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/middleware"
	"github.com/shahzadcollection/storefront-api/services"
)

// GetStoreInfo handles GET /api/v1/store-info
func GetStoreInfo(c *gin.Context) {
	info, err := storeService().GetStoreInfo(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, info)
}

// SaveStoreInfo handles PUT /api/v1/admin/store-info
func SaveStoreInfo(c *gin.Context) {
	var req services.StoreInfoInput
	if !bindJSON(c, &req) {
		return
	}

	info, err := storeService().SaveStoreInfo(c.Request.Context(), req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, info)
}

// GetBankDetails handles GET /api/v1/bank-details
func GetBankDetails(c *gin.Context) {
	details, err := storeService().GetBankDetails(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, details)
}

// SaveBankDetails handles PUT /api/v1/admin/bank-details
func SaveBankDetails(c *gin.Context) {
	var req services.BankDetailsInput
	if !bindJSON(c, &req) {
		return
	}

	details, err := storeService().SaveBankDetails(c.Request.Context(), req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, details)
}

// GetAboutPage handles GET /api/v1/about-page
func GetAboutPage(c *gin.Context) {
	page, err := storeService().GetAboutPage(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, page)
}

// SaveAboutPage handles PUT /api/v1/admin/about-page
func SaveAboutPage(c *gin.Context) {
	var req services.AboutPageInput
	if !bindJSON(c, &req) {
		return
	}

	page, err := storeService().SaveAboutPage(c.Request.Context(), req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, page)
}

// ListOwners handles GET /api/v1/owners
func ListOwners(c *gin.Context) {
	owners, err := storeService().ListOwners(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, owners)
}

// CreateOwner handles POST /api/v1/admin/owners
func CreateOwner(c *gin.Context) {
	var req services.OwnerInput
	if !bindJSON(c, &req) {
		return
	}

	owner, err := storeService().CreateOwner(c.Request.Context(), req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusCreated, owner)
}

// UpdateOwner handles PATCH /api/v1/admin/owners/:id
func UpdateOwner(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateOwnerInput
	if !bindJSON(c, &req) {
		return
	}

	owner, err := storeService().UpdateOwner(c.Request.Context(), id, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, owner)
}

// ListSections handles GET /api/v1/sections
func ListSections(c *gin.Context) {
	sections, err := storeService().ListSections(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, sections)
}

// CreateSection handles POST /api/v1/admin/sections
func CreateSection(c *gin.Context) {
	var req services.SectionInput
	if !bindJSON(c, &req) {
		return
	}

	section, err := storeService().CreateSection(c.Request.Context(), req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusCreated, section)
}

// UpdateSection handles PATCH /api/v1/admin/sections/:id
func UpdateSection(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateSectionInput
	if !bindJSON(c, &req) {
		return
	}

	section, err := storeService().UpdateSection(c.Request.Context(), id, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, section)
}
