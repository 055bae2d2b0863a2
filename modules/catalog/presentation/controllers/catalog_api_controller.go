package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/medinsure/underwriting-admin/modules/catalog/domain/channel"
	"github.com/medinsure/underwriting-admin/modules/catalog/domain/company"
	"github.com/medinsure/underwriting-admin/modules/catalog/domain/product"
	"github.com/medinsure/underwriting-admin/modules/catalog/infrastructure/persistence"
	"github.com/medinsure/underwriting-admin/modules/catalog/services"
	"github.com/medinsure/underwriting-admin/pkg/application"
	"github.com/medinsure/underwriting-admin/pkg/composables"
	"github.com/medinsure/underwriting-admin/pkg/httpapi"
	"github.com/medinsure/underwriting-admin/pkg/serrors"
)

type CatalogAPIController struct {
	app       application.Application
	channels  *services.ChannelService
	companies *services.CompanyService
	products  *services.ProductService
	basePath  string
}

func NewCatalogAPIController(app application.Application) application.Controller {
	return &CatalogAPIController{
		app:       app,
		channels:  app.Service(services.ChannelService{}).(*services.ChannelService),
		companies: app.Service(services.CompanyService{}).(*services.CompanyService),
		products:  app.Service(services.ProductService{}).(*services.ProductService),
		basePath:  "/catalog/api",
	}
}

func (c *CatalogAPIController) Key() string {
	return c.basePath
}

func (c *CatalogAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()

	router.HandleFunc("/channels", c.CreateChannel).Methods(http.MethodPost)
	router.HandleFunc("/channels", c.ListChannels).Methods(http.MethodGet)
	router.HandleFunc("/channels/{id:[0-9]+}", c.GetChannel).Methods(http.MethodGet)
	router.HandleFunc("/channels/{id:[0-9]+}", c.UpdateChannel).Methods(http.MethodPut)
	router.HandleFunc("/channels/{id:[0-9]+}", c.DeleteChannel).Methods(http.MethodDelete)

	router.HandleFunc("/companies", c.CreateCompany).Methods(http.MethodPost)
	router.HandleFunc("/companies", c.ListCompanies).Methods(http.MethodGet)
	router.HandleFunc("/companies/{id:[0-9]+}", c.GetCompany).Methods(http.MethodGet)
	router.HandleFunc("/companies/{id:[0-9]+}", c.UpdateCompany).Methods(http.MethodPut)
	router.HandleFunc("/companies/{id:[0-9]+}", c.DeleteCompany).Methods(http.MethodDelete)

	router.HandleFunc("/products", c.CreateProduct).Methods(http.MethodPost)
	router.HandleFunc("/products", c.ListProducts).Methods(http.MethodGet)
	router.HandleFunc("/products/{id:[0-9]+}", c.GetProduct).Methods(http.MethodGet)
	router.HandleFunc("/products/{id:[0-9]+}", c.UpdateProduct).Methods(http.MethodPut)
	router.HandleFunc("/products/{id:[0-9]+}", c.DeleteProduct).Methods(http.MethodDelete)
}

type ChannelResponse struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toChannelResponse(c *channel.Channel) *ChannelResponse {
	return &ChannelResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type CompanyResponse struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Contact     string    `json:"contact"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Remark      string    `json:"remark"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCompanyResponse(c *company.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		Contact:     c.Contact,
		Phone:       c.Phone,
		Address:     c.Address,
		Remark:      c.Remark,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type ProductResponse struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	TypeCode  string    `json:"type_code"`
	CompanyID int64     `json:"company_id"`
	ChannelID *int64    `json:"channel_id,omitempty"`
	RuleID    *int64    `json:"rule_id,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toProductResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		TypeCode:  p.TypeCode,
		CompanyID: p.CompanyID,
		ChannelID: p.ChannelID,
		RuleID:    p.RuleID,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (c *CatalogAPIController) CreateChannel(w http.ResponseWriter, r *http.Request) {
	var dto services.CreateChannelDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	created, err := c.channels.Create(r.Context(), dto)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, toChannelResponse(created))
}

func (c *CatalogAPIController) ListChannels(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, err := c.channels.List(r.Context(), limit, offset)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	out := make([]*ChannelResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toChannelResponse(item))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": out})
}

func (c *CatalogAPIController) GetChannel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	found, err := c.channels.GetByID(r.Context(), id)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toChannelResponse(found))
}

func (c *CatalogAPIController) UpdateChannel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var dto services.UpdateChannelDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	updated, err := c.channels.Update(r.Context(), id, dto)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toChannelResponse(updated))
}

func (c *CatalogAPIController) DeleteChannel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.channels.Delete(r.Context(), id); err != nil {
		writeCatalogError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *CatalogAPIController) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var dto services.CreateCompanyDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	created, err := c.companies.Create(r.Context(), dto)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, toCompanyResponse(created))
}

func (c *CatalogAPIController) ListCompanies(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, err := c.companies.List(r.Context(), limit, offset)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	out := make([]*CompanyResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toCompanyResponse(item))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": out})
}

func (c *CatalogAPIController) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	found, err := c.companies.GetByID(r.Context(), id)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toCompanyResponse(found))
}

func (c *CatalogAPIController) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var dto services.UpdateCompanyDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	updated, err := c.companies.Update(r.Context(), id, dto)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toCompanyResponse(updated))
}

func (c *CatalogAPIController) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.companies.Delete(r.Context(), id); err != nil {
		writeCatalogError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *CatalogAPIController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var dto services.CreateProductDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	created, err := c.products.Create(r.Context(), dto)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, toProductResponse(created))
}

func (c *CatalogAPIController) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, err := c.products.List(r.Context(), limit, offset)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	out := make([]*ProductResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toProductResponse(item))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": out})
}

func (c *CatalogAPIController) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	found, err := c.products.GetByID(r.Context(), id)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toProductResponse(found))
}

func (c *CatalogAPIController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var dto services.UpdateProductDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	updated, err := c.products.Update(r.Context(), id, dto)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toProductResponse(updated))
}

func (c *CatalogAPIController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.products.Delete(r.Context(), id); err != nil {
		writeCatalogError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dto interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, composables.UseRequestID(r.Context()), "INVALID_JSON", "invalid json body")
		return false
	}
	return true
}

func writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := composables.UseRequestID(r.Context())

	var validationErrs validator.ValidationErrors
	var base *serrors.BaseError
	switch {
	case errors.As(err, &validationErrs):
		details := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, fe.Field()+" failed on "+fe.Tag())
		}
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, requestID, "VALIDATION_FAILED", "validation failed", details...)
	case errors.As(err, &base):
		_ = httpapi.WriteError(w, http.StatusConflict, requestID, base.Code, base.Message)
	case errors.Is(err, persistence.ErrChannelNotFound),
		errors.Is(err, persistence.ErrCompanyNotFound),
		errors.Is(err, persistence.ErrProductNotFound):
		_ = httpapi.WriteError(w, http.StatusNotFound, requestID, "NOT_FOUND", err.Error())
	default:
		composables.MustUseLogger(r.Context()).WithError(err).Error("catalog api request failed")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, requestID, "INTERNAL", "internal error")
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, composables.UseRequestID(r.Context()), "INVALID_ID", "id must be an integer")
		return 0, false
	}
	return id, true
}

func pagination(r *http.Request) (int, int) {
	limit := 20
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}
