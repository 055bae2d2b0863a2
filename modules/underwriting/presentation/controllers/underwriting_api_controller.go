package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/medinsure/underwriting-admin/modules/underwriting/infrastructure/persistence"
	"github.com/medinsure/underwriting-admin/modules/underwriting/services"
	"github.com/medinsure/underwriting-admin/modules/underwriting/services/importer"
	"github.com/medinsure/underwriting-admin/pkg/application"
	"github.com/medinsure/underwriting-admin/pkg/composables"
	"github.com/medinsure/underwriting-admin/pkg/httpapi"
	"github.com/medinsure/underwriting-admin/pkg/serrors"
)

type UnderwritingAPIController struct {
	app           application.Application
	rules         *services.RuleService
	imports       *services.ImportService
	basePath      string
	maxUploadSize int64
}

func NewUnderwritingAPIController(app application.Application, maxUploadSize int64) application.Controller {
	return &UnderwritingAPIController{
		app:           app,
		rules:         app.Service(services.RuleService{}).(*services.RuleService),
		imports:       app.Service(services.ImportService{}).(*services.ImportService),
		basePath:      "/underwriting/api",
		maxUploadSize: maxUploadSize,
	}
}

func (c *UnderwritingAPIController) Key() string {
	return c.basePath
}

func (c *UnderwritingAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()

	router.HandleFunc("/rules", c.CreateRule).Methods(http.MethodPost)
	router.HandleFunc("/rules", c.ListRules).Methods(http.MethodGet)
	router.HandleFunc("/rules/{id:[0-9]+}", c.GetRule).Methods(http.MethodGet)
	router.HandleFunc("/rules/{id:[0-9]+}", c.UpdateRule).Methods(http.MethodPut)
	router.HandleFunc("/rules/{id:[0-9]+}", c.DeleteRule).Methods(http.MethodDelete)
	router.HandleFunc("/rules/{id:[0-9]+}/import", c.ImportWorkbook).Methods(http.MethodPost)

	router.HandleFunc("/imports", c.ListImports).Methods(http.MethodGet)
	router.HandleFunc("/imports/{batchNo}", c.GetImport).Methods(http.MethodGet)
}

func (c *UnderwritingAPIController) CreateRule(w http.ResponseWriter, r *http.Request) {
	requestID := composables.UseRequestID(r.Context())

	var dto services.CreateRuleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, requestID, "INVALID_JSON", "invalid json body")
		return
	}

	created, err := c.rules.Create(r.Context(), dto)
	if err != nil {
		c.writeRuleError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, toRuleResponse(created))
}

func (c *UnderwritingAPIController) ListRules(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	rules, err := c.rules.List(r.Context(), limit, offset)
	if err != nil {
		c.writeRuleError(w, r, err)
		return
	}

	out := make([]*RuleResponse, 0, len(rules))
	for _, item := range rules {
		out = append(out, toRuleResponse(item))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": out})
}

func (c *UnderwritingAPIController) GetRule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	found, err := c.rules.GetByID(r.Context(), id)
	if err != nil {
		c.writeRuleError(w, r, err)
		return
	}
	resp := toRuleResponse(found)
	if has, err := c.rules.HasImportedData(r.Context(), id); err == nil {
		resp.HasImportedData = has
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, resp)
}

func (c *UnderwritingAPIController) UpdateRule(w http.ResponseWriter, r *http.Request) {
	requestID := composables.UseRequestID(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var dto services.UpdateRuleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, requestID, "INVALID_JSON", "invalid json body")
		return
	}

	updated, err := c.rules.Update(r.Context(), id, dto)
	if err != nil {
		c.writeRuleError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toRuleResponse(updated))
}

func (c *UnderwritingAPIController) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.rules.Delete(r.Context(), id); err != nil {
		c.writeRuleError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *UnderwritingAPIController) ImportWorkbook(w http.ResponseWriter, r *http.Request) {
	requestID := composables.UseRequestID(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(c.maxUploadSize); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, requestID, "INVALID_UPLOAD", "could not parse multipart upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, requestID, "MISSING_FILE", "form field \"file\" is required")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	report, err := c.imports.Import(r.Context(), id, header.Filename, file)
	if err != nil {
		if se, ok := importer.AsStructural(err); ok {
			response := &ImportReportResponse{}
			if report != nil {
				response.Batch = toBatchResponse(report.Batch)
			}
			_ = httpapi.WriteJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"code":       "IMPORT_STRUCTURAL_ERROR",
				"message":    se.Message,
				"details":    se.Problems,
				"request_id": requestID,
				"batch":      response.Batch,
			})
			return
		}
		var base *serrors.BaseError
		if errors.As(err, &base) {
			_ = httpapi.WriteError(w, http.StatusBadRequest, requestID, base.Code, base.Message)
			return
		}
		c.writeRuleError(w, r, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, &ImportReportResponse{
		Batch:    toBatchResponse(report.Batch),
		Warnings: report.Warnings,
	})
}

func (c *UnderwritingAPIController) ListImports(w http.ResponseWriter, r *http.Request) {
	requestID := composables.UseRequestID(r.Context())
	limit, offset := pagination(r)

	batches, err := c.imports.ListBatches(r.Context(), limit, offset)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, requestID, "INTERNAL", "internal error")
		return
	}

	out := make([]*BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchResponse(b))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": out})
}

func (c *UnderwritingAPIController) GetImport(w http.ResponseWriter, r *http.Request) {
	batchNo := mux.Vars(r)["batchNo"]

	withDetails := r.URL.Query().Get("details") == "1"
	if !withDetails {
		batch, err := c.imports.GetBatch(r.Context(), batchNo)
		if err != nil {
			c.writeBatchError(w, r, err)
			return
		}
		_ = httpapi.WriteJSON(w, http.StatusOK, toBatchResponse(batch))
		return
	}

	batch, rows, err := c.imports.GetBatchDetails(r.Context(), batchNo)
	if err != nil {
		c.writeBatchError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"batch": toBatchResponse(batch),
		"rows":  toRowResultResponses(rows),
	})
}

func (c *UnderwritingAPIController) writeRuleError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := composables.UseRequestID(r.Context())

	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		details := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, fe.Field()+" failed on "+fe.Tag())
		}
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, requestID, "VALIDATION_FAILED", "validation failed", details...)
	case errors.Is(err, persistence.ErrRuleNotFound):
		_ = httpapi.WriteError(w, http.StatusNotFound, requestID, "RULE_NOT_FOUND", "underwriting rule not found")
	default:
		composables.MustUseLogger(r.Context()).WithError(err).Error("underwriting api request failed")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, requestID, "INTERNAL", "internal error")
	}
}

func (c *UnderwritingAPIController) writeBatchError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := composables.UseRequestID(r.Context())
	if errors.Is(err, persistence.ErrBatchNotFound) {
		_ = httpapi.WriteError(w, http.StatusNotFound, requestID, "BATCH_NOT_FOUND", "import batch not found")
		return
	}
	composables.MustUseLogger(r.Context()).WithError(err).Error("underwriting api request failed")
	_ = httpapi.WriteError(w, http.StatusInternalServerError, requestID, "INTERNAL", "internal error")
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
