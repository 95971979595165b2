package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/docstore/docstore-service/internal/api/dto"
	"github.com/docstore/docstore-service/internal/api/middleware"
	domainerrors "github.com/docstore/docstore-service/internal/domain/errors"
	"github.com/docstore/docstore-service/internal/domain/models"
	"github.com/docstore/docstore-service/internal/services/docstore"
)

// DocumentsHandler exposes the document-store client over HTTP.
type DocumentsHandler struct {
	store *docstore.Client
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(store *docstore.Client) *DocumentsHandler {
	return &DocumentsHandler{store: store}
}

// InsertDocuments handles POST /collections/{collection}/documents
// @Summary Insert documents
// @Description Inserts documents in order and returns their generated IDs. Documents written before a failure are kept.
// @Tags Documents
// @Accept json
// @Produce json
// @Param collection path string true "Collection name"
// @Param Idempotency-Key header string false "Replays the first response for repeated keys"
// @Param request body dto.InsertDocumentsRequest true "Documents in relaxed extended JSON"
// @Success 201 {object} dto.InsertDocumentsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid document"
// @Failure 409 {object} dto.ErrorResponse "Request with the same idempotency key in progress"
// @Failure 422 {object} dto.ErrorResponse "Document rejected by the store"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /api/v1/docstore/collections/{collection}/documents [post]
func (h *DocumentsHandler) InsertDocuments(c *gin.Context) {
	var req dto.InsertDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	docs := make([]interface{}, len(req.Documents))
	for i, raw := range req.Documents {
		doc, err := parseDocument(raw)
		if err != nil {
			middleware.HandleError(c, domainerrors.NewValidationError("invalid document", fmt.Sprintf("document %d: %s", i, err)))
			return
		}
		docs[i] = doc
	}

	ids, err := h.store.InsertMany(c.Request.Context(), c.Param("collection"), docs)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.InsertDocumentsResponse{InsertedIDs: formatIDs(ids)})
}

// FindDocuments handles GET /collections/{collection}/documents
// @Summary Find documents
// @Description Returns the documents matching an optional filter, sorted, limited and with fields excluded
// @Tags Documents
// @Produce json
// @Param collection path string true "Collection name"
// @Param filter query string false "Filter in relaxed extended JSON, e.g. {\"age\":{\"$gt\":18}}"
// @Param sort query []string false "Sort fields, prefix with - for descending" collectionFormat(multi)
// @Param limit query int false "Maximum number of documents"
// @Param skip query int false "Number of documents to skip"
// @Param exclude query []string false "Fields to leave out" collectionFormat(multi)
// @Success 200 {object} dto.DocumentsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /api/v1/docstore/collections/{collection}/documents [get]
func (h *DocumentsHandler) FindDocuments(c *gin.Context) {
	var q dto.FindDocumentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid query", err.Error()))
		return
	}

	filter := bson.D{}
	if q.Filter != "" {
		var err error
		if filter, err = parseDocument(json.RawMessage(q.Filter)); err != nil {
			middleware.HandleError(c, domainerrors.NewValidationError("invalid filter", err.Error()))
			return
		}
	}

	ctx := c.Request.Context()
	cursor, err := h.store.Find(ctx, c.Param("collection"), filter, &docstore.FindOptions{
		Sort:    splitList(q.Sort),
		Limit:   q.Limit,
		Skip:    q.Skip,
		Exclude: splitList(q.Exclude),
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	docs, err := cursor.Documents(ctx)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	out, err := renderDocuments(docs)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DocumentsResponse{Documents: out, Count: len(out)})
}

// GetDocument handles GET /collections/{collection}/documents/{id}
// @Summary Get a document by ID
// @Tags Documents
// @Produce json
// @Param collection path string true "Collection name"
// @Param id path string true "Document ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /api/v1/docstore/collections/{collection}/documents/{id} [get]
func (h *DocumentsHandler) GetDocument(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.store.FindByID(c.Request.Context(), c.Param("collection"), id)
	h.respondDocument(c, doc, id, err)
}

// DeleteDocument handles DELETE /collections/{collection}/documents/{id}
// @Summary Delete a document by ID
// @Description Removes the document and returns it
// @Tags Documents
// @Produce json
// @Param collection path string true "Collection name"
// @Param id path string true "Document ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /api/v1/docstore/collections/{collection}/documents/{id} [delete]
func (h *DocumentsHandler) DeleteDocument(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.store.DeleteByID(c.Request.Context(), c.Param("collection"), id)
	h.respondDocument(c, doc, id, err)
}

// UpdateDocuments handles POST /collections/{collection}/documents/update
// @Summary Update documents
// @Description Applies a patch to the first matching document, or to all of them when many is set
// @Tags Documents
// @Accept json
// @Produce json
// @Param collection path string true "Collection name"
// @Param request body dto.UpdateDocumentsRequest true "Filter and patch"
// @Success 200 {object} dto.UpdateDocumentsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter or patch"
// @Failure 422 {object} dto.ErrorResponse "Update rejected by the store"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /api/v1/docstore/collections/{collection}/documents/update [post]
func (h *DocumentsHandler) UpdateDocuments(c *gin.Context) {
	var req dto.UpdateDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid request body", err.Error()))
		return
	}
	filter, patch, err := parseFilterAndPatch(req.Filter, req.Set)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	ctx := c.Request.Context()
	collection := c.Param("collection")
	var res *docstore.UpdateResult
	if req.Many {
		res, err = h.store.UpdateMany(ctx, collection, filter, patch)
	} else {
		res, err = h.store.UpdateOne(ctx, collection, filter, patch)
	}
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateDocumentsResponse{Matched: res.Matched, Modified: res.Modified})
}

// FindOneAndUpdate handles POST /collections/{collection}/documents/find-one-and-update
// @Summary Find one document and update it
// @Description Atomically updates the first match and returns it before or after the update
// @Tags Documents
// @Accept json
// @Produce json
// @Param collection path string true "Collection name"
// @Param request body dto.FindOneAndUpdateRequest true "Filter, patch and which version to return"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter or patch"
// @Failure 404 {object} dto.ErrorResponse "No document matched"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /api/v1/docstore/collections/{collection}/documents/find-one-and-update [post]
func (h *DocumentsHandler) FindOneAndUpdate(c *gin.Context) {
	var req dto.FindOneAndUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid request body", err.Error()))
		return
	}
	filter, patch, err := parseFilterAndPatch(req.Filter, req.Set)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	doc, err := h.store.FindOneAndUpdate(c.Request.Context(), c.Param("collection"), filter, patch,
		&docstore.FindOneAndUpdateOptions{ReturnUpdated: req.ReturnUpdated})
	h.respondDocument(c, doc, string(req.Filter), err)
}

// DeleteDocuments handles POST /collections/{collection}/documents/delete
// @Summary Delete documents by filter
// @Tags Documents
// @Accept json
// @Produce json
// @Param collection path string true "Collection name"
// @Param request body dto.DeleteDocumentsRequest true "Filter"
// @Success 200 {object} dto.DeleteDocumentsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /api/v1/docstore/collections/{collection}/documents/delete [post]
func (h *DocumentsHandler) DeleteDocuments(c *gin.Context) {
	var req dto.DeleteDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid request body", err.Error()))
		return
	}
	filter, err := parseDocument(req.Filter)
	if err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid filter", err.Error()))
		return
	}

	n, err := h.store.DeleteMany(c.Request.Context(), c.Param("collection"), filter)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteDocumentsResponse{Deleted: n})
}

func (h *DocumentsHandler) respondDocument(c *gin.Context, doc models.Document, ref string, err error) {
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	if doc == nil {
		middleware.HandleError(c, domainerrors.NewNotFoundError("document", ref))
		return
	}
	out, err := renderDocument(doc)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}

// parseDocument decodes relaxed extended JSON. An empty or null body is
// the empty document.
func parseDocument(raw json.RawMessage) (bson.D, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return bson.D{}, nil
	}
	doc := bson.D{}
	if err := bson.UnmarshalExtJSON([]byte(trimmed), false, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = bson.D{}
	}
	return doc, nil
}

func parseFilterAndPatch(rawFilter, rawPatch json.RawMessage) (bson.D, bson.D, error) {
	filter, err := parseDocument(rawFilter)
	if err != nil {
		return nil, nil, domainerrors.NewValidationError("invalid filter", err.Error())
	}
	patch, err := parseDocument(rawPatch)
	if err != nil {
		return nil, nil, domainerrors.NewValidationError("invalid patch", err.Error())
	}
	return filter, patch, nil
}

func renderDocument(doc models.Document) (json.RawMessage, error) {
	out, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return nil, domainerrors.NewInternalError("failed to render document", err)
	}
	return out, nil
}

func renderDocuments(docs []models.Document) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(docs))
	for _, doc := range docs {
		raw, err := renderDocument(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

func formatIDs(ids []interface{}) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = models.FormatID(id)
	}
	return out
}

// splitList accepts both repeated parameters and comma separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
