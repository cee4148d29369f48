package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Kareem09qyu/Okta/internal/storefront/service"
	"github.com/Kareem09qyu/Okta/pkg/httpx"
	"github.com/Kareem09qyu/Okta/pkg/storefrontsdk"
)

type CatalogHandler struct {
	CatalogService *service.CatalogService
}

// HandleList handles GET /api/products
//
//	@Summary	List products
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{object}	storefrontsdk.ProductsResponse	"Products, newest first"
//	@Failure	500	{object}	storefrontsdk.Envelope			"Internal server error"
//	@Router		/api/products [get].
func (h *CatalogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ps, err := h.CatalogService.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, storefrontsdk.ProductsResponse{
		Envelope: storefrontsdk.Envelope{Success: true},
		Products: toSDKProducts(ps),
	})
}

// HandleFeatured handles GET /api/products/featured
//
//	@Summary	List featured products
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{object}	storefrontsdk.ProductsResponse	"Featured products, newest first"
//	@Failure	500	{object}	storefrontsdk.Envelope			"Internal server error"
//	@Router		/api/products/featured [get].
func (h *CatalogHandler) HandleFeatured(w http.ResponseWriter, r *http.Request) {
	ps, err := h.CatalogService.ListFeatured(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, storefrontsdk.ProductsResponse{
		Envelope: storefrontsdk.Envelope{Success: true},
		Products: toSDKProducts(ps),
	})
}

// HandleGet handles GET /api/products/{id}
//
//	@Summary	Get a product
//	@Tags		Catalog
//	@Produce	json
//	@Param		id	path		int								true	"Product id"
//	@Success	200	{object}	storefrontsdk.ProductResponse	"Product"
//	@Failure	400	{object}	storefrontsdk.Envelope			"Invalid id"
//	@Failure	404	{object}	storefrontsdk.Envelope			"No such product"
//	@Failure	500	{object}	storefrontsdk.Envelope			"Internal server error"
//	@Router		/api/products/{id} [get].
func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := h.CatalogService.GetProduct(r.Context(), id)
	if errors.Is(err, service.ErrProductNotFound) {
		storefrontsdk.ErrNotFound.WriteError(w)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	sp := toSDKProduct(p)
	httpx.WriteJSON(w, http.StatusOK, storefrontsdk.ProductResponse{
		Envelope: storefrontsdk.Envelope{Success: true},
		Product:  &sp,
	})
}

// pathID parses the {id} path segment, writing a 400 when it is not a
// positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		invalid(w, map[string]string{"id": "must be a positive integer"})
		return 0, false
	}
	return id, true
}
