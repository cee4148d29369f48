package http

import (
	"net/http"

	"github.com/Kareem09qyu/Okta/internal/storefront/service"
	"github.com/Kareem09qyu/Okta/pkg/httpx"
	"github.com/Kareem09qyu/Okta/pkg/storefrontsdk"
)

// CartHandler serves the cart of the logged in user. Every route sits
// behind RequireSession.
type CartHandler struct {
	CartService *service.CartService
}

// HandleList handles GET /api/cart
//
//	@Summary	Show the cart
//	@Tags		Cart
//	@Security	SessionCookie
//	@Produce	json
//	@Success	200	{object}	storefrontsdk.CartResponse	"Items, newest first, and total in cents"
//	@Failure	401	{object}	storefrontsdk.Envelope		"Not logged in"
//	@Failure	500	{object}	storefrontsdk.Envelope		"Internal server error"
//	@Router		/api/cart [get].
func (h *CartHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	cart, err := h.CartService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, storefrontsdk.CartResponse{
		Envelope:   storefrontsdk.Envelope{Success: true},
		Items:      toSDKCartItems(cart.Items),
		TotalCents: cart.TotalCents,
	})
}

// HandleAdd handles POST /api/cart
//
//	@Summary	Add a product to the cart
//	@Tags		Cart
//	@Security	SessionCookie
//	@Accept		json
//	@Produce	json
//	@Param		request	body		storefrontsdk.AddToCartRequest	true	"Product and quantity (default 1)"
//	@Success	200		{object}	storefrontsdk.Envelope			"Added, not_found or insufficient_stock"
//	@Failure	400		{object}	storefrontsdk.Envelope			"Invalid request"
//	@Failure	401		{object}	storefrontsdk.Envelope			"Not logged in"
//	@Failure	500		{object}	storefrontsdk.Envelope			"Internal server error"
//	@Router		/api/cart [post].
func (h *CartHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	var req storefrontsdk.AddToCartRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		invalid(w, errs)
		return
	}

	if err := h.CartService.Add(r.Context(), userID, req.ProductID, req.Qty()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, storefrontsdk.Envelope{Success: true, Message: "added to cart"})
}

// HandleUpdate handles PATCH /api/cart/{id}
//
//	@Summary		Change a cart line quantity
//	@Description	A quantity of zero or less removes the line.
//	@Tags			Cart
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int									true	"Cart item id"
//	@Param			request	body		storefrontsdk.UpdateCartItemRequest	true	"New quantity"
//	@Success		200		{object}	storefrontsdk.Envelope				"Updated, not_found or insufficient_stock"
//	@Failure		400		{object}	storefrontsdk.Envelope				"Invalid request"
//	@Failure		401		{object}	storefrontsdk.Envelope				"Not logged in"
//	@Failure		500		{object}	storefrontsdk.Envelope				"Internal server error"
//	@Router			/api/cart/{id} [patch].
func (h *CartHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req storefrontsdk.UpdateCartItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.CartService.UpdateQuantity(r.Context(), userID, itemID, req.Quantity); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, storefrontsdk.Envelope{Success: true, Message: "cart updated"})
}

// HandleRemove handles DELETE /api/cart/{id}
//
//	@Summary	Remove a cart line
//	@Tags		Cart
//	@Security	SessionCookie
//	@Produce	json
//	@Param		id	path		int						true	"Cart item id"
//	@Success	200	{object}	storefrontsdk.Envelope	"Removed or not_found"
//	@Failure	401	{object}	storefrontsdk.Envelope	"Not logged in"
//	@Router		/api/cart/{id} [delete].
func (h *CartHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.CartService.Remove(r.Context(), userID, itemID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, storefrontsdk.Envelope{Success: true, Message: "removed from cart"})
}

// HandleClear handles DELETE /api/cart
//
//	@Summary	Empty the cart
//	@Tags		Cart
//	@Security	SessionCookie
//	@Produce	json
//	@Success	200	{object}	storefrontsdk.Envelope
//	@Failure	401	{object}	storefrontsdk.Envelope	"Not logged in"
//	@Router		/api/cart [delete].
func (h *CartHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	if err := h.CartService.Clear(r.Context(), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, storefrontsdk.Envelope{Success: true, Message: "cart cleared"})
}
