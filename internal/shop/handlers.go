package shop

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/toko-sim/internal/catalog"
	"github.com/noah-isme/toko-sim/internal/common"
	"github.com/noah-isme/toko-sim/internal/events"
	"github.com/noah-isme/toko-sim/internal/obs"
	"github.com/noah-isme/toko-sim/internal/search"
)

// EventLister exposes recently recorded domain events.
type EventLister interface {
	Recent(limit int) []events.Event
}

// Handler exposes the admin and store HTTP API.
type Handler struct {
	Service  *Service
	Validate *validator.Validate
	Events   EventLister
}

// HandlerConfig wires a Handler.
type HandlerConfig struct {
	Service  *Service
	Validate *validator.Validate
	Events   EventLister
}

// NewHandler constructs a Handler. A missing validator is created.
func NewHandler(cfg HandlerConfig) *Handler {
	validate := cfg.Validate
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return &Handler{Service: cfg.Service, Validate: validate, Events: cfg.Events}
}

// Numeric fields are operator text so the catalog parsers decide what counts
// as a number.
type groupRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

type productRequest struct {
	Name     string `json:"name" validate:"required,max=64"`
	Price    string `json:"price" validate:"required,max=19"`
	Quantity string `json:"quantity" validate:"required,max=10"`
	Discount string `json:"discount" validate:"omitempty,max=3"`
}

type editRequest struct {
	Field string `json:"field" validate:"required,oneof=name price quantity number discount"`
	Value string `json:"value" validate:"required,max=64"`
}

type sessionRequest struct {
	OpeningTotal string `json:"openingTotal" validate:"omitempty,max=19"`
}

type reserveRequest struct {
	Group    string `json:"group" validate:"omitempty,max=64"`
	Product  string `json:"product" validate:"required,max=64"`
	Quantity string `json:"quantity" validate:"required,max=10"`
}

type releaseRequest struct {
	Product  string `json:"product" validate:"required,max=64"`
	Quantity string `json:"quantity" validate:"required,max=10"`
}

// Routes mounts the API on r. write wraps every state-changing route, which
// is where rate limiting and idempotency keys apply.
func (h *Handler) Routes(r chi.Router, write ...func(http.Handler) http.Handler) {
	r.Get("/catalog", h.Catalog)
	r.Get("/catalog.txt", h.CatalogText)
	r.Get("/admin/events", h.RecentEvents)

	sessionPath := "/sessions/{" + obs.SessionParam + "}"
	r.Get(sessionPath, h.Session)
	r.Get(sessionPath+"/list.txt", h.ShoppingListText)
	r.Get(sessionPath+"/invoice", h.Invoice)
	r.Get(sessionPath+"/invoice.txt", h.InvoiceText)
	r.Get(sessionPath+"/search", h.Search)

	r.Group(func(w chi.Router) {
		w.Use(write...)
		w.Post("/groups", h.AddGroup)
		w.Patch("/groups/{group}", h.RenameGroup)
		w.Delete("/groups/{group}", h.DeleteGroup)
		w.Post("/groups/{group}/products", h.AddProduct)
		w.Patch("/groups/{group}/products/{product}", h.EditProduct)
		w.Delete("/groups/{group}/products/{product}/discount", h.ClearDiscount)

		w.Post("/sessions", h.OpenSession)
		w.Delete(sessionPath, h.CloseSession)
		w.Post(sessionPath+"/reserve", h.Reserve)
		w.Post(sessionPath+"/release", h.Release)
	})
}

// Catalog handles GET /catalog.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	common.Data(w, http.StatusOK, h.Service.Catalog(r.Context()))
}

// CatalogText handles GET /catalog.txt.
func (h *Handler) CatalogText(w http.ResponseWriter, r *http.Request) {
	common.Text(w, http.StatusOK, h.Service.CatalogText(r.Context()))
}

// AddGroup handles POST /groups.
func (h *Handler) AddGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := common.Decode(r, h.Validate, &req); err != nil {
		writeError(w, err)
		return
	}
	group, err := h.Service.AddGroup(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	common.Data(w, http.StatusCreated, map[string]string{"name": group})
}

// RenameGroup handles PATCH /groups/{group}.
func (h *Handler) RenameGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := common.Decode(r, h.Validate, &req); err != nil {
		writeError(w, err)
		return
	}
	group, err := h.Service.RenameGroup(r.Context(), chi.URLParam(r, "group"), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	common.Data(w, http.StatusOK, map[string]string{"name": group})
}

// DeleteGroup handles DELETE /groups/{group}.
func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteGroup(r.Context(), chi.URLParam(r, "group")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddProduct handles POST /groups/{group}/products.
func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := common.Decode(r, h.Validate, &req); err != nil {
		writeError(w, err)
		return
	}
	view, err := h.Service.AddProduct(r.Context(), chi.URLParam(r, "group"), ProductInput{
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
		Discount: req.Discount,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	common.Data(w, http.StatusCreated, view)
}

// EditProduct handles PATCH /groups/{group}/products/{product}.
func (h *Handler) EditProduct(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := common.Decode(r, h.Validate, &req); err != nil {
		writeError(w, err)
		return
	}
	view, err := h.Service.EditProduct(r.Context(), chi.URLParam(r, "group"), chi.URLParam(r, "product"), req.Field, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	common.Data(w, http.StatusOK, view)
}

// ClearDiscount handles DELETE /groups/{group}/products/{product}/discount.
func (h *Handler) ClearDiscount(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.ClearDiscount(r.Context(), chi.URLParam(r, "group"), chi.URLParam(r, "product"))
	if err != nil {
		writeError(w, err)
		return
	}
	common.Data(w, http.StatusOK, view)
}

// OpenSession handles POST /sessions. The body is optional.
func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if r.ContentLength != 0 {
		if err := common.Decode(r, h.Validate, &req); err != nil {
			writeError(w, err)
			return
		}
	}
	var opening int64
	if text := strings.TrimSpace(req.OpeningTotal); text != "" {
		n, err := catalog.ParseAmount(text)
		if err != nil {
			writeError(w, err)
			return
		}
		opening = n
	}
	view, err := h.Service.OpenSession(r.Context(), opening)
	if err != nil {
		writeError(w, err)
		return
	}
	common.Data(w, http.StatusCreated, view)
}

// Session handles GET /sessions/{sessionID}.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.Session(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	common.Data(w, http.StatusOK, view)
}

// CloseSession handles DELETE /sessions/{sessionID}.
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.CloseSession(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	common.Data(w, http.StatusOK, view)
}

// ShoppingListText handles GET /sessions/{sessionID}/list.txt.
func (h *Handler) ShoppingListText(w http.ResponseWriter, r *http.Request) {
	text, err := h.Service.ShoppingListText(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	common.Text(w, http.StatusOK, text)
}

// Reserve handles POST /sessions/{sessionID}/reserve.
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req reserveRequest
	if err := common.Decode(r, h.Validate, &req); err != nil {
		writeError(w, err)
		return
	}
	view, err := h.Service.Reserve(r.Context(), sessionID(r), ReserveInput{
		Group:    req.Group,
		Product:  req.Product,
		Quantity: req.Quantity,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	common.Data(w, http.StatusOK, view)
}

// Release handles POST /sessions/{sessionID}/release.
func (h *Handler) Release(w http.ResponseWriter, r *http.Request) {
	var req releaseRequest
	if err := common.Decode(r, h.Validate, &req); err != nil {
		writeError(w, err)
		return
	}
	view, err := h.Service.Release(r.Context(), sessionID(r), ReleaseInput{Product: req.Product, Quantity: req.Quantity})
	if err != nil {
		writeError(w, err)
		return
	}
	common.Data(w, http.StatusOK, view)
}

// Invoice handles GET /sessions/{sessionID}/invoice.
func (h *Handler) Invoice(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Invoice(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	common.Data(w, http.StatusOK, summary)
}

// InvoiceText handles GET /sessions/{sessionID}/invoice.txt.
func (h *Handler) InvoiceText(w http.ResponseWriter, r *http.Request) {
	text, err := h.Service.InvoiceText(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	common.Text(w, http.StatusOK, text)
}

// Search handles GET /sessions/{sessionID}/search?q=term. format=text
// returns the plain report.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	results, err := h.Service.Search(r.Context(), sessionID(r), term)
	if err != nil {
		writeError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "text" {
		common.Text(w, http.StatusOK, search.Format(term, results))
		return
	}
	common.Data(w, http.StatusOK, results)
}

// RecentEvents handles GET /admin/events?limit=n&topic=t. With a topic the
// limit counts matching events only.
func (h *Handler) RecentEvents(w http.ResponseWriter, r *http.Request) {
	if h.Events == nil {
		common.Data(w, http.StatusOK, []events.Event{})
		return
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "limit must be a positive integer", nil)
			return
		}
		limit = n
	}
	topic := r.URL.Query().Get("topic")
	if topic != "" && !slices.Contains(events.DefaultTopics(), topic) {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "unknown topic", map[string]any{"topics": events.DefaultTopics()})
		return
	}
	if topic == "" {
		common.Data(w, http.StatusOK, h.Events.Recent(limit))
		return
	}
	recent := slices.DeleteFunc(h.Events.Recent(0), func(e events.Event) bool { return e.Topic != topic })
	if len(recent) > limit {
		recent = recent[:limit]
	}
	common.Data(w, http.StatusOK, recent)
}

func sessionID(r *http.Request) string {
	return chi.URLParam(r, obs.SessionParam)
}

func writeError(w http.ResponseWriter, err error) {
	common.WriteError(w, ClassifyError(err))
}
