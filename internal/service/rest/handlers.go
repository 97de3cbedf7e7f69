package rest

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pos/internal/domain"
	"github.com/vladislavdragonenkov/pos/internal/service/payment"
	"github.com/vladislavdragonenkov/pos/internal/service/sales"
)

const dashboardTopProducts = 5

type categoryView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type productView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceMinor int64  `json:"price_minor"`
	Category   string `json:"category"`
	ImageURL   string `json:"image_url,omitempty"`
	SortOrder  int    `json:"sort_order"`
}

type catalogResponse struct {
	Categories []categoryView `json:"categories"`
	Products   []productView  `json:"products"`
}

// handleCatalog отдаёт витрину одним ответом: категории и товары в порядке
// показа.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.ListCategories(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	products, err := s.catalog.ListProducts(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	resp := catalogResponse{
		Categories: make([]categoryView, 0, len(categories)),
		Products:   make([]productView, 0, len(products)),
	}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, categoryView{ID: c.ID, Name: c.Name, SortOrder: c.SortOrder})
	}
	for _, p := range products {
		resp.Products = append(resp.Products, productView{
			ID:         p.ID,
			Name:       p.Name,
			PriceMinor: p.PriceMinor,
			Category:   p.Category,
			ImageURL:   p.ImageURL,
			SortOrder:  p.SortOrder,
		})
	}

	s.writeJSON(w, http.StatusOK, resp)
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleOpenSession(w http.ResponseWriter, _ *http.Request) {
	id := s.sessions.Open()
	s.logger.WithField("session_id", id).Debug("cart session opened")
	s.writeJSON(w, http.StatusCreated, sessionResponse{SessionID: id})
}

type cartLineView struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceMinor int64  `json:"price_minor"`
	Qty        int32  `json:"quantity"`
}

type cartResponse struct {
	Items      []cartLineView `json:"items"`
	TotalMinor int64          `json:"total_minor"`
}

func cartView(cart *domain.Cart) cartResponse {
	lines := cart.Lines()
	resp := cartResponse{
		Items:      make([]cartLineView, 0, len(lines)),
		TotalMinor: cart.TotalMinor(),
	}
	for _, line := range lines {
		resp.Items = append(resp.Items, cartLineView{
			ProductID:  line.ProductID,
			Name:       line.Name,
			PriceMinor: line.PriceMinor,
			Qty:        line.Qty,
		})
	}
	return resp
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	var resp cartResponse
	err := s.sessions.WithCart(chi.URLParam(r, "sessionID"), func(cart *domain.Cart) error {
		resp = cartView(cart)
		return nil
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

// handleAddItem добавляет товар в корзину. Имя и цена снимаются с каталога
// в момент добавления.
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		s.writeError(w, http.StatusBadRequest, "bad_request", "body must be {\"product_id\": \"...\"}")
		return
	}

	product, err := s.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	var resp cartResponse
	err = s.sessions.WithCart(chi.URLParam(r, "sessionID"), func(cart *domain.Cart) error {
		cart.AddProduct(product)
		resp = cartView(cart)
		return nil
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type adjustItemRequest struct {
	Delta int32 `json:"delta"`
}

func (s *Server) handleAdjustItem(w http.ResponseWriter, r *http.Request) {
	var req adjustItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "bad_request", "body must be {\"delta\": n}")
		return
	}

	var resp cartResponse
	err := s.sessions.WithCart(chi.URLParam(r, "sessionID"), func(cart *domain.Cart) error {
		cart.AdjustQuantity(chi.URLParam(r, "productID"), req.Delta)
		resp = cartView(cart)
		return nil
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	err := s.sessions.WithCart(chi.URLParam(r, "sessionID"), func(cart *domain.Cart) error {
		cart.RemoveProduct(chi.URLParam(r, "productID"))
		return nil
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	err := s.sessions.WithCart(chi.URLParam(r, "sessionID"), func(cart *domain.Cart) error {
		cart.Clear()
		return nil
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type checkoutResponse struct {
	OrderID    string    `json:"order_id"`
	TotalMinor int64     `json:"total_minor"`
	CreatedAt  time.Time `json:"created_at"`
}

// handleCheckout записывает продажу. При ошибке хранилища корзина остаётся
// нетронутой, кассир может повторить.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	err := s.sessions.WithCart(chi.URLParam(r, "sessionID"), func(cart *domain.Cart) error {
		var cerr error
		order, cerr = s.checkout.Checkout(r.Context(), cart)
		return cerr
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, checkoutResponse{
		OrderID:    order.ID,
		TotalMinor: order.TotalMinor,
		CreatedAt:  order.CreatedAt,
	})
}

// handlePaymentQR отдаёт PNG с PromptPay QR на текущий итог корзины.
// QR нигде не хранится и строится заново на каждый запрос.
func (s *Server) handlePaymentQR(w http.ResponseWriter, r *http.Request) {
	var totalMinor int64
	err := s.sessions.WithCart(chi.URLParam(r, "sessionID"), func(cart *domain.Cart) error {
		if cart.IsEmpty() {
			return domain.ErrCartEmpty
		}
		totalMinor = cart.TotalMinor()
		return nil
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	payload, err := payment.BuildPayload(s.promptpayID, totalMinor)
	if err != nil {
		s.logger.WithError(err).Error("failed to build payment payload")
		s.writeError(w, http.StatusInternalServerError, "payment_config", "payment identifier is misconfigured")
		return
	}

	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	png, err := payment.QRCode(payload, size)
	if err != nil {
		s.logger.WithError(err).Error("failed to render qr code")
		s.writeError(w, http.StatusInternalServerError, "qr_render", "failed to render qr code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		s.logger.WithError(err).Warn("failed to write qr response")
	}
}

type dashboardResponse struct {
	Date        string                `json:"date"`
	TotalMinor  int64                 `json:"total_minor"`
	OrderCount  int                   `json:"order_count"`
	TopProducts []sales.RankedProduct `json:"top_products"`
}

// handleDashboard отдаёт сводку продаж за сегодня. Неверный секрет — 403 до
// какого-либо обращения к хранилищу.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	secret := r.URL.Query().Get("password")
	if s.dashboardSecret == "" ||
		subtle.ConstantTimeCompare([]byte(secret), []byte(s.dashboardSecret)) != 1 {
		s.writeError(w, http.StatusForbidden, "forbidden", "invalid dashboard password")
		return
	}

	day := s.now().In(s.location)
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.location)
	to := from.Add(24 * time.Hour)

	orders, err := s.orders.ListByWindow(r.Context(), from, to)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	result := sales.Aggregate(orders)
	s.logger.WithFields(log.Fields{
		"orders":      result.OrderCount,
		"total_minor": result.TotalMinor,
	}).Debug("dashboard summary served")

	s.writeJSON(w, http.StatusOK, dashboardResponse{
		Date:        from.Format("2006-01-02"),
		TotalMinor:  result.TotalMinor,
		OrderCount:  result.OrderCount,
		TopProducts: sales.TopN(result.Ranked, dashboardTopProducts),
	})
}
