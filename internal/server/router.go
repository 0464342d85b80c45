package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	customercontroller "warung/internal/customer/controller"
	ordercontroller "warung/internal/order/controller"
	"warung/internal/product"
	stockcontroller "warung/internal/stock/controller"
)

func NewRouter(
	productCtrl *product.Controller,
	orderCtrl *ordercontroller.OrderController,
	stockCtrl *stockcontroller.StockController,
	customerCtrl *customercontroller.CustomerController,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", productCtrl.HandleCreateProduct)
			r.Post("/search", productCtrl.HandleSearchProducts)
			r.Get("/low-stock", productCtrl.HandleLowStock)
			r.Post("/{productId}/stock", stockCtrl.AdjustStock)
			r.Get("/{productId}/history", stockCtrl.ProductHistory)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderCtrl.CreateOrder)
			r.Get("/{orderId}", orderCtrl.GetOrder)
			r.Post("/{orderId}/items", orderCtrl.AddItem)
			r.Post("/{orderId}/status", orderCtrl.TransitionStatus)
			r.Post("/{orderId}/payments", orderCtrl.RecordPayment)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", customerCtrl.CreateCustomer)
			r.Get("/{customerId}", customerCtrl.GetCustomer)
		})
	})

	logger.Info("router configured")

	return r
}
