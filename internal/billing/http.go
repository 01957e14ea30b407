// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package billing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/sociallink/internal/platform/request"
	"github.com/taibuivan/sociallink/internal/platform/respond"
)

// Handler implements the HTTP layer for /api/billing.
type Handler struct {
	billingService *Service
}

// NewHandler constructs a new billing [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{billingService: service}
}

// Routes returns a [chi.Router] for /api/billing. Mount it behind RequireAuth.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/products", handler.products)
	router.Post("/stripe/checkout", handler.stripeCheckout)
	router.Get("/stripe/session/{sessionId}", handler.stripeSession)
	router.Post("/razorpay/order", handler.razorpayOrder)
	router.Post("/razorpay/verify", handler.razorpayVerify)
	router.Post("/cancel", handler.cancel)

	return router
}

type productRequest struct {
	ProductID string `json:"productId"`
}

func (handler *Handler) products(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.billingService.Products())
}

func (handler *Handler) stripeCheckout(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input productRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	checkout, err := handler.billingService.StartCheckout(request.Context(), ownerID, input.ProductID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, checkout)
}

func (handler *Handler) stripeSession(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.billingService.ConfirmCheckout(request.Context(), ownerID, requestutil.Param(request, "sessionId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, status)
}

func (handler *Handler) razorpayOrder(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input productRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	order, err := handler.billingService.CreateRazorpayOrder(request.Context(), ownerID, input.ProductID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, order)
}

type verifyRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

/*
POST /api/billing/razorpay/verify.

Response:
  - 200: PlanState
  - 400: INVALID_SIGNATURE, plan unchanged
  - 404: Order not started by the caller
*/
func (handler *Handler) razorpayVerify(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input verifyRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.billingService.VerifyRazorpay(request.Context(), ownerID, VerifyInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, state)
}

func (handler *Handler) cancel(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.billingService.Cancel(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, state)
}
