package controllers

import (
	"errors"
	"io"

	"github.com/Govind-619/quickcart-payments/middleware"
	"github.com/Govind-619/quickcart-payments/services"
	"github.com/Govind-619/quickcart-payments/utils"
	"github.com/gin-gonic/gin"
)

// PaymentController exposes the payment broker over HTTP
type PaymentController struct {
	Broker      *services.PaymentBroker
	ServiceName string
}

func NewPaymentController(broker *services.PaymentBroker, serviceName string) *PaymentController {
	return &PaymentController{Broker: broker, ServiceName: serviceName}
}

type createSessionRequest struct {
	UserID   string  `json:"userId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Gateway  string  `json:"gateway"`
}

type verifySessionRequest struct {
	SessionID string `json:"sessionId"`
}

// bindJSON treats an empty body as an empty object
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		utils.LogError("Invalid request body for %s: %v", c.Request.URL.Path, err)
		utils.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// POST /payments/create-session
func (pc *PaymentController) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	if authUserID := c.GetString(middleware.AuthUserIDKey); authUserID != "" {
		if req.UserID == "" {
			req.UserID = authUserID
		} else if req.UserID != authUserID {
			utils.LogError("userId %s does not match token user %s", req.UserID, authUserID)
			utils.RespondWithError(c, utils.ForbiddenError("userId does not match the authenticated user", nil))
			return
		}
	}

	result, err := pc.Broker.CreateSession(c.Request.Context(), services.CreateSessionInput{
		UserID:   req.UserID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Gateway:  req.Gateway,
	})
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.Success(c, result)
}

// POST /payments/verify-session
func (pc *PaymentController) VerifySession(c *gin.Context) {
	var req verifySessionRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := pc.Broker.VerifySession(c.Request.Context(), req.SessionID)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.Success(c, result)
}

// GET /health
func (pc *PaymentController) Health(c *gin.Context) {
	utils.Success(c, gin.H{
		"ok":        true,
		"service":   pc.ServiceName,
		"providers": pc.Broker.Providers(),
	})
}
