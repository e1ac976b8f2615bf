package controller

import (
	"encoding/json"
	"io"

	"github.com/alimikegami/laundry-payment-service/internal/dto"
	"github.com/alimikegami/laundry-payment-service/internal/service"
	"github.com/alimikegami/laundry-payment-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type Controller struct {
	service service.PaymentService
}

func CreatePaymentController(e *echo.Group, service service.PaymentService) {
	c := Controller{
		service: service,
	}

	e.POST("/create-qris", c.CreateQris)
	e.POST("/payment-webhook", c.PaymentWebhook)
}

func (c *Controller) CreateQris(e echo.Context) error {
	payload := dto.ChargeRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "CreateQris").Msg("")
		return response.WriteErrorResponse(e, err)
	}

	resp, err := c.service.CreateQris(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteJSON(e, resp)
}

func (c *Controller) PaymentWebhook(e echo.Context) error {
	ctx := e.Request().Context()

	payload := dto.PaymentNotification{}
	body, err := io.ReadAll(e.Request().Body)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "PaymentWebhook").Msg("")
		return response.WriteErrorResponse(e, err)
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "PaymentWebhook").Msg("")
		return response.WriteErrorResponse(e, err)
	}
	payload.Raw = body

	log.Ctx(ctx).Info().Str("component", "PaymentWebhook").
		Str("order_id", payload.OrderID).
		Str("transaction_status", payload.TransactionStatus).
		Msg("Received webhook notification")

	resp, err := c.service.HandleNotification(ctx, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteJSON(e, resp)
}
