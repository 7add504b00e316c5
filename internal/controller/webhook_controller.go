package controller

import (
	"encoding/json"

	"well-reports-bot/internal/dto"
	"well-reports-bot/internal/pkg/logger"
	"well-reports-bot/internal/repository/contract"
	"well-reports-bot/internal/service"
	"well-reports-bot/pkg/telegram"

	"github.com/gofiber/fiber/v2"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	HandleUpdate(ctx *fiber.Ctx) error
}

type webhookController struct {
	service service.INavigationService
	dedupe  contract.UpdateDedupeRepository // nil when redis is not configured
	secret  string
	logger  logger.ILogger
}

func NewWebhookController(
	svc service.INavigationService,
	dedupe contract.UpdateDedupeRepository,
	secret string,
	log logger.ILogger,
) IWebhookController {
	return &webhookController{
		service: svc,
		dedupe:  dedupe,
		secret:  secret,
		logger:  log,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	r.Post("/telegram/webhook", c.HandleUpdate)
}

// HandleUpdate is the single inbound surface of the bot. Malformed payloads
// get 200 with a no-op body: Telegram redelivers on any other status, and a
// payload that failed to parse once will fail forever.
func (c *webhookController) HandleUpdate(ctx *fiber.Ctx) error {
	if c.secret != "" && ctx.Get(secretTokenHeader) != c.secret {
		return ctx.Status(fiber.StatusUnauthorized).JSON(dto.WebhookResponse{OK: false, Message: "bad secret token"})
	}

	body := ctx.Body()
	if len(body) == 0 {
		return ctx.JSON(dto.WebhookResponse{OK: true, Message: "no body provided"})
	}

	var update telegram.Update
	if err := json.Unmarshal(body, &update); err != nil {
		c.logger.Warn("webhook", "invalid update payload", map[string]interface{}{"error": err.Error()})
		return ctx.JSON(dto.WebhookResponse{OK: true, Message: "invalid json in body"})
	}
	if update.Message == nil && update.CallbackQuery == nil {
		return ctx.JSON(dto.WebhookResponse{OK: true, Message: "nothing to handle"})
	}

	reqCtx := ctx.UserContext()

	if c.dedupe != nil {
		first, err := c.dedupe.FirstSeen(reqCtx, update.UpdateID)
		if err != nil {
			// Fail open: a dead redis must not stop the bot.
			c.logger.Warn("webhook", "dedupe check failed", map[string]interface{}{"error": err.Error()})
		} else if !first {
			return ctx.JSON(dto.WebhookResponse{OK: true, Message: "duplicate update"})
		}
	}

	if err := c.service.HandleUpdate(reqCtx, &update); err != nil {
		c.logger.Error("webhook", "update handling failed", map[string]interface{}{
			"update_id": update.UpdateID,
			"error":     err.Error(),
		})
		if c.dedupe != nil {
			if err := c.dedupe.Forget(reqCtx, update.UpdateID); err != nil {
				c.logger.Debug("webhook", "dedupe release failed", map[string]interface{}{"error": err.Error()})
			}
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.WebhookResponse{OK: false, Message: "processing failed"})
	}

	return ctx.JSON(dto.WebhookResponse{OK: true})
}
