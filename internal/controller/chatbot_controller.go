package controller

import (
	"errors"

	"os-help-bot/internal/dto"
	"os-help-bot/internal/pkg/serverutils"
	"os-help-bot/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	ResetSession(ctx *fiber.Ctx) error
	GetTranscript(ctx *fiber.Ctx) error
	PurgeTranscript(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
}

func NewChatbotController(chatbotService service.IChatbotService) IChatbotController {
	return &chatbotController{
		chatbotService: chatbotService,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)

	h := r.Group("/chat")
	h.Post("/messages", c.SendMessage)
	h.Get("/sessions/:userId", c.GetSession)
	h.Delete("/sessions/:userId", c.ResetSession)
	h.Get("/transcripts/:userId", c.GetTranscript)
	h.Delete("/transcripts/:userId", c.PurgeTranscript)
}

// SendMessage runs one turn of the help pipeline
// @Summary Send a message to the help bot
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Message"
// @Success 200 {object} dto.SendMessageResponse
// @Router /api/chat/messages [post]
func (c *chatbotController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.SendMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message answered", res))
}

func (c *chatbotController) GetSession(ctx *fiber.Ctx) error {
	res, err := c.chatbotService.GetSession(ctx.Context(), ctx.Params("userId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session retrieved", res))
}

func (c *chatbotController) ResetSession(ctx *fiber.Ctx) error {
	res, err := c.chatbotService.ResetSession(ctx.Context(), ctx.Params("userId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session reset", res))
}

func (c *chatbotController) GetTranscript(ctx *fiber.Ctx) error {
	var query dto.TranscriptQuery
	if err := ctx.QueryParser(&query); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid query parameters"))
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.chatbotService.GetTranscript(ctx.Context(), ctx.Params("userId"), query)
	if err != nil {
		return transcriptError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Transcript retrieved", res))
}

func (c *chatbotController) PurgeTranscript(ctx *fiber.Ctx) error {
	if err := c.chatbotService.PurgeTranscript(ctx.Context(), ctx.Params("userId")); err != nil {
		return transcriptError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Transcript purged", nil))
}

func transcriptError(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrTranscriptDisabled) {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(503, err.Error()))
	}
	return err
}

func (c *chatbotController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("OK", c.chatbotService.Health(ctx.Context())))
}
