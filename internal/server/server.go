package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Bot is the transport capability the HTTP surface delegates to
type Bot interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update)
	SetWebhook(url string) error
	WebhookInfo() (tgbotapi.WebhookInfo, error)
	DeleteWebhook() error
}

type setWebhookRequest struct {
	WebhookURL string `json:"webhook_url" binding:"required"`
}

// NewRouter builds the gin engine serving the webhook endpoint, liveness
// check, and webhook subscription management.
func NewRouter(bot Bot) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", home)
	r.GET("/health", health)
	r.POST("/webhook", webhook(bot))
	r.POST("/set_webhook", setWebhook(bot))
	r.GET("/get_webhook_info", getWebhookInfo(bot))
	r.POST("/delete_webhook", deleteWebhook(bot))

	return r
}

func home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Telegram PDF Bot API is running",
		"endpoints": gin.H{
			"/health":           "Health check",
			"/webhook":          "Telegram webhook endpoint",
			"/set_webhook":      "Set webhook URL",
			"/get_webhook_info": "Get webhook information",
			"/delete_webhook":   "Delete webhook",
		},
	})
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Bot is running"})
}

// webhook accepts one update per invocation. Concurrent deliveries run
// independently; serialization against the store happens in the store adapter.
func webhook(bot Bot) gin.HandlerFunc {
	return func(c *gin.Context) {
		var update tgbotapi.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			log.Warn().Err(err).Msg("malformed webhook payload")
			c.JSON(http.StatusBadRequest, gin.H{"error": "No data received"})
			return
		}

		bot.HandleUpdate(c.Request.Context(), update)
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

func setWebhook(bot Bot) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setWebhookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "webhook_url is required"})
			return
		}

		if err := bot.SetWebhook(req.WebhookURL); err != nil {
			log.Error().Err(err).Msg("failed to set webhook")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Webhook set successfully"})
	}
}

func getWebhookInfo(bot Bot) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := bot.WebhookInfo()
		if err != nil {
			log.Error().Err(err).Msg("failed to get webhook info")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"url":                    info.URL,
			"has_custom_certificate": info.HasCustomCertificate,
			"pending_update_count":   info.PendingUpdateCount,
			"last_error_date":        info.LastErrorDate,
			"last_error_message":     info.LastErrorMessage,
			"max_connections":        info.MaxConnections,
			"allowed_updates":        info.AllowedUpdates,
		})
	}
}

func deleteWebhook(bot Bot) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := bot.DeleteWebhook(); err != nil {
			log.Error().Err(err).Msg("failed to delete webhook")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Webhook deleted successfully"})
	}
}
