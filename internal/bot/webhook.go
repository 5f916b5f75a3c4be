package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// SetWebhook subscribes the bot to webhook delivery at the given URL
func (d *Dispatcher) SetWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return err
	}
	_, err = d.api.Request(wh)
	return err
}

// WebhookInfo returns the current webhook subscription state
func (d *Dispatcher) WebhookInfo() (tgbotapi.WebhookInfo, error) {
	return d.api.GetWebhookInfo()
}

// DeleteWebhook removes the webhook subscription
func (d *Dispatcher) DeleteWebhook() error {
	_, err := d.api.Request(tgbotapi.DeleteWebhookConfig{})
	return err
}
