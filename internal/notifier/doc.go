// Package notifier delivers win notifications.
//
// DryRunNotifier prints what would be sent; TelegramNotifier posts to a Telegram chat.
package notifier
