// Package telegram sends win notifications through the Telegram Bot API.
//
// Messages are plain HTTP requests against the Bot API using HTML parse mode.
// Authentication requires a bot token (from @BotFather) and a chat ID.
package telegram
