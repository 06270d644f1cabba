package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	app "zone-guard/internal/application"
	"zone-guard/internal/container"
	"zone-guard/internal/domain/entity"
	"zone-guard/internal/domain/port"
)

const (
	msgStart = `👋 Привет! Я слежу за запретной зоной на камере.

🚨 Этот чат подписан на оповещения о проникновении в зону.

📋 Команды:
/status — текущее состояние
/history — последние инциденты
/stop — отписаться от оповещений
/help — справка`

	msgHelp = `ℹ️ Как это работает:

1️⃣ Оператор замораживает кадр кнопкой Freeze
2️⃣ Отмечает четыре вершины зоны и нажимает Unfreeze
3️⃣ Когда объект заходит в зону, бот присылает снимок

📋 Команды:
/start — подписаться на оповещения
/stop — отписаться
/status — текущее состояние
/history — последние инциденты
/clear — очистить историю`

	msgStopped        = "🔕 Оповещения отключены. Отправьте /start, чтобы подписаться снова."
	msgCleared        = "🧹 История инцидентов очищена."
	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgError          = "⚠️ Не удалось выполнить команду. Попробуйте позже."
)

const historySize = 5

// Bot представляет Telegram-бота
type Bot struct {
	api           *tgbotapi.BotAPI
	subscriptions *app.SubscriptionService
	alerts        *app.AlertService
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info().Str("account", api.Self.UserName).Msg("telegram authorized")

	return &Bot{
		api:           api,
		subscriptions: c.SubscriptionService,
		alerts:        c.AlertService,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
		return
	}

	switch msg.Command() {
	case "start":
		userName := ""
		if msg.From != nil {
			userName = msg.From.UserName
		}
		if _, err := b.subscriptions.Subscribe(ctx, msg.Chat.ID, userName); err != nil {
			log.Error().Err(err).Int64("chat", msg.Chat.ID).Msg("subscribe")
			b.sendMessage(msg.Chat.ID, msgError)
			return
		}
		b.sendMessage(msg.Chat.ID, msgStart)

	case "stop":
		if err := b.subscriptions.Unsubscribe(ctx, msg.Chat.ID); err != nil {
			log.Error().Err(err).Int64("chat", msg.Chat.ID).Msg("unsubscribe")
			b.sendMessage(msg.Chat.ID, msgError)
			return
		}
		b.sendMessage(msg.Chat.ID, msgStopped)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "status":
		b.sendMessage(msg.Chat.ID, formatStatus(b.alerts.Latest()))

	case "history":
		incidents, err := b.alerts.History(ctx, historySize)
		if err != nil {
			log.Error().Err(err).Msg("load history")
			b.sendMessage(msg.Chat.ID, msgError)
			return
		}
		b.sendMessage(msg.Chat.ID, formatHistory(incidents))

	case "clear":
		if err := b.alerts.Clear(ctx); err != nil {
			log.Error().Err(err).Msg("clear history")
			b.sendMessage(msg.Chat.ID, msgError)
			return
		}
		b.sendMessage(msg.Chat.ID, msgCleared)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// Notify рассылает инцидент всем подписчикам
func (b *Bot) Notify(ctx context.Context, incident *entity.Incident, snapshot []byte) error {
	subs, err := b.subscriptions.List(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	caption := formatIncident(incident)
	for _, s := range subs {
		var c tgbotapi.Chattable
		if len(snapshot) > 0 {
			photo := tgbotapi.NewPhoto(s.ChatID, tgbotapi.FileBytes{Name: "zone.jpg", Bytes: snapshot})
			photo.Caption = caption
			c = photo
		} else {
			c = tgbotapi.NewMessage(s.ChatID, caption)
		}
		if _, err := b.api.Send(c); err != nil {
			log.Error().Err(err).Int64("chat", s.ChatID).Msg("send alert")
		}
	}
	return nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("send message")
	}
}

var _ port.AlertNotifier = (*Bot)(nil)
