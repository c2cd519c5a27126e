package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"meal-week-planner/internal/app"
	"meal-week-planner/internal/config"
	"meal-week-planner/internal/grocery"
	"meal-week-planner/internal/metrics"
	"meal-week-planner/internal/plan"
	"meal-week-planner/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var categoryOrder = []grocery.Category{
	grocery.CategoryProduce,
	grocery.CategoryMeat,
	grocery.CategoryDairy,
	grocery.CategoryPantry,
	grocery.CategoryOther,
}

var categoryLabels = map[grocery.Category]string{
	grocery.CategoryProduce: "🥬 Produce",
	grocery.CategoryMeat:    "🥩 Meat",
	grocery.CategoryDairy:   "🧀 Dairy",
	grocery.CategoryPantry:  "🥫 Pantry",
	grocery.CategoryOther:   "📦 Other",
}

// Bot wraps the Telegram API and the shopping-list application.
type Bot struct {
	api *tgbotapi.BotAPI
	app *app.App
	cfg *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, application *app.App) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	webhookURL := cfg.TelegramWebhookURL
	wh, _ := tgbotapi.NewWebhook(webhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", webhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{api: bot, app: application, cfg: cfg}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.CallbackQuery != nil {
		if b.isAllowed(update.CallbackQuery.From.ID) {
			b.handleCallbackQuery(update.CallbackQuery)
		}
		return
	}

	if update.Message == nil {
		return
	}

	if !b.isAllowed(update.Message.From.ID) {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) isAllowed(userID int64) bool {
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if userID == id {
			return true
		}
	}
	return false
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	switch {
	case msg.Text == "/metrics":
		b.handleMetricsRequest(msg)
	case msg.Text == "/list":
		b.handleListRequest(msg.Chat.ID)
	case msg.Text == "/regen":
		b.handleRegenRequest(msg.Chat.ID)
	case strings.HasPrefix(msg.Text, "http://") || strings.HasPrefix(msg.Text, "https://"):
		b.handleImportRequest(msg)
	default:
		b.sendHelp(msg.Chat.ID)
	}
}

func (b *Bot) sendHelp(chatID int64) {
	help := "🛒 *Shopping List Bot*\n\n" +
		"• Send a recipe URL to import it into the catalog\n" +
		"• /list — this week's shopping list\n" +
		"• /regen — rebuild this week's list from the plan\n"
	msg := tgbotapi.NewMessage(chatID, help)
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}

func (b *Bot) handleImportRequest(msg *tgbotapi.Message) {
	statusText := "✂️ *Importing recipe...*"
	replyMsg := tgbotapi.NewMessage(msg.Chat.ID, statusText)
	replyMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(replyMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rec, err := b.app.ImportRecipe(ctx, msg.Text)
	var finalText string
	if err != nil {
		log.Printf("Error importing recipe: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText = fmt.Sprintf("❌ *Error importing recipe:*\n```\n%v\n```", safeErr)
	} else {
		finalText = fmt.Sprintf("✅ *Recipe Saved!*\n\n*Title:* %s\n*Ingredients:* %d", rec.Title, len(rec.Ingredients))
	}
	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

// currentWeekPlan resolves the plan covering today.
func (b *Bot) currentWeekPlan(ctx context.Context) (*plan.WeekPlan, error) {
	weekStart := plan.WeekStartOf(time.Now())
	wp, err := b.app.PlanRepo.GetByWeekStart(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to load week plan: %w", err)
	}
	if wp == nil {
		return nil, fmt.Errorf("no plan exists for the week of %s", weekStart.Format("2006-01-02"))
	}
	return wp, nil
}

func (b *Bot) handleListRequest(chatID int64) {
	ctx := context.Background()

	wp, err := b.currentWeekPlan(ctx)
	if err != nil {
		b.sendError(chatID, err)
		return
	}

	items, err := b.app.ShoppingRepo.Load(ctx, wp.ID)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	if items == nil {
		// No stored list yet for this plan; build one now.
		items, err = b.app.Shopping.RegenerateAndSave(ctx, wp.ID)
		if err != nil {
			b.sendError(chatID, err)
			return
		}
	}

	msg := tgbotapi.NewMessage(chatID, formatListMarkdown(wp, items))
	msg.ParseMode = "Markdown"
	keyboard := listKeyboard(items)
	msg.ReplyMarkup = keyboard
	b.api.Send(msg)
}

func (b *Bot) handleRegenRequest(chatID int64) {
	statusText := "🛒 *Rebuilding shopping list...*"
	replyMsg := tgbotapi.NewMessage(chatID, statusText)
	replyMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(replyMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx := context.Background()

	wp, err := b.currentWeekPlan(ctx)
	if err != nil {
		b.editError(chatID, sentMsg.MessageID, err)
		return
	}

	items, err := b.app.Shopping.RegenerateAndSave(ctx, wp.ID)
	if err != nil {
		b.editError(chatID, sentMsg.MessageID, err)
		return
	}

	edit := tgbotapi.NewEditMessageText(chatID, sentMsg.MessageID, formatListMarkdown(wp, items))
	edit.ParseMode = "Markdown"
	keyboard := listKeyboard(items)
	edit.ReplyMarkup = &keyboard
	b.api.Send(edit)
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	ctx := context.Background()
	data := query.Data // "chk|<itemID>"

	parts := strings.Split(data, "|")
	if len(parts) != 2 || parts[0] != "chk" {
		return
	}
	itemID := parts[1]

	// Answer callback to remove spinner
	b.api.Request(tgbotapi.NewCallback(query.ID, ""))

	// Callback data is limited to 64 bytes, so it carries only the item id;
	// the plan is resolved from the current week.
	wp, err := b.currentWeekPlan(ctx)
	if err != nil {
		b.sendError(query.Message.Chat.ID, err)
		return
	}

	items, err := b.app.Shopping.Toggle(ctx, wp.ID, itemID)
	if err != nil {
		b.sendError(query.Message.Chat.ID, err)
		return
	}

	edit := tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, formatListMarkdown(wp, items))
	edit.ParseMode = "Markdown"
	keyboard := listKeyboard(items)
	edit.ReplyMarkup = &keyboard
	b.api.Send(edit)
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "⛔ *Access Denied*: Admin only."))
		return
	}
	b.handleMetricsCommand(msg.Chat.ID)
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	usage, err := b.app.MetricsStore.GetDailyUsage(7)
	if err != nil {
		b.api.Send(tgbotapi.NewMessage(chatID, "❌ Error fetching metrics."))
		return
	}

	health := metrics.GetSysHealth(b.cfg.DatabasePath, b.cfg.RecipeStoragePath)

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent LLM Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}

func (b *Bot) sendError(chatID int64, err error) {
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ *Error:*\n```\n%v\n```", safeErr))
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}

func (b *Bot) editError(chatID int64, messageID int, err error) {
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	edit := tgbotapi.NewEditMessageText(chatID, messageID, fmt.Sprintf("❌ *Error:*\n```\n%v\n```", safeErr))
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func formatListMarkdown(wp *plan.WeekPlan, items []shopping.ShoppingItem) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🛒 *Shopping List* — week of %s\n", wp.WeekStart.Format("2006-01-02")))

	if len(items) == 0 {
		sb.WriteString("\n_Nothing on the list_\n")
		return sb.String()
	}

	for _, cat := range categoryOrder {
		var lines []string
		for _, item := range items {
			if item.Category != cat {
				continue
			}
			mark := "⬜"
			if item.Checked {
				mark = "✅"
			}
			lines = append(lines, fmt.Sprintf("%s %s", mark, item.Name))
		}
		if len(lines) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n*%s*\n", categoryLabels[cat]))
		for _, line := range lines {
			sb.WriteString(fmt.Sprintf("• %s\n", line))
		}
	}

	return sb.String()
}

// listKeyboard builds one toggle button per item, grouped in the same category
// order as the message text.
func listKeyboard(items []shopping.ShoppingItem) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, cat := range categoryOrder {
		for _, item := range items {
			if item.Category != cat {
				continue
			}
			mark := "⬜"
			if item.Checked {
				mark = "✅"
			}
			btn := tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s %s", mark, item.Name),
				"chk|"+item.ID,
			)
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn))
		}
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}
