package notify

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeAPI struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func TestTelegram_Send(t *testing.T) {
	api := &fakeAPI{}
	tg := newTelegram(api, 42)

	if err := tg.Send(context.Background(), "<b>report</b>"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(api.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(api.sent))
	}
	msg := api.sent[0]
	if msg.ChatID != 42 {
		t.Errorf("ChatID = %d, want 42", msg.ChatID)
	}
	if msg.ParseMode != tgbotapi.ModeHTML {
		t.Errorf("ParseMode = %q, want HTML", msg.ParseMode)
	}
	if msg.Text != "<b>report</b>" {
		t.Errorf("Text = %q", msg.Text)
	}
}

func TestTelegram_SendErrors(t *testing.T) {
	api := &fakeAPI{err: errors.New("boom")}
	tg := newTelegram(api, 1)
	if err := tg.Send(context.Background(), "x"); err == nil {
		t.Error("Send() error = nil, want error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := newTelegram(&fakeAPI{}, 1).Send(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("Send() error = %v, want context.Canceled", err)
	}
}
