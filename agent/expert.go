package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const accountantModel = "gemini-2.5-flash"

const accountantInstruction = `You are a careful accountant for an individual
investor. You are given the investor's realized trading profit reports,
computed per year and per settlement currency from their brokerage trade
history, under two lot-matching conventions (offset against average cost,
and moving average cost). Answer questions strictly from the reports given
below. When a number is not in the reports, say so instead of estimating.
Amounts in different currencies must never be added together.`

// Expert represents a chat with the accountant.
type Expert struct {
	Name      string
	ModelName string
	Config    *genai.GenerateContentConfig
	chat      *genai.Chat
}

// NewAccountant returns the expert answering questions over the given
// report markdown.
func NewAccountant(report string) *Expert {
	system := accountantInstruction + "\n\n" + report
	return &Expert{
		Name:      "accountant",
		ModelName: accountantModel,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		},
	}
}

// Start creates the underlying chat session.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Ask is a simple wrapper on top of Chat.Send to keep callers short.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	resp, err := e.chat.Send(ctx, parts...)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from expert %s", e.Name)
	}
	return resp.Candidates[0].Content, nil
}
