// Package genimage connects the engine to the image-generation worker
// over NATS. The engine publishes one batch request per round; the
// worker answers with one result message per prompt, success or error,
// and optionally a whole-batch failure.
package genimage

import (
	"context"
	"encoding/json"
	"os"

	"promptclash/internal/game"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

type promptSpec struct {
	PromptID string `json:"prompt_id"`
	PlayerID string `json:"player_id"`
	Text     string `json:"text"`
}

type generateRequest struct {
	RoundID  string       `json:"round_id"`
	Question string       `json:"question"`
	Prompts  []promptSpec `json:"prompts"`
}

type imageResult struct {
	RoundID     string `json:"round_id"`
	PromptID    string `json:"prompt_id,omitempty"`
	URL         string `json:"url,omitempty"`
	Error       string `json:"error,omitempty"`
	BatchFailed bool   `json:"batch_failed,omitempty"`
}

type Client struct {
	conn            *nats.Conn
	log             *zap.Logger
	generateSubject string
	resultSubject   string
	sub             *nats.Subscription
}

// Connect dials NATS using NATS_URL (token via NATS_TOKEN if set).
func Connect(url string, logger *zap.Logger) (*Client, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	opts := []nats.Option{nats.Name("promptclash")}
	if token := os.Getenv("NATS_TOKEN"); token != "" {
		opts = append(opts, nats.Token(token))
	}
	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{conn: conn, log: logger}, nil
}

// Start subscribes for generation results and routes them into the
// engine's progress handler.
func (c *Client) Start(engine *game.Engine, generateSubject, resultSubject string) error {
	c.generateSubject = generateSubject
	c.resultSubject = resultSubject
	sub, err := c.conn.Subscribe(resultSubject, func(msg *nats.Msg) {
		var result imageResult
		if err := json.Unmarshal(msg.Data, &result); err != nil {
			c.log.Warn("bad generation result message", zap.Error(err))
			return
		}
		if result.BatchFailed {
			engine.HandleBatchFailure(result.RoundID, result.Error)
			return
		}
		engine.HandleImageResult(result.RoundID, result.PromptID, result.URL, result.Error)
	})
	if err != nil {
		return err
	}
	c.sub = sub
	return nil
}

// GenerateBatch publishes the round's prompts for the worker.
func (c *Client) GenerateBatch(ctx context.Context, round *game.Round, prompts []*game.Prompt) error {
	request := generateRequest{
		RoundID:  round.ID,
		Question: round.QuestionText,
		Prompts:  make([]promptSpec, 0, len(prompts)),
	}
	for _, prompt := range prompts {
		request.Prompts = append(request.Prompts, promptSpec{
			PromptID: prompt.ID,
			PlayerID: prompt.PlayerID,
			Text:     prompt.Text,
		})
	}
	data, err := json.Marshal(request)
	if err != nil {
		return err
	}
	if err := c.conn.Publish(c.generateSubject, data); err != nil {
		return err
	}
	c.log.Info("generation request published",
		zap.String("round_id", round.ID),
		zap.Int("prompts", len(prompts)))
	return nil
}

func (c *Client) Close() {
	if c.sub != nil {
		_ = c.sub.Unsubscribe()
	}
	c.conn.Close()
}
