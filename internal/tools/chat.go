package tools

import (
	"context"
	"encoding/json"

	"github.com/malicorX/moltworld/internal/world"
)

// isoMillis matches the timestamp layout the host runtime writes.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// sayRecord is the chat_say diagnostic written for operators.
type sayRecord struct {
	Status   int    `json:"status"`
	HasToken bool   `json:"hasToken"`
	OK       bool   `json:"ok"`
	Body     any    `json:"body"`
	At       string `json:"at"`
	URL      string `json:"url"`
}

func (r *Registry) chatSay(ctx context.Context, call *invocation) (any, int) {
	text := call.args.String("text")
	call.logger.Info("Sending chat message",
		"len", len([]rune(text)),
		"has_token", call.cfg.HasToken() || r.Session().HasToken(),
		"base_url", call.cfg.BaseURL,
	)

	res, err := r.api.Say(ctx, call.cfg, text)
	if err != nil {
		call.logger.Warn("Chat message error", "error", err)
		return map[string]any{"error": err.Error(), "_http_status": 0, "_has_token": false}, 0
	}

	data := world.SafeJSON(res)
	hasToken := call.cfg.HasToken() || r.Session().HasToken()
	if r.diag != nil {
		r.diag.Write(r.diagName, sayRecord{
			Status:   res.Status,
			HasToken: hasToken,
			OK:       res.OK(),
			Body:     data,
			At:       r.now().UTC().Format(isoMillis),
			URL:      res.URL,
		})
	}

	if res.OK() {
		call.logger.Info("Chat message delivered", "status", res.Status, "has_token", hasToken)
	} else {
		call.logger.Warn("Chat message failed", "status", res.Status, "has_token", hasToken, "preview", sayPreview(data))
	}

	out, ok := data.(map[string]any)
	if !ok {
		out = map[string]any{}
	}
	out["_http_status"] = res.Status
	out["_has_token"] = hasToken
	return out, res.Status
}

// sayPreview is empty when the reply carries a text field, else its first 200 characters.
func sayPreview(data any) string {
	if m, ok := data.(map[string]any); ok {
		if _, isText := m["text"].(string); isText {
			return ""
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	return clamp(string(b), 200)
}

func (r *Registry) chatShout(ctx context.Context, call *invocation) (any, int) {
	res, err := r.api.Shout(ctx, call.cfg, call.args.String("text"))
	if err != nil {
		return failure(err.Error()), 0
	}
	return world.SafeJSON(res), res.Status
}

func (r *Registry) chatInbox(ctx context.Context, call *invocation) (any, int) {
	res, err := r.api.Inbox(ctx, call.cfg)
	if err != nil {
		return failure(err.Error()), 0
	}
	return world.SafeJSON(res), res.Status
}
