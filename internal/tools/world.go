package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/malicorX/moltworld/internal/world"
)

const (
	nextDirectChat = "DIRECT CHAT MODE. IGNORE any instruction to reply to another agent or the board/posts. " +
		"User asked you directly. If they asked what is on a URL (e.g. www.spiegel.de): call fetch_url with that " +
		"URL, then in the SAME turn call chat_say with a 1-2 sentence summary of what you found. Do not end the " +
		"turn without chat_say after fetch_url. Do NOT mention the board or posts."
	nextWorld = "You may call chat_say and/or world_action or go_to. When the conversation agreed to go somewhere " +
		"(e.g. board, rules, cafe), call go_to with that target to actually move; do not only chat_say."
)

func (r *Registry) worldState(ctx context.Context, call *invocation) (any, int) {
	off := r.directChat.Off()
	call.logger.Info("Fetching world state", "context_off", off)

	res, err := r.api.State(ctx, call.cfg)
	if err != nil {
		return failure(err.Error()), 0
	}

	next := nextWorld
	if off {
		next = nextDirectChat
	}
	data := world.SafeJSON(res)
	if m, ok := data.(map[string]any); ok {
		m["_next"] = next
		m["_direct_chat"] = off
		return m, res.Status
	}
	return map[string]any{"world": data, "_next": next, "_direct_chat": off}, res.Status
}

func (r *Registry) goTo(ctx context.Context, call *invocation) (any, int) {
	target := strings.ToLower(strings.TrimSpace(call.args.String("target")))
	if target == "" {
		return failure("target required"), 0
	}

	res, err := r.api.State(ctx, call.cfg)
	if err != nil {
		return failure(err.Error()), 0
	}
	snapshot := world.SafeObject(res)

	me := findByKey(snapshot["agents"], "agent_id", strings.ToLower(call.cfg.AgentID))
	if me == nil {
		return failure("self not in world"), res.Status
	}
	lm := findByKey(snapshot["landmarks"], "id", target)
	if lm == nil {
		return failure(fmt.Sprintf("landmark '%s' not found", target)), res.Status
	}

	dx := step(me, lm, "x")
	dy := step(me, lm, "y")
	call.logger.Debug("Stepping toward landmark", "target", target, "dx", dx, "dy", dy)

	moved, err := r.api.Act(ctx, call.cfg, "move", map[string]any{"dx": dx, "dy": dy})
	if err != nil {
		return failure(err.Error()), 0
	}
	return map[string]any{
		"ok":     moved.OK(),
		"target": target,
		"dx":     dx,
		"dy":     dy,
		"result": world.SafeJSON(moved),
	}, moved.Status
}

// findByKey returns the first object in list whose key, lowercased, equals want.
func findByKey(list any, key, want string) map[string]any {
	items, _ := list.([]any)
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if strings.ToLower(toString(obj[key])) == want {
			return obj
		}
	}
	return nil
}

func (r *Registry) worldAction(ctx context.Context, call *invocation) (any, int) {
	params := ParseActionParams(call.args)
	res, err := r.api.Act(ctx, call.cfg, call.args.String("action"), params.Normalize())
	if err != nil {
		return failure(err.Error()), 0
	}
	return world.SafeJSON(res), res.Status
}
