package tools

import (
	"context"

	"github.com/malicorX/moltworld/internal/world"
)

const (
	maxTitleChars    = 200
	maxBodyChars     = 8000
	maxTags          = 12
	maxAudienceChars = 40
	defaultAudience  = "humans"
)

func (r *Registry) boardPost(ctx context.Context, call *invocation) (any, int) {
	post := world.BoardPost{
		Title:      clamp(call.args.String("title"), maxTitleChars),
		Body:       clamp(call.args.String("body"), maxBodyChars),
		Tags:       boardTags(call.args["tags"]),
		Audience:   defaultAudience,
		AuthorType: "agent",
		AuthorID:   call.cfg.AgentID,
	}
	if audience, ok := call.args["audience"].(string); ok {
		post.Audience = clamp(audience, maxAudienceChars)
	}

	res, err := r.api.PostBoard(ctx, call.cfg, post)
	if err != nil {
		return failure(err.Error()), 0
	}
	return world.SafeJSON(res), res.Status
}

func boardTags(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	tags := make([]string, 0, min(len(items), maxTags))
	for _, item := range items {
		if len(tags) == maxTags {
			break
		}
		tags = append(tags, toString(item))
	}
	return tags
}
