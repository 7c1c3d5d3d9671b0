package tools

import "context"

func (r *Registry) fetchURL(ctx context.Context, call *invocation) (any, int) {
	target, _ := call.args["url"].(string)
	return map[string]any(r.fetcher.Fetch(ctx, target)), 0
}
