package tools

const landmarkList = "board, cafe, rules, market, computer, home_1, home_2"

func (r *Registry) definitions() []*Tool {
	return []*Tool{
		{
			Name: NameWorldState,
			Description: "Pull world state and recent_chat. Call this first. Response includes agents (with x,y), " +
				"landmarks (id, x, y), recent_chat (last message is latest). When the conversation agreed to go " +
				"somewhere (board, rules, cafe), call go_to with that target to actually move; do not only chat_say. " +
				"If the latest message is a math question, call chat_say with ONLY the number. Otherwise you may call " +
				"chat_say and/or go_to or world_action(move, {dx, dy}).",
			Schema: objectSchema(nil),
			handle: r.worldState,
		},
		{
			Name: NameGoTo,
			Description: "Take one step toward a landmark. Use when you or the other agent said you're going somewhere. " +
				"target: landmark id (" + landmarkList + "). Call this to actually move; do not only say 'let's go'.",
			Schema: objectSchema(map[string]any{
				"target": scalarProperty("Landmark id: " + landmarkList),
			}, "target"),
			handle: r.goTo,
		},
		{
			Name:        NameWorldAction,
			Description: "Perform an action in the world (move, say, or shout).",
			Schema: objectSchema(map[string]any{
				"action": map[string]any{"type": "string", "enum": []string{"move", "say", "shout"}},
				"params": map[string]any{
					"type":        []string{"object", "string"},
					"description": "Action parameters, e.g. {\"dx\": 1, \"dy\": 0}. A JSON-encoded object is also accepted.",
				},
				"dx": map[string]any{"description": "Shorthand for params.dx"},
				"dy": map[string]any{"description": "Shorthand for params.dy"},
				"x":  map[string]any{"description": "Shorthand for params.x"},
				"y":  map[string]any{"description": "Shorthand for params.y"},
			}, "action"),
			handle: r.worldAction,
		},
		{
			Name: NameChatSay,
			Description: "Send your reply to world chat. Call after world_state. If the LATEST message was a math " +
				"question, set text to the number only. Never set text to 'Hi' when answering a question. If you " +
				"don't know how to answer, set text to a short honest reply (e.g. 'I'm not sure how to answer that' " +
				"or 'I don't have that information'). Otherwise use a short greeting or answer.",
			Schema: objectSchema(map[string]any{
				"text": scalarProperty(""),
			}, "text"),
			handle: r.chatSay,
		},
		{
			Name:        NameChatShout,
			Description: "Shout to agents within 10 fields (rate-limited).",
			Schema: objectSchema(map[string]any{
				"text": scalarProperty(""),
			}, "text"),
			handle: r.chatShout,
		},
		{
			Name: NameFetchURL,
			Description: "Fetch the content of a public URL (e.g. a news or blog page). Use when the user asks what is " +
				"on a webpage or to summarize a site. Returns text extracted from the page (HTML stripped). Call this " +
				"then use chat_say to reply with a short summary.",
			Schema: objectSchema(map[string]any{
				"url": scalarProperty("Full URL (e.g. https://www.spiegel.de)"),
			}, "url"),
			handle: r.fetchURL,
		},
		{
			Name:        NameChatInbox,
			Description: "Fetch messages delivered to this agent.",
			Schema:      objectSchema(nil),
			handle:      r.chatInbox,
		},
		{
			Name:        NameBoardPost,
			Description: "Create a persistent post on the bulletin board (visible in the UI).",
			Schema: objectSchema(map[string]any{
				"title":    scalarProperty("Short post title"),
				"body":     scalarProperty("Post content (markdown-ish plain text)"),
				"tags":     map[string]any{"type": "array", "items": map[string]any{}, "description": "Optional tags"},
				"audience": scalarProperty("Optional audience label (default: humans)"),
			}, "title", "body"),
			handle: r.boardPost,
		},
	}
}
