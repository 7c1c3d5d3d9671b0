package world

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/malicorX/moltworld/internal/resolver"
)

// IssueTokenPath is the world endpoint that mints agent tokens.
const IssueTokenPath = "/admin/agent/issue_token"

type issueTokenRequest struct {
	AgentID   string `json:"agent_id"`
	AgentName string `json:"agent_name"`
}

// Acquire asks the world for a fresh agent token, bearing the admin token when configured.
// Any failure yields "".
func (g *Gateway) Acquire(ctx context.Context, cfg resolver.Configuration) string {
	payload, err := encodeBody(issueTokenRequest{AgentID: cfg.AgentID, AgentName: cfg.AgentName})
	if err != nil {
		return ""
	}

	resp, err := g.do(ctx, http.MethodPost, cfg.BaseURL+IssueTokenPath, payload, cfg.AdminToken)
	if err != nil {
		g.logger.Warn("Token acquisition failed", "error", err)
		return ""
	}
	if !resp.OK() {
		g.logger.Warn("Token acquisition rejected", "status", resp.Status)
		return ""
	}

	var body struct {
		Token any `json:"token"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		g.logger.Warn("Token acquisition returned an unreadable body", "error", err)
		return ""
	}
	token, _ := body.Token.(string)
	if token == "" {
		g.logger.Warn("Token acquisition returned no token")
		return ""
	}

	g.logger.Info("Acquired agent token", append([]any{"agent_id", cfg.AgentID}, describeToken(token)...)...)
	return token
}

// describeToken returns log attributes for a JWT's subject and expiry without verifying it.
// Opaque tokens produce no attributes. The token itself is never included.
func describeToken(token string) []any {
	if token == "" {
		return nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	var attrs []any
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		attrs = append(attrs, "token_sub", sub)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		attrs = append(attrs, "token_exp", exp.Time)
	}
	return attrs
}
