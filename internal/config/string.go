package config

import (
	"fmt"
	"strings"

	"github.com/malicorX/moltworld/internal/fancy"
)

// String returns a one-line summary. Credentials are never included.
func (s *Settings) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Settings %s: transport=%s", s.Version, s.Server.Transport)
	if s.Server.Transport == TransportHTTP {
		fmt.Fprintf(&b, " listen=%s%s", s.Server.Listen, s.Server.Path)
	}
	if s.World.BaseURL != "" {
		fmt.Fprintf(&b, " world=%s", s.World.BaseURL)
	}
	if s.Journal.Path != "" {
		fmt.Fprintf(&b, " journal=%s", s.Journal.Path)
	}
	return b.String()
}

// ToTree renders the settings for the validate command, with tokens masked.
func (s *Settings) ToTree() *fancy.ComponentTree {
	root := fancy.NewComponentTree(fancy.RootStyle.Render("Settings " + s.Version))

	world := fancy.NewComponentTree(fancy.FormatSection("World", 0))
	world.AddChild("Base URL: " + orDefault(s.World.BaseURL))
	world.AddChild("Agent ID: " + orDefault(s.World.AgentID))
	world.AddChild("Agent Name: " + orDefault(s.World.AgentName))
	world.AddChild("Token: " + fancy.SecretText(s.World.Token))
	world.AddChild("Admin Token: " + fancy.SecretText(s.World.AdminToken))
	addPaths(world, "Token Files", s.World.TokenFiles)
	addPaths(world, "Env Files", s.World.EnvFiles)
	addPaths(world, "OpenClaw Configs", s.World.OpenClawConfigFiles)
	root.AddChild(world)

	server := fancy.NewComponentTree(fancy.FormatSection("Server", 0))
	server.AddChild(fmt.Sprintf("Transport: %s", s.Server.Transport))
	if s.Server.Transport == TransportHTTP {
		server.AddChild(fmt.Sprintf("Listen: %s", s.Server.Listen))
		server.AddChild(fmt.Sprintf("Path: %s", s.Server.Path))
		server.AddChild(fmt.Sprintf("Drain Timeout: %s", s.Server.DrainTimeout))
	}
	root.AddChild(server)

	fetch := fancy.NewComponentTree(fancy.FormatSection("Fetch", 0))
	fetch.AddChild(fmt.Sprintf("Max Chars: %d", s.Fetch.MaxChars))
	fetch.AddChild(fmt.Sprintf("Timeout: %s", s.Fetch.Timeout))
	fetch.AddChild(fmt.Sprintf("User Agent: %s", s.Fetch.UserAgent))
	root.AddChild(fetch)

	dc := fancy.NewComponentTree(fancy.FormatSection("Direct Chat", 0))
	dc.AddChild(fmt.Sprintf("Env Var: %s", s.DirectChat.EnvVar))
	addPaths(dc, "Files", s.DirectChat.Files)
	root.AddChild(dc)

	diag := fancy.NewComponentTree(fancy.FormatSection("Diagnostics", 0))
	diag.AddChild(fmt.Sprintf("Enabled: %t", s.Diagnostics.Enabled))
	diag.AddChild(fmt.Sprintf("File Name: %s", s.Diagnostics.FileName))
	addPaths(diag, "Dirs", s.Diagnostics.Dirs)
	root.AddChild(diag)

	if s.Journal.Path != "" {
		root.AddChild("Journal: " + fancy.PathText(s.Journal.Path))
	} else {
		root.AddChild("Journal: disabled")
	}
	root.AddChild(fmt.Sprintf("Logging: %s/%s -> %s", s.Logging.Format, s.Logging.Level, s.Logging.Output))
	return root
}

func addPaths(t *fancy.ComponentTree, title string, paths []string) {
	if len(paths) == 0 {
		t.AddChild(title + ": (defaults)")
		return
	}
	node := fancy.NewComponentTree(fancy.FormatSection(title, len(paths)))
	for _, p := range paths {
		node.AddChild(fancy.PathText(p))
	}
	t.AddChild(node)
}

func orDefault(v string) string {
	if v == "" {
		return fancy.SummaryText("(resolved at runtime)")
	}
	return v
}
