// ABOUTME: Current-agent selection persisted beside the charm config
// ABOUTME: The agent code namespaces every collection; no credentials involved

package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/jiale-0528/mgr-sop/charm"
	"github.com/jiale-0528/mgr-sop/models"
)

const agentFileName = "agent.json"

func agentPath() (string, error) {
	dir := filepath.Join(xdg.DataHome, charm.AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, agentFileName), nil
}

// CurrentAgent loads the selected agent, or nil when none is set.
func CurrentAgent() (*models.Agent, error) {
	path, err := agentPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var agent models.Agent
	if err := json.Unmarshal(data, &agent); err != nil {
		return nil, fmt.Errorf("corrupt agent file %s: %w", path, err)
	}
	return &agent, nil
}

// RequireAgent returns the selected agent or a usage error.
func RequireAgent() (*models.Agent, error) {
	agent, err := CurrentAgent()
	if err != nil {
		return nil, err
	}
	if agent == nil || agent.Code == "" {
		return nil, fmt.Errorf("no agent selected; run: mgr agent use --code <code>")
	}
	return agent, nil
}

func saveAgent(agent *models.Agent) error {
	path, err := agentPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(agent, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// UseAgentCommand selects the agent whose records all other commands touch.
func UseAgentCommand(args []string) error {
	fs := flag.NewFlagSet("agent use", flag.ExitOnError)
	code := fs.String("code", "", "Agent code (required)")
	name := fs.String("name", "", "Agent display name")
	_ = fs.Parse(args)

	if *code == "" {
		return fmt.Errorf("--code is required")
	}

	agent := &models.Agent{Code: *code, Name: *name, CreatedAt: time.Now()}
	if existing, err := CurrentAgent(); err == nil && existing != nil && existing.Code == *code {
		agent.CreatedAt = existing.CreatedAt
		if *name == "" {
			agent.Name = existing.Name
		}
	}
	if err := saveAgent(agent); err != nil {
		return err
	}
	Successf("Agent set: %s", agent.Code)
	return nil
}

// WhoAmICommand prints the selected agent.
func WhoAmICommand(args []string) error {
	agent, err := CurrentAgent()
	if err != nil {
		return err
	}
	if agent == nil {
		fmt.Println("No agent selected")
		return nil
	}
	fmt.Printf("Agent: %s", agent.Code)
	if agent.Name != "" {
		fmt.Printf(" (%s)", agent.Name)
	}
	fmt.Println()
	return nil
}
