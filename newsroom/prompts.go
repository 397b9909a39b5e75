package newsroom

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// AgentPrompt is one agent's prompt configuration: a role instruction and
// a task template with named {placeholder} slots.
type AgentPrompt struct {
	Name               string `yaml:"name"`
	Description        string `yaml:"description"`
	SystemPrompt       string `yaml:"system_prompt"`
	UserPromptTemplate string `yaml:"user_prompt_template"`
}

// PromptSet maps agent names (researcher, writer, editor) to their
// prompt configuration.
type PromptSet map[string]AgentPrompt

// LoadPrompts reads the prompt configuration from a YAML file.
func LoadPrompts(path string) (PromptSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts: %w", err)
	}
	var set PromptSet
	if err := yaml.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("parse prompts %s: %w", path, err)
	}
	return set, nil
}

// Agent returns the configuration for one agent. An unknown name fails
// with an error listing the agents that are configured.
func (ps PromptSet) Agent(name string) (AgentPrompt, error) {
	prompt, ok := ps[name]
	if !ok {
		known := make([]string, 0, len(ps))
		for k := range ps {
			known = append(known, k)
		}
		sort.Strings(known)
		return AgentPrompt{}, fmt.Errorf("unknown agent %q, known agents: %s", name, strings.Join(known, ", "))
	}
	return prompt, nil
}

// fillTemplate substitutes {name} placeholders with their values.
// Unlisted placeholders are left untouched.
func fillTemplate(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
