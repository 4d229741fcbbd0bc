package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/devkit/internal/adapters/accounts"
	"github.com/trebuchet-org/devkit/internal/domain/config"
)

// PromptAdapter handles interactive prompts
type PromptAdapter struct {
	config *config.RuntimeConfig
}

// NewPromptAdapter creates a new prompt adapter
func NewPromptAdapter(cfg *config.RuntimeConfig) *PromptAdapter {
	return &PromptAdapter{config: cfg}
}

// Password returns DEVKIT_KEYSTORE_PASSWORD when set, otherwise asks for it
func (p *PromptAdapter) Password(ctx context.Context, id string) (string, error) {
	if password, err := (accounts.EnvPassword{}).Password(ctx, id); err == nil {
		return password, nil
	}

	if p.config.NonInteractive {
		return "", fmt.Errorf("%s is not set and interactive prompts are disabled", accounts.KeystorePasswordEnv)
	}

	prompt := promptui.Prompt{
		Label: fmt.Sprintf("Enter password for '%s'", id),
		Mask:  '*',
	}
	return prompt.Run()
}

// Secret asks for a masked value such as a private key
func (p *PromptAdapter) Secret(ctx context.Context, label string) (string, error) {
	if p.config.NonInteractive {
		return "", fmt.Errorf("interactive prompts are disabled")
	}

	prompt := promptui.Prompt{
		Label: label,
		Mask:  '*',
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("value cannot be empty")
			}
			return nil
		},
	}
	return prompt.Run()
}

// SelectID lets the user pick one of the saved keystore ids
func (p *PromptAdapter) SelectID(ctx context.Context, ids []string, label string) (string, error) {
	if p.config.NonInteractive {
		return "", fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(ids) == 0 {
		return "", fmt.Errorf("no saved accounts to select from")
	}

	if len(ids) == 1 {
		return ids[0], nil
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             label,
		Items:             ids,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          fuzzySearcher(ids),
	}

	_, selected, err := promptSelect.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}
	return selected, nil
}

func fuzzySearcher(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		input = strings.TrimSpace(input)
		if input == "" {
			return true
		}
		return len(fuzzy.Find(input, []string{items[index]})) > 0
	}
}
