package tui

import "github.com/goliatone/go-formsubmit/pkg/model"

// Theme captures optional prefixes the view applies when printing messages.
// Keep minimal to avoid coupling view logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{
	InfoPrefix:  "",
	ErrorPrefix: "error: ",
}

// Option configures the terminal view.
type Option func(*View)

// WithPromptDriver overrides the prompt driver used by the view.
func WithPromptDriver(driver PromptDriver) Option {
	return func(v *View) {
		if driver != nil {
			v.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(v *View) {
		v.theme = theme
	}
}

// WithSubmitPrompt overrides the confirmation question asked before each
// submission in Run.
func WithSubmitPrompt(message string) Option {
	return func(v *View) {
		if message != "" {
			v.submitPrompt = message
		}
	}
}

// WithLabeler sets how prompts are labelled for fields without an explicit
// label.
func WithLabeler(labeler model.Labeler) Option {
	return func(v *View) {
		if labeler != nil {
			v.labeler = labeler
		}
	}
}
