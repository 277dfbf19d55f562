package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-formsubmit/pkg/model"
	"github.com/goliatone/go-formsubmit/pkg/view"
)

// View is a terminal-backed form. Field values live in memory and are
// edited through prompts; the status slot is echoed to the terminal.
type View struct {
	driver       PromptDriver
	theme        Theme
	submitPrompt string
	labeler      model.Labeler
	fields       model.FieldSet

	mu       sync.RWMutex
	values   map[string]string
	status   string
	handlers []func()
}

var (
	_ view.View    = (*View)(nil)
	_ view.Trigger = (*View)(nil)
)

// New constructs a terminal view for fields with defaults (survey driver,
// DefaultTheme).
func New(fields model.FieldSet, options ...Option) (*View, error) {
	if err := fields.Validate(); err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	v := &View{
		driver:       newSurveyDriver(),
		theme:        DefaultTheme,
		submitPrompt: "Submit?",
		labeler:      model.DefaultLabeler,
		fields:       fields.Clone(),
		values:       make(map[string]string, fields.Len()),
	}
	for _, name := range fields.Names() {
		v.values[name] = ""
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v, nil
}

// FieldValue implements view.View.
func (v *View) FieldValue(name string) (string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	value, ok := v.values[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", view.ErrFieldNotFound, name)
	}
	return value, nil
}

// SetFieldValue implements view.View.
func (v *View) SetFieldValue(name, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.values[name]; !ok {
		return fmt.Errorf("%w: %q", view.ErrFieldNotFound, name)
	}
	v.values[name] = value
	return nil
}

// SetStatus implements view.View. Non-empty text is printed with the
// theme's error prefix.
func (v *View) SetStatus(text string) error {
	v.mu.Lock()
	v.status = text
	v.mu.Unlock()
	if text == "" {
		return nil
	}
	return v.driver.Info(context.Background(), v.theme.ErrorPrefix+text)
}

// Status returns the current status text.
func (v *View) Status() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.status
}

// Info prints msg with the theme's info prefix.
func (v *View) Info(ctx context.Context, msg string) error {
	return v.driver.Info(ctx, v.theme.InfoPrefix+msg)
}

// Fill prompts for every field in order, offering the current value as the
// default so rejected input can be corrected instead of retyped.
func (v *View) Fill(ctx context.Context) error {
	for _, field := range v.fields.Fields {
		current, err := v.FieldValue(field.Name)
		if err != nil {
			return err
		}

		var answer string
		if field.Multiline {
			answer, err = v.driver.TextArea(ctx, TextAreaConfig{
				Message: field.LabelWith(v.labeler),
				Default: current,
			})
		} else {
			answer, err = v.driver.Input(ctx, InputConfig{
				Message: field.LabelWith(v.labeler),
				Default: current,
			})
		}
		if err != nil {
			return err
		}
		if err := v.SetFieldValue(field.Name, answer); err != nil {
			return err
		}
	}
	return nil
}

// OnSubmit implements view.Trigger.
func (v *View) OnSubmit(handler func()) {
	if handler == nil {
		return
	}
	v.mu.Lock()
	v.handlers = append(v.handlers, handler)
	v.mu.Unlock()
}

// Submit fires the registered submit handlers.
func (v *View) Submit() {
	v.mu.RLock()
	handlers := append([]func(){}, v.handlers...)
	v.mu.RUnlock()
	for _, handler := range handlers {
		handler()
	}
}

// Run drives an interactive session: fill the form, confirm, submit, and
// repeat until the user declines another round. Aborting a prompt ends the
// session with ErrAborted.
func (v *View) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := v.Fill(ctx); err != nil {
			return err
		}

		send, err := v.driver.Confirm(ctx, ConfirmConfig{Message: v.submitPrompt, Default: true})
		if err != nil {
			return err
		}
		if send {
			v.Submit()
		}

		again, err := v.driver.Confirm(ctx, ConfirmConfig{Message: "Another submission?", Default: false})
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// IsAborted reports whether err means the user interrupted the session.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}
