// Package policy decides which entry points are published to the page.
package policy

import (
	"fmt"
	"log/slog"

	"github.com/bmatcuk/doublestar/v4"
)

// ExposeChecker matches "service/operation" names against allow and deny
// glob patterns.
type ExposeChecker struct {
	expose []string
	deny   []string
	logger *slog.Logger
}

// ExposeCheckerOption configures an ExposeChecker.
type ExposeCheckerOption func(*ExposeChecker)

// WithDeny adds deny patterns. Deny always wins over expose.
func WithDeny(patterns ...string) ExposeCheckerOption {
	return func(c *ExposeChecker) {
		c.deny = append(c.deny, patterns...)
	}
}

// WithExposeLogger sets the logger used to report hidden entry points.
func WithExposeLogger(l *slog.Logger) ExposeCheckerOption {
	return func(c *ExposeChecker) {
		c.logger = l
	}
}

// NewExposeChecker validates the patterns and builds a checker. An empty
// expose list hides everything.
func NewExposeChecker(expose []string, opts ...ExposeCheckerOption) (*ExposeChecker, error) {
	c := &ExposeChecker{expose: expose}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	for _, p := range append(append([]string{}, c.expose...), c.deny...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid expose pattern %q", p)
		}
	}
	return c, nil
}

// Allowed reports whether service/op may be published.
func (c *ExposeChecker) Allowed(service, op string) bool {
	name := service + "/" + op

	for _, p := range c.deny {
		if match(p, name) {
			c.logger.Debug("pwa: entry point denied", "name", name, "pattern", p)
			return false
		}
	}
	for _, p := range c.expose {
		if match(p, name) {
			return true
		}
	}
	c.logger.Debug("pwa: entry point not exposed", "name", name)
	return false
}

// Check is Allowed as an error.
func (c *ExposeChecker) Check(service, op string) error {
	if c.Allowed(service, op) {
		return nil
	}
	return fmt.Errorf("entry point %s/%s is not exposed", service, op)
}

func match(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
