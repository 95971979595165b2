// Package demo runs fixed sequences of document-store operations and
// prints the outcome of each one. Steps run strictly one after another; the
// first failing step stops the sequence.
package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/docstore/docstore-service/internal/domain/models"
	"github.com/docstore/docstore-service/internal/services/docstore"
)

// Step is one operation of a scenario. The value it returns is printed.
type Step struct {
	Name string
	Run  func(ctx context.Context) (interface{}, error)
}

// Scenario is a named sequence of steps over one collection.
type Scenario struct {
	Name       string
	Database   string
	Collection string
	// Steps builds the steps for a client. Steps may share state through
	// the closure, e.g. IDs produced by an earlier insert.
	Steps func(client *docstore.Client) []Step
}

// Result is the outcome of a step that completed.
type Result struct {
	Step  string
	Value interface{}
}

// Runner executes scenarios.
type Runner struct {
	out    io.Writer
	logger zerolog.Logger
}

// NewRunner creates a runner printing to out.
func NewRunner(out io.Writer) *Runner {
	return &Runner{out: out, logger: log.Logger}
}

// WithLogger sets the logger.
func (r *Runner) WithLogger(logger zerolog.Logger) *Runner {
	r.logger = logger
	return r
}

// Reset drops the scenario's collection so it starts empty.
func (r *Runner) Reset(ctx context.Context, client *docstore.Client, s *Scenario) error {
	if err := client.Drop(ctx, s.Collection); err != nil {
		return fmt.Errorf("failed to reset collection %s: %w", s.Collection, err)
	}
	return nil
}

// Run executes the steps of s in order. It returns the results of the
// completed steps and the error of the step that failed, if any.
func (r *Runner) Run(ctx context.Context, client *docstore.Client, s *Scenario) ([]Result, error) {
	logger := r.logger.With().Str("scenario", s.Name).Logger()
	steps := s.Steps(client)
	results := make([]Result, 0, len(steps))

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		value, err := step.Run(ctx)
		if err != nil {
			logger.Error().Err(err).Int("step", i+1).Str("name", step.Name).Msg("step failed")
			return results, fmt.Errorf("step %q failed: %w", step.Name, err)
		}
		results = append(results, Result{Step: step.Name, Value: value})
		logger.Debug().Int("step", i+1).Str("name", step.Name).Msg("step completed")

		if err := r.print(step.Name, value); err != nil {
			return results, err
		}
	}
	return results, nil
}

func (r *Runner) print(name string, value interface{}) error {
	rendered, err := render(value)
	if err != nil {
		return fmt.Errorf("failed to render result of %q: %w", name, err)
	}
	_, err = fmt.Fprintf(r.out, "%s: %s\n", name, rendered)
	return err
}

// render prints documents as relaxed extended JSON and everything else as JSON.
func render(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "null", nil
	case string:
		return v, nil
	case models.Document:
		out, err := bson.MarshalExtJSON(v, false, false)
		return string(out), err
	case []models.Document:
		out := make([]json.RawMessage, 0, len(v))
		for _, doc := range v {
			raw, err := bson.MarshalExtJSON(doc, false, false)
			if err != nil {
				return "", err
			}
			out = append(out, raw)
		}
		return marshal(out)
	default:
		return marshal(v)
	}
}

func marshal(v interface{}) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Registry holds the scenarios by name.
type Registry map[string]*Scenario

// Names returns the scenario names in order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scenarios returns the built-in scenarios.
func Scenarios() Registry {
	return Registry{
		"contacts": Contacts(),
		"people":   People(),
	}
}
