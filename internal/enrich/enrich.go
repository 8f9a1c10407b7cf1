// Package enrich rewrites generated placeholder text using external
// collaborators: a language model for descriptions and an image service
// for scene rendering. Enrichment is strictly optional; every entry
// point degrades to leaving the world untouched, and an enriched world
// is re-audited before it is accepted.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/worldgen/internal/roomgraph"
	"github.com/cory-johannsen/worldgen/internal/validate"
	"github.com/cory-johannsen/worldgen/internal/world"
)

// ErrUnavailable signals that a collaborator cannot serve requests
// right now. Chains use it to fall through to the next provider.
var ErrUnavailable = errors.New("enrich: provider unavailable")

// Describer produces a room description for a named room in a named
// world.
type Describer interface {
	// Name identifies the provider in logs.
	Name() string
	// DescribeRoom returns replacement prose for the room, or
	// ErrUnavailable when the provider cannot serve.
	DescribeRoom(ctx context.Context, worldName, roomName string) (string, error)
}

// Chain tries each Describer in order, falling through on
// ErrUnavailable. Other errors stop the chain; a provider that is up
// but failing should be heard, not skipped.
type Chain struct {
	providers []Describer
}

// NewChain returns a Chain over providers in priority order.
func NewChain(providers ...Describer) *Chain {
	return &Chain{providers: providers}
}

// Name lists the chained provider names.
func (c *Chain) Name() string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return "chain(" + strings.Join(names, " -> ") + ")"
}

// DescribeRoom implements Describer over the chain.
func (c *Chain) DescribeRoom(ctx context.Context, worldName, roomName string) (string, error) {
	for _, p := range c.providers {
		text, err := p.DescribeRoom(ctx, worldName, roomName)
		if errors.Is(err, ErrUnavailable) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("enrich: %s: %w", p.Name(), err)
		}
		return text, nil
	}
	return "", ErrUnavailable
}

// Suggestion is a Namer's proposal for a world: room names to overlay
// on the generated ones, and the physical setting the world name
// implies (used to adjust the image prompt style).
type Suggestion struct {
	RoomNames []string
	Setting   string
}

// Namer proposes room names and a setting from a world name alone. It
// runs before generation, so its output feeds the room graph rather
// than rewriting it.
type Namer interface {
	// Name identifies the provider in logs.
	Name() string
	// SuggestRooms returns up to count room names and a discovered
	// setting, or ErrUnavailable when the provider cannot serve.
	SuggestRooms(ctx context.Context, worldName string, count int) (Suggestion, error)
}

// ParseSuggestion extracts a Suggestion from model output. The expected
// shape is an optional "SETTING: ..." line followed by one room name
// per line, possibly numbered or bulleted. Lines beyond count are
// dropped.
func ParseSuggestion(text string, count int) Suggestion {
	var s Suggestion
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(trimmed, "SETTING:"); ok {
			s.Setting = strings.TrimSpace(rest)
			continue
		}
		trimmed = strings.TrimLeft(trimmed, "0123456789.)- *")
		trimmed = strings.Trim(strings.TrimSpace(trimmed), `"'`)
		if trimmed == "" || len(s.RoomNames) >= count {
			continue
		}
		s.RoomNames = append(s.RoomNames, trimmed)
	}
	return s
}

// Noop is a Describer that is never available. It anchors chains so an
// empty configuration still composes.
type Noop struct{}

// Name implements Describer.
func (Noop) Name() string { return "noop" }

// DescribeRoom implements Describer.
func (Noop) DescribeRoom(context.Context, string, string) (string, error) {
	return "", ErrUnavailable
}

// Orchestrator applies enrichment to a compiled world and re-audits the
// result.
type Orchestrator struct {
	describer Describer
	validator *validate.Engine
	logger    *zap.Logger
}

// NewOrchestrator returns an Orchestrator using describer.
//
// Precondition: describer and logger must be non-nil.
func NewOrchestrator(describer Describer, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		describer: describer,
		validator: validate.NewEngine(),
		logger:    logger,
	}
}

// EnrichDescriptions replaces room descriptions with provider prose.
// Rooms whose provider call fails keep their generated text. The world
// is re-validated afterward; enrichment that breaks an invariant is an
// error and the caller must not write the world.
//
// Postcondition: On nil return, w passes the full audit.
func (o *Orchestrator) EnrichDescriptions(ctx context.Context, w *world.World) error {
	enriched := 0
	for _, rid := range w.SortedRoomIDs() {
		room := w.Rooms[rid]
		text, err := o.describer.DescribeRoom(ctx, w.Name, room.Name)
		if errors.Is(err, ErrUnavailable) {
			o.logger.Debug("describer unavailable, keeping generated text", zap.String("room", rid))
			continue
		}
		if err != nil {
			return err
		}
		cleaned := CleanResponse(text)
		if cleaned == "" {
			continue
		}
		room.Description = roomgraph.EscapeReserved(cleaned)
		enriched++
	}
	o.logger.Info("descriptions enriched",
		zap.String("provider", o.describer.Name()),
		zap.Int("enriched", enriched),
		zap.Int("total", len(w.Rooms)))

	if result := o.validator.Validate(w); !result.Valid() {
		return fmt.Errorf("enrich: enriched world failed validation: %s", strings.Join(result.Errors, "; "))
	}
	return nil
}

// CleanResponse strips the framing that language models wrap around
// prose: echoed labels, surrounding quotes, markdown emphasis, and
// preamble lines ending in a colon.
func CleanResponse(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		// Preamble such as "Here is a description:" carries no prose.
		if strings.HasSuffix(trimmed, ":") && len(strings.Fields(trimmed)) <= 8 {
			continue
		}
		for _, prefix := range []string{"Description:", "description:", "DESCRIPTION:"} {
			if strings.HasPrefix(trimmed, prefix) {
				trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, prefix))
			}
		}
		kept = append(kept, trimmed)
	}
	out := strings.Join(kept, " ")
	out = strings.Trim(out, `"'`)
	out = strings.ReplaceAll(out, "**", "")
	return strings.TrimSpace(out)
}
