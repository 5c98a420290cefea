package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"os-help-bot/internal/pkg/logger"
	"os-help-bot/pkg/knowledge"
	"os-help-bot/pkg/rag/aggregate"
	"os-help-bot/pkg/rag/extractive"
	"os-help-bot/pkg/rag/intent"
	"os-help-bot/pkg/rag/refine"
	"os-help-bot/pkg/rag/response"
	"os-help-bot/pkg/rag/search"
	"os-help-bot/pkg/rag/session"
	"os-help-bot/pkg/rag/state"
	"os-help-bot/pkg/store"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Reply paths
const (
	PathCommand        = "command"
	PathAttribution    = "attribution"
	PathRoster         = "roster"
	PathOnboarding     = "onboarding"
	PathCategorySwitch = "category-switch"
	PathKnowledgeBase  = "knowledge-base"
	PathMultiSource    = "multi-source"
)

// Reply is the outcome of one turn.
type Reply struct {
	Text       string                `json:"text"`
	Links      string                `json:"links,omitempty"`
	Path       string                `json:"path"`
	Candidates []aggregate.Candidate `json:"candidates,omitempty"`
	State      string                `json:"state"`
}

// Config encapsulates orchestration parameters
type Config struct {
	TopK             int
	RetrievalTimeout time.Duration
	SupportContext   string
}

// DefaultConfig returns default orchestration configuration
func DefaultConfig() Config {
	return Config{
		TopK:             3,
		RetrievalTimeout: 25 * time.Second,
		SupportContext:   knowledge.SupportContext,
	}
}

// Dependencies groups the pipeline stages. Answerer, Retriever and Refiner
// may be nil; a missing stage contributes nothing.
type Dependencies struct {
	Sessions   *session.Manager
	Onboarding *state.Manager
	Intents    *intent.Resolver
	Knowledge  *knowledge.Base
	Answerer   *extractive.Answerer
	Retriever  *search.Retriever
	Refiner    *refine.Refiner
}

// Orchestrator turns one incoming message into one reply.
//
// Fixed intents are answered at any onboarding state. Otherwise the session
// is onboarded, then a READY session is routed through category switching,
// the knowledge base, and finally extractive QA and web retrieval in parallel.
type Orchestrator struct {
	deps   Dependencies
	config Config
	logger logger.ILogger
	tracer trace.Tracer
}

func NewOrchestrator(deps Dependencies, config Config, logger logger.ILogger) *Orchestrator {
	if config.TopK <= 0 {
		config.TopK = 3
	}
	if config.SupportContext == "" {
		config.SupportContext = knowledge.SupportContext
	}
	return &Orchestrator{
		deps:   deps,
		config: config,
		logger: logger,
		tracer: otel.Tracer("os-help-bot/pipeline"),
	}
}

// HandleIncoming resolves a message from userID. Only onboarding invariant
// breaches are returned as errors; engine failures degrade inside the turn.
func (o *Orchestrator) HandleIncoming(ctx context.Context, userID, message string) (*Reply, error) {
	ctx, span := o.tracer.Start(ctx, "pipeline.HandleIncoming",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	start := time.Now()

	if in, ok := o.deps.Intents.Preflight(message); ok {
		reply := o.handlePreflight(userID, in)
		span.SetAttributes(attribute.String("pipeline.path", reply.Path))
		return reply, nil
	}

	sess := o.deps.Sessions.LoadOrCreate(userID)
	sess.Lock()
	defer sess.Unlock()

	reply, err := o.handleTurn(ctx, sess, message)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.logger.Error("PIPELINE", "Session state violation", map[string]interface{}{
			"user_id": userID,
			"state":   sess.State(),
			"error":   err.Error(),
		})
		return nil, err
	}
	reply.State = sess.State()

	span.SetAttributes(attribute.String("pipeline.path", reply.Path))
	o.logger.Info("PIPELINE", "Turn resolved", map[string]interface{}{
		"user_id":     userID,
		"path":        reply.Path,
		"state":       reply.State,
		"candidates":  len(reply.Candidates),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return reply, nil
}

func (o *Orchestrator) handlePreflight(userID string, in intent.Intent) *Reply {
	switch in.Action {
	case intent.ActionRestart:
		snap := o.deps.Sessions.Reset(userID)
		return &Reply{Text: response.WelcomePrompt, Path: PathCommand, State: snap.State}
	case intent.ActionAttribution:
		return &Reply{Text: response.AttributionReply, Path: PathAttribution, State: o.currentState(userID)}
	default:
		return &Reply{Text: response.RosterReply, Path: PathRoster, State: o.currentState(userID)}
	}
}

func (o *Orchestrator) currentState(userID string) string {
	if snap, ok := o.deps.Sessions.Snapshot(userID); ok {
		return snap.State
	}
	return store.StateAwaitingOS
}

// handleTurn runs with the session lock held.
func (o *Orchestrator) handleTurn(ctx context.Context, sess *store.Session, message string) (*Reply, error) {
	if !sess.IsReady() {
		prompt, err := o.deps.Onboarding.Advance(sess, message)
		if err != nil {
			return nil, fmt.Errorf("advance onboarding: %w", err)
		}
		return &Reply{Text: prompt, Path: PathOnboarding}, nil
	}

	in := o.deps.Intents.ResolveReady(message, sess.HelpType)
	if in.Action == intent.ActionSwitchCategory {
		if err := o.deps.Onboarding.SwitchCategory(sess, in.HelpType); err != nil {
			return nil, fmt.Errorf("switch category: %w", err)
		}
		text := response.SwitchedToTheoretical
		if in.HelpType == store.HelpTypeTechnical {
			text = response.SwitchedToTechnical
		}
		return &Reply{Text: text, Path: PathCategorySwitch}, nil
	}

	if remedy, ok := o.deps.Knowledge.Match(message); ok {
		refined := o.refine(ctx, remedy)
		return &Reply{
			Text: response.KnowledgeBaseReply(sess.OSLabel, refined),
			Path: PathKnowledgeBase,
		}, nil
	}

	return o.multiSource(ctx, sess.OSLabel, message), nil
}

func (o *Orchestrator) multiSource(ctx context.Context, osLabel, message string) *Reply {
	candidates, links := o.gather(ctx, message)

	aggregated := aggregate.Aggregate(aggregate.Texts(candidates))
	refined := o.refine(ctx, aggregated)

	return &Reply{
		Text:       response.MultiSourceReply(osLabel, refined, links),
		Links:      links,
		Path:       PathMultiSource,
		Candidates: candidates,
	}
}

// gather runs extractive QA and web retrieval concurrently. Candidates are
// ordered QA first, then web.
func (o *Orchestrator) gather(ctx context.Context, message string) ([]aggregate.Candidate, string) {
	ctx, span := o.tracer.Start(ctx, "pipeline.gather")
	defer span.End()

	var (
		qaText string
		web    search.Result
	)

	g, gctx := errgroup.WithContext(ctx)
	if o.deps.Answerer != nil {
		g.Go(func() error {
			_, qaSpan := o.tracer.Start(gctx, "pipeline.extractive_qa")
			defer qaSpan.End()

			res := o.deps.Answerer.Answer(gctx, message, o.config.SupportContext)
			if !res.Ok() {
				qaSpan.SetAttributes(attribute.String("qa.failure", res.Reason().Error()))
				return nil
			}
			qaText = res.Value()
			return nil
		})
	}
	if o.deps.Retriever != nil {
		g.Go(func() error {
			rctx, webSpan := o.tracer.Start(gctx, "pipeline.web_retrieval")
			defer webSpan.End()

			if o.config.RetrievalTimeout > 0 {
				var cancel context.CancelFunc
				rctx, cancel = context.WithTimeout(rctx, o.config.RetrievalTimeout)
				defer cancel()
			}
			web = o.deps.Retriever.Retrieve(rctx, message, o.config.TopK)
			webSpan.SetAttributes(attribute.Int("web.results", len(web.URLs)))
			return nil
		})
	}
	// Both stages swallow their own failures.
	_ = g.Wait()

	var candidates []aggregate.Candidate
	if qaText != "" {
		candidates = append(candidates, aggregate.Candidate{Source: aggregate.SourceExtractiveQA, Text: qaText})
	}
	if strings.TrimSpace(web.Summary) != "" {
		candidates = append(candidates, aggregate.Candidate{Source: aggregate.SourceWebSearch, Text: web.Summary})
	}
	span.SetAttributes(attribute.Int("pipeline.candidates", len(candidates)))
	return candidates, web.Links
}

func (o *Orchestrator) refine(ctx context.Context, text string) string {
	if o.deps.Refiner == nil {
		return text
	}
	ctx, span := o.tracer.Start(ctx, "pipeline.refine")
	defer span.End()
	return o.deps.Refiner.Refine(ctx, text)
}
