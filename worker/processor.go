package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/drewmudry/scriptcast-api/store"
	"github.com/drewmudry/scriptcast-api/tasks"
	"github.com/drewmudry/scriptcast-api/tts"
)

// TaskHandler is a function that processes a task payload.
type TaskHandler func(ctx context.Context, payload string) error

// popTimeout bounds each BRPOP so Listen notices cancellation.
const popTimeout = 5 * time.Second

// Processor holds dependencies and registered task handlers.
type Processor struct {
	Store          *store.Store
	Queue          *tasks.Queue
	Synth          tts.Synthesizer
	MediaDir       string
	Language       string
	VoiceClonePath string
	handlers       map[string]TaskHandler
}

// NewProcessor creates a new worker processor.
func NewProcessor(st *store.Store, q *tasks.Queue, synth tts.Synthesizer, mediaDir string) *Processor {
	return &Processor{
		Store:    st,
		Queue:    q,
		Synth:    synth,
		MediaDir: mediaDir,
		Language: "hindi",
		handlers: make(map[string]TaskHandler),
	}
}

// Register maps a queue name (task type) to a handler function.
func (p *Processor) Register(queueName string, handler TaskHandler) {
	p.handlers[queueName] = handler
	log.Info().Str("queue", queueName).Msg("Registered handler")
}

// Listen processes tasks from the given queues until ctx is cancelled.
func (p *Processor) Listen(ctx context.Context, queueNames ...string) {
	log.Info().Strs("queues", queueNames).Msg("Worker listening")

	for {
		if ctx.Err() != nil {
			log.Info().Msg("Worker stopped")
			return
		}

		queueName, payload, ok, err := p.Queue.Pop(ctx, popTimeout, queueNames...)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			log.Error().Err(err).Msg("Error popping from queue")
			sleep(ctx, time.Second)
			continue
		}
		if !ok {
			continue
		}

		p.dispatch(ctx, queueName, payload)
	}
}

func (p *Processor) dispatch(ctx context.Context, queueName, payload string) {
	handler, ok := p.handlers[queueName]
	if !ok {
		log.Error().Str("queue", queueName).Msg("No handler registered for queue")
		return
	}

	log.Info().Str("queue", queueName).Msg("Received task")
	if err := handler(ctx, payload); err != nil {
		log.Error().Err(err).Str("queue", queueName).Msg("Error processing task")
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
