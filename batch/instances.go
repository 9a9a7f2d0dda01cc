package batch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/drewmudry/scriptcast-api/tts"
)

// instance is a slot that loads its model on first use. Only the goroutine
// holding the slot touches it.
type instance struct {
	id    int
	load  tts.Loader
	synth tts.Synthesizer
}

func (i *instance) get(ctx context.Context) (tts.Synthesizer, error) {
	if i.synth != nil {
		return i.synth, nil
	}
	log.Info().Int("instance", i.id).Msg("Loading TTS model")
	s, err := i.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load TTS model: %w", err)
	}
	i.synth = s
	return s, nil
}

type instancePool struct {
	slots chan *instance
	all   []*instance
}

func newInstancePool(n int, load tts.Loader) *instancePool {
	p := &instancePool{slots: make(chan *instance, n)}
	for i := 0; i < n; i++ {
		inst := &instance{id: i + 1, load: load}
		p.all = append(p.all, inst)
		p.slots <- inst
	}
	return p
}

func (p *instancePool) acquire() *instance {
	return <-p.slots
}

func (p *instancePool) release(i *instance) {
	p.slots <- i
}

// close unloads every model. Call only after all tasks have finished.
func (p *instancePool) close() {
	for _, inst := range p.all {
		if inst.synth == nil {
			continue
		}
		if err := inst.synth.Close(); err != nil {
			log.Warn().Err(err).Int("instance", inst.id).Msg("Failed to unload TTS model")
		}
	}
}
