package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	clickSampleRate = 44100
	clickToneHz     = 880
	clickDuration   = 40 * time.Millisecond
)

// clicker plays a short tone when the anchor locks. A disabled or failed
// clicker is silent.
type clicker struct {
	enabled bool
	rate    beep.SampleRate
}

func newClicker(enabled bool) (*clicker, error) {
	c := &clicker{rate: beep.SampleRate(clickSampleRate)}
	if !enabled {
		return c, nil
	}

	if err := speaker.Init(c.rate, c.rate.N(time.Second/10)); err != nil {
		return c, err
	}
	c.enabled = true
	return c, nil
}

func (c *clicker) Click() {
	if !c.enabled {
		return
	}

	sine, err := generators.SineTone(c.rate, clickToneHz)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(c.rate.N(clickDuration), sine))
}

func (c *clicker) Close() {
	if c.enabled {
		speaker.Close()
	}
}
