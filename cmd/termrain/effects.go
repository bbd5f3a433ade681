package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lixenwraith/termrain/audio"
	"github.com/lixenwraith/termrain/engine"
	"github.com/lixenwraith/termrain/glyph"
	"github.com/lixenwraith/termrain/maze"
	"github.com/lixenwraith/termrain/rain"
	"github.com/lixenwraith/termrain/render"
)

func execRain(ctx context.Context, c *commonFlags, r *rainFlags) error {
	palette, err := glyph.Resolve(r.palette)
	if err != nil {
		return err
	}
	theme, err := render.ThemeByName(c.theme)
	if err != nil {
		return err
	}
	cfg := r.rainConfig(c.resolveSeed(time.Now))
	if err := cfg.Validate(); err != nil {
		return err
	}

	s, err := openSession(c, palette.Width())
	if err != nil {
		return err
	}
	defer s.Close()

	sim, err := rain.NewSimulation(cfg, palette, theme, s.grid, s.renderer)
	if err != nil {
		return fmt.Errorf("rain: %w", err)
	}
	sim.AttachRegistry(s.registry)
	s.logger.Printf("rain: palette %s (%d glyphs, width %d), theme %s, seed %d",
		palette.Name(), palette.Len(), palette.Width(), c.theme, cfg.Seed)

	return s.run(ctx, rainStepper(sim, s.sound))
}

// rainStepper plays a drip for every frame in which drops left the screen
func rainStepper(sim *rain.Simulation, sound *audio.Engine) engine.Stepper {
	return engine.StepFunc(func(frame uint64) error {
		if err := sim.Step(frame); err != nil {
			return err
		}
		if sim.LastStats().Retired > 0 {
			sound.Play(audio.SoundDrip)
		}
		return nil
	})
}

func execExplorer(ctx context.Context, c *commonFlags) error {
	theme, err := render.ThemeByName(c.theme)
	if err != nil {
		return err
	}
	seed := c.resolveSeed(time.Now)

	// Box drawing glyphs are single width
	s, err := openSession(c, 1)
	if err != nil {
		return err
	}
	defer s.Close()

	exp, err := maze.NewExplorer(s.grid, s.renderer, theme, seed)
	if err != nil {
		return fmt.Errorf("explorer: %w", err)
	}
	s.logger.Printf("explorer: theme %s, seed %d", c.theme, seed)

	return s.run(ctx, explorerStepper(exp, s.sound))
}

// explorerStepper plays a carve tick whenever the walk reaches an unvisited cell
func explorerStepper(exp *maze.Explorer, sound *audio.Engine) engine.Stepper {
	w := exp.Walker()
	return engine.StepFunc(func(frame uint64) error {
		if err := exp.Step(frame); err != nil {
			return err
		}
		if w.LinksAt(w.State().Pos) == 0 {
			sound.Play(audio.SoundCarve)
		}
		return nil
	})
}
