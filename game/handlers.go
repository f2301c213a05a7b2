package game

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-racer/audio"
	"github.com/lixenwraith/vi-racer/events"
	"github.com/lixenwraith/vi-racer/systems"
)

func (g *Game) registerHandlers() {
	on := func(fn func(ctx *TickContext, ev events.GameEvent), types ...events.EventType) {
		g.router.Register(events.HandlerFunc[*TickContext]{Types: types, Fn: fn})
	}

	// Advisor results
	on(g.onAdvisoryDecision, events.EventAdvisoryDecision)
	on(g.onAdvisoryFailed, events.EventAdvisoryFailed)
	on(g.onCommentary, events.EventCommentary)

	// Requests raised by the simulation
	on(g.onAdvisoryRequest, events.EventAdvisoryRequest)
	on(g.onCommentaryRequest, events.EventCommentaryRequest)

	// Race feedback
	on(g.onCountdown, events.EventCountdownTick)
	on(g.onRaceStarted, events.EventRaceStarted)
	on(g.onCollision, events.EventCollision)
	on(g.onBoost, events.EventBoostStarted)
	on(g.onDifficulty, events.EventDifficultyChanged)
	on(g.onGameOver, events.EventGameOver)
}

func (g *Game) onAdvisoryDecision(ctx *TickContext, ev events.GameEvent) {
	p, ok := ev.Payload.(*events.AdvisoryDecisionPayload)
	if !ok {
		return
	}
	if !systems.ApplyDecision(ctx.Sim, p, ctx.Now, g.queue) {
		log.Debug("decision ignored", "id", p.RequestID, "event", p.EventLabel)
	}
}

// onAdvisoryFailed leaves the modifier as it is: neutral, or an event still running its window
func (g *Game) onAdvisoryFailed(ctx *TickContext, ev events.GameEvent) {
	if p, ok := ev.Payload.(*events.AdvisoryFailedPayload); ok {
		log.Debug("no advice", "id", p.RequestID, "err", p.Err)
	}
}

func (g *Game) onCommentary(ctx *TickContext, ev events.GameEvent) {
	if p, ok := ev.Payload.(*events.CommentaryPayload); ok && p.Text != "" {
		g.state.SetCommentary(p.Text)
	}
}

func (g *Game) onAdvisoryRequest(ctx *TickContext, ev events.GameEvent) {
	if p, ok := ev.Payload.(*events.AdvisoryRequestPayload); ok {
		g.dispatcher.RequestDecision(p.Score, p.Speed)
	}
}

func (g *Game) onCommentaryRequest(ctx *TickContext, ev events.GameEvent) {
	if p, ok := ev.Payload.(*events.CommentaryRequestPayload); ok {
		g.dispatcher.RequestCommentary(p.Situation, p.Force)
	}
}

func (g *Game) onCountdown(ctx *TickContext, ev events.GameEvent) {
	p, ok := ev.Payload.(*events.CountdownPayload)
	if !ok {
		return
	}
	if p.Step == 0 {
		g.sound.Play(audio.CueGo)
	} else {
		g.sound.Play(audio.CueCountdown)
	}
}

func (g *Game) onRaceStarted(ctx *TickContext, ev events.GameEvent) {
	if !g.state.Muted.Load() {
		g.sound.StartEngine()
	}
}

func (g *Game) onCollision(ctx *TickContext, ev events.GameEvent) {
	p, ok := ev.Payload.(*events.CollisionPayload)
	if !ok {
		return
	}
	g.sound.Play(audio.CueCollision)
	if p.Health > 0 {
		g.dispatcher.RequestCommentary(fmt.Sprintf("Hit a %s obstacle! Health at %d%%", strings.ToLower(p.Kind.String()), p.Health), false)
	}
}

func (g *Game) onBoost(ctx *TickContext, ev events.GameEvent) {
	g.sound.Play(audio.CueNitro)
}

func (g *Game) onDifficulty(ctx *TickContext, ev events.GameEvent) {
	p, ok := ev.Payload.(*events.DifficultyPayload)
	if !ok {
		return
	}
	if p.Reverted {
		g.state.SetEventLabel("")
		return
	}
	g.state.SetEventLabel(p.Modifier.EventLabel)
}

func (g *Game) onGameOver(ctx *TickContext, ev events.GameEvent) {
	if p, ok := ev.Payload.(*events.GameOverPayload); ok {
		g.finish(p, ctx.Now)
	}
}
