package game

import (
	"fmt"
	"math"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"racer/internal/config"
	"racer/internal/race"
	"racer/internal/sim"
	"racer/internal/sound"
	"racer/internal/track"
)

// RunDesktop opens a window and runs the race until it is closed.
func RunDesktop(cfg config.Config, m *track.Map, log zerolog.Logger) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	window, err := initWindow(cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.Title)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Info().Str("gl", gl.GoStr(gl.GetString(gl.VERSION))).Msg("window open")

	if cfg.Audio.Enabled {
		if err := InitAudio(cfg.Audio.Volume); err != nil {
			log.Warn().Err(err).Msg("audio init failed, continuing without sound")
		}
	}
	defer CloseAudio()

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	if err := rend.InitFont(); err != nil {
		return fmt.Errorf("font: %w", err)
	}
	rend.InitCarTexture(cfg.Car.Width, cfg.Car.Height)

	pal := track.DefaultPalette()
	grass := fromTrack(pal.Grass)
	chunks := BuildChunks(m.Render(pal), grass)
	defer rend.ReleaseChunks(chunks)

	opts := cfg.RaceOptions()
	session := race.NewSession(m, opts, newGLFWClock(), log)

	skids := NewSkidMarks(MaxSkidMarks)
	var cam Camera
	var flash float64
	var lapDone, bestLap bool

	session.Events.Subscribe(race.EventLapCompleted, func(race.Event) {
		lapDone = true
		flash = FinishFlashTime
	})
	session.Events.Subscribe(race.EventBestLap, func(race.Event) {
		bestLap = true
	})
	session.Events.Subscribe(race.EventBoundaryHit, func(e race.Event) {
		cam.AddShake(BumpShakeIntensity*math.Min(1, math.Abs(e.Speed)/opts.Tuning.MaxSpeed+0.3), BumpShakeDuration)
		PlaySound(sound.Bump)
	})
	session.Events.Subscribe(race.EventPhaseChanged, func(e race.Event) {
		switch e.Phase {
		case race.PhaseRacing:
			PlaySound(sound.Start)
			StartEngine()
		case race.PhasePaused:
			PlaySound(sound.Pause)
		case race.PhaseReady:
			skids.Clear()
		}
	})

	input := NewInput()
	var visible []*Chunk
	var skidBuf []float32

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		if input.JustPressed(window, glfw.KeyEnter) {
			session.Start()
		}
		if input.JustPressed(window, glfw.KeyP) {
			session.TogglePause()
		}
		if input.JustPressed(window, glfw.KeyR) {
			session.Reset()
		}

		intent := ReadIntent(window)
		session.Frame(intent, dt)
		racing := session.Phase == race.PhaseRacing

		switch {
		case bestLap:
			PlaySound(sound.BestLap)
		case lapDone:
			PlaySound(sound.Lap)
		}
		lapDone, bestLap = false, false

		st := session.State
		v := st.Vehicle
		car := v.Position.Sub(st.Offset)

		SetEngine(v.Speed/opts.Tuning.MaxSpeed, intent.Forward || intent.Backward, racing)

		step := dt
		if !racing {
			step = 0
		}
		skids.Update(step, v, car, racing && isSkidding(v, intent, opts.Tuning))
		if flash > 0 {
			flash -= dt
		}
		cam.UpdateShake(dt, cfg.Seed^uint64(now*1000))
		cam.Fit(opts.Screen, st.Offset, fbW, fbH)
		view := cam.Shaken()

		rend.BeginFrame(view, fbW, fbH, grass)
		visible = rend.DrawChunks(chunks, view, fbW, fbH, visible)
		skidBuf = skids.RenderData(skidBuf)
		rend.DrawSprites(skidBuf, view, fbW, fbH)
		if flash > 0 {
			finish := st.Finish.Translate(sim.Vec2{}.Sub(st.Offset))
			rend.DrawRect(finish, Palette.Highlight, flash/FinishFlashTime*0.8, view, fbW, fbH)
		}
		rend.DrawCar(v, car.X, car.Y, view, fbW, fbH)
		RenderHUD(rend, session, flash, fbW, fbH)

		window.SwapBuffers()
	}

	log.Info().
		Int("laps", session.State.Lap.Count).
		Float64("best", session.State.Lap.Best).
		Msg("window closed")
	return nil
}
