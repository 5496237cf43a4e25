// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/pixelrun/internal/application/replay"
	"github.com/younwookim/pixelrun/internal/application/scene"
	"github.com/younwookim/pixelrun/internal/application/state"
	"github.com/younwookim/pixelrun/internal/application/system"
	"github.com/younwookim/pixelrun/internal/domain/anim"
	"github.com/younwookim/pixelrun/internal/domain/hud"
	"github.com/younwookim/pixelrun/internal/domain/tilemap"
	"github.com/younwookim/pixelrun/internal/ecs"
	"github.com/younwookim/pixelrun/internal/infrastructure/audio"
	"github.com/younwookim/pixelrun/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{107, 140, 255, 255}
	colorTile     = color.RGBA{141, 110, 99, 255}
	colorMissing  = color.RGBA{255, 0, 255, 255}
	colorPanel    = color.RGBA{0, 0, 0, 255}
	colorStick    = color.RGBA{255, 255, 255, 90}
	colorThumb    = color.RGBA{255, 255, 255, 200}
	colorButton   = color.RGBA{255, 255, 255, 255}
	colorOverlay  = color.RGBA{0, 0, 0, 128}
	colorHint     = color.RGBA{255, 255, 255, 255}
	colorGameOver = color.RGBA{R: 0xff, A: 0xff}
)

// Player animation keys.
const (
	animRun  = "run"
	animIdle = "idle"
)

const (
	bannerFontSize = 64
	panelFontSize  = 32
)

// Sounds plays the level's effects.
type Sounds interface {
	Play(s audio.Sound)
}

// Options configure one run of the level.
type Options struct {
	Seed       int64 // 0 uses the level seed, or the clock when that is 0 too
	Difficulty int   // preferred difficulty, scales touch damage; a replay brings its own
	RecordPath string
	Replay     *replay.ReplayData
	Sounds     Sounds

	// OnFinish receives the result when the player leaves an ended level.
	// Without it the level restarts.
	OnFinish func(state.Result) scene.Scene
}

// Playing is the main gameplay scene
type Playing struct {
	config *config.GameConfig
	level  *config.TiledMap
	opts   Options

	state state.GameState
	input *system.InputSystem
	dtMs  float64

	// Deterministic RNG
	rng   *rand.Rand
	seed  int64
	frame int

	world    *ecs.World
	tilemap  *tilemap.Tilemap
	anims    *anim.Registry
	textures system.Textures
	colors   map[string]color.RGBA
	physics  *system.PhysicsSystem
	overlaps *system.OverlapSystem
	clock    *system.Clock
	camera   *system.Camera
	panel    *system.ControlPanel

	player      *system.PlayerController
	bullets     *system.BulletPool
	shooter     *system.Shooter
	collector   *system.Collector
	immunity    *system.ImmunityPowerUp
	gameOver    *system.GameOver
	healthCheck *system.GameOverOnHealth
	destination *system.Destination
	chaser      ecs.EntityID

	score        *hud.MetricDisplay
	health       *hud.MetricDisplay
	immunityLeft *hud.MetricDisplay
	banner       *hud.TextDisplay

	screenW, screenH int
	mapW, mapH       int
	background       color.RGBA

	// Input recording and playback
	recorder       *Recorder
	recordFilename string
	replayer       *replay.Replayer
}

// ScreenSize returns the logical screen size: the map with the control
// panel under it.
func ScreenSize(cfg *config.GameConfig, m *config.TiledMap) (int, int) {
	return cfg.Display.ScreenWidth, m.Height*m.TileHeight + cfg.Display.PanelHeight
}

// New creates a new Playing scene.
// If opts.RecordPath is not empty, gameplay will be recorded.
func New(cfg *config.GameConfig, level *config.TiledMap, opts Options) (*Playing, error) {
	input, err := system.NewInputSystem(cfg.Level.Bullets.FireKey)
	if err != nil {
		return nil, fmt.Errorf("playing: %w", err)
	}

	background, err := hud.ParseFill(cfg.Display.Background)
	if err != nil {
		log.Printf("[Playing] %v, using the default background", err)
		background = colorBG
	}

	p := &Playing{
		config:         cfg,
		level:          level,
		opts:           opts,
		input:          input,
		dtMs:           1000.0 / float64(cfg.Display.Framerate),
		colors:         textureColors(cfg.Textures),
		screenW:        cfg.Display.ScreenWidth,
		background:     background,
		recordFilename: opts.RecordPath,
	}

	seed := p.initialSeed()
	if opts.Replay != nil {
		p.replayer = replay.NewReplayer(*opts.Replay)
		seed = p.replayer.Seed()
		p.opts.Difficulty = p.replayer.Difficulty()
		log.Printf("[Playing] Replaying %d frames (seed: %d, difficulty: %d)", p.replayer.TotalFrames(), seed, p.opts.Difficulty)
	}

	if err := p.build(seed); err != nil {
		return nil, err
	}

	// Initialize recorder if recording is enabled
	if opts.RecordPath != "" {
		p.recorder = NewRecorder(seed, cfg.Level.Map, p.opts.Difficulty)
		log.Printf("[Playing] Recording enabled: %s (seed: %d)", opts.RecordPath, seed)
	}

	return p, nil
}

func (p *Playing) initialSeed() int64 {
	switch {
	case p.opts.Seed != 0:
		return p.opts.Seed
	case p.config.Level.Seed != 0:
		return p.config.Level.Seed
	default:
		return time.Now().UnixNano()
	}
}

func textureColors(textures map[string]config.TextureConfig) map[string]color.RGBA {
	colors := make(map[string]color.RGBA, len(textures))
	for key, tex := range textures {
		c, err := hud.ParseFill(tex.Color)
		if err != nil {
			c = colorMissing
		}
		colors[key] = c
	}
	return colors
}

// build creates the level from scratch. Everything random derives from seed.
func (p *Playing) build(seed int64) error {
	lv := p.config.Level

	p.seed = seed
	p.rng = rand.New(rand.NewSource(seed))
	p.frame = 0
	p.state = state.StatePlaying

	// Tilemap with collision
	tm, err := system.LoadLevel(p.level, lv)
	if err != nil {
		return err
	}
	p.tilemap = tm
	p.mapW, p.mapH = tm.PixelWidth(), tm.PixelHeight()
	p.screenH = p.mapH + p.config.Display.PanelHeight
	worldW := p.mapW + lv.CameraExtra

	p.world = ecs.NewWorld()
	p.anims = anim.NewRegistry()
	p.textures = system.NewTextures(p.config.Textures)
	p.clock = system.NewClock()
	p.physics = system.NewPhysicsSystem(p.world, tm, p.config.Physics)
	p.overlaps = system.NewOverlapSystem(p.world, worldW, p.mapH)

	if err := p.registerAnims(); err != nil {
		return err
	}

	// Control panel under the map
	p.panel = system.NewControlPanel(p.mapH, p.screenH, p.screenW, lv.Controls)

	// Player
	playerSpec, err := p.textures.Spec(lv.Player.Idle.Texture, 0)
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	playerID := p.world.CreatePlayer(lv.Player.X, lv.Player.Y, playerSpec, animIdle, animRun)
	p.player = system.NewPlayerController(p.world, playerID, lv.Player.Speed, lv.Player.JumpForce)

	// Camera follows the player; the level scrolls only sideways
	p.camera = system.NewCamera(p.world, p.screenW, p.mapH)
	p.camera.StartFollow(playerID)
	p.camera.SetBounds(0, 0, worldW, 0)

	// Game over
	p.banner = hud.NewTextDisplay(p.screenW/2, p.mapH/2, "")
	p.banner.Style = hud.NewStyle(bannerFontSize, lv.HUD.BannerFill, true)
	p.gameOver = system.NewGameOver(p.world, p.physics, p.banner, colorGameOver)
	p.gameOver.OnEnd(p.onEnd)

	hudStyle := hud.NewStyle(lv.HUD.FontSize, lv.HUD.Fill, true)

	// Stars to collect
	p.score = newMetric(lv.HUD.Score, "Score", 0, hudStyle)
	starSpec, err := p.textures.Spec(lv.Stars.Key, 0)
	if err != nil {
		return fmt.Errorf("stars: %w", err)
	}
	at := system.SetXY{X: lv.Stars.X, Y: lv.Stars.Y, StepX: lv.Stars.StepX}
	system.SpawnCollectibles(p.world, starSpec, lv.Stars.Repeat, at, lv.Stars.BounceMin, lv.Stars.BounceMax, p.rng)
	p.collector = system.NewCollector(p.world, p.overlaps, p.score, lv.Stars.Points)
	p.collector.OnCollect(p.sound(audio.SoundPickup))

	// Enemies take health on touch
	p.health = newMetric(lv.HUD.Health, "Health", lv.Health.Initial, hudStyle)
	if _, err := system.SpawnEnemies(p.world, p.anims, p.textures, lv.Enemies, system.AnimEnemyIdle); err != nil {
		return err
	}
	damage := lv.Health.Damage * p.config.Difficulty.Multiplier(p.opts.Difficulty)
	system.NewDamageOnTouch(p.world, p.overlaps, ecs.KindEnemy, p.health, damage)
	p.healthCheck = system.NewGameOverOnHealth(p.gameOver, p.health)

	// Bullets kill enemies for points
	bulletSpec, err := p.textures.Spec(lv.Bullets.Key, 0)
	if err != nil {
		return fmt.Errorf("bullets: %w", err)
	}
	p.bullets = system.NewBulletPool(p.world, lv.Bullets.Pool, bulletSpec, lv.Bullets.Speed)
	p.shooter = system.NewShooter(p.world, p.player, p.bullets, lv.Bullets.Offset)
	p.shooter.OnFire(p.sound(audio.SoundShoot))
	enemyKill := system.NewBulletEnemyCollision(p.world, p.overlaps, ecs.KindEnemy, p.score, lv.Bullets.Points)
	enemyKill.OnKill(p.sound(audio.SoundHit))

	// Chaser
	chaserSpec, err := p.textures.Spec(lv.Chaser.Idle.Texture, 0)
	if err != nil {
		return fmt.Errorf("chaser: %w", err)
	}
	p.chaser = system.SpawnChaser(p.world, p.anims, chaserSpec, playerID, lv.Chaser)
	system.NewDamageOnTouch(p.world, p.overlaps, ecs.KindChaser, p.health, damage)
	chaserKill := system.NewBulletEnemyCollision(p.world, p.overlaps, ecs.KindChaser, p.score, lv.Bullets.Points)
	chaserKill.OnKill(p.sound(audio.SoundHit))

	// Apples give immunity for a while
	if _, err := system.SpawnApples(p.world, p.anims, p.textures, lv.Apples, system.AnimApple); err != nil {
		return err
	}
	p.immunityLeft = newMetric(lv.HUD.Immunity, "Immunity", 0, hudStyle)
	tint, err := hud.ParseFill(lv.Immunity.Tint)
	if err != nil {
		return fmt.Errorf("immunity: %w", err)
	}
	p.immunity = system.NewImmunityPowerUp(p.world, p.overlaps, p.clock, p.immunityLeft, lv.Immunity.DurationMs, tint)
	p.immunity.OnPickup(p.sound(audio.SoundPickup))

	// Reach the flag to win
	flagSpec, err := p.textures.Spec(lv.Goal.Key, lv.Goal.Scale)
	if err != nil {
		return fmt.Errorf("goal: %w", err)
	}
	p.destination = system.NewDestination(p.world, p.overlaps, p.gameOver, flagSpec, lv.Goal.X, lv.Goal.Y)

	return p.setButtons()
}

func (p *Playing) registerAnims() error {
	lv := p.config.Level
	anims := []struct {
		key string
		cfg config.AnimConfig
	}{
		{animRun, lv.Player.Run},
		{animIdle, lv.Player.Idle},
		{system.AnimEnemyIdle, lv.EnemyIdle},
		{system.AnimChaserIdle, lv.Chaser.Idle},
		{system.AnimChaserRun, lv.Chaser.Run},
		{system.AnimApple, lv.Immunity.Anim},
	}
	for _, a := range anims {
		if err := system.RegisterAnim(p.anims, a.key, a.cfg, p.config.Textures); err != nil {
			return err
		}
	}
	return nil
}

func (p *Playing) setButtons() error {
	actions := map[string]func(){
		"Fire": func() { p.shooter.Fire() },
		"Jump": func() { p.player.Jump() },
	}
	names := p.config.Level.Controls.Buttons
	callbacks := make([]func(), 0, len(names))
	for _, name := range names {
		fn, ok := actions[name]
		if !ok {
			return fmt.Errorf("control button %q has no action", name)
		}
		callbacks = append(callbacks, fn)
	}
	return p.panel.SetButtons(names, callbacks)
}

func newMetric(pos config.PositionConfig, label string, initial float64, style hud.Style) *hud.MetricDisplay {
	d := hud.NewMetricDisplay(pos.X, pos.Y, label, initial)
	d.Style = style
	return d
}

func (p *Playing) sound(s audio.Sound) func() {
	return func() {
		if p.opts.Sounds != nil {
			p.opts.Sounds.Play(s)
		}
	}
}

func (p *Playing) onEnd(message string) {
	p.state = state.StateGameOver
	if message == system.MessageWin {
		p.state = state.StateWon
	}
	// Auto-save recording when the level ends
	p.saveRecording()
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	return p.Step(p.nextInput())
}

func (p *Playing) nextInput() system.InputState {
	if p.replayer != nil {
		if in, ok := p.replayer.GetInput(); ok {
			return InputFromReplay(in)
		}
		log.Printf("[Playing] Replay finished after %d frames", p.replayer.TotalFrames())
		p.replayer = nil
	}
	return p.input.GetInput()
}

// Step runs one frame with the given input.
func (p *Playing) Step(in system.InputState) (scene.Scene, error) {
	// Record input if recording is enabled
	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}

	if in.Restart {
		return nil, p.Restart()
	}

	if p.gameOver.Ended() {
		// Physics stays paused; timers and animations keep running
		p.clock.Update(p.dtMs)
		p.anims.AdvanceAll(p.world, p.dtMs)
		p.camera.Update()
		if in.Confirm {
			return p.finish(), nil
		}
		return nil, nil
	}

	if in.Pause {
		p.togglePause()
	}
	if p.state == state.StatePaused {
		return nil, nil
	}

	p.frame++

	// Touch controls press their buttons first
	p.panel.Update(in.Pointers)
	stickLeft, stickRight := p.panel.CursorKeys()

	p.player.Update(in.Left || stickLeft, in.Right || stickRight, in.Jump)
	p.shooter.Update(in.Fire)
	ecs.UpdateChasers(p.world, p.physics.Gravity())

	p.physics.Update()
	p.overlaps.Update()
	p.clock.Update(p.dtMs)
	p.anims.AdvanceAll(p.world, p.dtMs)
	p.healthCheck.Update()
	p.camera.Update()

	return nil, nil
}

func (p *Playing) togglePause() {
	if p.state == state.StatePaused {
		p.state = state.StatePlaying
		p.physics.Resume()
		return
	}
	p.state = state.StatePaused
	p.physics.Pause()
}

// Restart rebuilds the level. The new seed comes from the current RNG so
// a recorded session replays the same way.
func (p *Playing) Restart() error {
	seed := p.rng.Int63()
	log.Printf("[Playing] Restart (seed: %d)", seed)
	return p.build(seed)
}

func (p *Playing) finish() scene.Scene {
	result := p.Result()
	p.saveRecording()
	if p.opts.OnFinish == nil {
		if err := p.Restart(); err != nil {
			log.Printf("[Playing] Failed to restart: %v", err)
		}
		return nil
	}
	return p.opts.OnFinish(result)
}

// Result returns the outcome so far.
func (p *Playing) Result() state.Result {
	return state.Result{
		Score:   int(p.score.Value),
		Won:     p.gameOver.Won(),
		Message: p.gameOver.Message(),
	}
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recorder.FrameCount() == 0 {
		return
	}

	if err := p.recorder.Save(p.recordFilename); err != nil {
		log.Printf("[Playing] Failed to save recording: %v", err)
	} else {
		log.Printf("[Playing] Recording saved: %s (%d frames)", p.recordFilename, p.recorder.FrameCount())
	}
}

// State returns the level state.
func (p *Playing) State() state.GameState { return p.state }

// Seed returns the seed the level was built from.
func (p *Playing) Seed() int64 { return p.seed }

// Frame returns the number of simulated frames since the level was built.
func (p *Playing) Frame() int { return p.frame }

// World returns the entity world.
func (p *Playing) World() *ecs.World { return p.world }

// Score returns the score display.
func (p *Playing) Score() *hud.MetricDisplay { return p.score }

// Health returns the health display.
func (p *Playing) Health() *hud.MetricDisplay { return p.health }

// Immunity returns the immunity countdown display.
func (p *Playing) Immunity() *hud.MetricDisplay { return p.immunityLeft }

// Panel returns the touch control panel.
func (p *Playing) Panel() *system.ControlPanel { return p.panel }

// Camera returns the level camera.
func (p *Playing) Camera() *system.Camera { return p.camera }

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(p.background)

	p.drawTiles(screen)
	p.drawSprites(screen)
	p.drawHUD(screen)
	p.drawPanel(screen)

	switch {
	case p.state == state.StatePaused:
		p.drawPauseOverlay(screen)
	case p.state.Ended():
		p.drawEndOverlay(screen)
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image) {
	tm := p.tilemap
	startX := max(p.camera.ScrollX/tm.TileWidth, 0)
	endX := min((p.camera.ScrollX+p.screenW)/tm.TileWidth+1, tm.Width)

	for ty := 0; ty < tm.Height; ty++ {
		for tx := startX; tx < endX; tx++ {
			gid := tm.GIDAt(tx, ty)
			if gid == 0 {
				continue
			}
			c := colorTile
			if ts, ok := tm.TilesetOf(gid); ok {
				if tc, ok := p.colors[ts.Name]; ok {
					c = tc
				}
			}
			// Decoration is drawn paler than ground
			if !tm.IsSolidTile(tx, ty) {
				c = color.RGBA{
					uint8((int(c.R) + 255) / 2),
					uint8((int(c.G) + 255) / 2),
					uint8((int(c.B) + 255) / 2),
					255,
				}
			}
			x, y := p.camera.WorldToScreen(tx*tm.TileWidth, ty*tm.TileHeight)
			ebitenutil.DrawRect(screen, float64(x), float64(y), float64(tm.TileWidth), float64(tm.TileHeight), c)
		}
	}
}

func (p *Playing) drawSprites(screen *ebiten.Image) {
	ids := make([]ecs.EntityID, 0, len(p.world.Sprite))
	for id, s := range p.world.Sprite {
		if s.Visible {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	for _, id := range ids {
		sprite := p.world.Sprite[id]
		body := p.world.Body[id]
		pos := p.world.Position[id]

		c, ok := p.colors[sprite.Texture]
		if !ok {
			c = colorMissing
		}
		if sprite.Tinted {
			c = sprite.Tint
		}

		x, y := p.camera.WorldToScreen(pos.PixelX(), pos.PixelY())
		if x+body.Width < 0 || x > p.screenW {
			continue
		}
		ebitenutil.DrawRect(screen, float64(x), float64(y), float64(body.Width), float64(body.Height), c)

		// A dark strip shows which way the sprite looks
		eyeX := float64(x + body.Width*3/4)
		if sprite.FlipX {
			eyeX = float64(x + body.Width/4 - 2)
		}
		if p.world.Kind[id] == ecs.KindPlayer || p.world.Kind[id] == ecs.KindChaser {
			ebitenutil.DrawRect(screen, eyeX, float64(y+body.Height/4), 3, 5, colorPanel)
		}
	}
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	for _, d := range []*hud.MetricDisplay{p.score, p.health, p.immunityLeft} {
		scene.DrawText(screen, d.Text(), float64(d.X), float64(d.Y), d.Style.FontSize, d.Style.Fill, scene.AlignStart)
	}
}

func (p *Playing) drawPanel(screen *ebiten.Image) {
	panel := p.panel
	ebitenutil.DrawRect(screen, float64(panel.X), float64(panel.Y), float64(panel.Width), float64(panel.Height), colorPanel)

	stick := panel.Joystick
	vector.StrokeCircle(screen, float32(stick.X), float32(stick.Y), float32(stick.Radius), 3, colorStick, true)
	vector.DrawFilledCircle(screen, float32(stick.ThumbX), float32(stick.ThumbY), float32(stick.Radius)/2, colorThumb, true)

	for _, b := range panel.Buttons {
		scene.DrawText(screen, b.Text, float64(b.X), float64(b.Y-panelFontSize/2), panelFontSize, colorButton, scene.AlignCenter)
	}
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.mapH), colorOverlay)
	cx, cy := float64(p.screenW)/2, float64(p.mapH)/2
	scene.DrawText(screen, "PAUSED", cx, cy-bannerFontSize/2, bannerFontSize, colorHint, scene.AlignCenter)
	scene.DrawText(screen, "Press ESC to resume", cx, cy+bannerFontSize/2+8, 20, colorHint, scene.AlignCenter)
}

func (p *Playing) drawEndOverlay(screen *ebiten.Image) {
	b := p.banner
	scene.DrawText(screen, b.Text(), float64(b.X), float64(b.Y-b.Style.FontSize/2), b.Style.FontSize, b.Style.Fill, scene.AlignCenter)
	hint := "Press Enter to continue, R to restart"
	scene.DrawText(screen, hint, float64(b.X), float64(b.Y+b.Style.FontSize/2+8), 20, colorHint, scene.AlignCenter)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
