package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/pixelrun/internal/domain/anim"
	"github.com/younwookim/pixelrun/internal/domain/hud"
	"github.com/younwookim/pixelrun/internal/ecs"
	"github.com/younwookim/pixelrun/internal/infrastructure/config"
)

func newEnemyAnims(t *testing.T) *anim.Registry {
	t.Helper()
	reg := anim.NewRegistry()
	for _, a := range []struct {
		key, texture string
		frames       int
	}{
		{AnimEnemyIdle, "enemy_idle", 11},
		{AnimChaserIdle, "enemy_idle", 11},
		{AnimChaserRun, "enemy_run", 12},
	} {
		_, err := reg.Create(a.key, a.texture, a.frames, 20, -1)
		require.NoError(t, err)
	}
	return reg
}

func TestSpawnEnemies(t *testing.T) {
	w := ecs.NewWorld()
	textures := Textures{"enemy_idle": enemySpec}

	ids, err := SpawnEnemies(w, newEnemyAnims(t), textures, []config.SpawnConfig{
		{X: 400, Y: 530, Key: "enemy_idle"},
		{X: 750, Y: 270, Key: "enemy_idle", Scale: 2},
	}, AnimEnemyIdle)
	require.NoError(t, err)
	require.Len(t, ids, 2)

	first := w.Body[ids[0]]
	assert.True(t, first.Immovable)
	assert.False(t, first.AllowGravity)
	assert.Equal(t, AnimEnemyIdle, w.Sprite[ids[0]].Anim)

	assert.Equal(t, 64, w.Body[ids[1]].Width, "scaled enemy")
	assert.Equal(t, 750, w.CenterX(ids[1]))
}

func TestSpawnEnemies_UnknownTexture(t *testing.T) {
	w := ecs.NewWorld()
	_, err := SpawnEnemies(w, newEnemyAnims(t), Textures{}, []config.SpawnConfig{{Key: "ghost"}}, AnimEnemyIdle)
	assert.Error(t, err)
}

func TestSpawnChaser(t *testing.T) {
	w := ecs.NewWorld()
	player := w.CreatePlayer(100, 450, playerSpec, "idle", "run")

	id := SpawnChaser(w, newEnemyAnims(t), enemySpec, player, config.ChaserConfig{
		X: 200, Y: 100, Speed: 60, JumpForce: 300, DetectRange: 300, StopRange: 10, Bounce: 0.2,
	})

	chase := w.Chase[id]
	assert.Equal(t, player, chase.Target)
	assert.Equal(t, ecs.ToIUPerSubstep(60), chase.Speed)
	assert.Equal(t, 300, chase.DetectRange)
	assert.Equal(t, 20, w.Body[id].BouncePct)
	assert.Equal(t, AnimChaserIdle, w.Sprite[id].Anim)
	assert.Equal(t, ecs.KindChaser, w.Kind[id])
}

func TestDamageOnTouch(t *testing.T) {
	tests := []struct {
		name       string
		immune     bool
		frames     int
		wantHealth float64
	}{
		{"one frame", false, 1, 90},
		{"every frame while touching", false, 3, 70},
		{"immune", true, 3, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player := w.CreatePlayer(400, 530, playerSpec, "idle", "run")
			w.CreateEnemy(410, 530, enemySpec)
			data := w.PlayerData[player]
			data.Immune = tt.immune
			w.PlayerData[player] = data

			o := NewOverlapSystem(w, 1600, 608)
			health := hud.NewMetricDisplay(16, 56, "Health", 100)
			NewDamageOnTouch(w, o, ecs.KindEnemy, health, 10)

			for i := 0; i < tt.frames; i++ {
				o.Update()
			}
			assert.Equal(t, tt.wantHealth, health.Value)
		})
	}
}

func TestDamageOnTouch_OnlyRegisteredKind(t *testing.T) {
	w := ecs.NewWorld()
	w.CreatePlayer(200, 200, playerSpec, "idle", "run")
	w.CreateChaser(200, 200, enemySpec, ecs.Chase{}, 0)

	o := NewOverlapSystem(w, 1600, 608)
	health := hud.NewMetricDisplay(16, 56, "Health", 100)
	d := NewDamageOnTouch(w, o, ecs.KindEnemy, health, 10)
	hits := 0
	d.OnHit(func() { hits++ })

	o.Update()
	assert.Equal(t, 100.0, health.Value)
	assert.Zero(t, hits)
}

func TestBulletEnemyCollision(t *testing.T) {
	w := ecs.NewWorld()
	pool := NewBulletPool(w, 1, bulletSpec, 400)
	enemy := w.CreateEnemy(300, 300, enemySpec)
	pool.Fire(290, 300, DirRight)

	o := NewOverlapSystem(w, 1600, 608)
	score := hud.NewMetricDisplay(16, 16, "Score", 0)
	c := NewBulletEnemyCollision(w, o, ecs.KindEnemy, score, 10)
	kills := 0
	c.OnKill(func() { kills++ })

	o.Update()
	o.Update()

	assert.Equal(t, 10.0, score.Value)
	assert.Equal(t, 1, kills)
	assert.False(t, w.IsEnabled(enemy))
	assert.False(t, w.Sprite[enemy].Visible)
	assert.Zero(t, pool.Active())
}
