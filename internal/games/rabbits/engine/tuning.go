package engine

// Threshold is one row of the difficulty schedule. When the score reaches
// Score the engine speeds targets up, slows bullets down and sets the
// population floor to MinTargets.
type Threshold struct {
	Score      int
	MinTargets int
}

// Tuning holds every numeric constant of a session. Difficulty tuning is a
// data change, never a code change.
type Tuning struct {
	HeroStartX float64
	HeroStartY float64
	HeroWidth  float64
	HeroHeight float64
	HeroSpeed  float64 // Velocity per axis while a direction is held

	BulletWidth    float64
	BulletHeight   float64
	BulletOffsetX  float64 // Spawn offset from the hero's top-left corner
	BulletOffsetY  float64
	BulletSpeed    float64 // Initial horizontal bullet velocity
	MinBulletSpeed float64 // Floor applied when thresholds slow bullets down

	TargetWidth  float64
	TargetHeight float64
	TargetSpeed  float64 // Initial per-axis target speed
	MinTargets   int     // Initial population floor
	SpawnSignX   float64 // Initial direction of spawned targets (+1 or -1)
	SpawnSignY   float64

	TargetSpeedStep float64 // Added to target speed at each threshold
	BulletSpeedStep float64 // Subtracted from bullet speed at each threshold
	Schedule        []Threshold
	WinScore        int // 0 disables the win condition
}

// HuntTuning returns the tuning of the full game: score thresholds at
// 5/10/15/20 and a win at 30.
func HuntTuning() Tuning {
	return Tuning{
		HeroStartX: 10,
		HeroStartY: 140,
		HeroWidth:  100,
		HeroHeight: 100,
		HeroSpeed:  5,

		BulletWidth:    50,
		BulletHeight:   50,
		BulletOffsetX:  55,
		BulletOffsetY:  55,
		BulletSpeed:    10,
		MinBulletSpeed: 1,

		TargetWidth:  100,
		TargetHeight: 100,
		TargetSpeed:  5,
		MinTargets:   4,
		SpawnSignX:   1,
		SpawnSignY:   1,

		TargetSpeedStep: 2,
		BulletSpeedStep: 1,
		Schedule: []Threshold{
			{Score: 5, MinTargets: 3},
			{Score: 10, MinTargets: 2},
			{Score: 15, MinTargets: 1},
			{Score: 20, MinTargets: 0},
		},
		WinScore: 30,
	}
}

// ClassicTuning returns the tuning of the first version of the game: fixed
// speeds, a floor of three rabbits, no schedule and no win.
func ClassicTuning() Tuning {
	t := HuntTuning()
	t.BulletSpeed = 5
	t.TargetSpeed = 1
	t.MinTargets = 3
	t.SpawnSignX = -1
	t.SpawnSignY = -1
	t.TargetSpeedStep = 0
	t.BulletSpeedStep = 0
	t.Schedule = nil
	t.WinScore = 0
	return t
}
