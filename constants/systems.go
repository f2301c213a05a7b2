package constants

import "time"

// Vehicle Physics (per-frame values)
const (
	// BaseSpeed is the cruising setpoint the vehicle relaxes toward with no input
	BaseSpeed = 5.0

	// BaseMaxSpeed is the top speed without boost
	BaseMaxSpeed = 20.0

	// AccelRate is the speed gained per frame while accelerating
	AccelRate = 0.15

	// BoostAccelMultiplier scales AccelRate while boost is engaged
	BoostAccelMultiplier = 3.0

	// BrakeRate is the speed lost per frame while braking
	BrakeRate = 0.4

	// NaturalDecel is the per-frame relaxation rate toward BaseSpeed
	NaturalDecel = 0.05

	// BaseSensitivity is the lateral velocity added per frame of full steer at rest
	BaseSensitivity = 1.2

	// SensitivityExponent and SensitivityFalloff shape steering authority loss with speed
	SensitivityExponent = 1.8
	SensitivityFalloff  = 0.9

	// GripThreshold is the speed ratio above which turning loses grip
	GripThreshold = 0.75

	// GripSlope is the grip lost per unit of speed ratio past the threshold
	GripSlope = 4.0

	// GripFloor is the minimum grip factor
	GripFloor = 0.3

	// ScrubFactor is the speed lost per frame per unit of speed ratio while grip is reduced
	ScrubFactor = 0.05

	// LateralFriction damps lateral velocity every frame
	LateralFriction = 0.85

	// MaxTilt bounds the visual lean angle in radians
	MaxTilt = 0.4

	// TiltEase is the fraction of the remaining tilt gap closed per frame while turning
	TiltEase = 0.2

	// TiltRelax multiplies rotation every frame while not turning
	TiltRelax = 0.8

	// WallRestitution scales the inverted lateral velocity on a wall hit
	WallRestitution = 0.3

	// WallSpeedRetain is the fraction of speed kept after a wall hit
	WallSpeedRetain = 0.95

	// WallShake is the camera shake pulse on a wall hit
	WallShake = 6.0
)

// Boost
const (
	// BoostDuration is how long a single boost lasts
	BoostDuration = 2 * time.Second

	// BoostCooldown is the minimum delay between manual boost activations
	BoostCooldown = 5 * time.Second

	// AutoBoostInterval is the period of the vehicle-intrinsic auto-boost
	AutoBoostInterval = 6 * time.Second

	// BoostSpeedBonus is the currentMax increase per unit of vehicle nitro power
	BoostSpeedBonus = 10.0

	// BoostShake is the camera shake pulse on boost activation
	BoostShake = 5.0
)

// Obstacle Spawner
const (
	// SpawnBaseInterval is the spawn interval at the normalizing speed
	SpawnBaseInterval = 1500 * time.Millisecond

	// SpawnSpeedNormalizer is the world speed at which SpawnBaseInterval applies
	SpawnSpeedNormalizer = 5.0

	// MinWorldSpeed is the floor for the speed obstacles scroll at
	MinWorldSpeed = 2.0

	// MaxObstacles bounds the active obstacle bag
	MaxObstacles = 64

	// RotatingHazardSpin is the per-frame spin of rotating hazards in radians
	RotatingHazardSpin = 0.12
)

// Collision
const (
	// CollisionSpeedRetain is the speed multiplier applied on impact
	CollisionSpeedRetain = 0.45

	// CollisionShake is the camera shake pulse on impact
	CollisionShake = 20.0

	// ShakeDecay multiplies the shake magnitude every frame
	ShakeDecay = 0.9

	// ShakeEpsilon is the magnitude below which shake snaps to zero
	ShakeEpsilon = 0.05
)

// Particles
const (
	// MaxParticles bounds the live particle pool
	MaxParticles = 400

	// ParticleLifeDecay is the life lost per frame
	ParticleLifeDecay = 0.05

	// CollisionBurstCount is the number of sparks emitted on impact
	CollisionBurstCount = 18

	// BoostBurstCount is the number of particles emitted on boost activation
	BoostBurstCount = 20

	// GripSmokeCount is the number of smoke puffs emitted per frame of grip loss
	GripSmokeCount = 2

	// StarfieldChance is the per-frame probability of a drifting star in space themes
	StarfieldChance = 0.2

	// FloatingTextRise is the per-frame upward drift of floating labels
	FloatingTextRise = 2.0

	// FloatingTextDecay is the life lost per frame by floating labels
	FloatingTextDecay = 0.025
)

// Difficulty / Advisory
const (
	// AdvisoryInterval is the period between game-master consultations
	AdvisoryInterval = 15 * time.Second

	// AdvisoryMinScore is the score required before consultations begin
	AdvisoryMinScore = 150

	// ModifierDuration is how long an applied event lasts
	ModifierDuration = 8 * time.Second

	// AdvisoryTimeout bounds a single collaborator request
	AdvisoryTimeout = 5 * time.Second

	// CommentaryThrottle is the minimum gap between unforced commentary requests
	CommentaryThrottle = 6 * time.Second

	// NeutralEventLabel is the collaborator's no-op decision label
	NeutralEventLabel = "NORMAL TRAFFIC"

	// DefaultCommentary is shown until the collaborator produces a line
	DefaultCommentary = "Waiting for drivers..."
)

// System Priorities (lower runs first)
const (
	PriorityCountdown  = 0
	PriorityDifficulty = 10
	PriorityBoost      = 20
	PriorityVehicle    = 30
	PrioritySpawn      = 40
	PriorityObstacle   = 50
	PriorityCollision  = 60
	PriorityProgress   = 70
	PriorityEffects    = 80
)
