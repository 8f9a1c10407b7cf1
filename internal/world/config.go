package world

// CombatConfig defines the damage algebra for the compiled world.
// Damage is a linear transformation of BaseDamage x WeaponMultiplier.
type CombatConfig struct {
	// BaseDamage is the unarmed hit damage.
	BaseDamage int
	// WeaponMultiplier scales weapon damage.
	WeaponMultiplier float64
	// RespawnRoom is the room players wake up in after death. Must resolve.
	RespawnRoom string
	// DeathPenaltyTurns is the number of turns lost on death.
	DeathPenaltyTurns int
	// FriendlyFire enables player-versus-player damage outside duels.
	FriendlyFire bool
	// DamageTypes maps damage type names to multipliers.
	DamageTypes map[string]float64
}

// DefaultCombatConfig returns the baseline combat parameters before theme
// scalars are applied.
func DefaultCombatConfig() CombatConfig {
	return CombatConfig{
		BaseDamage:        10,
		WeaponMultiplier:  1.0,
		DeathPenaltyTurns: 3,
		FriendlyFire:      false,
		DamageTypes: map[string]float64{
			"slashing":  1.0,
			"piercing":  1.1,
			"blunt":     0.9,
			"explosive": 2.0,
		},
	}
}

// ImageGenConfig holds the image-generation service parameters written to
// the image artifact. Host and Port are deliberately separate fields: the
// engine reads them independently and a combined address would break it.
type ImageGenConfig struct {
	// Host is the image service hostname or address.
	Host string
	// Port is the image service TCP port.
	Port int
	// Steps is the diffusion step count.
	Steps int
	// Width and Height are the generated image dimensions.
	Width  int
	Height int
	// GuidanceScale is the classifier-free guidance scale.
	GuidanceScale float64
	// Sampler is the sampler name.
	Sampler string
	// SceneSuffix is the positive style text appended to every prompt.
	SceneSuffix string
	// NegativePrompt is the negative style text.
	NegativePrompt string
	// CacheImages enables on-disk caching of generated images.
	CacheImages bool
}

// DefaultImageGenConfig returns the baseline image parameters.
func DefaultImageGenConfig() ImageGenConfig {
	return ImageGenConfig{
		Host:          "127.0.0.1",
		Port:          7860,
		Steps:         25,
		Width:         512,
		Height:        512,
		GuidanceScale: 7.5,
		Sampler:       "DPM++ 2M",
		CacheImages:   true,
	}
}
