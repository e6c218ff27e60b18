package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownArchetype  = errors.New("prefabs: unknown archetype")
	ErrUnknownAttackKind = errors.New("prefabs: unknown attack kind")
)

var attackKinds = map[string]struct{}{
	"melee":  {},
	"dash":   {},
	"volley": {},
	"burst":  {},
	"lunge":  {},
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadArchetype reads an enemy or boss archetype. A missing file is reported
// as ErrUnknownArchetype.
func LoadArchetype(filename string) (*ArchetypeSpec, error) {
	spec, err := LoadSpec[ArchetypeSpec](filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownArchetype, filename)
	}
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(relPath(filename), ".yaml")
	}
	return &spec, nil
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadTrapSpec(filename string) (*TrapSpec, error) {
	spec, err := LoadSpec[TrapSpec](filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownArchetype, filename)
	}
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadEncounterSpec(filename string) (*EncounterSpec, error) {
	spec, err := LoadSpec[EncounterSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ArchetypeSpec describes one enemy or boss.
type ArchetypeSpec struct {
	Name                 string       `yaml:"name"`
	Health               int          `yaml:"health"`
	Radius               float64      `yaml:"radius"`
	Mass                 float64      `yaml:"mass"`
	StaggerDuration      float64      `yaml:"stagger_duration"`
	BlinkInvincibility   float64      `yaml:"blink_invincibility"`
	DeathGrace           float64      `yaml:"death_grace"`
	StaggerHaltsMovement bool         `yaml:"stagger_halts_movement"`
	Color                *YAMLColor   `yaml:"color"`
	AI                   AISpec       `yaml:"ai"`
	Attacks              []AttackSpec `yaml:"attacks"`
	Boss                 *BossSpec    `yaml:"boss"`
	GroupRange           float64      `yaml:"group_range"`
	Script               string       `yaml:"script"`
	Contact              *ContactSpec `yaml:"contact"`
	Drops                []DropSpec   `yaml:"drops"`
}

// Validate reports attacks whose kind the controller does not know. The
// archetype is still usable; those attacks are skipped at runtime.
func (a *ArchetypeSpec) Validate() error {
	if a == nil {
		return nil
	}
	var errs []error
	check := func(attacks []AttackSpec) {
		for _, atk := range attacks {
			if _, ok := attackKinds[atk.Kind]; !ok {
				errs = append(errs, fmt.Errorf("%w: %s/%s %q", ErrUnknownAttackKind, a.Name, atk.Name, atk.Kind))
			}
		}
	}
	check(a.Attacks)
	if a.Boss != nil {
		check(a.Boss.Attacks)
	}
	return errors.Join(errs...)
}

type AISpec struct {
	DetectionRange  float64 `yaml:"detection_range"`
	AttackRange     float64 `yaml:"attack_range"`
	MoveSpeed       float64 `yaml:"move_speed"`
	PreferredMin    float64 `yaml:"preferred_min"`
	PreferredMax    float64 `yaml:"preferred_max"`
	RetreatDistance float64 `yaml:"retreat_distance"`
	ApproachFactor  float64 `yaml:"approach_factor"`
	AdjustFactor    float64 `yaml:"adjust_factor"`
	WanderInterval  float64 `yaml:"wander_interval"`
}

type AttackSpec struct {
	Name         string  `yaml:"name"`
	Kind         string  `yaml:"kind"`
	Priority     int     `yaml:"priority"`
	Primary      bool    `yaml:"primary"`
	Cooldown     float64 `yaml:"cooldown"`
	InitialDelay float64 `yaml:"initial_delay"`
	Range        float64 `yaml:"range"`

	Windup   float64 `yaml:"windup"`
	Active   float64 `yaml:"active"`
	Recovery float64 `yaml:"recovery"`

	Damage       int     `yaml:"damage"`
	HitboxRadius float64 `yaml:"hitbox_radius"`
	Knockback    float64 `yaml:"knockback"`

	SubHits        int     `yaml:"sub_hits"`
	SubHitInterval float64 `yaml:"sub_hit_interval"`
	HitDuration    float64 `yaml:"hit_duration"`

	Pattern    PatternSpec     `yaml:"pattern"`
	Projectile *ProjectileSpec `yaml:"projectile"`
	Burst      *BurstSpec      `yaml:"burst"`
	Zone       *ZoneSpec       `yaml:"zone"`

	ChargeSpeed           float64 `yaml:"charge_speed"`
	FinalChargeMultiplier float64 `yaml:"final_charge_multiplier"`
	RetreatDistance       float64 `yaml:"retreat_distance"`
	RetreatSpeed          float64 `yaml:"retreat_speed"`
}

type PatternSpec struct {
	Kind   string  `yaml:"kind"`
	Count  int     `yaml:"count"`
	Spread float64 `yaml:"spread"`
}

type ProjectileSpec struct {
	Speed          float64 `yaml:"speed"`
	Damage         int     `yaml:"damage"`
	Lifetime       float64 `yaml:"lifetime"`
	Radius         float64 `yaml:"radius"`
	DestroyOnHit   bool    `yaml:"destroy_on_hit"`
	DestroyOnWall  bool    `yaml:"destroy_on_wall"`
	Knockback      float64 `yaml:"knockback"`
	KnockbackAlong bool    `yaml:"knockback_along"`
	Stun           float64 `yaml:"stun"`
}

type BurstSpec struct {
	Delay  float64 `yaml:"delay"`
	Radius float64 `yaml:"radius"`
	Damage int     `yaml:"damage"`
	Jitter float64 `yaml:"jitter"`
}

type ZoneSpec struct {
	SpawnInterval float64 `yaml:"spawn_interval"`
	Radius        float64 `yaml:"radius"`
	FadeIn        float64 `yaml:"fade_in"`
	Duration      float64 `yaml:"duration"`
	TickInterval  float64 `yaml:"tick_interval"`
	Damage        int     `yaml:"damage"`
}

// BossSpec is the second phase of a boss.
type BossSpec struct {
	Threshold        int          `yaml:"threshold"`
	SpeedMultiplier  float64      `yaml:"speed_multiplier"`
	ChargeMultiplier float64      `yaml:"charge_multiplier"`
	Attacks          []AttackSpec `yaml:"attacks"`
}

type ContactSpec struct {
	Damage   int     `yaml:"damage"`
	Interval float64 `yaml:"interval"`
}

type DropSpec struct {
	Chance float64    `yaml:"chance"`
	Pickup PickupSpec `yaml:"pickup"`
}

type PickupSpec struct {
	Name      string   `yaml:"name"`
	Radius    float64  `yaml:"radius"`
	Heal      int      `yaml:"heal"`
	Abilities []string `yaml:"abilities"`
}

type PlayerSpec struct {
	Name               string     `yaml:"name"`
	Health             int        `yaml:"health"`
	Radius             float64    `yaml:"radius"`
	Mass               float64    `yaml:"mass"`
	MoveSpeed          float64    `yaml:"move_speed"`
	BlinkInvincibility float64    `yaml:"blink_invincibility"`
	StaggerDuration    float64    `yaml:"stagger_duration"`
	Color              *YAMLColor `yaml:"color"`

	Attack    SlashSpec          `yaml:"attack"`
	Fireball  ProjectileSpec     `yaml:"fireball"`
	Explosion ExplosionSpec      `yaml:"explosion"`
	Dash      DashSpec           `yaml:"dash"`
	Defense   DefenseSpec        `yaml:"defense"`
	Cooldowns map[string]float64 `yaml:"cooldowns"`
	Unlocked  []string           `yaml:"unlocked"`
}

type SlashSpec struct {
	Cooldown float64 `yaml:"cooldown"`
	Damage   int     `yaml:"damage"`
	Radius   float64 `yaml:"radius"`
	Offset   float64 `yaml:"offset"`
	Duration float64 `yaml:"duration"`
}

type ExplosionSpec struct {
	Radius   float64 `yaml:"radius"`
	Damage   int     `yaml:"damage"`
	Duration float64 `yaml:"duration"`
}

type DashSpec struct {
	Distance float64 `yaml:"distance"`
	Duration float64 `yaml:"duration"`
}

type DefenseSpec struct {
	MaxDuration float64 `yaml:"max_duration"`
}

// TrapSpec is a stationary shooter without health.
type TrapSpec struct {
	Name           string         `yaml:"name"`
	DetectionRange float64        `yaml:"detection_range"`
	FireInterval   float64        `yaml:"fire_interval"`
	BurstDelay     float64        `yaml:"burst_delay"`
	StartActive    *bool          `yaml:"start_active"`
	Pattern        PatternSpec    `yaml:"pattern"`
	Projectile     ProjectileSpec `yaml:"projectile"`
	Color          *YAMLColor     `yaml:"color"`
}

// EncounterSpec places the actors of one arena.
type EncounterSpec struct {
	Name    string            `yaml:"name"`
	Width   float64           `yaml:"width"`
	Height  float64           `yaml:"height"`
	Player  PlacementSpec     `yaml:"player"`
	Enemies []PlacementSpec   `yaml:"enemies"`
	Traps   []PlacementSpec   `yaml:"traps"`
	Walls   []WallSpec        `yaml:"walls"`
	Pickups []PickupPlacement `yaml:"pickups"`
	Gate    *GateSpec         `yaml:"gate"`
}

// PlacementSpec puts a prefab at a position. ID lets traps name the boss they
// are linked to; Group joins enemies into one alert group.
type PlacementSpec struct {
	ID     string  `yaml:"id"`
	Prefab string  `yaml:"prefab"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Group  string  `yaml:"group"`
	Linked string  `yaml:"linked"`
}

type WallSpec struct {
	X                 float64 `yaml:"x"`
	Y                 float64 `yaml:"y"`
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	BlocksProjectiles bool    `yaml:"blocks_projectiles"`
}

type PickupPlacement struct {
	PickupSpec `yaml:",inline"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
}

type GateSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
