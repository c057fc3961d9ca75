package registry

// SystemClass identifies one archetype in the catalog.
type SystemClass string

// Classes referenced directly by code. The catalog holds more.
const (
	ClassSingleStar        SystemClass = "SINGLE_STAR"
	ClassBinaryStar        SystemClass = "BINARY_STAR"
	ClassTrinaryStar       SystemClass = "TRINARY_STAR"
	ClassCircumbinary      SystemClass = "CIRCUMBINARY"
	ClassCompactMulti      SystemClass = "COMPACT_MULTI"
	ClassResonantChain     SystemClass = "RESONANT_CHAIN"
	ClassProtoplanetary    SystemClass = "PROTOPLANETARY"
	ClassWhiteDwarf        SystemClass = "WHITE_DWARF"
	ClassPulsar            SystemClass = "PULSAR"
	ClassGasGiantDominated SystemClass = "GAS_GIANT_DOMINATED"
	ClassRockyDominated    SystemClass = "ROCKY_DOMINATED"
	ClassSolarAnalog       SystemClass = "SOLAR_ANALOG"
)

// Architecture names the planetary layout strategy an archetype uses.
type Architecture string

const (
	ArchitectureCompact           Architecture = "compact"
	ArchitectureResonantChain     Architecture = "resonant_chain"
	ArchitectureGasGiantDominated Architecture = "gas_giant_dominated"
	ArchitectureRockyDominated    Architecture = "rocky_dominated"
	ArchitectureStandard          Architecture = "standard"
)

// Remnant marks post-main-sequence hosts.
type Remnant string

const (
	RemnantNone        Remnant = ""
	RemnantWhiteDwarf  Remnant = "white_dwarf"
	RemnantNeutronStar Remnant = "neutron_star"
)

// Range is a closed [Min,Max] interval.
type Range struct {
	Min float64 `yaml:"min" json:"min" validate:"gte=-10"`
	Max float64 `yaml:"max" json:"max" validate:"gtefield=Min"`
}

// Contains reports whether v lies inside the interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Overlaps reports whether the two intervals share any point.
func (r Range) Overlaps(min, max float64) bool {
	return r.Min <= max && min <= r.Max
}

// Mid returns the interval midpoint.
func (r Range) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// IntRange is a closed integer interval.
type IntRange struct {
	Min int `yaml:"min" json:"min" validate:"gte=0,lte=15"`
	Max int `yaml:"max" json:"max" validate:"gtefield=Min,lte=15"`
}

// Contains reports whether n lies inside the interval.
func (r IntRange) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// StellarProperties is the baseline host description.
type StellarProperties struct {
	MassRange        Range    `yaml:"massRange" json:"massRange"`               // solar masses
	AgeRange         Range    `yaml:"ageRange" json:"ageRange"`                 // Gyr
	MetallicityRange Range    `yaml:"metallicityRange" json:"metallicityRange"` // [Fe/H] dex
	SpectralTypes    []string `yaml:"spectralTypes" json:"spectralTypes" validate:"required,min=1"`
	Remnant          Remnant  `yaml:"remnant,omitempty" json:"remnant,omitempty" validate:"omitempty,oneof=white_dwarf neutron_star"`
	BinarySeparation Range    `yaml:"binarySeparation" json:"binarySeparation"` // AU, used when multiplicity > 1
}

// OrbitalDynamics is the baseline dynamical state.
type OrbitalDynamics struct {
	EccentricityRange    Range   `yaml:"eccentricityRange" json:"eccentricityRange"`
	InclinationRange     Range   `yaml:"inclinationRange" json:"inclinationRange"` // degrees
	MigrationProbability float64 `yaml:"migrationProbability" json:"migrationProbability" validate:"gte=0,lte=1"`
	ResonanceProbability float64 `yaml:"resonanceProbability" json:"resonanceProbability" validate:"gte=0,lte=1"`
	ChaosParameter       float64 `yaml:"chaosParameter" json:"chaosParameter" validate:"gte=0,lte=1"`
}

// DiskProperties describes circumstellar material.
type DiskProperties struct {
	ProtoplanetaryProbability float64 `yaml:"protoplanetaryProbability" json:"protoplanetaryProbability" validate:"gte=0,lte=1"`
	DebrisProbability         float64 `yaml:"debrisProbability" json:"debrisProbability" validate:"gte=0,lte=1"`
	DiskMassRange             Range   `yaml:"diskMassRange" json:"diskMassRange"` // Earth masses
	InnerRadius               Range   `yaml:"innerRadius" json:"innerRadius"`     // AU
	OuterRadius               Range   `yaml:"outerRadius" json:"outerRadius"`     // AU
}

// HabitabilityZone is the archetype baseline for a 1 L☉ host. Generated
// systems recompute it from their actual luminosity.
type HabitabilityZone struct {
	Inner   float64 `yaml:"inner" json:"inner" validate:"gte=0"`
	Outer   float64 `yaml:"outer" json:"outer" validate:"gtefield=Inner"`
	Optimal float64 `yaml:"optimal" json:"optimal" validate:"gte=0"`
}

// Observability holds detection parameters.
type Observability struct {
	TransitProbability       float64 `yaml:"transitProbability" json:"transitProbability" validate:"gte=0,lte=1"`
	RVAmplitude              Range   `yaml:"rvAmplitude" json:"rvAmplitude"` // m/s
	DirectImagingProbability float64 `yaml:"directImagingProbability" json:"directImagingProbability" validate:"gte=0,lte=1"`
}

// StabilityFactors holds baseline stability expectations.
type StabilityFactors struct {
	DynamicalStability float64 `yaml:"dynamicalStability" json:"dynamicalStability" validate:"gte=0,lte=1"`
	LongTermStable     bool    `yaml:"longTermStable" json:"longTermStable"`
	SecularChaos       float64 `yaml:"secularChaos" json:"secularChaos" validate:"gte=0,lte=1"`
}

// Environment carries gameplay metadata.
type Environment struct {
	Discoverability  float64  `yaml:"discoverability" json:"discoverability" validate:"gte=0,lte=1"`
	ScientificValue  float64  `yaml:"scientificValue" json:"scientificValue" validate:"gte=0,lte=1"`
	ResourceRichness float64  `yaml:"resourceRichness" json:"resourceRichness" validate:"gte=0,lte=1"`
	Rarity           string   `yaml:"rarity" json:"rarity" validate:"oneof=common uncommon rare very_rare legendary"`
	GameplayTags     []string `yaml:"gameplayTags" json:"gameplayTags"`
}

// TypeDefinition is one immutable archetype.
type TypeDefinition struct {
	Class               SystemClass       `yaml:"class" json:"class" validate:"required"`
	Name                string            `yaml:"name" json:"name" validate:"required"`
	Description         string            `yaml:"description" json:"description" validate:"required"`
	Category            string            `yaml:"category" json:"category" validate:"oneof=stellar planetary disk evolved exotic"`
	StellarMultiplicity int               `yaml:"stellarMultiplicity" json:"stellarMultiplicity" validate:"min=1,max=3"`
	NumberOfPlanets     IntRange          `yaml:"numberOfPlanets" json:"numberOfPlanets"`
	PlanetMassLog10     Range             `yaml:"planetMassLog10" json:"planetMassLog10"` // log10 Earth masses
	PeriodLog10         Range             `yaml:"periodLog10" json:"periodLog10"`         // log10 days
	Architecture        Architecture      `yaml:"architecture" json:"architecture" validate:"oneof=compact resonant_chain gas_giant_dominated rocky_dominated standard"`
	Stellar             StellarProperties `yaml:"stellar" json:"stellar"`
	Orbital             OrbitalDynamics   `yaml:"orbital" json:"orbital"`
	Disk                DiskProperties    `yaml:"disk" json:"disk"`
	HabitabilityZone    HabitabilityZone  `yaml:"habitabilityZone" json:"habitabilityZone"`
	FormationMechanisms []string          `yaml:"formationMechanisms" json:"formationMechanisms" validate:"required,min=1"`
	ResonanceTypes      []string          `yaml:"resonanceTypes" json:"resonanceTypes"`
	Observability       Observability     `yaml:"observability" json:"observability"`
	Stability           StabilityFactors  `yaml:"stability" json:"stability"`
	Environment         Environment       `yaml:"environment" json:"environment"`
}

// clone returns a copy that shares no slices with the catalog.
func (d TypeDefinition) clone() TypeDefinition {
	c := d
	c.Stellar.SpectralTypes = append([]string(nil), d.Stellar.SpectralTypes...)
	c.FormationMechanisms = append([]string(nil), d.FormationMechanisms...)
	c.ResonanceTypes = append([]string(nil), d.ResonanceTypes...)
	c.Environment.GameplayTags = append([]string(nil), d.Environment.GameplayTags...)
	return c
}
