package entities

import (
	"time"
)

// Tier classifies the clinical intensity of a resource.
type Tier string

const (
	TierClinical            Tier = "clinical"
	TierStructuredCommunity Tier = "structured_community"
	TierLifestyle           Tier = "lifestyle"
)

// AllTiers lists every valid tier value.
var AllTiers = []Tier{TierClinical, TierStructuredCommunity, TierLifestyle}

// IsValid reports whether the tier is a recognized value.
func (t Tier) IsValid() bool {
	for _, v := range AllTiers {
		if t == v {
			return true
		}
	}
	return false
}

// Label returns a human-readable form of the tier for rationale text.
func (t Tier) Label() string {
	switch t {
	case TierClinical:
		return "clinical"
	case TierStructuredCommunity:
		return "structured community"
	case TierLifestyle:
		return "lifestyle"
	}
	return string(t)
}

// DiagnosisGeneralPopulation is the sentinel meaning a resource serves
// anyone regardless of diagnosis.
const DiagnosisGeneralPopulation = "general_population"

// ContraindicationAlcohol is the reserved contraindication keyword that
// gates on Resource.AlcoholServed instead of atmosphere tags.
const ContraindicationAlcohol = "alcohol"

// GroupSize is an ordered category of session size.
type GroupSize string

const (
	GroupSizeIndividual GroupSize = "individual"
	GroupSizeSmall      GroupSize = "small"
	GroupSizeMedium     GroupSize = "medium"
	GroupSizeLarge      GroupSize = "large"
)

// InteractionStyle describes how participants engage with each other.
type InteractionStyle string

const (
	InteractionFaceToFace  InteractionStyle = "face_to_face"
	InteractionSideBySide  InteractionStyle = "side_by_side"
	InteractionOnlineSync  InteractionStyle = "online_sync"
	InteractionOnlineAsync InteractionStyle = "online_async"
)

// CommitmentLevel describes the structure and regularity a resource expects.
type CommitmentLevel string

const (
	CommitmentDropIn            CommitmentLevel = "drop_in"
	CommitmentWeekly            CommitmentLevel = "weekly"
	CommitmentStructuredProgram CommitmentLevel = "structured_program"
)

// TimeOfDay is a schedule slot.
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
)

// Sensory profile ordinals. Each dimension is a three-level scale.
type (
	NoiseLevel    string
	LightLevel    string
	CrowdingLevel string
)

const (
	NoiseQuiet    NoiseLevel = "quiet"
	NoiseModerate NoiseLevel = "moderate"
	NoiseLoud     NoiseLevel = "loud"

	LightDim    LightLevel = "dim"
	LightNormal LightLevel = "normal"
	LightBright LightLevel = "bright"

	CrowdingSpacious CrowdingLevel = "spacious"
	CrowdingModerate CrowdingLevel = "moderate"
	CrowdingCrowded  CrowdingLevel = "crowded"
)

// SensoryProfile captures the atmospheric qualities of a resource's space.
type SensoryProfile struct {
	Noise    NoiseLevel    `json:"noise" db:"noise_level"`
	Lighting LightLevel    `json:"lighting" db:"light_level"`
	Crowding CrowdingLevel `json:"crowding" db:"crowding_level"`
}

// CostType classifies how a resource charges participants.
type CostType string

const (
	CostFree         CostType = "free"
	CostSlidingScale CostType = "sliding_scale"
	CostInsurance    CostType = "insurance"
	CostFixedFee     CostType = "fixed_fee"
)

// Cost describes what attending a resource costs.
type Cost struct {
	Type           CostType `json:"type" db:"cost_type"`
	Amount         *float64 `json:"amount,omitempty" db:"cost_amount"`
	AcceptedPayers []string `json:"accepted_payers,omitempty" db:"-"`
}

// FacilitatorLevel is the credential level of whoever runs sessions.
type FacilitatorLevel string

const (
	FacilitatorPeer     FacilitatorLevel = "peer"
	FacilitatorTrained  FacilitatorLevel = "trained_facilitator"
	FacilitatorLicensed FacilitatorLevel = "licensed_clinician"
)

// Schedule describes when a resource meets.
type Schedule struct {
	Days           []string    `json:"days" db:"-"`
	TimeSlots      []TimeOfDay `json:"time_slots" db:"-"`
	SessionMinutes int         `json:"session_minutes" db:"session_minutes"`
}

// OffersSlot reports whether the schedule includes the given slot.
func (s Schedule) OffersSlot(slot TimeOfDay) bool {
	for _, t := range s.TimeSlots {
		if t == slot {
			return true
		}
	}
	return false
}

// Intake describes how a patient gets started with a resource.
type Intake struct {
	Type    string `json:"type" db:"intake_type"`
	Details string `json:"details,omitempty" db:"intake_details"`
}

// Resource is a community organization in the catalog. Resources are
// curated by admins and handed to the matching pipeline by value; the
// pipeline never mutates them.
type Resource struct {
	ID                string           `json:"id" db:"id"`
	Name              string           `json:"name" db:"name"`
	Description       string           `json:"description" db:"description"`
	Tier              Tier             `json:"tier" db:"tier"`
	DiagnosesServed   []string         `json:"diagnoses_served" db:"-"`
	AgeGroups         []string         `json:"age_groups" db:"-"`
	GroupSize         GroupSize        `json:"group_size" db:"group_size"`
	InteractionStyle  InteractionStyle `json:"interaction_style" db:"interaction_style"`
	Commitment        CommitmentLevel  `json:"commitment" db:"commitment"`
	Sensory           SensoryProfile   `json:"sensory" db:"-"`
	AtmosphereTags    []string         `json:"atmosphere_tags,omitempty" db:"-"`
	Schedule          Schedule         `json:"schedule" db:"-"`
	TransitAccessible bool             `json:"transit_accessible" db:"transit_accessible"`
	WheelchairAccess  bool             `json:"wheelchair_access" db:"wheelchair_access"`
	Cost              Cost             `json:"cost" db:"-"`
	Intake            Intake           `json:"intake" db:"-"`
	AlcoholServed     bool             `json:"alcohol_served" db:"alcohol_served"`
	FacilitatorLevel  FacilitatorLevel `json:"facilitator_level" db:"facilitator_level"`
	Keywords          []string         `json:"keywords,omitempty" db:"-"`
	Verified          bool             `json:"verified" db:"verified"`
	IsActive          bool             `json:"is_active" db:"is_active"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at" db:"updated_at"`
}

// ServesGeneralPopulation reports whether the resource accepts patients
// regardless of diagnosis.
func (r *Resource) ServesGeneralPopulation() bool {
	for _, d := range r.DiagnosesServed {
		if d == DiagnosisGeneralPopulation {
			return true
		}
	}
	return false
}

// Validate enforces the catalog invariants at construction time so the
// matching pipeline never sees a structurally invalid resource.
func (r *Resource) Validate() error {
	if r.Name == "" {
		return errInvalid("resource name is required")
	}
	if !r.Tier.IsValid() {
		return errInvalid("resource tier must be one of clinical, structured_community, lifestyle")
	}
	if len(r.AgeGroups) == 0 {
		return errInvalid("resource must serve at least one age group")
	}
	if len(r.DiagnosesServed) == 0 {
		return errInvalid("resource must list served diagnoses or the general population sentinel")
	}
	return nil
}
