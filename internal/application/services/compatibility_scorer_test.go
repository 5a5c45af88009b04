package services

import (
	"testing"

	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestScore_PerfectAlignmentScoresOneHundred(t *testing.T) {
	svc := NewMatchingService()
	resource := testResource("r1", func(r *entities.Resource) {
		r.Keywords = []string{"hiking", "nature", "trails"}
	})
	assessment := testAssessment(func(a *entities.PatientAssessment) {
		a.InterestCategories = []string{"hiking", "nature", "trails"}
	})

	score, breakdown := svc.Score(resource, assessment)

	assert.Equal(t, 100, score)
	assert.InDelta(t, 0.25, breakdown["group_size"], 1e-9)
	assert.InDelta(t, 0.25, breakdown["interaction"], 1e-9)
	assert.InDelta(t, 0.20, breakdown["interests"], 1e-9)
	assert.InDelta(t, 0.15, breakdown["sensory"], 1e-9)
	assert.InDelta(t, 0.15, breakdown["energy"], 1e-9)
}

func TestScore_SingleInterestOverlap(t *testing.T) {
	svc := NewMatchingService()
	// One fuzzy keyword match ("hiking") puts interests on the 0.4 rung,
	// never full credit: 0.25 + 0.25 + 0.4*0.20 + 0.15 + 0.15 = 0.88.
	// See DESIGN.md for the single-interest scoring decision.
	score, _ := svc.Score(testResource("r1"), testAssessment())

	assert.Equal(t, 88, score)
}

func TestScore_StableAcrossRepeatedCalls(t *testing.T) {
	svc := NewMatchingService()
	// This profile's true sum is 0.895, right on a rounding boundary;
	// any order-dependent float addition flickers it between 89 and 90.
	resource := testResource("r1", func(r *entities.Resource) {
		r.Keywords = []string{"hiking", "nature", "trails"}
		r.Sensory = entities.SensoryProfile{
			Noise:    entities.NoiseModerate,
			Lighting: entities.LightNormal,
			Crowding: entities.CrowdingModerate,
		}
	})
	assessment := testAssessment(func(a *entities.PatientAssessment) {
		a.InterestCategories = []string{"hiking", "nature", "trails"}
		a.EnergyPattern = entities.EnergyVaries
	})

	for i := 0; i < 1000; i++ {
		score, _ := svc.Score(resource, assessment)
		assert.Equal(t, 89, score)
	}
}

func TestScore_AlwaysWithinBounds(t *testing.T) {
	svc := NewMatchingService()
	worst := testResource("worst", func(r *entities.Resource) {
		r.GroupSize = entities.GroupSizeLarge
		r.InteractionStyle = entities.InteractionOnlineAsync
		r.Keywords = nil
		r.Sensory = entities.SensoryProfile{
			Noise:    entities.NoiseLoud,
			Lighting: entities.LightBright,
			Crowding: entities.CrowdingCrowded,
		}
		r.Schedule.TimeSlots = []entities.TimeOfDay{entities.TimeMorning}
	})
	assessment := testAssessment(func(a *entities.PatientAssessment) {
		a.PreferredGroupSize = entities.GroupSizeIndividual
		a.PreferredInteraction = entities.InteractionFaceToFace
		a.InterestCategories = nil
	})

	score, _ := svc.Score(worst, assessment)

	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)
	// 0.1*0.25 + 0.3*0.25 + 0.1*0.20 + 0.5*0.15 + 0.4*0.15 = 0.255
	assert.Equal(t, 26, score)
}

func TestGroupSizeScore_DecaysWithOrdinalDistance(t *testing.T) {
	svc := NewMatchingService()
	cases := []struct {
		name     string
		resource entities.GroupSize
		want     float64
	}{
		{"exact", entities.GroupSizeSmall, 1.0},
		{"distance one", entities.GroupSizeMedium, 0.6},
		{"distance two", entities.GroupSizeLarge, 0.3},
		{"unrecognized degrades to worst", entities.GroupSize("huge"), 0.1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := testResource("r", func(r *entities.Resource) { r.GroupSize = tc.resource })
			assert.InDelta(t, tc.want, svc.groupSizeScore(r, testAssessment()), 1e-9)
		})
	}
}

func TestGroupSizeScore_DistanceThree(t *testing.T) {
	svc := NewMatchingService()
	r := testResource("r", func(r *entities.Resource) { r.GroupSize = entities.GroupSizeLarge })
	a := testAssessment(func(a *entities.PatientAssessment) {
		a.PreferredGroupSize = entities.GroupSizeIndividual
	})
	assert.InDelta(t, 0.1, svc.groupSizeScore(r, a), 1e-9)
}

func TestInteractionScore_FamilyPairing(t *testing.T) {
	svc := NewMatchingService()
	cases := []struct {
		name      string
		resource  entities.InteractionStyle
		preferred entities.InteractionStyle
		want      float64
	}{
		{"exact", entities.InteractionSideBySide, entities.InteractionSideBySide, 1.0},
		{"both in-person", entities.InteractionFaceToFace, entities.InteractionSideBySide, 0.7},
		{"both online", entities.InteractionOnlineAsync, entities.InteractionOnlineSync, 0.7},
		{"cross-family", entities.InteractionOnlineSync, entities.InteractionFaceToFace, 0.3},
		{"unrecognized degrades to worst", entities.InteractionStyle("carrier_pigeon"), entities.InteractionFaceToFace, 0.3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := testResource("r", func(r *entities.Resource) { r.InteractionStyle = tc.resource })
			a := testAssessment(func(a *entities.PatientAssessment) { a.PreferredInteraction = tc.preferred })
			assert.InDelta(t, tc.want, svc.interactionScore(r, a), 1e-9)
		})
	}
}

func TestInterestScore_CountsFuzzyMatches(t *testing.T) {
	svc := NewMatchingService()
	cases := []struct {
		name      string
		keywords  []string
		interests []string
		past      []string
		want      float64
	}{
		{"three or more", []string{"hiking", "nature", "trails"}, []string{"hiking", "nature", "trails"}, nil, 1.0},
		{"two", []string{"hiking", "nature"}, []string{"hiking", "nature"}, nil, 0.7},
		{"one via substring", []string{"trail hiking"}, []string{"hiking"}, nil, 0.4},
		{"one via reverse substring", []string{"art"}, []string{"art therapy"}, nil, 0.4},
		{"past interests count", []string{"gardening"}, nil, []string{"Gardening"}, 0.4},
		{"zero", []string{"pottery"}, []string{"hiking"}, nil, 0.1},
		{"no keywords", nil, []string{"hiking"}, nil, 0.1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := testResource("r", func(r *entities.Resource) { r.Keywords = tc.keywords })
			a := testAssessment(func(a *entities.PatientAssessment) {
				a.InterestCategories = tc.interests
				a.PastInterests = tc.past
			})
			assert.InDelta(t, tc.want, svc.interestScore(r, a), 1e-9)
		})
	}
}

func TestSensoryScore_FixedCalmPrior(t *testing.T) {
	svc := NewMatchingService()

	calm := testResource("calm")
	assert.InDelta(t, 1.0, svc.sensoryScore(calm), 1e-9)

	loud := testResource("loud", func(r *entities.Resource) {
		r.Sensory = entities.SensoryProfile{
			Noise:    entities.NoiseLoud,
			Lighting: entities.LightDim,
			Crowding: entities.CrowdingCrowded,
		}
	})
	assert.InDelta(t, 0.5, svc.sensoryScore(loud), 1e-9)

	partial := testResource("partial", func(r *entities.Resource) {
		r.Sensory.Crowding = entities.CrowdingModerate
	})
	// quiet (+0.2) and normal lighting (+0.1) over the 0.5 baseline
	assert.InDelta(t, 0.8, svc.sensoryScore(partial), 1e-9)
}

func TestEnergyScore_VariesIsFlat(t *testing.T) {
	svc := NewMatchingService()
	a := testAssessment(func(a *entities.PatientAssessment) { a.EnergyPattern = entities.EnergyVaries })

	assert.InDelta(t, 0.7, svc.energyScore(testResource("r"), a), 1e-9)
}

func TestEnergyScore_SlotMatch(t *testing.T) {
	svc := NewMatchingService()

	assert.InDelta(t, 1.0, svc.energyScore(testResource("match"), testAssessment()), 1e-9)

	mismatch := testResource("mismatch", func(r *entities.Resource) {
		r.Schedule.TimeSlots = []entities.TimeOfDay{entities.TimeMorning}
	})
	assert.InDelta(t, 0.4, svc.energyScore(mismatch, testAssessment()), 1e-9)
}
