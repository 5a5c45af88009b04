package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/havenlink/communitymatch/internal/adapters/database"
	"github.com/havenlink/communitymatch/internal/adapters/search"
	"github.com/havenlink/communitymatch/internal/application/services"
	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/havenlink/communitymatch/internal/infrastructure/clients/postgres"
	"github.com/havenlink/communitymatch/internal/infrastructure/clients/typesense"
	"github.com/havenlink/communitymatch/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	var searchRepo *search.TypesenseAdapter
	if err == nil {
		searchRepo = search.NewTypesenseAdapter(tsClient)
		searchRepo.InitSchema(context.Background())
	}

	resourceRepo := database.NewResourceAdapter(pgClient)
	constraintRepo := database.NewConstraintAdapter(pgClient)
	assessmentRepo := database.NewAssessmentAdapter(pgClient)
	resourceService := services.NewResourceService(resourceRepo, searchRepo)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				recommendations,
				patient_assessments,
				clinical_constraints,
				resources
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	gardenFee := 5.0

	// 1. Seed Resources (one per tier so a demo run exercises the whole ladder)
	resources := []entities.Resource{
		{
			ID:               uuid.New().String(),
			Name:             "Riverside Anxiety Support Group",
			Description:      "Weekly peer support group for adults managing anxiety, facilitated by a trained peer.",
			Tier:             entities.TierStructuredCommunity,
			DiagnosesServed:  []string{"anxiety", "depression"},
			AgeGroups:        []string{"adult"},
			GroupSize:        entities.GroupSizeSmall,
			InteractionStyle: entities.InteractionFaceToFace,
			Commitment:       entities.CommitmentWeekly,
			Sensory: entities.SensoryProfile{
				Noise:    entities.NoiseQuiet,
				Lighting: entities.LightNormal,
				Crowding: entities.CrowdingSpacious,
			},
			AtmosphereTags: []string{"calm", "supportive"},
			Schedule: entities.Schedule{
				Days:           []string{"tuesday"},
				TimeSlots:      []entities.TimeOfDay{entities.TimeEvening},
				SessionMinutes: 90,
			},
			TransitAccessible: true,
			WheelchairAccess:  true,
			Cost:              entities.Cost{Type: entities.CostFree},
			Intake:            entities.Intake{Type: "drop_in"},
			FacilitatorLevel:  entities.FacilitatorTrained,
			Keywords:          []string{"anxiety", "peer support", "talking"},
			Verified:          true,
			IsActive:          true,
			CreatedAt:         time.Now(),
			UpdatedAt:         time.Now(),
		},
		{
			ID:               uuid.New().String(),
			Name:             "Community Garden Collective",
			Description:      "Drop-in gardening sessions on shared plots. Work alongside neighbors at your own pace.",
			Tier:             entities.TierLifestyle,
			DiagnosesServed:  []string{entities.DiagnosisGeneralPopulation},
			AgeGroups:        []string{"adult", "older_adult"},
			GroupSize:        entities.GroupSizeSmall,
			InteractionStyle: entities.InteractionSideBySide,
			Commitment:       entities.CommitmentDropIn,
			Sensory: entities.SensoryProfile{
				Noise:    entities.NoiseQuiet,
				Lighting: entities.LightBright,
				Crowding: entities.CrowdingSpacious,
			},
			AtmosphereTags: []string{"outdoors", "calm"},
			Schedule: entities.Schedule{
				Days:           []string{"saturday", "sunday"},
				TimeSlots:      []entities.TimeOfDay{entities.TimeMorning, entities.TimeAfternoon},
				SessionMinutes: 120,
			},
			TransitAccessible: true,
			Cost:              entities.Cost{Type: entities.CostSlidingScale, Amount: &gardenFee},
			Intake:            entities.Intake{Type: "drop_in"},
			FacilitatorLevel:  entities.FacilitatorPeer,
			Keywords:          []string{"gardening", "outdoors", "nature"},
			Verified:          true,
			IsActive:          true,
			CreatedAt:         time.Now(),
			UpdatedAt:         time.Now(),
		},
		{
			ID:               uuid.New().String(),
			Name:             "Northside DBT Skills Program",
			Description:      "Twelve-week dialectical behavior therapy skills course run by licensed clinicians.",
			Tier:             entities.TierClinical,
			DiagnosesServed:  []string{"depression", "bipolar", "bpd"},
			AgeGroups:        []string{"adult"},
			GroupSize:        entities.GroupSizeMedium,
			InteractionStyle: entities.InteractionFaceToFace,
			Commitment:       entities.CommitmentStructuredProgram,
			Sensory: entities.SensoryProfile{
				Noise:    entities.NoiseModerate,
				Lighting: entities.LightNormal,
				Crowding: entities.CrowdingModerate,
			},
			Schedule: entities.Schedule{
				Days:           []string{"wednesday"},
				TimeSlots:      []entities.TimeOfDay{entities.TimeAfternoon},
				SessionMinutes: 120,
			},
			TransitAccessible: true,
			WheelchairAccess:  true,
			Cost: entities.Cost{
				Type:           entities.CostInsurance,
				AcceptedPayers: []string{"medicaid", "bluecross"},
			},
			Intake:           entities.Intake{Type: "referral", Details: "Requires clinician referral and phone screening."},
			FacilitatorLevel: entities.FacilitatorLicensed,
			Keywords:         []string{"dbt", "skills", "therapy"},
			Verified:         true,
			IsActive:         true,
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		},
		{
			ID:               uuid.New().String(),
			Name:             "Late Shift Trivia Nights",
			Description:      "Loud pub trivia league. Social, competitive, beer on tap.",
			Tier:             entities.TierLifestyle,
			DiagnosesServed:  []string{entities.DiagnosisGeneralPopulation},
			AgeGroups:        []string{"adult"},
			GroupSize:        entities.GroupSizeLarge,
			InteractionStyle: entities.InteractionFaceToFace,
			Commitment:       entities.CommitmentDropIn,
			Sensory: entities.SensoryProfile{
				Noise:    entities.NoiseLoud,
				Lighting: entities.LightDim,
				Crowding: entities.CrowdingCrowded,
			},
			AtmosphereTags: []string{"bar", "competitive"},
			Schedule: entities.Schedule{
				Days:           []string{"thursday"},
				TimeSlots:      []entities.TimeOfDay{entities.TimeEvening},
				SessionMinutes: 120,
			},
			TransitAccessible: true,
			Cost:              entities.Cost{Type: entities.CostFree},
			Intake:            entities.Intake{Type: "drop_in"},
			AlcoholServed:     true,
			FacilitatorLevel:  entities.FacilitatorPeer,
			Keywords:          []string{"trivia", "social", "games"},
			IsActive:          true,
			CreatedAt:         time.Now(),
			UpdatedAt:         time.Now(),
		},
	}

	for _, r := range resources {
		if err := resourceService.Create(ctx, &r); err != nil {
			log.Printf("Failed to create resource %s: %v", r.Name, err)
		}
	}

	// 2. Seed a demo patient so a match run works out of the box
	patientID := "demo-patient-1"

	constraints := entities.ClinicalConstraints{
		ID:                          uuid.New().String(),
		PatientID:                   patientID,
		ClinicianID:                 "demo-clinician-1",
		PrimaryDiagnosis:            "anxiety",
		AgeGroup:                    "adult",
		TreatmentPhase:              entities.PhaseStabilizing,
		ApprovedTiers:               []entities.Tier{entities.TierStructuredCommunity, entities.TierLifestyle},
		TreatmentGoals:              []string{"social connection", "routine building"},
		ContraindicatedEnvironments: []string{entities.ContraindicationAlcohol},
		CreatedAt:                   time.Now().UTC(),
	}
	if err := constraintRepo.Create(ctx, &constraints); err != nil {
		log.Printf("Failed to create demo constraints: %v", err)
	}

	assessment := entities.PatientAssessment{
		ID:        uuid.New().String(),
		PatientID: patientID,
		Availability: entities.Availability{
			WeekdayEvenings: true,
			Weekends:        true,
		},
		TransportAccess:      entities.TransportPublicTransit,
		CostConstraint:       entities.CostConstraintLowCost,
		EnergyPattern:        entities.EnergyEvening,
		PreferredGroupSize:   entities.GroupSizeSmall,
		PreferredInteraction: entities.InteractionSideBySide,
		PreferredCommitment:  entities.CommitmentDropIn,
		InterestCategories:   []string{"nature", "creative"},
		PastInterests:        []string{"gardening"},
		CreatedAt:            time.Now().UTC(),
	}
	if err := assessmentRepo.Create(ctx, &assessment); err != nil {
		log.Printf("Failed to create demo assessment: %v", err)
	}

	log.Printf("Seeded %d resources and demo patient %s", len(resources), patientID)
}
