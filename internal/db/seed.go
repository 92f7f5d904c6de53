package db

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Cyberworld-builders/involved-v2-sub003/internal/logger"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/models"
)

var industryNames = []string{
	"Technology",
	"Healthcare",
	"Financial Services",
	"Manufacturing",
	"Retail",
	"Professional Services",
}

type seedCompetency struct {
	name    string
	prompts []string
}

type seedQuadrant struct {
	name         string
	competencies []seedCompetency
}

const assessmentName = "Leadership 360"

// The canonical assessment: four quadrants, each with two scored
// competencies and their survey questions.
var leadershipQuadrants = []seedQuadrant{
	{
		name: "Character",
		competencies: []seedCompetency{
			{name: "Integrity", prompts: []string{
				"Acts consistently with stated values, even under pressure.",
				"Owns mistakes openly instead of shifting blame.",
			}},
			{name: "Accountability", prompts: []string{
				"Delivers on commitments without reminders.",
				"Holds the team to the same standards as themselves.",
			}},
		},
	},
	{
		name: "Interpersonal Skills",
		competencies: []seedCompetency{
			{name: "Communication", prompts: []string{
				"Explains decisions clearly and with context.",
				"Listens to understand before responding.",
			}},
			{name: "Team Development", prompts: []string{
				"Gives feedback that helps people grow.",
				"Creates opportunities for others to lead.",
			}},
		},
	},
	{
		name: "Execution",
		competencies: []seedCompetency{
			{name: "Decision Making", prompts: []string{
				"Makes timely decisions with incomplete information.",
				"Weighs input from the right people before deciding.",
			}},
			{name: "Driving Results", prompts: []string{
				"Keeps the team focused on outcomes that matter.",
				"Removes obstacles instead of working around them.",
			}},
		},
	},
	{
		name: "Strategy",
		competencies: []seedCompetency{
			{name: "Strategic Thinking", prompts: []string{
				"Connects day-to-day work to the longer-term direction.",
				"Anticipates risks before they become problems.",
			}},
			{name: "Change Leadership", prompts: []string{
				"Builds support for change instead of imposing it.",
				"Adjusts course quickly when circumstances shift.",
			}},
		},
	},
}

var bandFeedback = map[string]string{
	models.BandLow:  "%s is showing up as a growth area. Pick one concrete behavior to practice and review progress with your manager monthly.",
	models.BandMid:  "%s is solid but not yet a differentiator. Ask two raters for a specific situation where it made a difference, and one where it fell short.",
	models.BandHigh: "%s is a clear strength. Use it deliberately: mentor someone on it and take on work where it carries the most weight.",
}

// Seed loads the reference data every installation needs: industries, the
// canonical leadership assessment with its question fields, per-industry
// benchmark norms and score-band feedback. Re-running never duplicates rows.
func Seed(db *gorm.DB, log *logger.Logger) error {
	industries, err := seedIndustries(db)
	if err != nil {
		return fmt.Errorf("seed industries: %w", err)
	}
	competencies, err := seedAssessment(db)
	if err != nil {
		return fmt.Errorf("seed assessment: %w", err)
	}
	if err := seedBenchmarks(db, competencies, industries); err != nil {
		return fmt.Errorf("seed benchmarks: %w", err)
	}
	if err := seedFeedback(db, competencies); err != nil {
		return fmt.Errorf("seed feedback: %w", err)
	}
	log.Info("reference data seeded",
		"industries", len(industries),
		"competencies", len(competencies),
	)
	return nil
}

func seedIndustries(db *gorm.DB) ([]models.Industry, error) {
	industries := make([]models.Industry, 0, len(industryNames))
	for _, name := range industryNames {
		var industry models.Industry
		err := db.First(&industry, "name = ?", name).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			industry = models.Industry{ID: uuid.New(), Name: name}
			err = db.Create(&industry).Error
		}
		if err != nil {
			return nil, err
		}
		industries = append(industries, industry)
	}
	return industries, nil
}

// seedAssessment builds the assessment tree on first run and returns the
// scored competencies (the leaf dimensions) either way.
func seedAssessment(db *gorm.DB) ([]models.Dimension, error) {
	var assessment models.Assessment
	err := db.First(&assessment, "name = ?", assessmentName).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return createAssessmentTree(db)
	}
	if err != nil {
		return nil, err
	}

	var competencies []models.Dimension
	err = db.Where("assessment_id = ? AND parent_id IS NOT NULL", assessment.ID).
		Order("sort ASC").
		Find(&competencies).Error
	return competencies, err
}

func createAssessmentTree(db *gorm.DB) ([]models.Dimension, error) {
	assessment := models.Assessment{
		ID:          uuid.New(),
		Name:        assessmentName,
		Description: "360-degree leadership review across character, interpersonal skills, execution and strategy.",
	}
	if err := db.Create(&assessment).Error; err != nil {
		return nil, err
	}

	var competencies []models.Dimension
	rank := 0
	for qi, quadrant := range leadershipQuadrants {
		parent := models.Dimension{
			ID:           uuid.New(),
			AssessmentID: assessment.ID,
			Name:         quadrant.name,
			Sort:         qi + 1,
		}
		if err := db.Create(&parent).Error; err != nil {
			return nil, err
		}
		for _, comp := range quadrant.competencies {
			rank++
			dim := models.Dimension{
				ID:           uuid.New(),
				AssessmentID: assessment.ID,
				ParentID:     &parent.ID,
				Name:         comp.name,
				Sort:         rank,
			}
			if err := db.Create(&dim).Error; err != nil {
				return nil, err
			}
			for fi, prompt := range comp.prompts {
				field := models.Field{
					ID:          uuid.New(),
					DimensionID: dim.ID,
					Prompt:      prompt,
					Sort:        fi + 1,
				}
				if err := db.Create(&field).Error; err != nil {
					return nil, err
				}
			}
			competencies = append(competencies, dim)
		}
	}
	return competencies, nil
}

// TODO: replace the formula with norms computed from collected responses
// once enough survey data exists per industry.
func benchmarkValue(competency, industry int) float64 {
	return 58 + float64((competency*7+industry*5)%28)
}

func seedBenchmarks(db *gorm.DB, competencies []models.Dimension, industries []models.Industry) error {
	for ci, comp := range competencies {
		for ii, industry := range industries {
			bench := models.Benchmark{
				ID:          uuid.New(),
				DimensionID: comp.ID,
				IndustryID:  industry.ID,
				Value:       benchmarkValue(ci, ii),
			}
			err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "dimension_id"}, {Name: "industry_id"}},
				DoNothing: true,
			}).Create(&bench).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func seedFeedback(db *gorm.DB, competencies []models.Dimension) error {
	for _, comp := range competencies {
		for band, template := range bandFeedback {
			entry := models.FeedbackEntry{
				ID:          uuid.New(),
				DimensionID: comp.ID,
				Band:        band,
				Text:        fmt.Sprintf(template, comp.Name),
			}
			err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "dimension_id"}, {Name: "band"}},
				DoNothing: true,
			}).Create(&entry).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// demo dataset

const demoClientName = "Meridian Labs"

type demoProfile struct {
	fullName string
	username string
	email    string
	isAdmin  bool
	client   bool
}

var demoProfiles = []demoProfile{
	{fullName: "Avery Holt", username: "avery.holt", email: "avery.holt@meridian.test", isAdmin: true},
	{fullName: "Jordan Reyes", username: "jordan.reyes", email: "jordan.reyes@meridian.test", client: true},
	{fullName: "Dana Okafor", username: "dana.okafor", email: "dana.okafor@meridian.test", client: true},
	{fullName: "Sam Lin", username: "sam.lin", email: "sam.lin@meridian.test", client: true},
	{fullName: "Priya Natarajan", username: "priya.natarajan", email: "priya.natarajan@meridian.test", client: true},
}

// SeedDemo loads a small walkthrough dataset: one client, an admin, a review
// target with three raters and a 360 group run by a manager. Safe to re-run.
func SeedDemo(db *gorm.DB, log *logger.Logger) error {
	client, err := demoClient(db)
	if err != nil {
		return fmt.Errorf("seed demo client: %w", err)
	}

	profiles := make(map[string]models.Profile, len(demoProfiles))
	for _, dp := range demoProfiles {
		profile, err := demoProfileRow(db, dp, client.ID)
		if err != nil {
			return fmt.Errorf("seed demo profile %s: %w", dp.email, err)
		}
		profiles[dp.username] = profile
	}

	target := profiles["jordan.reyes"]
	group, err := demoGroup(db, client.ID, target.ID)
	if err != nil {
		return fmt.Errorf("seed demo group: %w", err)
	}

	members := []struct {
		username string
		position string
		role     string
	}{
		{username: "dana.okafor", position: "Program Lead", role: models.RoleManager},
		{username: "sam.lin", position: "Peer", role: models.RoleMember},
		{username: "priya.natarajan", position: "Direct Report", role: models.RoleMember},
	}
	for _, m := range members {
		if err := demoMembership(db, group.ID, profiles[m.username].ID, m.position, m.role); err != nil {
			return fmt.Errorf("seed demo membership %s: %w", m.username, err)
		}
	}

	log.Info("demo data seeded", "client", client.Name, "group", group.Name)
	return nil
}

func demoClient(db *gorm.DB) (models.Client, error) {
	var client models.Client
	err := db.First(&client, "name = ?", demoClientName).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		client = models.Client{ID: uuid.New(), Name: demoClientName}
		err = db.Create(&client).Error
	}
	return client, err
}

func demoProfileRow(db *gorm.DB, dp demoProfile, clientID uuid.UUID) (models.Profile, error) {
	var profile models.Profile
	err := db.First(&profile, "email = ?", dp.email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{
			ID:       uuid.New(),
			AuthID:   uuid.New(),
			Username: dp.username,
			FullName: dp.fullName,
			Email:    dp.email,
			IsAdmin:  dp.isAdmin,
		}
		if dp.client {
			profile.ClientID = &clientID
		}
		err = db.Create(&profile).Error
	}
	return profile, err
}

func demoGroup(db *gorm.DB, clientID, targetID uuid.UUID) (models.Group, error) {
	name := "Jordan Reyes 360"
	var group models.Group
	err := db.First(&group, "client_id = ? AND name = ?", clientID, name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		group = models.Group{
			ID:              uuid.New(),
			ClientID:        clientID,
			Name:            name,
			Description:     "Demo 360 review round.",
			TargetProfileID: &targetID,
		}
		err = db.Create(&group).Error
	}
	return group, err
}

func demoMembership(db *gorm.DB, groupID, profileID uuid.UUID, position, role string) error {
	member := models.GroupMember{
		ID:        uuid.New(),
		GroupID:   groupID,
		ProfileID: profileID,
		Position:  position,
		Role:      role,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "profile_id"}},
		DoNothing: true,
	}).Create(&member).Error
}
