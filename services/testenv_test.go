package services_test

import (
	"sync"
	"testing"
	"time"

	"matchpoint-api/config"
	"matchpoint-api/models"
	"matchpoint-api/notify"
	"matchpoint-api/services"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordingNotifier captures emitted events so tests can assert on them.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Emit(event notify.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) byType(t notify.EventType) []notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notify.Event
	for _, e := range n.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type testEnv struct {
	db         *gorm.DB
	matches    *services.MatchService
	validation *services.ValidationService
	sweeper    *services.AutoValidationService
	badges     *services.BadgeService
	ledger     *services.RatingLedgerService
	notifier   *recordingNotifier
	settings   config.Settings
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see a different in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Player{},
		&models.Match{},
		&models.RatingLedgerEntry{},
		&models.PlayerBadge{},
	))

	settings := config.Settings{
		AutoValidateAfter:   24 * time.Hour,
		ContestWindow:       7 * 24 * time.Hour,
		ContestMonthlyQuota: 3,
	}

	notifier := &recordingNotifier{}
	matchService := services.NewMatchService(db, settings)
	badgeService := services.NewBadgeService(db)

	return &testEnv{
		db:         db,
		matches:    matchService,
		validation: services.NewValidationService(db, matchService, badgeService, notifier, settings),
		sweeper:    services.NewAutoValidationService(db, matchService, badgeService, notifier),
		badges:     badgeService,
		ledger:     services.NewRatingLedgerService(db),
		notifier:   notifier,
		settings:   settings,
	}
}

func (env *testEnv) createPlayer(t *testing.T, username string, currentElo, matchesPlayed int) *models.Player {
	t.Helper()
	player := &models.Player{
		Username:      username,
		ClubID:        1,
		CurrentElo:    currentElo,
		MatchesPlayed: matchesPlayed,
	}
	require.NoError(t, env.db.Create(player).Error)
	return player
}

func (env *testEnv) reportMatch(t *testing.T, winner, loser *models.Player, reporterID uint) *models.Match {
	t.Helper()
	match, err := env.matches.ReportMatch(models.ReportMatchRequest{
		Player1ID: winner.ID,
		Player2ID: loser.ID,
		WinnerID:  winner.ID,
		Score:     "6-4 6-3",
	}, reporterID)
	require.NoError(t, err)
	return match
}

func (env *testEnv) reloadPlayer(t *testing.T, id uint) *models.Player {
	t.Helper()
	var player models.Player
	require.NoError(t, env.db.First(&player, id).Error)
	return &player
}

func (env *testEnv) ledgerRows(t *testing.T, matchID uint) []models.RatingLedgerEntry {
	t.Helper()
	entries, err := env.ledger.GetMatchEntries(matchID)
	require.NoError(t, err)
	return entries
}

// expire pushes a match's confirmation deadline into the past so the
// sweeper considers it.
func (env *testEnv) expire(t *testing.T, matchID uint) {
	t.Helper()
	err := env.db.Model(&models.Match{}).Where("id = ?", matchID).
		Update("auto_validate_at", time.Now().Add(-time.Hour)).Error
	require.NoError(t, err)
}
