package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_10_000000_create_core_tables",
			Up: func(db *gorm.DB) error {
				// Create players table
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS players (
						id BIGSERIAL PRIMARY KEY,
						username VARCHAR(255) NOT NULL,
						club_id BIGINT DEFAULT 0,
						current_elo INT DEFAULT 1200,
						matches_played INT DEFAULT 0,
						wins INT DEFAULT 0,
						losses INT DEFAULT 0,
						current_win_streak INT DEFAULT 0,
						best_win_streak INT DEFAULT 0,
						is_admin BOOLEAN DEFAULT false,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_players_deleted_at ON players(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_players_club_id ON players(club_id);
					CREATE INDEX IF NOT EXISTS idx_players_current_elo ON players(current_elo);
				`).Error; err != nil {
					return err
				}

				// Create matches table
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS matches (
						id BIGSERIAL PRIMARY KEY,
						player1_id BIGINT NOT NULL,
						player2_id BIGINT NOT NULL,
						winner_id BIGINT NOT NULL,
						score VARCHAR(50),
						match_format VARCHAR(20) DEFAULT 'best_of_three',
						reported_by BIGINT NOT NULL,
						player1_elo_before INT NOT NULL,
						player1_elo_after INT NOT NULL,
						player2_elo_before INT NOT NULL,
						player2_elo_after INT NOT NULL,
						modifiers_applied JSONB DEFAULT '{}'::jsonb,
						validated BOOLEAN DEFAULT false,
						validated_at TIMESTAMP NULL,
						validated_by BIGINT NULL,
						auto_validated BOOLEAN DEFAULT false,
						auto_validate_at TIMESTAMP NOT NULL,
						contested BOOLEAN DEFAULT false,
						contested_by BIGINT NULL,
						contested_at TIMESTAMP NULL,
						contest_reason VARCHAR(500),
						contest_resolved_at TIMESTAMP NULL,
						contest_resolution VARCHAR(500),
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (player1_id) REFERENCES players(id) ON DELETE CASCADE,
						FOREIGN KEY (player2_id) REFERENCES players(id) ON DELETE CASCADE,
						FOREIGN KEY (winner_id) REFERENCES players(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_matches_player1_id ON matches(player1_id);
					CREATE INDEX IF NOT EXISTS idx_matches_player2_id ON matches(player2_id);
					CREATE INDEX IF NOT EXISTS idx_matches_contested_by ON matches(contested_by, contested_at);
					CREATE INDEX IF NOT EXISTS idx_matches_sweep ON matches(auto_validate_at) WHERE validated = false AND contested = false;
				`).Error; err != nil {
					return err
				}

				// Create rating_ledger table
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS rating_ledger (
						id BIGSERIAL PRIMARY KEY,
						player_id BIGINT NOT NULL,
						match_id BIGINT NOT NULL,
						elo_before INT NOT NULL,
						elo_after INT NOT NULL,
						delta INT NOT NULL,
						reason VARCHAR(20) NOT NULL,
						metadata JSONB DEFAULT '{}'::jsonb,
						opponent_id BIGINT,
						recorded_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE,
						FOREIGN KEY (match_id) REFERENCES matches(id) ON DELETE CASCADE,
						FOREIGN KEY (opponent_id) REFERENCES players(id)
					);
					CREATE INDEX IF NOT EXISTS idx_rating_ledger_player_id ON rating_ledger(player_id);
					CREATE INDEX IF NOT EXISTS idx_rating_ledger_match_id ON rating_ledger(match_id);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_rating_ledger_player_match ON rating_ledger(player_id, match_id);
				`).Error; err != nil {
					return err
				}

				// Create player_badges table
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS player_badges (
						id BIGSERIAL PRIMARY KEY,
						player_id BIGINT NOT NULL,
						badge_id VARCHAR(50) NOT NULL,
						awarded_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_player_badge ON player_badges(player_id, badge_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				// Drop tables in reverse order (because of foreign keys)
				for _, table := range []string{"player_badges", "rating_ledger", "matches", "players"} {
					if err := db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE").Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}
