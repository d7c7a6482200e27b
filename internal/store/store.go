package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/class-league/internal/database"
	"github.com/mauv0809/class-league/internal/league"
)

// New creates a new LeagueStore.
func New(db *database.DB) LeagueStore {
	return &store{
		db: db,
	}
}

// GetSettings returns the owner's settings, or ErrNotFound when none were saved yet.
func (s *store) GetSettings(ctx context.Context, ownerID string) (*league.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		settings   league.Settings
		bonusJSON  string
		leagueType string
	)
	err := s.db.QueryRowContext(ctx, s.db.Rebind(`
		SELECT id, owner_id, title, description, notice, access_code, bonus_config, league_type, league_unit
		FROM settings WHERE owner_id = ?`), ownerID).Scan(
		&settings.ID, &settings.OwnerID, &settings.Title, &settings.Description, &settings.Notice,
		&settings.AccessCode, &bonusJSON, &leagueType, &settings.Unit,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}

	settings.LeagueType = league.LeagueType(leagueType)
	if settings.BonusItems, err = decodeLabels(bonusJSON); err != nil {
		return nil, fmt.Errorf("failed to decode bonus config: %w", err)
	}
	return &settings, nil
}

// SaveSettings inserts or replaces the owner's settings row.
func (s *store) SaveSettings(ctx context.Context, settings league.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings.ID == "" {
		settings.ID = uuid.NewString()
	}
	bonusJSON, err := encodeLabels(settings.BonusItems)
	if err != nil {
		return fmt.Errorf("failed to encode bonus config: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO settings (id, owner_id, title, description, notice, access_code, bonus_config, league_type, league_unit, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			notice = excluded.notice,
			access_code = excluded.access_code,
			bonus_config = excluded.bonus_config,
			league_type = excluded.league_type,
			league_unit = excluded.league_unit,
			updated_at = excluded.updated_at`),
		settings.ID, settings.OwnerID, settings.Title, settings.Description, settings.Notice,
		settings.AccessCode, bonusJSON, string(settings.LeagueType), settings.Unit, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	log.Debug("Saved settings", "owner", settings.OwnerID, "league_type", settings.LeagueType)
	return nil
}

// GetTeams returns the owner's teams in roster order.
func (s *store) GetTeams(ctx context.Context, ownerID string) ([]league.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(`
		SELECT id, owner_id, name, members, created_at
		FROM teams WHERE owner_id = ?
		ORDER BY position, created_at`), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := []league.Team{}
	for rows.Next() {
		var (
			team      league.Team
			createdAt int64
		)
		if err := rows.Scan(&team.ID, &team.OwnerID, &team.Name, &team.Members, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		team.CreatedAt = time.Unix(createdAt, 0).UTC()
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

// ReplaceTeams deletes all of the owner's teams and inserts names as the new roster.
// Both steps run in one transaction.
func (s *store) ReplaceTeams(ctx context.Context, ownerID string, names []string) ([]league.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Second)
	teams := make([]league.Team, 0, len(names))
	err := s.db.RunInTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.db.Rebind(`DELETE FROM teams WHERE owner_id = ?`), ownerID); err != nil {
			return fmt.Errorf("failed to delete teams: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, s.db.Rebind(`
			INSERT INTO teams (id, owner_id, name, members, position, created_at)
			VALUES (?, ?, ?, '', ?, ?)`))
		if err != nil {
			return fmt.Errorf("failed to prepare team insert: %w", err)
		}
		defer stmt.Close()

		for i, name := range names {
			team := league.Team{ID: uuid.NewString(), OwnerID: ownerID, Name: name, CreatedAt: now}
			if _, err := stmt.ExecContext(ctx, team.ID, ownerID, name, i, now.Unix()); err != nil {
				return fmt.Errorf("failed to insert team %q: %w", name, err)
			}
			teams = append(teams, team)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("Replaced roster", "owner", ownerID, "teams", len(teams))
	return teams, nil
}

const matchColumns = `id, owner_id, match_date, team1_id, team2_id, score1, score2, strategy_memo, bonus_details1, bonus_details2, created_at`

// GetMatches returns the owner's matches, newest match date first.
func (s *store) GetMatches(ctx context.Context, ownerID string) ([]league.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(`
		SELECT `+matchColumns+`
		FROM matches WHERE owner_id = ?
		ORDER BY match_date DESC, created_at DESC`), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := []league.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

// GetMatch returns a single match of the owner.
func (s *store) GetMatch(ctx context.Context, ownerID, matchID string) (*league.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, s.db.Rebind(`
		SELECT `+matchColumns+`
		FROM matches WHERE owner_id = ? AND id = ?`), ownerID, matchID)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return m, err
}

// InsertMatch stores a new match, assigning its ID and creation time when unset.
func (s *store) InsertMatch(ctx context.Context, match *league.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	if match.CreatedAt.IsZero() {
		match.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	bonus1, bonus2, err := encodeBonus(match)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO matches (`+matchColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		match.ID, match.OwnerID, match.Date, match.Team1ID, match.Team2ID, match.Score1, match.Score2,
		match.Memo, bonus1, bonus2, match.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

// UpdateMatch overwrites the editable fields of an existing match.
func (s *store) UpdateMatch(ctx context.Context, match *league.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bonus1, bonus2, err := encodeBonus(match)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE matches SET
			match_date = ?, team1_id = ?, team2_id = ?, score1 = ?, score2 = ?,
			strategy_memo = ?, bonus_details1 = ?, bonus_details2 = ?
		WHERE owner_id = ? AND id = ?`),
		match.Date, match.Team1ID, match.Team2ID, match.Score1, match.Score2,
		match.Memo, bonus1, bonus2, match.OwnerID, match.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	return expectOneRow(res)
}

// DeleteMatch removes a match of the owner.
func (s *store) DeleteMatch(ctx context.Context, ownerID, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM matches WHERE owner_id = ? AND id = ?`), ownerID, matchID)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	return expectOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*league.Match, error) {
	var (
		m                  league.Match
		bonus1JSON, bonus2 string
		createdAt          int64
	)
	err := row.Scan(&m.ID, &m.OwnerID, &m.Date, &m.Team1ID, &m.Team2ID, &m.Score1, &m.Score2,
		&m.Memo, &bonus1JSON, &bonus2, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	if m.Bonus1, err = decodeLabels(bonus1JSON); err != nil {
		return nil, fmt.Errorf("failed to decode bonus details for match %s: %w", m.ID, err)
	}
	if m.Bonus2, err = decodeLabels(bonus2); err != nil {
		return nil, fmt.Errorf("failed to decode bonus details for match %s: %w", m.ID, err)
	}
	m.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &m, nil
}

func encodeBonus(match *league.Match) (string, string, error) {
	bonus1, err := encodeLabels(match.Bonus1)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode bonus details: %w", err)
	}
	bonus2, err := encodeLabels(match.Bonus2)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode bonus details: %w", err)
	}
	return bonus1, bonus2, nil
}

func encodeLabels(labels []string) (string, error) {
	if labels == nil {
		labels = []string{}
	}
	b, err := json.Marshal(labels)
	return string(b), err
}

func decodeLabels(raw string) ([]string, error) {
	labels := []string{}
	if raw == "" {
		return labels, nil
	}
	if err := json.Unmarshal([]byte(raw), &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
