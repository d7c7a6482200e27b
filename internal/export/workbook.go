package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/mauv0809/class-league/internal/league"
	"github.com/xuri/excelize/v2"
)

const (
	StandingsSheet = "Standings"
	HistorySheet   = "Match history"

	// ContentType is the MIME type of the generated workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	defaultTitle = "Class league"
)

// Workbook renders the standings and the match history of a league as an xlsx file.
func Workbook(settings league.Settings, standings []league.Standing, matches []league.Match, teams []league.Team) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(StandingsSheet); err != nil {
		return nil, fmt.Errorf("failed to create standings sheet: %w", err)
	}
	if _, err := f.NewSheet(HistorySheet); err != nil {
		return nil, fmt.Errorf("failed to create history sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCFCE7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeStandings(f, settings, standings, headerStyle); err != nil {
		return nil, err
	}
	if err := writeHistory(f, matches, teams, headerStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeStandings(f *excelize.File, settings league.Settings, standings []league.Standing, headerStyle int) error {
	indicator := league.IndicatorLabel(settings.LeagueType.OrDefault())
	if settings.Unit != "" {
		indicator = fmt.Sprintf("%s (%s)", indicator, settings.Unit)
	}
	headers := []any{"Rank", "Team", indicator, "Games", "W", "D", "L", "Bonus"}
	if err := writeRow(f, StandingsSheet, 1, headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(StandingsSheet, "A1", "H1", headerStyle); err != nil {
		return fmt.Errorf("failed to style standings header: %w", err)
	}

	for i, st := range standings {
		var value any = st.RankingValue
		if st.Display == league.NoRecordDisplay {
			value = league.NoRecordDisplay
		}
		row := []any{st.Rank, st.TeamName, value, st.GamesPlayed, st.Wins, st.Draws, st.Losses, st.BonusTotal}
		if err := writeRow(f, StandingsSheet, i+2, row); err != nil {
			return err
		}
	}

	f.SetColWidth(StandingsSheet, "A", "A", 8)
	f.SetColWidth(StandingsSheet, "B", "B", 20)
	f.SetColWidth(StandingsSheet, "C", "C", 22)
	f.SetColWidth(StandingsSheet, "D", "H", 10)
	return nil
}

func writeHistory(f *excelize.File, matches []league.Match, teams []league.Team, headerStyle int) error {
	headers := []any{"Date", "Team A", "Score A", "Score B", "Team B", "Bonus A", "Bonus B", "Memo"}
	if err := writeRow(f, HistorySheet, 1, headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(HistorySheet, "A1", "H1", headerStyle); err != nil {
		return fmt.Errorf("failed to style history header: %w", err)
	}

	for i, entry := range league.SearchMatches(matches, teams, "") {
		row := []any{
			entry.Date,
			entry.Team1Name,
			entry.Score1,
			entry.Score2,
			entry.Team2Name,
			strings.Join(entry.Bonus1, ", "),
			strings.Join(entry.Bonus2, ", "),
			entry.Memo,
		}
		if err := writeRow(f, HistorySheet, i+2, row); err != nil {
			return err
		}
	}

	f.SetColWidth(HistorySheet, "A", "A", 12)
	f.SetColWidth(HistorySheet, "B", "B", 18)
	f.SetColWidth(HistorySheet, "C", "D", 10)
	f.SetColWidth(HistorySheet, "E", "E", 18)
	f.SetColWidth(HistorySheet, "F", "G", 24)
	f.SetColWidth(HistorySheet, "H", "H", 40)
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// FileName returns the download name for a league export taken at now.
func FileName(title string, now time.Time) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultTitle
	}
	title = strings.NewReplacer("/", "_", "\\", "_", "\"", "'").Replace(title)
	return fmt.Sprintf("%s_records_%s.xlsx", title, now.Format(league.DateLayout))
}
