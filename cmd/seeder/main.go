package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/class-league/internal/access"
	"github.com/mauv0809/class-league/internal/account"
	"github.com/mauv0809/class-league/internal/classroom"
	"github.com/mauv0809/class-league/internal/config"
	"github.com/mauv0809/class-league/internal/database"
	"github.com/mauv0809/class-league/internal/email"
	"github.com/mauv0809/class-league/internal/league"
	"github.com/mauv0809/class-league/internal/metrics"
	"github.com/mauv0809/class-league/internal/notifier"
	"github.com/mauv0809/class-league/internal/processor"
	"github.com/mauv0809/class-league/internal/pubsub"
	"github.com/mauv0809/class-league/internal/store"
)

const numMatches = 40

var demoTeams = []string{"Tigers", "Eagles", "Sharks", "Owls", "Foxes", "Bears"}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func main() {
	log.Info("Starting demo league seeder...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %s", err)
	}

	db, err := database.InitDB(database.Driver(cfg.Database.Driver), cfg.Database.DSN(), cfg.Database.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer db.Close()

	ctx := context.Background()
	leagueStore := store.New(db)
	accounts := account.New(db, leagueStore, email.NewLogSender())
	metricsSvc := metrics.NewService()
	proc := processor.New(leagueStore, notifier.Noop{}, metricsSvc, pubsub.NewNoop(), false)
	leagues := classroom.New(leagueStore, proc, metricsSvc, metrics.NewUsageStore(db))

	username := getenv("SEED_USERNAME", "demo")
	password := getenv("SEED_PASSWORD", "demo-league")
	if _, err := accounts.SignUp(ctx, username, password); err != nil && !errors.Is(err, account.ErrAccountExists) {
		log.Fatalf("Failed to create demo account: %s", err)
	}
	session, err := accounts.SignIn(ctx, username, password)
	if err != nil {
		log.Fatalf("Failed to sign in as demo account: %s", err)
	}
	owner := access.Viewer{OwnerID: session.AccountID, AccountID: session.AccountID, Role: access.RoleOwner}
	log.Info("Seeding league", "owner", owner.OwnerID, "username", username)

	teams, err := leagues.ReplaceRoster(ctx, owner, "", strings.Join(demoTeams, ","), true)
	if err != nil {
		log.Fatalf("Failed to create roster: %s", err)
	}

	settings, err := leagueStore.GetSettings(ctx, owner.OwnerID)
	if err != nil {
		log.Fatalf("Failed to read settings: %s", err)
	}

	startTime := time.Now()
	for i := 0; i < numMatches; i++ {
		a := rand.Intn(len(teams))
		b := (a + 1 + rand.Intn(len(teams)-1)) % len(teams)
		in := league.MatchInput{
			Date:    time.Now().AddDate(0, 0, -rand.Intn(60)).Format(league.DateLayout),
			Team1ID: teams[a].ID,
			Team2ID: teams[b].ID,
			Score1:  float64(rand.Intn(6)),
			Score2:  float64(rand.Intn(6)),
		}
		if rand.Intn(3) == 0 && len(settings.BonusItems) > 0 {
			in.Bonus1 = []string{settings.BonusItems[rand.Intn(len(settings.BonusItems))]}
		}
		if _, err := leagues.RecordMatch(ctx, owner, in, true); err != nil {
			log.Fatalf("Failed to record match %d: %s", i+1, err)
		}
	}

	log.Info("Successfully seeded demo league.", "matches", numMatches, "duration", time.Since(startTime))
	log.Info("Share it with", "link", classroom.ShareLink(cfg.BaseURL, owner.OwnerID).ReadOnly)
}
