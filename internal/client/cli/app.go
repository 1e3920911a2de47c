// Package cli is the terminal front end: a REPL over the four screens of
// the contest client (administration, check-in desk, judge scoring and the
// display board).
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/unioncup/contestdesk/internal/client/api"
	"github.com/unioncup/contestdesk/internal/client/config"
	"github.com/unioncup/contestdesk/internal/client/prefs"
	"github.com/unioncup/contestdesk/internal/client/store"
	"github.com/unioncup/contestdesk/internal/logging"
)

// App wires the config, HTTP client and stores together and owns the REPL.
type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB
	client *api.Client

	app          *store.AppStore
	auth         *store.AuthStore
	participants *store.ParticipantStore
	groups       *store.GroupStore
	judges       *store.JudgeStore
	scores       *store.ScoreStore
	stats        *store.StatisticsStore

	reader *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := prefs.Open(ctx, cfg.PrefsPath)
	if err != nil {
		return nil, err
	}
	repo := prefs.NewSQLiteRepository(db)

	appStore := store.NewAppStore(repo, log)
	appStore.Load(ctx)

	authStore := store.NewAuthStore(repo, appStore, log)
	client := api.New(cfg.APIBaseURL, cfg.APITimeout, authStore, log)
	authStore.SetAPI(client.Judges)

	a := &App{
		config:       cfg,
		log:          log,
		db:           db,
		client:       client,
		app:          appStore,
		auth:         authStore,
		participants: store.NewParticipantStore(client.Participants, client.Checkin, appStore, log),
		groups:       store.NewGroupStore(client.Groups, appStore, log),
		judges:       store.NewJudgeStore(client.Judges, appStore, log),
		scores:       store.NewScoreStore(client.Scores, appStore, log),
		stats:        store.NewStatisticsStore(client.Statistics, appStore, log),
		reader:       bufio.NewReader(os.Stdin),
	}
	return a, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.auth.Restore(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}

	go a.startRealTimeRefresh(ctx)

	a.root(ctx)
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated() && a.auth.IsSessionValid()
}

// startRealTimeRefresh polls the real-time scoring snapshot while the app
// store's toggle is on. The ticker keeps running when the toggle is off so
// flipping it back needs no restart.
func (a *App) startRealTimeRefresh(ctx context.Context) {
	ticker := time.NewTicker(a.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !a.app.RealTimeEnabled() {
				continue
			}
			fetchCtx, cancel := context.WithTimeout(context.Background(), a.config.APITimeout)
			if err := a.scores.FetchRealTime(fetchCtx); err == nil {
				a.app.UpdateLastUpdateTime()
			}
			cancel()
		case <-ctx.Done():
			return
		}
	}
}
