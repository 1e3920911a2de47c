package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/unioncup/contestdesk/internal/client/models"
	"github.com/unioncup/contestdesk/internal/client/utils"
)

func (a *App) requireLogin() bool {
	if !a.isLoggedIn() {
		printlnFn("Login required")
		return false
	}
	return true
}

func (a *App) pending(ctx context.Context) {
	if !a.requireLogin() {
		return
	}
	if err := a.scores.FetchPending(ctx, 0); err != nil {
		printlnFn("Error:", err)
		return
	}
	items := a.scores.Pending()
	if len(items) == 0 {
		printlnFn("Nothing left to score")
		return
	}
	for _, p := range items {
		printlnFn(fmt.Sprintf("#%d %s (%s) group=%s", p.ID, p.Name, p.Organization, p.GroupName))
	}
}

func (a *App) submitScore(ctx context.Context) {
	if !a.requireLogin() {
		return
	}
	participantID, err := getInt(a.reader, "Participant id", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	value, err := getFloat(a.reader, "Score (0-10)", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	if value < 0 || value > 10 {
		printlnFn("Score must be between 0 and 10")
		return
	}

	score, err := a.scores.Submit(ctx, models.ScoreSubmitRequest{
		ParticipantID: participantID,
		Score:         value,
	})
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	printlnFn(fmt.Sprintf("Scored %s: %s", score.ParticipantName, utils.FormatScore(score.Score)))
}

func (a *App) myScores(ctx context.Context) {
	if !a.requireLogin() {
		return
	}
	judge := a.auth.CurrentJudge()
	if judge == nil {
		return
	}
	page, err := a.scores.ByJudge(ctx, judge.ID, models.ScoreQuery{Page: 1, Size: 50})
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	for _, s := range page.Items {
		printlnFn(fmt.Sprintf("%s: %s", s.ParticipantName, utils.FormatScore(s.Score)))
	}
	printlnFn("Total:", page.Total)
}
