package cli

import (
	"context"
	"fmt"

	"github.com/unioncup/contestdesk/internal/client/utils"
)

func (a *App) ranking(ctx context.Context) {
	if err := a.scores.FetchRanking(ctx, 0, 20); err != nil {
		printlnFn("Error:", err)
		return
	}
	for _, e := range a.scores.Ranking() {
		printlnFn(fmt.Sprintf("%2d. %s (%s) avg=%s from %d scores",
			e.Rank, e.ParticipantName, e.Organization, utils.FormatScore(e.AvgScore), e.ScoreCount))
	}
}

func (a *App) groupRanking(ctx context.Context) {
	if err := a.scores.FetchGroupRanking(ctx); err != nil {
		printlnFn("Error:", err)
		return
	}
	for _, e := range a.scores.GroupRanking() {
		printlnFn(fmt.Sprintf("%2d. %s avg=%s members=%d",
			e.Rank, e.GroupName, utils.FormatScore(e.AvgScore), e.MemberCount))
	}
}

func (a *App) realTime(ctx context.Context) {
	if err := a.scores.FetchRealTime(ctx); err != nil {
		printlnFn("Error:", err)
		return
	}
	stats := a.scores.RealTime()
	if stats == nil {
		return
	}
	printlnFn(fmt.Sprintf("Scores: %d  avg=%s max=%s min=%s",
		stats.TotalScores,
		utils.FormatScore(stats.AvgScore),
		utils.FormatScore(stats.MaxScore),
		utils.FormatScore(stats.MinScore)))
	printlnFn(fmt.Sprintf("Progress: %d/%d participants (%s)",
		stats.ParticipantsScored, stats.ParticipantsTotal,
		utils.FormatPercentage(stats.ScoringProgress, 1)))
	for _, b := range stats.ScoreDistribution {
		printlnFn(fmt.Sprintf("  %-5s %4d (%s)", b.Range, b.Count, utils.FormatPercentage(b.Percentage, 1)))
	}
}

func (a *App) judgeStats(ctx context.Context) {
	if err := a.scores.Fetch(ctx); err != nil {
		printlnFn("Error:", err)
		return
	}
	for _, js := range a.scores.JudgeStats() {
		printlnFn(fmt.Sprintf("%s: %d scores avg=%s min=%s max=%s",
			js.JudgeName, js.ScoresCount,
			utils.FormatScore(js.AvgScore),
			utils.FormatScore(js.MinScore),
			utils.FormatScore(js.MaxScore)))
	}
}

func (a *App) overview(ctx context.Context) {
	if err := a.stats.FetchOverview(ctx); err != nil {
		printlnFn("Error:", err)
		return
	}
	o := a.stats.Overview()
	if o == nil {
		return
	}
	printlnFn(fmt.Sprintf("Participants: %d (%d checked in, %s)",
		o.TotalParticipants, o.CheckedInCount, utils.FormatPercentage(o.CheckinRate, 1)))
	printlnFn(fmt.Sprintf("Groups: %d  Judges: %d", o.TotalGroups, o.TotalJudges))
	printlnFn(fmt.Sprintf("Scores: %d  avg=%s", o.TotalScores, utils.FormatScore(o.AvgScore)))
	for _, org := range o.CheckinByOrg {
		printlnFn(fmt.Sprintf("  %s: %d/%d (%s)",
			org.Organization, org.CheckedIn, org.Total, utils.FormatPercentage(org.Rate, 1)))
	}
}
