package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

func (a *App) status() string {
	if judge := a.auth.CurrentJudge(); judge != nil {
		return fmt.Sprintf("(%s %s)", judge.Username, a.auth.Role())
	}
	return ""
}

func (a *App) root(ctx context.Context) {
	printlnFn("contestdesk CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("cd %s> ", a.status())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			a.help()

		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "whoami":
			a.whoami()

		case "checkin":
			a.checkIn(ctx)
		case "checkinstats":
			a.checkinStats(ctx)
		case "checkinlogs":
			a.checkinLogs(ctx)

		case "participants":
			a.listParticipants(ctx)
		case "addparticipant":
			a.addParticipant(ctx)
		case "delparticipant":
			a.deleteParticipant(ctx, args)
		case "photo":
			a.uploadPhoto(ctx)
		case "qrcodes":
			a.generateQRCodes(ctx)

		case "groups":
			a.listGroups(ctx)
		case "addgroup":
			a.addGroup(ctx)
		case "delgroup":
			a.deleteGroup(ctx, args)
		case "autogroup":
			a.autoGroup(ctx)
		case "balance":
			a.balanceGroups(ctx)
		case "draw":
			a.drawLots(ctx)

		case "judges":
			a.listJudges(ctx)
		case "addjudge":
			a.addJudge(ctx)
		case "resetpw":
			a.resetPassword(ctx, args)
		case "progress":
			a.scoringProgress(ctx)

		case "pending":
			a.pending(ctx)
		case "score":
			a.submitScore(ctx)
		case "myscores":
			a.myScores(ctx)

		case "ranking":
			a.ranking(ctx)
		case "groupranking":
			a.groupRanking(ctx)
		case "realtime":
			a.realTime(ctx)
		case "judgestats":
			a.judgeStats(ctx)
		case "overview":
			a.overview(ctx)
		case "export":
			a.exportReport(ctx)

		case "notifications":
			a.notifications()
		case "toggle-realtime":
			a.toggleRealTime(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	printlnFn("Session:   login, logout, whoami")
	printlnFn("Check-in:  checkin, checkinstats, checkinlogs")
	if a.isLoggedIn() && a.auth.IsAdmin() {
		printlnFn("Roster:    participants, addparticipant, delparticipant <id>, photo, qrcodes")
		printlnFn("Groups:    groups, addgroup, delgroup <id>, autogroup, balance, draw")
		printlnFn("Judges:    judges, addjudge, resetpw <id>, progress")
		printlnFn("Reports:   export")
	}
	if a.isLoggedIn() {
		printlnFn("Scoring:   pending, score, myscores")
	}
	printlnFn("Board:     ranking, groupranking, realtime, judgestats, overview")
	printlnFn("Misc:      notifications, toggle-realtime, help, exit")
}

func (a *App) whoami() {
	judge := a.auth.CurrentJudge()
	if judge == nil {
		printlnFn("Not logged in")
		return
	}
	printlnFn(fmt.Sprintf("%s (%s), role %s, permissions %s",
		judge.Name, judge.Username, a.auth.Role(), strings.Join(a.auth.Permissions(), ", ")))
}

func (a *App) notifications() {
	for _, n := range a.app.Notifications() {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		printlnFn(fmt.Sprintf("%s [%s] %s: %s", marker, n.Kind, n.Title, n.Message))
	}
	a.app.MarkAllRead()
}

func (a *App) toggleRealTime(ctx context.Context) {
	enabled := !a.app.RealTimeEnabled()
	a.app.SetRealTimeEnabled(ctx, enabled)
	printlnFn("Real-time refresh enabled:", enabled)
}
