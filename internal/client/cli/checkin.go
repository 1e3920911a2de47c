package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/unioncup/contestdesk/internal/client/models"
	"github.com/unioncup/contestdesk/internal/client/utils"
)

// checkIn runs the three-factor verification: QR code, last four phone
// digits and the participant's name must all match.
func (a *App) checkIn(ctx context.Context) {
	qrID, err := getText(a.reader, "QR code ID", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	last4, err := getText(a.reader, "Last 4 digits of phone", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	name, err := getText(a.reader, "Participant name", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}

	resp, err := a.participants.CheckIn(ctx, models.CheckinVerifyRequest{
		QRCodeID:   qrID,
		PhoneLast4: last4,
		Name:       name,
	})
	if err != nil {
		printlnFn("Check-in failed:", err)
		return
	}
	printlnFn(fmt.Sprintf("%s (%s) checked in", resp.Participant.Name, resp.Participant.Organization))
}

func (a *App) checkinStats(ctx context.Context) {
	stats, err := a.participants.FetchCheckinStats(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	printlnFn(fmt.Sprintf("Checked in %d of %d (%s)",
		stats.CheckedIn, stats.Total, utils.FormatPercentage(stats.Rate, 1)))
	for _, g := range a.participants.GroupStats() {
		printlnFn(fmt.Sprintf("  %s: %d/%d (%s)",
			g.Group, g.CheckedIn, g.Total, utils.FormatPercentage(g.Rate, 1)))
	}
}

func (a *App) checkinLogs(ctx context.Context) {
	if err := a.participants.FetchCheckinLogs(ctx); err != nil {
		printlnFn("Error:", err)
		return
	}
	for _, entry := range a.participants.CheckinLogs() {
		printlnFn(fmt.Sprintf("%s  %s (%s)", entry.CheckinTime, entry.ParticipantName, entry.Organization))
	}
}
