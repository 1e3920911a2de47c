package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/unioncup/contestdesk/internal/client/models"
	"github.com/unioncup/contestdesk/internal/client/utils"
)

// Photo uploads are downscaled to this box before hitting the wire.
const (
	photoMaxWidth    = 800
	photoMaxHeight   = 800
	photoJPEGQuality = 85
)

func (a *App) requireAdmin() bool {
	if !a.isLoggedIn() || !a.auth.IsAdmin() {
		printlnFn("Admin login required")
		return false
	}
	return true
}

func (a *App) listParticipants(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}
	if err := a.participants.Fetch(ctx); err != nil {
		printlnFn("Error:", err)
		return
	}
	for _, p := range a.participants.Items() {
		checked := " "
		if p.IsCheckedIn {
			checked = "x"
		}
		printlnFn(fmt.Sprintf("[%s] #%d %s (%s) group=%s", checked, p.ID, p.Name, p.Organization, p.GroupName))
	}
	printlnFn("Total:", a.participants.Total())
}

func (a *App) addParticipant(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}
	name, err := getText(a.reader, "Name", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	org, err := getText(a.reader, "Organization", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	phone, err := getText(a.reader, "Phone", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	if !utils.ValidatePhone(phone) {
		printlnFn("Invalid phone number")
		return
	}

	p, err := a.participants.Create(ctx, models.CreateParticipantRequest{
		Name: name, Organization: org, Phone: phone,
	})
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	printlnFn("Created participant", p.ID)
}

func (a *App) deleteParticipant(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) == 0 {
		printlnFn("Usage: delparticipant <id>")
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		printlnFn("Not a number:", args[0])
		return
	}
	if err := a.participants.Delete(ctx, id); err != nil {
		printlnFn("Error:", err)
	}
}

// uploadPhoto reads an image from disk, downsizes it and uploads it as the
// participant's photo.
func (a *App) uploadPhoto(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}
	id, err := getInt(a.reader, "Participant id", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	path, err := getText(a.reader, "Image file path", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	if !utils.IsImageFile(path) {
		printlnFn("Not an image file:", path)
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	printlnFn("Original size:", utils.FormatFileSize(int64(len(data))))

	resized, err := utils.DownscaleImage(data, photoMaxWidth, photoMaxHeight, photoJPEGQuality)
	if err != nil {
		printlnFn("Error:", err)
		return
	}

	resp, err := a.participants.UploadPhoto(ctx, id, "photo.jpg", resized)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	printlnFn("Uploaded", resp.Filename, utils.FormatFileSize(resp.Size))
}

func (a *App) generateQRCodes(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}
	result, err := a.participants.GenerateAllQRCodes(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	printlnFn(fmt.Sprintf("Generated %d QR codes, %d failures", result.SuccessCount, result.ErrorCount))
}

func (a *App) listGroups(ctx context.Context) {
	if err := a.groups.Fetch(ctx); err != nil {
		printlnFn("Error:", err)
		return
	}
	for _, g := range a.groups.SortedByDrawOrder() {
		order := "-"
		if g.DrawOrder != nil {
			order = strconv.Itoa(*g.DrawOrder)
		}
		printlnFn(fmt.Sprintf("#%d %s members=%d draw=%s", g.ID, g.Name, g.MemberCount, order))
	}
}

func (a *App) addGroup(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}
	name, err := getText(a.reader, "Group name", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	g, err := a.groups.Create(ctx, models.CreateGroupRequest{Name: name})
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	printlnFn("Created group", g.ID)
}

func (a *App) deleteGroup(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) == 0 {
		printlnFn("Usage: delgroup <id>")
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		printlnFn("Not a number:", args[0])
		return
	}
	if err := a.groups.Delete(ctx, id); err != nil {
		printlnFn("Error:", err)
	}
}

func (a *App) autoGroup(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}
	resp, err := a.groups.AutoGroup(ctx, models.AutoGroupRequest{})
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	printlnFn(resp.Message)
}

func (a *App) balanceGroups(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}
	if err := a.groups.Balance(ctx); err != nil {
		printlnFn("Error:", err)
	}
}

func (a *App) drawLots(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}
	resp, err := a.groups.DrawLots(ctx, models.DrawLotsRequest{})
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	for _, r := range resp.Results {
		printlnFn(fmt.Sprintf("group %d -> slot %d", r.GroupID, r.DrawOrder))
	}
}

func (a *App) listJudges(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}
	if err := a.judges.Fetch(ctx); err != nil {
		printlnFn("Error:", err)
		return
	}
	for _, j := range a.judges.Items() {
		active := "inactive"
		if j.IsActive {
			active = "active"
		}
		printlnFn(fmt.Sprintf("#%d %s (%s) %s", j.ID, j.Name, j.Username, active))
	}
	printlnFn("Total:", a.judges.Total())
}

func (a *App) addJudge(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}
	name, err := getText(a.reader, "Name", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	username, err := getText(a.reader, "Username", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	available, err := a.judges.CheckUsername(ctx, username, 0)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	if !available {
		printlnFn("Username already taken")
		return
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}

	j, err := a.judges.Create(ctx, models.CreateJudgeRequest{
		Name: name, Username: username, Password: string(password),
	})
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	printlnFn("Created judge", j.ID)
}

func (a *App) resetPassword(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) == 0 {
		printlnFn("Usage: resetpw <id>")
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		printlnFn("Not a number:", args[0])
		return
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	if err := a.judges.ResetPassword(ctx, id, string(password)); err != nil {
		printlnFn("Error:", err)
	}
}

func (a *App) scoringProgress(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}
	if err := a.judges.FetchProgress(ctx, 0); err != nil {
		printlnFn("Error:", err)
		return
	}
	for _, p := range a.judges.Progress() {
		printlnFn(fmt.Sprintf("%s: %d/%d (%s)",
			p.JudgeName, p.ScoredCount, p.TotalCount, utils.FormatPercentage(p.ProgressRate, 1)))
	}
}

func (a *App) exportReport(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}
	reportType, err := getText(a.reader, "Report type (overview/checkin/scores)", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	format, err := getText(a.reader, "Format (excel/pdf/csv)", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return
	}

	path, err := a.stats.ExportReportToFile(ctx, models.ReportRequest{
		ReportType: reportType,
		Format:     format,
	}, "reports")
	if err != nil {
		printlnFn("Error:", err)
		return
	}
	printlnFn("Saved", path)
}
