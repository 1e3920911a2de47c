package store

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/unioncup/contestdesk/internal/client/models"
	"github.com/unioncup/contestdesk/internal/logging"
)

// participantAPI is the slice of the backend API the participant store uses.
type participantAPI interface {
	List(ctx context.Context, q models.ParticipantQuery) (*models.Page[models.Participant], error)
	Get(ctx context.Context, id int) (*models.Participant, error)
	GetByQR(ctx context.Context, qrID string) (*models.Participant, error)
	GetQRCode(ctx context.Context, id int) (*models.QRCodeResponse, error)
	Create(ctx context.Context, req models.CreateParticipantRequest) (*models.Participant, error)
	Update(ctx context.Context, id int, req models.UpdateParticipantRequest) (*models.Participant, error)
	Delete(ctx context.Context, id int) error
	UploadPhoto(ctx context.Context, id int, filename string, data []byte) (*models.FileUploadResponse, error)
	GenerateQRCode(ctx context.Context, id int) (*models.QRCodeResponse, error)
	GenerateAllQRCodes(ctx context.Context) (*models.BatchResult, error)
	Import(ctx context.Context, req models.ImportParticipantsRequest) (*models.BatchResult, error)
}

// checkinAPI is the check-in endpoint slice used by this store.
type checkinAPI interface {
	Verify(ctx context.Context, req models.CheckinVerifyRequest) (*models.CheckinVerifyResponse, error)
	Stats(ctx context.Context) (*models.CheckinStats, error)
	Logs(ctx context.Context) ([]models.CheckinLog, error)
}

// ParticipantStore caches the participant roster and the check-in state that
// hangs off it.
type ParticipantStore struct {
	mu       sync.Mutex
	api      participantAPI
	checkin  checkinAPI
	notifier Notifier
	log      logging.Logger

	items   []models.Participant
	total   int
	current *models.Participant
	logs    []models.CheckinLog
	query   models.ParticipantQuery

	loading  bool
	fetchGen uint64
}

func NewParticipantStore(api participantAPI, checkin checkinAPI, notifier Notifier, log logging.Logger) *ParticipantStore {
	return &ParticipantStore{
		api:      api,
		checkin:  checkin,
		notifier: notifier,
		log:      log,
		query:    models.ParticipantQuery{Page: 1, Size: 20},
	}
}

// SetQuery replaces the store's filter and pagination state. Zero Page/Size
// keep their previous values.
func (s *ParticipantStore) SetQuery(q models.ParticipantQuery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.Page == 0 {
		q.Page = s.query.Page
	}
	if q.Size == 0 {
		q.Size = s.query.Size
	}
	s.query = q
}

func (s *ParticipantStore) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page > 0 {
		s.query.Page = page
	}
}

func (s *ParticipantStore) Query() models.ParticipantQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Fetch loads the roster page described by the store's query. On failure the
// cached items and total stay as they were. A response that arrives after a
// newer Fetch started is discarded.
func (s *ParticipantStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.loading = true
	q := s.query
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if gen == s.fetchGen {
			s.loading = false
		}
		s.mu.Unlock()
	}()

	page, err := s.api.List(ctx, q)
	if err != nil {
		s.log.Error(ctx, "fetch participants", "error", err)
		s.notifier.AddNotification(NotificationError, "Load failed", "Could not load participants")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		return nil
	}
	s.items = page.Items
	s.total = page.Total
	return nil
}

func (s *ParticipantStore) FetchOne(ctx context.Context, id int) (*models.Participant, error) {
	p, err := s.api.Get(ctx, id)
	if err != nil {
		s.log.Error(ctx, "fetch participant", "id", id, "error", err)
		return nil, err
	}
	s.mu.Lock()
	s.current = p
	s.patchLocked(*p)
	s.mu.Unlock()
	return p, nil
}

func (s *ParticipantStore) FetchByQR(ctx context.Context, qrID string) (*models.Participant, error) {
	p, err := s.api.GetByQR(ctx, qrID)
	if err != nil {
		s.log.Error(ctx, "fetch participant by qr", "error", err)
		return nil, err
	}
	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	return p, nil
}

func (s *ParticipantStore) Create(ctx context.Context, req models.CreateParticipantRequest) (*models.Participant, error) {
	p, err := s.api.Create(ctx, req)
	if err != nil {
		s.log.Error(ctx, "create participant", "error", err)
		s.notifier.AddNotification(NotificationError, "Create failed", "Could not create participant")
		return nil, err
	}

	s.mu.Lock()
	s.items = append([]models.Participant{*p}, s.items...)
	s.total++
	s.mu.Unlock()

	s.notifier.AddNotification(NotificationSuccess, "Participant created", p.Name)
	s.notifier.UpdateLastUpdateTime()
	return p, nil
}

func (s *ParticipantStore) Update(ctx context.Context, id int, req models.UpdateParticipantRequest) (*models.Participant, error) {
	p, err := s.api.Update(ctx, id, req)
	if err != nil {
		s.log.Error(ctx, "update participant", "id", id, "error", err)
		s.notifier.AddNotification(NotificationError, "Update failed", "Could not update participant")
		return nil, err
	}

	s.mu.Lock()
	s.patchLocked(*p)
	if s.current != nil && s.current.ID == p.ID {
		s.current = p
	}
	s.mu.Unlock()

	s.notifier.AddNotification(NotificationSuccess, "Participant updated", p.Name)
	s.notifier.UpdateLastUpdateTime()
	return p, nil
}

// Delete removes a participant. When the id is not cached the splice is a
// no-op and the total stays put; the server call is issued either way.
func (s *ParticipantStore) Delete(ctx context.Context, id int) error {
	if err := s.api.Delete(ctx, id); err != nil {
		s.log.Error(ctx, "delete participant", "id", id, "error", err)
		s.notifier.AddNotification(NotificationError, "Delete failed", "Could not delete participant")
		return err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.total--
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.mu.Unlock()

	s.notifier.AddNotification(NotificationSuccess, "Participant deleted", "")
	s.notifier.UpdateLastUpdateTime()
	return nil
}

func (s *ParticipantStore) UploadPhoto(ctx context.Context, id int, filename string, data []byte) (*models.FileUploadResponse, error) {
	resp, err := s.api.UploadPhoto(ctx, id, filename, data)
	if err != nil {
		s.log.Error(ctx, "upload photo", "id", id, "error", err)
		s.notifier.AddNotification(NotificationError, "Upload failed", "Could not upload photo")
		return nil, err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].PhotoPath = resp.Path
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current.PhotoPath = resp.Path
	}
	s.mu.Unlock()

	s.notifier.AddNotification(NotificationSuccess, "Photo uploaded", resp.Filename)
	return resp, nil
}

func (s *ParticipantStore) GenerateQRCode(ctx context.Context, id int) (*models.QRCodeResponse, error) {
	resp, err := s.api.GenerateQRCode(ctx, id)
	if err != nil {
		s.log.Error(ctx, "generate qr code", "id", id, "error", err)
		s.notifier.AddNotification(NotificationError, "QR generation failed", "")
		return nil, err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].QRCodeID = resp.QRCodeID
			break
		}
	}
	s.mu.Unlock()
	return resp, nil
}

func (s *ParticipantStore) GenerateAllQRCodes(ctx context.Context) (*models.BatchResult, error) {
	resp, err := s.api.GenerateAllQRCodes(ctx)
	if err != nil {
		s.log.Error(ctx, "generate all qr codes", "error", err)
		s.notifier.AddNotification(NotificationError, "QR generation failed", "")
		return nil, err
	}
	s.notifier.AddNotification(NotificationSuccess, "QR codes generated", "")
	return resp, nil
}

func (s *ParticipantStore) QRCode(ctx context.Context, id int) (*models.QRCodeResponse, error) {
	return s.api.GetQRCode(ctx, id)
}

// Import bulk-creates participants and then re-fetches the roster, since the
// server decides ordering and grouping of the imported rows.
func (s *ParticipantStore) Import(ctx context.Context, req models.ImportParticipantsRequest) (*models.BatchResult, error) {
	resp, err := s.api.Import(ctx, req)
	if err != nil {
		s.log.Error(ctx, "import participants", "error", err)
		s.notifier.AddNotification(NotificationError, "Import failed", "")
		return nil, err
	}
	s.notifier.AddNotification(NotificationSuccess, "Import finished", "")
	s.notifier.UpdateLastUpdateTime()
	if err := s.Fetch(ctx); err != nil {
		return resp, err
	}
	return resp, nil
}

// CheckIn verifies the three-factor identity (QR, phone suffix, name) and
// marks the cached participant checked in once the server confirms.
func (s *ParticipantStore) CheckIn(ctx context.Context, req models.CheckinVerifyRequest) (*models.CheckinVerifyResponse, error) {
	resp, err := s.checkin.Verify(ctx, req)
	if err != nil {
		s.log.Warn(ctx, "check-in verify failed", "error", err)
		s.notifier.AddNotification(NotificationError, "Check-in failed", "Identity could not be verified")
		return nil, err
	}

	s.mu.Lock()
	s.patchLocked(resp.Participant)
	if s.current != nil && s.current.ID == resp.Participant.ID {
		p := resp.Participant
		s.current = &p
	}
	s.mu.Unlock()

	s.notifier.AddNotification(NotificationSuccess, "Checked in", resp.Participant.Name)
	s.notifier.UpdateLastUpdateTime()
	return resp, nil
}

func (s *ParticipantStore) FetchCheckinStats(ctx context.Context) (*models.CheckinStats, error) {
	stats, err := s.checkin.Stats(ctx)
	if err != nil {
		s.log.Error(ctx, "fetch check-in stats", "error", err)
		return nil, err
	}
	return stats, nil
}

func (s *ParticipantStore) FetchCheckinLogs(ctx context.Context) error {
	logs, err := s.checkin.Logs(ctx)
	if err != nil {
		s.log.Error(ctx, "fetch check-in logs", "error", err)
		return err
	}
	s.mu.Lock()
	s.logs = logs
	s.mu.Unlock()
	return nil
}

func (s *ParticipantStore) patchLocked(p models.Participant) {
	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i] = p
			return
		}
	}
}

func (s *ParticipantStore) Items() []models.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Participant, len(s.items))
	copy(out, s.items)
	return out
}

func (s *ParticipantStore) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *ParticipantStore) Current() *models.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	p := *s.current
	return &p
}

func (s *ParticipantStore) CheckinLogs() []models.CheckinLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CheckinLog, len(s.logs))
	copy(out, s.logs)
	return out
}

func (s *ParticipantStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *ParticipantStore) CheckedInCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, p := range s.items {
		if p.IsCheckedIn {
			count++
		}
	}
	return count
}

// CheckinRate is the checked-in percentage of the cached roster, 0 when the
// cache is empty.
func (s *ParticipantStore) CheckinRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return 0
	}
	count := 0
	for _, p := range s.items {
		if p.IsCheckedIn {
			count++
		}
	}
	return float64(count) / float64(len(s.items)) * 100
}

// OrganizationStats aggregates per-organization check-in counts over the
// cached roster, sorted by organization name.
func (s *ParticipantStore) OrganizationStats() []models.OrgCheckinStat {
	s.mu.Lock()
	defer s.mu.Unlock()

	byOrg := map[string]*models.OrgCheckinStat{}
	for _, p := range s.items {
		stat, ok := byOrg[p.Organization]
		if !ok {
			stat = &models.OrgCheckinStat{Organization: p.Organization}
			byOrg[p.Organization] = stat
		}
		stat.Total++
		if p.IsCheckedIn {
			stat.CheckedIn++
		}
	}

	out := make([]models.OrgCheckinStat, 0, len(byOrg))
	for _, stat := range byOrg {
		if stat.Total > 0 {
			stat.Rate = math.Round(float64(stat.CheckedIn)/float64(stat.Total)*10000) / 100
		}
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Organization < out[j].Organization })
	return out
}

// ungroupedBucket labels roster entries that belong to no group.
const ungroupedBucket = "Ungrouped"

// GroupStats aggregates per-group check-in counts over the cached roster,
// sorted by group name.
func (s *ParticipantStore) GroupStats() []models.GroupCheckinStat {
	s.mu.Lock()
	defer s.mu.Unlock()

	byGroup := map[string]*models.GroupCheckinStat{}
	for _, p := range s.items {
		name := p.GroupName
		if name == "" {
			name = ungroupedBucket
		}
		stat, ok := byGroup[name]
		if !ok {
			stat = &models.GroupCheckinStat{Group: name}
			byGroup[name] = stat
		}
		stat.Total++
		if p.IsCheckedIn {
			stat.CheckedIn++
		}
	}

	out := make([]models.GroupCheckinStat, 0, len(byGroup))
	for _, stat := range byGroup {
		if stat.Total > 0 {
			stat.Rate = math.Round(float64(stat.CheckedIn)/float64(stat.Total)*10000) / 100
		}
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out
}
