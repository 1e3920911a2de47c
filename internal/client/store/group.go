package store

import (
	"context"
	"sort"
	"sync"

	"github.com/unioncup/contestdesk/internal/client/models"
	"github.com/unioncup/contestdesk/internal/logging"
)

type groupAPI interface {
	List(ctx context.Context) ([]models.Group, error)
	Get(ctx context.Context, id int) (*models.GroupDetail, error)
	Members(ctx context.Context, id int) ([]models.Participant, error)
	Create(ctx context.Context, req models.CreateGroupRequest) (*models.Group, error)
	Update(ctx context.Context, id int, req models.UpdateGroupRequest) (*models.Group, error)
	Delete(ctx context.Context, id int) error
	AddMember(ctx context.Context, groupID, participantID int) error
	RemoveMember(ctx context.Context, groupID, participantID int) error
	AssignMembers(ctx context.Context, groupID int, participantIDs []int) error
	SwapMembers(ctx context.Context, group1, participant1, group2, participant2 int) error
	AutoGroup(ctx context.Context, req models.AutoGroupRequest) (*models.AutoGroupResponse, error)
	Balance(ctx context.Context) (*models.BalanceGroupsResponse, error)
	Draw(ctx context.Context, req models.DrawLotsRequest) (*models.DrawLotsResponse, error)
	SetDrawOrder(ctx context.Context, id, order int) error
	AvailableParticipants(ctx context.Context) ([]models.Participant, error)
}

// GroupStore caches the group list (unpaginated; contests have tens of
// groups) plus the currently inspected group with its members.
type GroupStore struct {
	mu       sync.Mutex
	api      groupAPI
	notifier Notifier
	log      logging.Logger

	groups    []models.Group
	current   *models.GroupDetail
	available []models.Participant

	loading  bool
	fetchGen uint64
}

func NewGroupStore(api groupAPI, notifier Notifier, log logging.Logger) *GroupStore {
	return &GroupStore{api: api, notifier: notifier, log: log}
}

func (s *GroupStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if gen == s.fetchGen {
			s.loading = false
		}
		s.mu.Unlock()
	}()

	groups, err := s.api.List(ctx)
	if err != nil {
		s.log.Error(ctx, "fetch groups", "error", err)
		s.notifier.AddNotification(NotificationError, "Load failed", "Could not load groups")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		return nil
	}
	s.groups = groups
	return nil
}

func (s *GroupStore) FetchDetail(ctx context.Context, id int) (*models.GroupDetail, error) {
	detail, err := s.api.Get(ctx, id)
	if err != nil {
		s.log.Error(ctx, "fetch group detail", "id", id, "error", err)
		return nil, err
	}
	s.mu.Lock()
	s.current = detail
	s.patchLocked(detail.Group)
	s.mu.Unlock()
	return detail, nil
}

func (s *GroupStore) Create(ctx context.Context, req models.CreateGroupRequest) (*models.Group, error) {
	g, err := s.api.Create(ctx, req)
	if err != nil {
		s.log.Error(ctx, "create group", "error", err)
		s.notifier.AddNotification(NotificationError, "Create failed", "Could not create group")
		return nil, err
	}

	s.mu.Lock()
	s.groups = append([]models.Group{*g}, s.groups...)
	s.mu.Unlock()

	s.notifier.AddNotification(NotificationSuccess, "Group created", g.Name)
	s.notifier.UpdateLastUpdateTime()
	return g, nil
}

func (s *GroupStore) Update(ctx context.Context, id int, req models.UpdateGroupRequest) (*models.Group, error) {
	g, err := s.api.Update(ctx, id, req)
	if err != nil {
		s.log.Error(ctx, "update group", "id", id, "error", err)
		s.notifier.AddNotification(NotificationError, "Update failed", "Could not update group")
		return nil, err
	}

	s.mu.Lock()
	s.patchLocked(*g)
	if s.current != nil && s.current.ID == g.ID {
		s.current.Group = *g
	}
	s.mu.Unlock()

	s.notifier.AddNotification(NotificationSuccess, "Group updated", g.Name)
	s.notifier.UpdateLastUpdateTime()
	return g, nil
}

func (s *GroupStore) Delete(ctx context.Context, id int) error {
	if err := s.api.Delete(ctx, id); err != nil {
		s.log.Error(ctx, "delete group", "id", id, "error", err)
		s.notifier.AddNotification(NotificationError, "Delete failed", "Could not delete group")
		return err
	}

	s.mu.Lock()
	for i := range s.groups {
		if s.groups[i].ID == id {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.mu.Unlock()

	s.notifier.AddNotification(NotificationSuccess, "Group deleted", "")
	s.notifier.UpdateLastUpdateTime()
	return nil
}

// AddMember attaches a participant and bumps the cached member count; the
// member list itself is authoritative only after the next FetchDetail.
func (s *GroupStore) AddMember(ctx context.Context, groupID, participantID int) error {
	if err := s.api.AddMember(ctx, groupID, participantID); err != nil {
		s.log.Error(ctx, "add group member", "group", groupID, "participant", participantID, "error", err)
		s.notifier.AddNotification(NotificationError, "Assignment failed", "Could not add member")
		return err
	}

	s.mu.Lock()
	for i := range s.groups {
		if s.groups[i].ID == groupID {
			s.groups[i].MemberCount++
			break
		}
	}
	s.mu.Unlock()

	s.notifier.UpdateLastUpdateTime()
	return nil
}

func (s *GroupStore) RemoveMember(ctx context.Context, groupID, participantID int) error {
	if err := s.api.RemoveMember(ctx, groupID, participantID); err != nil {
		s.log.Error(ctx, "remove group member", "group", groupID, "participant", participantID, "error", err)
		s.notifier.AddNotification(NotificationError, "Removal failed", "Could not remove member")
		return err
	}

	s.mu.Lock()
	for i := range s.groups {
		if s.groups[i].ID == groupID && s.groups[i].MemberCount > 0 {
			s.groups[i].MemberCount--
			break
		}
	}
	if s.current != nil && s.current.ID == groupID {
		for i := range s.current.Members {
			if s.current.Members[i].ID == participantID {
				s.current.Members = append(s.current.Members[:i], s.current.Members[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	s.notifier.UpdateLastUpdateTime()
	return nil
}

func (s *GroupStore) AssignMembers(ctx context.Context, groupID int, participantIDs []int) error {
	if err := s.api.AssignMembers(ctx, groupID, participantIDs); err != nil {
		s.log.Error(ctx, "assign group members", "group", groupID, "error", err)
		s.notifier.AddNotification(NotificationError, "Assignment failed", "Could not assign members")
		return err
	}
	s.notifier.AddNotification(NotificationSuccess, "Members assigned", "")
	s.notifier.UpdateLastUpdateTime()
	return s.Fetch(ctx)
}

func (s *GroupStore) SwapMembers(ctx context.Context, group1, participant1, group2, participant2 int) error {
	if err := s.api.SwapMembers(ctx, group1, participant1, group2, participant2); err != nil {
		s.log.Error(ctx, "swap group members", "error", err)
		s.notifier.AddNotification(NotificationError, "Swap failed", "Could not swap members")
		return err
	}
	s.notifier.AddNotification(NotificationSuccess, "Members swapped", "")
	s.notifier.UpdateLastUpdateTime()
	return nil
}

// AutoGroup asks the backend to regroup everyone by organization and caches
// the resulting group set.
func (s *GroupStore) AutoGroup(ctx context.Context, req models.AutoGroupRequest) (*models.AutoGroupResponse, error) {
	resp, err := s.api.AutoGroup(ctx, req)
	if err != nil {
		s.log.Error(ctx, "auto group", "error", err)
		s.notifier.AddNotification(NotificationError, "Auto-grouping failed", "")
		return nil, err
	}

	s.mu.Lock()
	s.groups = resp.Groups
	s.mu.Unlock()

	s.notifier.AddNotification(NotificationSuccess, "Auto-grouping finished", resp.Message)
	s.notifier.UpdateLastUpdateTime()
	return resp, nil
}

func (s *GroupStore) Balance(ctx context.Context) error {
	resp, err := s.api.Balance(ctx)
	if err != nil {
		s.log.Error(ctx, "balance groups", "error", err)
		s.notifier.AddNotification(NotificationError, "Balancing failed", "")
		return err
	}
	s.notifier.AddNotification(NotificationSuccess, "Groups balanced", resp.Message)
	s.notifier.UpdateLastUpdateTime()
	return s.Fetch(ctx)
}

// DrawLots runs the draw on the backend and applies the assigned slots to
// the cached groups.
func (s *GroupStore) DrawLots(ctx context.Context, req models.DrawLotsRequest) (*models.DrawLotsResponse, error) {
	resp, err := s.api.Draw(ctx, req)
	if err != nil {
		s.log.Error(ctx, "draw lots", "error", err)
		s.notifier.AddNotification(NotificationError, "Draw failed", "")
		return nil, err
	}

	s.mu.Lock()
	for _, r := range resp.Results {
		for i := range s.groups {
			if s.groups[i].ID == r.GroupID {
				order := r.DrawOrder
				s.groups[i].DrawOrder = &order
				break
			}
		}
	}
	s.mu.Unlock()

	s.notifier.AddNotification(NotificationSuccess, "Draw finished", "")
	s.notifier.UpdateLastUpdateTime()
	return resp, nil
}

func (s *GroupStore) SetDrawOrder(ctx context.Context, id, order int) error {
	if err := s.api.SetDrawOrder(ctx, id, order); err != nil {
		s.log.Error(ctx, "set draw order", "id", id, "error", err)
		s.notifier.AddNotification(NotificationError, "Update failed", "Could not set draw order")
		return err
	}

	s.mu.Lock()
	for i := range s.groups {
		if s.groups[i].ID == id {
			o := order
			s.groups[i].DrawOrder = &o
			break
		}
	}
	s.mu.Unlock()

	s.notifier.UpdateLastUpdateTime()
	return nil
}

// FetchAvailable loads the participants not yet assigned to any group.
func (s *GroupStore) FetchAvailable(ctx context.Context) error {
	participants, err := s.api.AvailableParticipants(ctx)
	if err != nil {
		s.log.Error(ctx, "fetch available participants", "error", err)
		return err
	}
	s.mu.Lock()
	s.available = participants
	s.mu.Unlock()
	return nil
}

func (s *GroupStore) patchLocked(g models.Group) {
	for i := range s.groups {
		if s.groups[i].ID == g.ID {
			s.groups[i] = g
			return
		}
	}
}

func (s *GroupStore) Groups() []models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Group, len(s.groups))
	copy(out, s.groups)
	return out
}

func (s *GroupStore) Current() *models.GroupDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	detail := *s.current
	detail.Members = make([]models.Participant, len(s.current.Members))
	copy(detail.Members, s.current.Members)
	return &detail
}

func (s *GroupStore) Available() []models.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Participant, len(s.available))
	copy(out, s.available)
	return out
}

func (s *GroupStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SortedByDrawOrder returns the groups in running order: drawn groups first
// by slot, undrawn groups after by id.
func (s *GroupStore) SortedByDrawOrder() []models.Group {
	out := s.Groups()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DrawOrder, out[j].DrawOrder
		switch {
		case a != nil && b != nil:
			return *a < *b
		case a != nil:
			return true
		case b != nil:
			return false
		default:
			return out[i].ID < out[j].ID
		}
	})
	return out
}

// MemberTotal sums the cached member counts.
func (s *GroupStore) MemberTotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, g := range s.groups {
		total += g.MemberCount
	}
	return total
}
