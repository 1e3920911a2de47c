package api

import (
	"context"
	"fmt"

	"github.com/unioncup/contestdesk/internal/client/models"
)

// GroupsAPI wraps /api/groups.
type GroupsAPI struct {
	c *Client
}

func (a *GroupsAPI) List(ctx context.Context) ([]models.Group, error) {
	var out []models.Group
	if err := a.c.get(ctx, "/api/groups", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *GroupsAPI) Get(ctx context.Context, id int) (*models.GroupDetail, error) {
	var out models.GroupDetail
	if err := a.c.get(ctx, fmt.Sprintf("/api/groups/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *GroupsAPI) Members(ctx context.Context, id int) ([]models.Participant, error) {
	var out []models.Participant
	if err := a.c.get(ctx, fmt.Sprintf("/api/groups/%d/members", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *GroupsAPI) Create(ctx context.Context, req models.CreateGroupRequest) (*models.Group, error) {
	var out models.Group
	if err := a.c.post(ctx, "/api/groups", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *GroupsAPI) Update(ctx context.Context, id int, req models.UpdateGroupRequest) (*models.Group, error) {
	var out models.Group
	if err := a.c.put(ctx, fmt.Sprintf("/api/groups/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *GroupsAPI) Delete(ctx context.Context, id int) error {
	return a.c.delete(ctx, fmt.Sprintf("/api/groups/%d", id))
}

func (a *GroupsAPI) AddMember(ctx context.Context, groupID, participantID int) error {
	path := fmt.Sprintf("/api/groups/%d/members/%d", groupID, participantID)
	return a.c.post(ctx, path, nil, nil)
}

func (a *GroupsAPI) RemoveMember(ctx context.Context, groupID, participantID int) error {
	return a.c.delete(ctx, fmt.Sprintf("/api/groups/%d/members/%d", groupID, participantID))
}

func (a *GroupsAPI) AssignMembers(ctx context.Context, groupID int, participantIDs []int) error {
	body := map[string][]int{"participant_ids": participantIDs}
	return a.c.post(ctx, fmt.Sprintf("/api/groups/%d/members", groupID), body, nil)
}

func (a *GroupsAPI) SwapMembers(ctx context.Context, group1, participant1, group2, participant2 int) error {
	body := map[string]int{
		"group1_id":       group1,
		"participant1_id": participant1,
		"group2_id":       group2,
		"participant2_id": participant2,
	}
	return a.c.post(ctx, "/api/groups/swap", body, nil)
}

func (a *GroupsAPI) AutoGroup(ctx context.Context, req models.AutoGroupRequest) (*models.AutoGroupResponse, error) {
	var out models.AutoGroupResponse
	if err := a.c.post(ctx, "/api/groups/auto", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *GroupsAPI) Balance(ctx context.Context) (*models.BalanceGroupsResponse, error) {
	var out models.BalanceGroupsResponse
	if err := a.c.post(ctx, "/api/groups/balance", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *GroupsAPI) Draw(ctx context.Context, req models.DrawLotsRequest) (*models.DrawLotsResponse, error) {
	var out models.DrawLotsResponse
	if err := a.c.post(ctx, "/api/groups/draw", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *GroupsAPI) SetDrawOrder(ctx context.Context, id, order int) error {
	body := map[string]int{"draw_order": order}
	return a.c.put(ctx, fmt.Sprintf("/api/groups/%d/draw-order", id), body, nil)
}

func (a *GroupsAPI) AvailableParticipants(ctx context.Context) ([]models.Participant, error) {
	var out []models.Participant
	if err := a.c.get(ctx, "/api/groups/available-participants", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
