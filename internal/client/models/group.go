package models

// Group is a presentation group. DrawOrder stays nil until a draw event
// assigns this group a slot in the running order.
type Group struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	DrawOrder     *int     `json:"draw_order,omitempty"`
	MemberCount   int      `json:"member_count"`
	Organizations []string `json:"organizations"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// GroupDetail is the single-group payload, which includes members.
type GroupDetail struct {
	Group
	Members []Participant `json:"members"`
}

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type UpdateGroupRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// AutoGroupRequest tunes the backend's group-by-organization algorithm.
type AutoGroupRequest struct {
	MaxGroups          *int `json:"max_groups,omitempty"`
	MinMembersPerGroup *int `json:"min_members_per_group,omitempty"`
	MaxMembersPerGroup *int `json:"max_members_per_group,omitempty"`
}

type AutoGroupResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Groups  []Group `json:"groups"`
}

type DrawLotsRequest struct {
	GroupIDs []int `json:"group_ids,omitempty"`
}

// DrawResult is one group's assigned slot after a backend-run draw.
type DrawResult struct {
	GroupID   int `json:"group_id"`
	DrawOrder int `json:"draw_order"`
}

type DrawLotsResponse struct {
	Success bool         `json:"success"`
	Results []DrawResult `json:"results"`
}

type BalanceGroupsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
