package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/unioncup/contestdesk/internal/client/models"
)

// ParticipantsAPI wraps /api/participants.
type ParticipantsAPI struct {
	c *Client
}

func participantQueryValues(q models.ParticipantQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.Organization != "" {
		v.Set("organization", q.Organization)
	}
	if q.GroupID != nil {
		v.Set("group_id", strconv.Itoa(*q.GroupID))
	}
	if q.IsCheckedIn != nil {
		v.Set("is_checked_in", strconv.FormatBool(*q.IsCheckedIn))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

func (a *ParticipantsAPI) List(ctx context.Context, q models.ParticipantQuery) (*models.Page[models.Participant], error) {
	var out models.Page[models.Participant]
	if err := a.c.get(ctx, "/api/participants", participantQueryValues(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ParticipantsAPI) Get(ctx context.Context, id int) (*models.Participant, error) {
	var out models.Participant
	if err := a.c.get(ctx, fmt.Sprintf("/api/participants/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ParticipantsAPI) GetByQR(ctx context.Context, qrID string) (*models.Participant, error) {
	var out models.Participant
	if err := a.c.get(ctx, "/api/participants/qr/"+url.PathEscape(qrID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ParticipantsAPI) GetQRCode(ctx context.Context, id int) (*models.QRCodeResponse, error) {
	var out models.QRCodeResponse
	if err := a.c.get(ctx, fmt.Sprintf("/api/participants/%d/qrcode", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ParticipantsAPI) Create(ctx context.Context, req models.CreateParticipantRequest) (*models.Participant, error) {
	var out models.Participant
	if err := a.c.post(ctx, "/api/participants", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ParticipantsAPI) Update(ctx context.Context, id int, req models.UpdateParticipantRequest) (*models.Participant, error) {
	var out models.Participant
	if err := a.c.put(ctx, fmt.Sprintf("/api/participants/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ParticipantsAPI) Delete(ctx context.Context, id int) error {
	return a.c.delete(ctx, fmt.Sprintf("/api/participants/%d", id))
}

func (a *ParticipantsAPI) UploadPhoto(ctx context.Context, id int, filename string, data []byte) (*models.FileUploadResponse, error) {
	var out models.FileUploadResponse
	path := fmt.Sprintf("/api/participants/%d/photo", id)
	if err := a.c.upload(ctx, path, "photo", filename, data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ParticipantsAPI) GenerateQRCode(ctx context.Context, id int) (*models.QRCodeResponse, error) {
	var out models.QRCodeResponse
	if err := a.c.post(ctx, fmt.Sprintf("/api/participants/%d/qrcode", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ParticipantsAPI) GenerateAllQRCodes(ctx context.Context) (*models.BatchResult, error) {
	var out models.BatchResult
	if err := a.c.post(ctx, "/api/participants/qrcodes", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ParticipantsAPI) Import(ctx context.Context, req models.ImportParticipantsRequest) (*models.BatchResult, error) {
	var out models.BatchResult
	if err := a.c.post(ctx, "/api/participants/import", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
