package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cabzii/internal/domain/models"
	"cabzii/internal/utils"
)

// ProfileStore is the client profile persistence surface.
type ProfileStore interface {
	FindByID(ctx context.Context, id string) (models.Client, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, set map[string]any) (models.Client, error)
}

// ProfileInput is the editable profile surface. Mobile is deliberately
// absent: it is the login identity and never changes through this path.
type ProfileInput struct {
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	Identity  *string `json:"identity"`
	Email     *string `json:"email"`
	Address1  *string `json:"address1"`
	Address2  *string `json:"address2"`
	Landmark  *string `json:"landmark"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	Zip       *string `json:"zip"`
}

// ClientProfileService reads and edits the non-booking half of the client
// aggregate.
type ClientProfileService struct {
	Store     ProfileStore
	RequestID string
}

func (s ClientProfileService) Get(ctx context.Context, id string) (models.Client, error) {
	return s.Store.FindByID(ctx, id)
}

// Update applies allow-listed profile fields and returns the fresh document.
func (s ClientProfileService) Update(ctx context.Context, id string, in ProfileInput) (models.Client, error) {
	client, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return models.Client{}, err
	}

	set := map[string]any{}
	put := func(key string, v *string) {
		if v != nil {
			set[key] = utils.TrimOrEmpty(*v)
		}
	}
	put("firstname", in.FirstName)
	put("lastname", in.LastName)
	put("identity", in.Identity)
	put("email", in.Email)
	put("address1", in.Address1)
	put("address2", in.Address2)
	put("landmark", in.Landmark)
	put("city", in.City)
	put("state", in.State)
	put("zip", in.Zip)

	if len(set) == 0 {
		return client, nil
	}

	updated, err := s.Store.UpdateProfile(ctx, client.ID, set)
	if err != nil {
		return models.Client{}, err
	}
	utils.LogEvent(s.RequestID, "client", "update_profile", id)
	return updated, nil
}
