package encoding

import (
	"errors"

	"github.com/stellar/portfolio-backend/internal/entities"
)

var ErrIncompletePremiumCredentials = errors.New("Must provide both or neither of api key/secret")

type BaseUserRequest struct {
	Name         string `json:"name"          validate:"required"`
	Password     string `json:"password"      validate:"required"`
	SyncApproval string `json:"sync_approval" validate:"oneof=unknown yes no"`
}

type NewUserRequest struct {
	BaseUserRequest
	PremiumAPIKey    string `json:"premium_api_key"    validate:"omitempty,b64"`
	PremiumAPISecret string `json:"premium_api_secret" validate:"omitempty,b64"`
}

// NewNewUserRequest returns a request prefilled with the schema defaults.
func NewNewUserRequest() NewUserRequest {
	return NewUserRequest{BaseUserRequest: BaseUserRequest{SyncApproval: string(entities.SyncApprovalUnknown)}}
}

func (r NewUserRequest) Premium() (entities.PremiumCredentials, error) {
	return premiumCredentials(r.PremiumAPIKey, r.PremiumAPISecret)
}

type UserActionRequest struct {
	BaseUserRequest
	Action           string `json:"action"             validate:"omitempty,oneof=login logout"`
	PremiumAPIKey    string `json:"premium_api_key"    validate:"omitempty,b64"`
	PremiumAPISecret string `json:"premium_api_secret" validate:"omitempty,b64"`
}

// NewUserActionRequest returns a request for the user name taken from the path, prefilled
// with the schema defaults.
func NewUserActionRequest(name string) UserActionRequest {
	return UserActionRequest{BaseUserRequest: BaseUserRequest{
		Name:         name,
		SyncApproval: string(entities.SyncApprovalUnknown),
	}}
}

func (r UserActionRequest) Premium() (entities.PremiumCredentials, error) {
	return premiumCredentials(r.PremiumAPIKey, r.PremiumAPISecret)
}

func premiumCredentials(key, secret string) (entities.PremiumCredentials, error) {
	if (key == "") != (secret == "") {
		return entities.PremiumCredentials{}, ErrIncompletePremiumCredentials
	}
	return entities.PremiumCredentials{APIKey: key, APISecret: secret}, nil
}

// NewUsersResponse maps each user name to its login status.
func NewUsersResponse(users []entities.User) map[string]entities.UserStatus {
	resp := make(map[string]entities.UserStatus, len(users))
	for _, user := range users {
		resp[user.Name] = user.Status
	}
	return resp
}
