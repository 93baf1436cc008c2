package entities

type SyncApproval string

const (
	SyncApprovalUnknown SyncApproval = "unknown"
	SyncApprovalYes     SyncApproval = "yes"
	SyncApprovalNo      SyncApproval = "no"
)

type UserAction string

const (
	UserActionLogin  UserAction = "login"
	UserActionLogout UserAction = "logout"
)

// PremiumCredentials are the base64 encoded api key and secret of a premium subscription.
type PremiumCredentials struct {
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
}

func (c PremiumCredentials) IsEmpty() bool {
	return c.APIKey == "" && c.APISecret == ""
}

type UserStatus string

const (
	UserStatusLoggedIn  UserStatus = "loggedin"
	UserStatusLoggedOut UserStatus = "loggedout"
)

type User struct {
	Name         string       `json:"name"`
	Status       UserStatus   `json:"status"`
	Premium      bool         `json:"premium"`
	SyncApproval SyncApproval `json:"sync_approval"`
}
