package model

// Identifier types accepted by the account service verification-code
// endpoints.
const (
	IdentifierEmail = "email"
	IdentifierPhone = "phone"
)

// Identifier is a contact identifier sent to the account service.
type Identifier struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// UserProfile holds the structured name fields of the account record.
type UserProfile struct {
	GivenName  string `json:"givenName,omitempty"`
	FamilyName string `json:"familyName,omitempty"`
}

// UserIdentity is a linked social identity on the account record.
type UserIdentity struct {
	UserID  string         `json:"userId"`
	Details map[string]any `json:"details,omitempty"`
}

// Organization is an organization the user belongs to.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OrganizationRole is a role held within an organization.
type OrganizationRole struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	OrganizationID string `json:"organizationId"`
}

// UserData is the account record as returned by the account service.
type UserData struct {
	ID                string                  `json:"id"`
	Username          string                  `json:"username,omitempty"`
	Name              string                  `json:"name,omitempty"`
	Avatar            string                  `json:"avatar,omitempty"`
	PrimaryEmail      string                  `json:"primaryEmail,omitempty"`
	PrimaryPhone      string                  `json:"primaryPhone,omitempty"`
	Profile           UserProfile             `json:"profile"`
	CustomData        map[string]any          `json:"customData"`
	Identities        map[string]UserIdentity `json:"identities"`
	LastSignInAt      int64                   `json:"lastSignInAt,omitempty"`
	CreatedAt         int64                   `json:"createdAt"`
	UpdatedAt         int64                   `json:"updatedAt"`
	Organizations     []Organization          `json:"organizations,omitempty"`
	OrganizationRoles []OrganizationRole      `json:"organizationRoles,omitempty"`
}

// BasicInfoUpdate carries the directly editable account fields. Empty
// fields are omitted from the update.
type BasicInfoUpdate struct {
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}
