package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table         string
	ID            string
	Email         string
	Password      string
	DisplayName   string
	Username      string
	Bio           string
	AvatarURL     string
	Website       string
	Role          string
	Plan          string
	PlanExpiresAt string
	Status        string
	CreatedAt     string
	UpdatedAt     string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:         "users.account",
	ID:            "id",
	Email:         "email",
	Password:      "passwordhash",
	DisplayName:   "displayname",
	Username:      "username",
	Bio:           "bio",
	AvatarURL:     "avatarurl",
	Website:       "website",
	Role:          "role",
	Plan:          "plan",
	PlanExpiresAt: "planexpiresat",
	Status:        "status",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

// Columns returns all standard column names in scan order
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Password, t.DisplayName, t.Username, t.Bio, t.AvatarURL,
		t.Website, t.Role, t.Plan, t.PlanExpiresAt, t.Status, t.CreatedAt, t.UpdatedAt,
	}
}
