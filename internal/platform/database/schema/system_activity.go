package schema

// SystemActivityTable represents the 'system.activity' table
type SystemActivityTable struct {
	Table      string
	ID         string
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	Summary    string
	CreatedAt  string
}

var SystemActivity = SystemActivityTable{
	Table:      "system.activity",
	ID:         "id",
	UserID:     "userid",
	Action:     "action",
	EntityType: "entitytype",
	EntityID:   "entityid",
	Summary:    "summary",
	CreatedAt:  "createdat",
}
