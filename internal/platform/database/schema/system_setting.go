package schema

// SystemSettingTable represents the 'system.setting' table
type SystemSettingTable struct {
	Table     string
	Key       string
	Value     string
	UpdatedAt string
}

// SystemSetting is the schema definition for system.setting
var SystemSetting = SystemSettingTable{
	Table:     "system.setting",
	Key:       "key",
	Value:     "value",
	UpdatedAt: "updatedat",
}
