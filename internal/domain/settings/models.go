package settings

const CollectionKey = "settings"

type Company struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Website string `json:"website"`
	Logo    string `json:"logo"`
}

type Notifications struct {
	EmailNotifications bool `json:"emailNotifications"`
	LeaveApprovals     bool `json:"leaveApprovals"`
	NewEmployees       bool `json:"newEmployees"`
	PerformanceReviews bool `json:"performanceReviews"`
	DailyReports       bool `json:"dailyReports"`
}

type Security struct {
	TwoFactorAuth         bool `json:"twoFactorAuth"`
	PasswordExpiryDays    int  `json:"passwordExpiryDays"`
	SessionTimeoutMinutes int  `json:"sessionTimeoutMinutes"`
	LoginAttempts         int  `json:"loginAttempts"`
}

type System struct {
	Language   string `json:"language"`
	DateFormat string `json:"dateFormat"`
	Timezone   string `json:"timezone"`
	Theme      string `json:"theme"`
}

type Settings struct {
	Company       Company       `json:"company"`
	Notifications Notifications `json:"notifications"`
	Security      Security      `json:"security"`
	System        System        `json:"system"`
}

// Patch replaces every section that is non-nil.
type Patch struct {
	Company       *Company       `json:"company,omitempty"`
	Notifications *Notifications `json:"notifications,omitempty"`
	Security      *Security      `json:"security,omitempty"`
	System        *System        `json:"system,omitempty"`
}

func Defaults() Settings {
	return Settings{
		Company: Company{
			Name:    "Core Crew Connect",
			Email:   "info@corecrew.com",
			Phone:   "+1 (555) 123-4567",
			Address: "123 Business Ave, Suite 100, San Francisco, CA 94107",
			Website: "https://corecrew.com",
			Logo:    "/placeholder.svg",
		},
		Notifications: Notifications{
			EmailNotifications: true,
			LeaveApprovals:     true,
			NewEmployees:       true,
			PerformanceReviews: true,
		},
		Security: Security{
			PasswordExpiryDays:    90,
			SessionTimeoutMinutes: 30,
			LoginAttempts:         5,
		},
		System: System{
			Language:   "en",
			DateFormat: "MM/DD/YYYY",
			Timezone:   "UTC-8",
			Theme:      "light",
		},
	}
}
