package domain

type DNDSettings struct {
	Schedules      []DNDSchedule `json:"schedules"`
	CalendarSync   bool          `json:"calendarSync"`
	SmartDetection bool          `json:"smartDetection"`
}

type Settings struct {
	SedentaryThresholdMin int         `json:"sedentaryThreshold"`
	NotificationsEnabled  bool        `json:"notificationsEnabled"`
	DoNotDisturb          DNDSettings `json:"doNotDisturb"`
}

func DefaultSettings() Settings {
	return Settings{
		SedentaryThresholdMin: 45,
		NotificationsEnabled:  true,
		DoNotDisturb: DNDSettings{
			SmartDetection: true,
		},
	}
}
