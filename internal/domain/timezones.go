package domain

// TimezoneOption pairs a human-readable label with the identifier stored
// in the preference.
type TimezoneOption struct {
	Label string
	ID    string
}

// DefaultTimezoneID is offered as the one-tap choice on the first
// onboarding prompt. Etc/GMT zones use the POSIX sign convention, so
// Etc/GMT-3 is UTC+3 (Moscow).
const DefaultTimezoneID = "Etc/GMT-3"

// TimezoneCatalogue is the fixed browse-all list shown when a subscriber
// asks for more than the default. Static configuration, not derived at
// runtime.
var TimezoneCatalogue = []TimezoneOption{
	{"UTC-12:00 Baker Island", "Etc/GMT+12"},
	{"UTC-11:00 Pago Pago", "Etc/GMT+11"},
	{"UTC-10:00 Honolulu", "Etc/GMT+10"},
	{"UTC-09:00 Anchorage", "Etc/GMT+9"},
	{"UTC-08:00 Los Angeles", "Etc/GMT+8"},
	{"UTC-07:00 Denver", "Etc/GMT+7"},
	{"UTC-06:00 Mexico City", "Etc/GMT+6"},
	{"UTC-05:00 New York", "Etc/GMT+5"},
	{"UTC-04:00 Caracas", "Etc/GMT+4"},
	{"UTC-03:00 Buenos Aires", "Etc/GMT+3"},
	{"UTC-02:00 South Georgia", "Etc/GMT+2"},
	{"UTC-01:00 Azores", "Etc/GMT+1"},
	{"UTC±00:00 London", "Etc/GMT"},
	{"UTC+01:00 Berlin", "Etc/GMT-1"},
	{"UTC+02:00 Kaliningrad", "Etc/GMT-2"},
	{"UTC+03:00 Moscow", "Etc/GMT-3"},
	{"UTC+04:00 Samara", "Etc/GMT-4"},
	{"UTC+05:00 Yekaterinburg", "Etc/GMT-5"},
	{"UTC+06:00 Omsk", "Etc/GMT-6"},
	{"UTC+07:00 Krasnoyarsk", "Etc/GMT-7"},
	{"UTC+08:00 Irkutsk", "Etc/GMT-8"},
	{"UTC+09:00 Yakutsk", "Etc/GMT-9"},
	{"UTC+10:00 Vladivostok", "Etc/GMT-10"},
	{"UTC+11:00 Magadan", "Etc/GMT-11"},
	{"UTC+12:00 Kamchatka", "Etc/GMT-12"},
	{"UTC+13:00 Nuku'alofa", "Etc/GMT-13"},
	{"UTC+14:00 Kiritimati", "Etc/GMT-14"},
}

// TimezoneLabel returns the catalogue label for id, or id itself when the
// identifier was typed in rather than picked from the list.
func TimezoneLabel(id string) string {
	for _, opt := range TimezoneCatalogue {
		if opt.ID == id {
			return opt.Label
		}
	}
	return id
}
