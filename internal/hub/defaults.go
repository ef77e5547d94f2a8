package hub

const (
	AppName = "FF TOURNAMENT HUB"

	DefaultUPIID         = "pawanponnam-1@okicici"
	DefaultAdminWhatsApp = "919867637326"

	DefaultTotalSlots = 48
	DefaultMinSlots   = 10
)

// Keys of the durable local storage.
const (
	ProfileKey = "ff_hub_user_profile"
	HistoryKey = "ff_hub_tournament_history"
)

// DefaultBanners returns the built-in sample banners. The slice is a fresh copy.
func DefaultBanners() []string {
	return []string{
		"https://images.unsplash.com/photo-1542751371-adc38448a05e?auto=format&fit=crop&q=80&w=800",
		"https://images.unsplash.com/photo-1511512578047-dfb367046420?auto=format&fit=crop&q=80&w=800",
	}
}

// DefaultRules returns the built-in rule set. The slice is a fresh copy.
func DefaultRules() []string {
	return []string{
		"Strictly no hacks or 3rd party tools.",
		"Emulator players are not allowed unless specified.",
		"Must join the room 10 minutes before the start.",
		"Screen recording is recommended for dispute resolution.",
		"Prize will be distributed within 24 hours of match completion.",
	}
}

// DefaultConfig is the configuration used until a document says otherwise.
func DefaultConfig() AppConfig {
	return AppConfig{
		Banners:       DefaultBanners(),
		Rules:         DefaultRules(),
		UPIID:         DefaultUPIID,
		AdminWhatsApp: DefaultAdminWhatsApp,
	}
}
