package catalog

// Section keys of the builtin catalog.
const (
	KeyGeneral      = "general"
	KeyAppearance   = "appearance"
	KeyImport       = "import"
	KeyMetrics      = "metrics"
	KeyGear         = "gear"
	KeyZwift        = "zwift"
	KeyIntegrations = "integrations"
	KeyDaemon       = "daemon"
)

var builtin = New(
	Section{Key: KeyGeneral, Label: "General", Subsections: []Subsection{
		{Key: "athlete", Label: "Athlete"},
	}},
	Section{Key: KeyAppearance, Label: "Appearance", Subsections: []Subsection{
		{Key: "dashboard", Label: "Dashboard"},
		{Key: "photos", Label: "Photos"},
	}},
	Section{Key: KeyImport, Label: "Import"},
	Section{Key: KeyMetrics, Label: "Metrics", Subsections: []Subsection{
		{Key: "eddington", Label: "Eddington"},
		{Key: "consistencyChallenges", Label: "Consistency Challenges"},
	}},
	Section{Key: KeyGear, Label: "Gear"},
	Section{Key: KeyZwift, Label: "Zwift"},
	Section{Key: KeyIntegrations, Label: "Integrations", Subsections: []Subsection{
		{Key: "notifications", Label: "Notifications"},
		{Key: "ai", Label: "AI"},
	}},
	Section{Key: KeyDaemon, Label: "Daemon"},
)

// Builtin returns the application's section catalog.
func Builtin() *Catalog {
	return builtin
}
