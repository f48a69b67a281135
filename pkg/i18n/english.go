package i18n

// TranslationSet is a set of localised strings for a given language
type TranslationSet struct {
	ComponentColumn      string
	EnabledColumn        string
	StateColumn          string
	LastBuiltColumn      string
	SizeColumn           string
	ServicesTitle        string
	AllServicesTab       string
	EnabledServicesTab   string
	AboutTitle           string
	NoServices           string
	NoContainer          string
	ServiceDisabled      string
	NothingEnabled       string
	EventDropped         string
	StoppingContainer    string
	RemovingContainer    string
	Refreshing           string
	RunningCommand       string
	PressEnterToReturn   string
	Quit                 string
	StackUp              string
	StackDown            string
	EnableDisable        string
	Stop                 string
	Remove               string
	Shell                string
	Build                string
	Logs                 string
	Navigate             string
	SwitchTab            string
	About                string
	Close                string
	Scroll               string
	ProjectNotCreated    string
	ProjectRunning       string
	ProjectStopped       string
	ProjectMixed         string
	ContainersRunning    string
	ConfigTitle          string
	AliasesTitle         string
	ComposeFilesTitle    string
	SettingsFileTitle    string
	ErrorOccurred        string
	ConnectionFailedHint string
}

func englishSet() TranslationSet {
	return TranslationSet{
		ComponentColumn:      "Component",
		EnabledColumn:        "Enabled",
		StateColumn:          "State",
		LastBuiltColumn:      "Last Built",
		SizeColumn:           "Size",
		ServicesTitle:        "Services",
		AllServicesTab:       "All",
		EnabledServicesTab:   "Enabled",
		AboutTitle:           "About",
		NoServices:           "No services to show",
		NoContainer:          "No container for service %s",
		ServiceDisabled:      "Service %s is disabled, enable it first",
		NothingEnabled:       "No service is enabled",
		EventDropped:         "Busy, try again",
		StoppingContainer:    "Stopping container",
		RemovingContainer:    "Removing container",
		Refreshing:           "Refreshing",
		RunningCommand:       "Running",
		PressEnterToReturn:   "Press enter to return to dcv",
		Quit:                 "Quit",
		StackUp:              "Stack Up",
		StackDown:            "Stack Down",
		EnableDisable:        "Enable/Disable",
		Stop:                 "Stop",
		Remove:               "Remove",
		Shell:                "Shell",
		Build:                "Build",
		Logs:                 "Logs",
		Navigate:             "Navigate",
		SwitchTab:            "Switch tab",
		About:                "About",
		Close:                "Close",
		Scroll:               "Scroll",
		ProjectNotCreated:    "not created",
		ProjectRunning:       "running",
		ProjectStopped:       "stopped",
		ProjectMixed:         "partially running",
		ContainersRunning:    "%d/%d containers running",
		ConfigTitle:          "Your config, merged with the defaults",
		AliasesTitle:         "Service aliases",
		ComposeFilesTitle:    "Compose files",
		SettingsFileTitle:    "Settings file",
		ErrorOccurred:        "An error occurred! Please create an issue at https://github.com/peauc/dcv/issues",
		ConnectionFailedHint: "Could not reach the docker daemon. Is it running, and does DOCKER_HOST point at it?",
	}
}
