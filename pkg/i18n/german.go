package i18n

func germanSet() TranslationSet {
	return TranslationSet{
		ComponentColumn:    "Komponente",
		EnabledColumn:      "Aktiv",
		StateColumn:        "Zustand",
		LastBuiltColumn:    "Zuletzt gebaut",
		SizeColumn:         "Größe",
		ServicesTitle:      "Dienste",
		AllServicesTab:     "Alle",
		EnabledServicesTab: "Aktiv",
		AboutTitle:         "Über",
		NoServices:         "Keine Dienste",
		NoContainer:        "Kein Container für Dienst %s",
		ServiceDisabled:    "Dienst %s ist deaktiviert",
		NothingEnabled:     "Kein Dienst ist aktiv",
		EventDropped:       "Beschäftigt, bitte erneut versuchen",
		StoppingContainer:  "Container wird gestoppt",
		RemovingContainer:  "Container wird entfernt",
		Refreshing:         "Aktualisiere",
		RunningCommand:     "Führe aus",
		PressEnterToReturn: "Drücke Enter, um zu dcv zurückzukehren",
		Quit:               "Beenden",
		StackUp:            "Stack starten",
		StackDown:          "Stack stoppen",
		EnableDisable:      "An/Aus",
		Stop:               "Stoppen",
		Remove:             "Entfernen",
		Build:              "Bauen",
		Navigate:           "Navigieren",
		SwitchTab:          "Tab wechseln",
		About:              "Über",
		Close:              "Schließen",
		Scroll:             "Scrollen",
		ProjectNotCreated:  "nicht erstellt",
		ProjectRunning:     "läuft",
		ProjectStopped:     "gestoppt",
		ProjectMixed:       "teilweise gestartet",
		ContainersRunning:  "%d/%d Container laufen",
		ConfigTitle:        "Deine Konfiguration, zusammengeführt mit den Standardwerten",
		AliasesTitle:       "Dienst-Aliase",
		ComposeFilesTitle:  "Compose-Dateien",
		SettingsFileTitle:  "Einstellungsdatei",
	}
}
