package gui

import (
	"testing"

	"github.com/peauc/dcv/pkg/i18n"
	"github.com/peauc/dcv/pkg/reconcile"
	"github.com/peauc/dcv/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func newTestGui() *Gui {
	log := utils.NewDummyLog()
	tr := i18n.NewTranslationSet(log, "en")
	return NewGui(log, tr, nil, nil, StackInfo{Title: "shop", Project: "shop"})
}

func testSnapshot() *Snapshot {
	return &Snapshot{View: &reconcile.View{Rows: []*reconcile.Row{
		{Service: "cache"},
		{Service: "db", Enabled: true},
		{Service: "web", Enabled: true},
	}}}
}

func TestMoveSelectionWraps(t *testing.T) {
	gui := newTestGui()
	gui.Publish(testSnapshot())

	assert.Equal(t, "cache", gui.selectedService())

	gui.moveSelection(-1)
	assert.Equal(t, "web", gui.selectedService())

	gui.moveSelection(1)
	assert.Equal(t, "cache", gui.selectedService())

	gui.moveSelection(1)
	assert.Equal(t, "db", gui.selectedService())
}

func TestEnabledModeOnlyListsEnabledServices(t *testing.T) {
	gui := newTestGui()
	gui.Publish(testSnapshot())
	gui.State.UIMode = MODE_ENABLED

	assert.Len(t, gui.visibleRows(), 2)
	assert.Equal(t, "db", gui.selectedService())

	gui.moveSelection(1)
	gui.moveSelection(1)
	assert.Equal(t, "db", gui.selectedService())
}

func TestPublishClampsSelection(t *testing.T) {
	gui := newTestGui()
	gui.Publish(testSnapshot())
	gui.moveSelection(-1)

	gui.Publish(&Snapshot{View: &reconcile.View{Rows: []*reconcile.Row{{Service: "web"}}}})
	assert.Equal(t, 0, gui.State.SelectedLine)
	assert.Equal(t, "web", gui.selectedService())
}

func TestSelectedServiceWithoutRows(t *testing.T) {
	gui := newTestGui()
	assert.Equal(t, "", gui.selectedService())

	gui.moveSelection(1)
	assert.Equal(t, 0, gui.State.SelectedLine)
}

func TestSetStatus(t *testing.T) {
	gui := newTestGui()
	gui.SetStatus("Stopping container")
	assert.Equal(t, "Stopping container", gui.State.Status)
}

func TestOptionsMapToString(t *testing.T) {
	gui := newTestGui()
	assert.Equal(t, "a: first, b: second", gui.optionsMapToString(map[string]string{"b": "second", "a": "first"}))

	options := gui.optionsMap()
	assert.Equal(t, gui.Tr.EnableDisable, options["e"])
	assert.Equal(t, gui.Tr.Quit, options["esc/q"])
	assert.NotContains(t, options, "")
}
