package docstats_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/mdnav/internal/clipboard"
	"github.com/bethropolis/mdnav/internal/config"
	"github.com/bethropolis/mdnav/internal/event"
	"github.com/bethropolis/mdnav/internal/host"
	"github.com/bethropolis/mdnav/internal/host/textctl"
	"github.com/bethropolis/mdnav/internal/plugin"
	"github.com/bethropolis/mdnav/internal/speech"
	"github.com/bethropolis/mdnav/plugins/docstats"
)

type fakeAPI struct {
	ctrl     host.Control
	rec      *speech.Recorder
	commands map[string]plugin.CommandFunc
	statuses []string
}

var _ plugin.EditorAPI = (*fakeAPI)(nil)

func (f *fakeAPI) ActiveControl() host.Control    { return f.ctrl }
func (f *fakeAPI) DocumentPath() string           { return "test.md" }
func (f *fakeAPI) Speaker() speech.Speaker        { return f.rec }
func (f *fakeAPI) Clipboard() *clipboard.Manager  { return clipboard.NewManager(false) }
func (f *fakeAPI) DispatchEvent(event.Type, interface{}) bool { return false }
func (f *fakeAPI) SubscribeEvent(event.Type, event.Handler)   {}
func (f *fakeAPI) NavigatorConfig() config.NavigatorConfig {
	return config.NewDefaultConfig().Navigator
}

func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.statuses = append(f.statuses, fmt.Sprintf(format, args...))
}

func (f *fakeAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	f.commands[name] = cmdFunc
	return nil
}

func TestStatsCommand(t *testing.T) {
	api := &fakeAPI{
		ctrl: textctl.New("# Title\n\nsome words here\n## Sub\n", textctl.Config{
			Kind:     textctl.KindLinear,
			AppName:  "notepad",
			Encoding: textctl.EncodingUTF8,
		}),
		rec:      &speech.Recorder{},
		commands: make(map[string]plugin.CommandFunc),
	}

	p := docstats.New()
	require.NoError(t, p.Initialize(api))

	cmd, ok := api.commands["stats"]
	require.True(t, ok)
	require.NoError(t, cmd(nil))

	want := "Lines: 4, Words: 7, Headings: 2"
	assert.Equal(t, []string{want}, api.statuses)
	assert.Equal(t, []string{want}, api.rec.Messages)
}
