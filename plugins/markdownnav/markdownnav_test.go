package markdownnav

import (
	"fmt"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/mdnav/internal/clipboard"
	"github.com/bethropolis/mdnav/internal/config"
	"github.com/bethropolis/mdnav/internal/event"
	"github.com/bethropolis/mdnav/internal/host"
	"github.com/bethropolis/mdnav/internal/host/textctl"
	"github.com/bethropolis/mdnav/internal/plugin"
	"github.com/bethropolis/mdnav/internal/speech"
)

// fakeAPI is an in-memory EditorAPI backed by a textctl document.
type fakeAPI struct {
	ctrl     host.Control
	rec      *speech.Recorder
	clip     *clipboard.Manager
	events   *event.Manager
	cfg      config.NavigatorConfig
	commands map[string]plugin.CommandFunc
	statuses []string
}

var _ plugin.EditorAPI = (*fakeAPI)(nil)

func newFakeAPI(text string) *fakeAPI {
	return &fakeAPI{
		ctrl: textctl.New(text, textctl.Config{
			Kind:     textctl.KindLinear,
			AppName:  "notepad",
			Encoding: textctl.EncodingUTF8,
		}),
		rec:      &speech.Recorder{},
		clip:     clipboard.NewManager(false),
		events:   event.NewManager(),
		cfg:      config.NewDefaultConfig().Navigator,
		commands: make(map[string]plugin.CommandFunc),
	}
}

func (f *fakeAPI) ActiveControl() host.Control  { return f.ctrl }
func (f *fakeAPI) DocumentPath() string         { return "test.md" }
func (f *fakeAPI) Speaker() speech.Speaker      { return f.rec }
func (f *fakeAPI) Clipboard() *clipboard.Manager { return f.clip }

func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.statuses = append(f.statuses, fmt.Sprintf(format, args...))
}

func (f *fakeAPI) DispatchEvent(eventType event.Type, data interface{}) bool {
	return f.events.Dispatch(eventType, data)
}

func (f *fakeAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	f.events.Subscribe(eventType, handler)
}

func (f *fakeAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	f.commands[name] = cmdFunc
	return nil
}

func (f *fakeAPI) NavigatorConfig() config.NavigatorConfig { return f.cfg }

func initPlugin(t *testing.T, api *fakeAPI) *MarkdownNav {
	t.Helper()
	p := New()
	require.NoError(t, p.Initialize(api))
	return p
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestToggleBrowseMode(t *testing.T) {
	api := newFakeAPI("# Title\n")
	api.cfg.AudioIndication = false
	p := initPlugin(t, api)

	var modes []bool
	api.SubscribeEvent(event.TypeModeChanged, func(e event.Event) bool {
		modes = append(modes, e.Data.(event.ModeChangedData).BrowseMode)
		return false
	})

	assert.True(t, p.handleKey(tcell.NewEventKey(tcell.KeyF2, 0, tcell.ModNone)))
	assert.True(t, p.BrowseMode())
	assert.Equal(t, []string{"Markdown Browse Mode On"}, api.rec.Messages)

	assert.True(t, p.handleKey(tcell.NewEventKey(tcell.KeyF2, 0, tcell.ModNone)))
	assert.False(t, p.BrowseMode())
	assert.Equal(t, []bool{true, false}, modes)
}

func TestToggleBrowseModeAudioIndication(t *testing.T) {
	api := newFakeAPI("# Title\n")
	p := initPlugin(t, api)

	assert.True(t, p.handleKey(tcell.NewEventKey(tcell.KeyF2, 0, tcell.ModNone)))
	assert.Equal(t, 1, api.rec.Beeps)
	assert.Empty(t, api.rec.Messages)
}

func TestKeysIgnoredOutsideBrowseMode(t *testing.T) {
	api := newFakeAPI("# Title\n\n## Sub\n")
	p := initPlugin(t, api)

	assert.False(t, p.handleKey(key('h')))
	assert.Empty(t, api.rec.Spoken)
	assert.Empty(t, api.rec.Messages)
}

func TestHeadingKeys(t *testing.T) {
	api := newFakeAPI("# Title\n\ntext\n## Sub\n")
	p := initPlugin(t, api)
	p.browseMode = true

	assert.True(t, p.handleKey(key('h')))
	assert.Equal(t, []string{"## Sub"}, api.rec.Spoken)

	api.rec.Reset()
	assert.True(t, p.handleKey(key('H')))
	assert.Equal(t, []string{"# Title"}, api.rec.Spoken)

	api.rec.Reset()
	assert.True(t, p.handleKey(key('H')))
	assert.Equal(t, []string{"no previous heading"}, api.rec.Messages)
}

func TestHeadingLevelKeys(t *testing.T) {
	api := newFakeAPI("# Title\n## Sub\n### Deep\n")
	p := initPlugin(t, api)
	p.browseMode = true

	assert.True(t, p.handleKey(key('2')))
	assert.Equal(t, []string{"## Sub"}, api.rec.Spoken)

	api.rec.Reset()
	assert.True(t, p.handleKey(key('4')))
	assert.Equal(t, []string{"No next heading at level 4"}, api.rec.Messages)

	// Shifted digits search backward.
	api.rec.Reset()
	assert.True(t, p.handleKey(key('!')))
	assert.Equal(t, []string{"# Title"}, api.rec.Spoken)
}

func TestBlockAndEdgeKeys(t *testing.T) {
	api := newFakeAPI("intro\n- a\n- b\nend\n")
	p := initPlugin(t, api)
	p.browseMode = true

	assert.True(t, p.handleKey(key('l')))
	assert.Equal(t, []string{"- a"}, api.rec.Spoken)

	api.rec.Reset()
	assert.True(t, p.handleKey(key(',')))
	assert.Equal(t, []string{"- b"}, api.rec.Spoken)

	api.rec.Reset()
	assert.True(t, p.handleKey(key('<')))
	assert.Equal(t, []string{"- a"}, api.rec.Spoken)
}

func TestTableCellKeys(t *testing.T) {
	api := newFakeAPI("| a | b |\n| c | d |\n")
	api.ctrl.(*textctl.Document).SetCaret(2)
	p := initPlugin(t, api)
	p.browseMode = true

	right := tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModCtrl|tcell.ModAlt)
	down := tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModCtrl|tcell.ModAlt)

	assert.True(t, p.handleKey(right))
	assert.Equal(t, []string{"b"}, api.rec.Spoken)

	api.rec.Reset()
	assert.True(t, p.handleKey(down))
	assert.Equal(t, []string{"d"}, api.rec.Spoken)
}

func TestTableCellKeysOutsideBrowseMode(t *testing.T) {
	api := newFakeAPI("| a | b |\n")
	p := initPlugin(t, api)

	right := tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModCtrl|tcell.ModAlt)
	assert.False(t, p.handleKey(right))
}

func TestTrapNonCommandGestures(t *testing.T) {
	api := newFakeAPI("text\n")
	p := initPlugin(t, api)
	p.browseMode = true

	assert.True(t, p.handleKey(key('z')))
	assert.Equal(t, 1, api.rec.Beeps)

	p.cfg.TrapNonCommandGestures = false
	assert.False(t, p.handleKey(key('z')))
	assert.Equal(t, 1, api.rec.Beeps)
}

func TestModifiedKeysPassThrough(t *testing.T) {
	api := newFakeAPI("# Title\n## Sub\n")
	p := initPlugin(t, api)
	p.browseMode = true

	assert.False(t, p.handleKey(tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModCtrl)))
	assert.False(t, p.handleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)))
	assert.Empty(t, api.rec.Spoken)
}

func TestBrowseCommand(t *testing.T) {
	api := newFakeAPI("text\n")
	p := initPlugin(t, api)

	cmd, ok := api.commands["browse"]
	require.True(t, ok)
	require.NoError(t, cmd(nil))
	assert.True(t, p.BrowseMode())
}

func TestCopyLineCommand(t *testing.T) {
	api := newFakeAPI("first line\nsecond\n")
	p := initPlugin(t, api)
	_ = p

	cmd, ok := api.commands["copyline"]
	require.True(t, ok)
	require.NoError(t, cmd(nil))
	assert.Equal(t, "first line", api.clip.Text())
	assert.Equal(t, []string{"Line copied"}, api.statuses)
}
