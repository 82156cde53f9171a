// Package speech defines the output surface navigation talks to. The real
// synthesizer lives in the host screen reader; the demo app routes this to
// the status bar and terminal bell.
package speech

// Speaker receives navigation output.
type Speaker interface {
	// Speak announces content at a navigation destination (a matched
	// substring or a full line).
	Speak(text string)

	// Message announces an informational message, e.g. "no next heading".
	Message(text string)

	// Beep queues a short tone.
	Beep()
}

// Null discards all output.
type Null struct{}

func (Null) Speak(string)   {}
func (Null) Message(string) {}
func (Null) Beep()          {}

// Recorder captures output for inspection in tests.
type Recorder struct {
	Spoken   []string
	Messages []string
	Beeps    int
}

func (r *Recorder) Speak(text string)   { r.Spoken = append(r.Spoken, text) }
func (r *Recorder) Message(text string) { r.Messages = append(r.Messages, text) }
func (r *Recorder) Beep()               { r.Beeps++ }

// Reset clears everything recorded so far.
func (r *Recorder) Reset() {
	r.Spoken = nil
	r.Messages = nil
	r.Beeps = 0
}
