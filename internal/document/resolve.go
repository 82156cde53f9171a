// internal/document/resolve.go
package document

import (
	"github.com/bethropolis/mdnav/internal/host"
	"github.com/bethropolis/mdnav/internal/logger"
)

// webApps is the allow-list of browser identities that get the flat text
// strategy. Overridable from configuration at startup.
var webApps = map[string]bool{
	"chrome":  true,
	"msedge":  true,
	"firefox": true,
	"opera":   true,
	"brave":   true,
	"browser": true,
}

// IsWebApp reports whether appName is on the browser allow-list.
func IsWebApp(appName string) bool {
	return webApps[appName]
}

// SetWebApps replaces the browser allow-list. Call once during startup,
// before any navigation runs.
func SetWebApps(names []string) {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	webApps = m
}

// Resolve produces a host range covering line i, expanded to line
// granularity. Three strategies, checked in priority order:
//
//  1. linear-offset controls: convert the line's character offset into the
//     control's native units (converter if available, UTF-16 table
//     otherwise) and force the offsets directly;
//  2. flat web text objects: inject the UTF-16 offset into a
//     whole-document flat range;
//  3. anything else: replay the line delta from the original caret with
//     incremental unit movement.
//
// Indexes at or past the line count resolve to the end of the document.
func (s *Snapshot) Resolve(i int) (host.Range, error) {
	if or, ok := s.doc.(host.OffsetRange); ok {
		offset := s.nativeOffset(i)
		r := or.Clone().(host.OffsetRange)
		r.SetOffsets(offset, offset)
		if err := r.Expand(host.UnitLine); err != nil {
			return nil, err
		}
		return r, nil
	}

	if IsWebApp(s.ctrl.AppName()) {
		if fp, ok := s.ctrl.(host.FlatTextProvider); ok {
			flat, err := fp.FlatDocumentRange()
			if err != nil {
				logger.Debugf("Snapshot: flat text object unavailable (%v), falling back", err)
			} else {
				target := s.utf16Clamped(i)
				flat.SetOffsets(target, target)
				if err := flat.Expand(host.UnitLine); err != nil {
					logger.Debugf("Snapshot: flat expand failed (%v)", err)
				}
				return flat, nil
			}
		} else {
			logger.Debugf("Snapshot: control missing flat text capability, falling back")
		}
		// Fall through to incremental movement.
	}

	// Strategy 3 is the only one that works without the offset tables: one
	// native move call per line of delta, starting from the untouched
	// original caret.
	unit := host.StepUnitFor(s.doc)
	r := s.originalCaret.Clone()
	if err := r.Expand(unit); err != nil {
		return nil, err
	}
	if err := r.Collapse(host.EdgeStart); err != nil {
		return nil, err
	}
	if _, err := r.Move(unit, i-s.originalLine); err != nil {
		return nil, err
	}
	if err := r.Expand(host.UnitLine); err != nil {
		return nil, err
	}
	return r, nil
}

// nativeOffset converts line i's start into the linear control's native
// units: exact converter first, precomputed UTF-16 table on failure or
// absence, extrapolating past the table from the remaining tail text.
func (s *Snapshot) nativeOffset(i int) int {
	charOffset := s.LineStart(i)
	if ea, ok := s.ctrl.(host.EncodingAware); ok {
		if conv := ea.Converter(); conv != nil {
			offset, err := conv.ToNative(charOffset)
			if err == nil {
				return offset
			}
			logger.Debugf("Snapshot: offset conversion failed (%v), falling back to UTF-16", err)
		}
	}
	return s.utf16Extrapolated(i)
}

// PlaceCaret moves the host caret to the start of line i and returns the
// resolved line range for speech.
func (s *Snapshot) PlaceCaret(i int) (host.Range, error) {
	lineRange, err := s.Resolve(i)
	if err != nil {
		return nil, err
	}
	caret := lineRange.Clone()
	if err := caret.Collapse(host.EdgeStart); err != nil {
		return nil, err
	}
	if err := caret.PlaceCaret(); err != nil {
		return nil, err
	}
	return lineRange, nil
}
