// Package fileupload implements the file dropzone behavior: candidate
// files are validated against accept patterns, a size limit, and a count
// limit, splitting every drop into accepted files and typed rejections.
package fileupload

import (
	"path/filepath"
	"strings"

	"github.com/hypoth-org/hypoth-ui-sub001/aria"
	"github.com/hypoth-org/hypoth-ui-sub001/host"
)

// File is one candidate. MIME carries the content type when the host knows
// it; Size is in bytes.
type File struct {
	Name string
	MIME string
	Size int64
}

// RejectReason classifies why a candidate was refused.
type RejectReason string

const (
	ReasonInvalidType RejectReason = "invalid-type"
	ReasonTooLarge    RejectReason = "too-large"
	ReasonTooMany     RejectReason = "too-many"
	ReasonDuplicate   RejectReason = "duplicate"
)

// Rejection pairs a refused file with its reason.
type Rejection struct {
	File   File
	Reason RejectReason
}

// Options configures a Behavior.
type Options struct {
	// Accept lists patterns a candidate must match: a MIME type
	// ("image/png"), a wildcard family ("image/*"), or an extension
	// (".pdf"). Empty accepts everything.
	Accept []string
	// MaxSize is the per-file byte limit. Zero means unlimited.
	MaxSize int64
	// MaxFiles caps the accepted set. Zero means unlimited.
	MaxFiles int
	// Multiple permits more than one file. Single mode replaces the
	// accepted set on each drop.
	Multiple   bool
	Disabled   bool
	GenerateID aria.Generator

	// OnFilesChange fires with the accepted set after every change.
	OnFilesChange func(files []File)
	// OnReject fires with the rejections of one drop.
	OnReject func(rejections []Rejection)
}

// Behavior is a file dropzone state machine.
type Behavior struct {
	opts      Options
	id        string
	files     []File
	dragging  bool
	destroyed bool
}

// New constructs the behavior with defaults applied.
func New(opts Options) *Behavior {
	if opts.GenerateID == nil {
		opts.GenerateID = aria.NewGenerator("fileupload")
	}
	if !opts.Multiple && opts.MaxFiles == 0 {
		opts.MaxFiles = 1
	}
	return &Behavior{opts: opts, id: opts.GenerateID()}
}

// Files returns the accepted set.
func (b *Behavior) Files() []File { return append([]File(nil), b.files...) }

// Dragging reports whether a drag hovers the dropzone.
func (b *Behavior) Dragging() bool { return b.dragging }

// DragEnter marks the dropzone as hovered.
func (b *Behavior) DragEnter() {
	if b.destroyed || b.opts.Disabled {
		return
	}
	b.dragging = true
}

// DragLeave clears the hover mark.
func (b *Behavior) DragLeave() { b.dragging = false }

// Drop validates candidates and merges the accepted ones into the set.
// Returns the rejections; the same list reaches OnReject.
func (b *Behavior) Drop(candidates []File) []Rejection {
	if b.destroyed || b.opts.Disabled {
		return nil
	}
	b.dragging = false

	prev := len(b.files)
	if !b.opts.Multiple {
		b.files = nil
	}
	var accepted []File
	var rejected []Rejection
	count := len(b.files)
	for _, f := range candidates {
		switch {
		case !b.typeAllowed(f):
			rejected = append(rejected, Rejection{File: f, Reason: ReasonInvalidType})
		case b.opts.MaxSize > 0 && f.Size > b.opts.MaxSize:
			rejected = append(rejected, Rejection{File: f, Reason: ReasonTooLarge})
		case b.has(f) || contains(accepted, f):
			rejected = append(rejected, Rejection{File: f, Reason: ReasonDuplicate})
		case b.opts.MaxFiles > 0 && count >= b.opts.MaxFiles:
			rejected = append(rejected, Rejection{File: f, Reason: ReasonTooMany})
		default:
			accepted = append(accepted, f)
			count++
		}
	}
	if len(accepted) > 0 || len(b.files) != prev {
		b.files = append(b.files, accepted...)
		b.notifyFiles()
	}
	if len(rejected) > 0 && b.opts.OnReject != nil {
		b.opts.OnReject(rejected)
	}
	return rejected
}

// Remove drops one accepted file by name.
func (b *Behavior) Remove(name string) {
	if b.destroyed {
		return
	}
	kept := b.files[:0]
	for _, f := range b.files {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(b.files) {
		return
	}
	b.files = kept
	b.notifyFiles()
}

// Clear empties the accepted set.
func (b *Behavior) Clear() {
	if b.destroyed || len(b.files) == 0 {
		return
	}
	b.files = nil
	b.notifyFiles()
}

// HandleKeyDown maps Enter and Space to opening the host file picker via
// OpenPicker. Reports whether the event was consumed.
func (b *Behavior) HandleKeyDown(ev host.KeyEvent, openPicker func()) bool {
	if b.destroyed || b.opts.Disabled {
		return false
	}
	switch ev.Key {
	case host.KeyEnter, host.KeySpace:
		if openPicker != nil {
			openPicker()
		}
		return true
	}
	return false
}

// DropzoneProps returns the attribute map for the dropzone element.
func (b *Behavior) DropzoneProps() map[string]string {
	props := map[string]string{
		"id":       b.id,
		"role":     "button",
		"tabindex": "0",
	}
	if b.opts.Disabled {
		props["aria-disabled"] = "true"
		props["tabindex"] = "-1"
	}
	if b.dragging {
		props["data-dragging"] = "true"
	}
	return props
}

// InputProps returns the attribute map for the hidden native input.
func (b *Behavior) InputProps() map[string]string {
	props := map[string]string{
		"type":        "file",
		"tabindex":    "-1",
		"aria-hidden": "true",
	}
	if len(b.opts.Accept) > 0 {
		props["accept"] = strings.Join(b.opts.Accept, ",")
	}
	if b.opts.Multiple {
		props["multiple"] = "true"
	}
	return props
}

// Destroy makes the behavior inert. Repeated calls are no-ops.
func (b *Behavior) Destroy() {
	b.destroyed = true
	b.files = nil
}

// typeAllowed matches a candidate against the accept patterns: exact MIME,
// MIME family wildcard, or filename extension.
func (b *Behavior) typeAllowed(f File) bool {
	if len(b.opts.Accept) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(f.Name))
	mime := strings.ToLower(f.MIME)
	for _, pattern := range b.opts.Accept {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		switch {
		case pattern == "":
		case strings.HasPrefix(pattern, "."):
			if ext == pattern {
				return true
			}
		case strings.HasSuffix(pattern, "/*"):
			if mime != "" && strings.HasPrefix(mime, strings.TrimSuffix(pattern, "*")) {
				return true
			}
		default:
			if mime == pattern {
				return true
			}
		}
	}
	return false
}

func (b *Behavior) has(f File) bool { return contains(b.files, f) }

func (b *Behavior) notifyFiles() {
	if b.opts.OnFilesChange != nil {
		b.opts.OnFilesChange(b.Files())
	}
}

// contains treats name plus size as file identity.
func contains(files []File, f File) bool {
	for _, existing := range files {
		if existing.Name == f.Name && existing.Size == f.Size {
			return true
		}
	}
	return false
}
