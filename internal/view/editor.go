// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of vdash

package view

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wI2L/jsondiff"
	"gopkg.in/yaml.v3"

	"github.com/vdash/vdash/internal/dao"
	"github.com/vdash/vdash/internal/model1"
)

// Editor errors
var (
	ErrEditorCancelled = errors.New("editor cancelled")
	ErrNoChanges       = errors.New("no changes detected")
)

// Suspender hands the terminal over while fn runs.
type Suspender interface {
	Suspend(fn func()) bool
}

// EditSession is one round of editing a record in $EDITOR.
type EditSession struct {
	rid      *dao.ResourceID
	edited   model1.Record
	tempFile string
	errorMsg string
}

// NewEditSession returns a session over rec. A nil record starts from an
// empty document.
func NewEditSession(rid *dao.ResourceID, rec model1.Record) *EditSession {
	if rec == nil {
		rec = make(model1.Record)
	}
	return &EditSession{rid: rid, edited: rec}
}

// SetError sets the message shown on top of the document on retry.
func (e *EditSession) SetError(msg string) {
	e.errorMsg = msg
}

// Cleanup removes the temporary file.
func (e *EditSession) Cleanup() {
	if e.tempFile != "" {
		_ = os.Remove(e.tempFile)
		e.tempFile = ""
	}
}

// StartEdit writes the record to a temp file, runs the editor and parses
// the result.
func (e *EditSession) StartEdit(s Suspender) (model1.Record, error) {
	if e.tempFile == "" {
		f, err := os.CreateTemp("", fmt.Sprintf("vdash-%s-*.yaml", e.rid.Resource))
		if err != nil {
			return nil, fmt.Errorf("failed to create temp file: %w", err)
		}
		e.tempFile = f.Name()
		_ = f.Close()
	}
	bb, err := e.document()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(e.tempFile, bb, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	code, err := spawnEditor(s, e.tempFile)
	if err != nil {
		return nil, fmt.Errorf("editor failed: %w", err)
	}
	if code != 0 {
		return nil, ErrEditorCancelled
	}

	content, err := os.ReadFile(e.tempFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}

	return ParseRecord(content)
}

// document renders the YAML shown in the editor, with the last error as
// a comment header.
func (e *EditSession) document() ([]byte, error) {
	var buf bytes.Buffer
	if e.errorMsg != "" {
		for _, l := range strings.Split(e.errorMsg, "\n") {
			buf.WriteString("# ERROR: " + l + "\n")
		}
		buf.WriteString("# Fix the issue below and save, or quit without saving to cancel.\n\n")
	}
	bb, err := yaml.Marshal(map[string]any(e.edited))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	buf.Write(bb)

	return buf.Bytes(), nil
}

// ParseRecord decodes an edited YAML document into a record with JSON
// compatible values.
func ParseRecord(bb []byte) (model1.Record, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(bb, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if raw == nil {
		return nil, ErrEditorCancelled
	}
	js, err := json.Marshal(plainTimes(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid record: %w", err)
	}
	var rec model1.Record
	if err := json.Unmarshal(js, &rec); err != nil {
		return nil, fmt.Errorf("invalid record: %w", err)
	}

	return rec, nil
}

// plainTimes turns the timestamps yaml decodes from bare dates back into
// the text records carry.
func plainTimes(v any) any {
	switch t := v.(type) {
	case time.Time:
		if h, m, sec := t.Clock(); h == 0 && m == 0 && sec == 0 && t.Nanosecond() == 0 {
			return t.Format(model1.DateLayout)
		}
		return t.Format(time.RFC3339)
	case map[string]any:
		for k, e := range t {
			t[k] = plainTimes(e)
		}
	case []any:
		for i, e := range t {
			t[i] = plainTimes(e)
		}
	}

	return v
}

// GeneratePatch returns the JSON patch turning original into modified,
// or ErrNoChanges.
func GeneratePatch(original, modified model1.Record) (string, error) {
	patch, err := jsondiff.Compare(map[string]any(original), map[string]any(modified))
	if err != nil {
		return "", fmt.Errorf("failed to generate patch: %w", err)
	}
	if len(patch) == 0 {
		return "", ErrNoChanges
	}
	bb, err := json.Marshal(patch)
	if err != nil {
		return "", fmt.Errorf("failed to marshal patch: %w", err)
	}

	return string(bb), nil
}

// EditRecord runs the edit loop for rec and saves the result. Save
// failures reopen the editor with the error on top. A nil rec creates a
// new record from tpl.
func EditRecord(ctx context.Context, s Suspender, saver dao.Saver, rid *dao.ResourceID, rec, tpl model1.Record) (model1.Record, error) {
	create := rec == nil
	if create {
		rec = tpl
	}
	session := NewEditSession(rid, rec)
	defer session.Cleanup()

	for {
		modified, err := session.StartEdit(s)
		if err != nil {
			return nil, err
		}

		patch, err := GeneratePatch(session.edited, modified)
		if err != nil {
			if errors.Is(err, ErrNoChanges) && session.errorMsg != "" {
				return nil, ErrEditorCancelled
			}
			return nil, err
		}
		if !create && modified.ID() != rec.ID() {
			session.edited = modified
			session.SetError(fmt.Sprintf("id is read only, expected %q", rec.ID()))
			continue
		}

		saved, err := saver.Save(ctx, modified)
		if err != nil {
			session.edited = modified
			session.SetError(err.Error())
			continue
		}
		log.Info().Str("resource", rid.String()).Str("id", saved.ID()).Str("patch", patch).Msg("Record saved")

		return saved, nil
	}
}

func spawnEditor(s Suspender, path string) (int, error) {
	argv := strings.Fields(editorCmd())
	argv = append(argv, path)

	var code int
	ok := s.Suspend(func() {
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
		if err := cmd.Run(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
				return
			}
			code = 1
		}
	})
	if !ok {
		return 1, errors.New("failed to suspend application")
	}

	return code, nil
}

// editorCmd checks $EDITOR, then $VISUAL, then falls back to vim or nano.
func editorCmd() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	if _, err := exec.LookPath("vim"); err == nil {
		return "vim"
	}
	return "nano"
}

// InvoiceTemplate returns the document a new invoice starts from.
func InvoiceTemplate(now time.Time) model1.Record {
	return model1.Record{
		"customer_name": "",
		"email":         "",
		"date":          now.Format(model1.DateLayout),
		"due_date":      now.AddDate(0, 0, 30).Format(model1.DateLayout),
		"quantity":      1,
		"amount":        0,
		"status":        dao.InvoiceUnpaid,
	}
}
