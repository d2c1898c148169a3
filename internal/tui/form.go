package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitalog-dev/vitalog/internal/core"
	"github.com/vitalog-dev/vitalog/internal/store"
)

// entryForm collects one log entry for a tracker: one numeric input per
// schema field, plus date and note inputs. Fields left blank are simply
// not recorded; an explicit 0 is.
type entryForm struct {
	tracker core.TrackerSchema
	inputs  []textinput.Model
	index   int
	errMsg  string
}

const (
	formDateIdx = iota // extra inputs precede the schema fields
	formNoteIdx
	formFieldBase
)

func newEntryForm(tracker core.TrackerSchema, loc *time.Location) *entryForm {
	f := &entryForm{tracker: tracker}

	date := newFormInput("Date (YYYY-MM-DD): ")
	date.SetValue(time.Now().In(loc).Format("2006-01-02"))
	note := newFormInput("Note: ")
	f.inputs = append(f.inputs, date, note)

	for _, field := range tracker.Fields {
		prompt := field.Label
		if field.Unit != "" {
			prompt += " (" + field.Unit + ")"
		}
		f.inputs = append(f.inputs, newFormInput(prompt+": "))
	}
	return f
}

func newFormInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (f *entryForm) focusIndex(idx int) tea.Cmd {
	count := len(f.inputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	f.index = idx

	var cmd tea.Cmd
	for i := range f.inputs {
		if i == f.index {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

// handleKey advances the form. It returns the finished entry when the
// user submits, and done=true on both submit and cancel.
func (f *entryForm) handleKey(msg tea.KeyMsg, loc *time.Location) (entry *store.Entry, done bool, cmd tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return nil, true, nil
	case tea.KeyEnter:
		e, err := f.buildEntry(loc)
		if err != nil {
			f.errMsg = err.Error()
			return nil, false, nil
		}
		return &e, true, nil
	case tea.KeyTab, tea.KeyDown:
		return nil, false, f.focusIndex(f.index + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return nil, false, f.focusIndex(f.index - 1)
	}

	f.inputs[f.index], cmd = f.inputs[f.index].Update(msg)
	return nil, false, cmd
}

func (f *entryForm) buildEntry(loc *time.Location) (store.Entry, error) {
	if loc == nil {
		loc = time.Local
	}

	dateStr := strings.TrimSpace(f.inputs[formDateIdx].Value())
	occurred, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return store.Entry{}, fmt.Errorf("invalid date (expected YYYY-MM-DD)")
	}

	values := make(map[string]float64)
	for i, field := range f.tracker.Fields {
		raw := strings.TrimSpace(f.inputs[formFieldBase+i].Value())
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return store.Entry{}, fmt.Errorf("%s: not a number", field.Label)
		}
		values[field.Name] = v
	}
	if len(values) == 0 {
		return store.Entry{}, fmt.Errorf("enter at least one value")
	}

	return store.Entry{
		Tracker:    f.tracker.ID,
		OccurredAt: occurred,
		Note:       strings.TrimSpace(f.inputs[formNoteIdx].Value()),
		Values:     values,
	}, nil
}

func (f *entryForm) view(w int) string {
	var sb strings.Builder
	sb.WriteString("  " + headerStyle.Render(f.tracker.Icon+" Log "+f.tracker.Name) + "\n\n")
	for i := range f.inputs {
		marker := "  "
		if i == f.index {
			marker = helpKeyStyle.Render("› ")
		}
		sb.WriteString("  " + marker + f.inputs[i].View() + "\n")
	}
	if f.errMsg != "" {
		sb.WriteString("\n  " + formErrorStyle.Render(f.errMsg) + "\n")
	}
	sb.WriteString("\n  " + helpStyle.Render("enter save · tab next field · esc cancel") + "\n")
	return sb.String()
}
