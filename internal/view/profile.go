// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of vdash

package view

import (
	"context"
	"fmt"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/vdash/vdash/internal/aws"
	"github.com/vdash/vdash/internal/model"
	"github.com/vdash/vdash/internal/ui"
)

var profileHeader = []string{"", "PROFILE", "REGION", "ROLE", "KEYS"}

// ProfileList lists the local AWS profiles. Selecting one reconnects the
// S3 store with it.
type ProfileList struct {
	*tview.Table

	app      *App
	profiles []aws.Profile
	current  string
	actions  *ui.KeyActions
}

// NewProfileList returns the profile list.
func NewProfileList(app *App) *ProfileList {
	p := ProfileList{
		Table:   tview.NewTable(),
		app:     app,
		actions: ui.NewKeyActions(),
	}
	p.SetBorder(true)
	p.SetTitle(" Profiles ")
	p.SetTitleAlign(tview.AlignCenter)
	p.SetBorderColor(tcell.ColorAqua)
	p.SetBackgroundColor(tcell.ColorDefault)
	p.SetSelectable(true, false)
	p.SetFixed(1, 0)

	return &p
}

// Init binds the keys.
func (p *ProfileList) Init(context.Context) error {
	p.actions.Bulk(ui.KeyMap{
		tcell.KeyEnter: ui.NewKeyAction("Switch", p.switchCmd, true),
		ui.KeyR:        ui.NewKeyAction("Reload", p.reloadCmd, true),
	})
	p.SetInputCapture(p.keyboard)

	return nil
}

// Start lists the profiles.
func (p *ProfileList) Start() {
	p.load()
}

// Stop is a no-op.
func (*ProfileList) Stop() {}

// Name returns the view name.
func (*ProfileList) Name() string {
	return "profile"
}

// Hints returns menu hints.
func (p *ProfileList) Hints() ui.MenuHints {
	return p.actions.Hints()
}

func (p *ProfileList) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	row, col := p.GetSelection()
	last := p.GetRowCount() - 1
	switch ui.AsKey(evt) {
	case ui.KeyJ:
		p.Select(min(row+1, last), col)
		return nil
	case ui.KeyK:
		p.Select(max(row-1, 1), col)
		return nil
	case ui.KeyG:
		p.Select(min(1, last), col)
		return nil
	case ui.KeyShiftG:
		p.Select(last, col)
		return nil
	}
	evt, _ = p.actions.Dispatch(evt)

	return evt
}

func (p *ProfileList) reloadCmd(*tcell.EventKey) *tcell.EventKey {
	p.load()
	return nil
}

func (p *ProfileList) load() {
	p.Clear()
	for col, h := range profileHeader {
		p.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetExpansion(1))
	}

	pp, err := p.app.profiles.Profiles()
	if err != nil {
		p.showMessage(err.Error(), tcell.ColorRed)
		p.app.Notify(err.Error(), model.SeverityError)
		return
	}
	p.profiles = pp
	p.current = aws.ActiveProfileName()
	if conn := p.app.cfg.Connection(); conn != nil {
		p.current = conn.ActiveProfile()
	}
	if len(pp) == 0 {
		p.showMessage("No profiles found", tcell.ColorGray)
		return
	}

	for i, pr := range pp {
		row := i + 1
		mark, color := "", tcell.ColorWhite
		if pr.Name == p.current {
			mark, color = "●", tcell.ColorGreen
		}
		region := pr.DefaultRegion
		if region == "" {
			region = "(default)"
		}
		keys := ""
		if pr.HasKeys {
			keys = "✓"
		}
		cells := []string{mark, pr.Name, region, pr.RoleARN, keys}
		for col, txt := range cells {
			p.SetCell(row, col, tview.NewTableCell(txt).SetTextColor(color).SetExpansion(1))
		}
	}
	p.SetTitle(fmt.Sprintf(" Profiles [%d] ", len(pp)))
	p.Select(1, 0)
}

func (p *ProfileList) showMessage(msg string, c tcell.Color) {
	p.SetCell(1, 1, tview.NewTableCell(msg).
		SetTextColor(c).
		SetSelectable(false))
}

// Selected returns the highlighted profile.
func (p *ProfileList) Selected() (aws.Profile, bool) {
	row, _ := p.GetSelection()
	if row < 1 || row > len(p.profiles) {
		return aws.Profile{}, false
	}
	return p.profiles[row-1], true
}

func (p *ProfileList) switchCmd(*tcell.EventKey) *tcell.EventKey {
	pr, ok := p.Selected()
	if !ok {
		return nil
	}
	if pr.Name == p.current {
		p.app.Notify(fmt.Sprintf("Already using profile %s", pr.Name), model.SeverityInfo)
		return nil
	}
	p.app.SwitchProfile(pr.Name, pr.DefaultRegion, p.load)

	return nil
}
