// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of vdash

package view

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/vdash/vdash/internal/aws"
	"github.com/vdash/vdash/internal/dao"
)

// StoreInfo shows where records are read from in the header.
type StoreInfo struct {
	*tview.Table

	version string
}

// NewStoreInfo returns a store info panel.
func NewStoreInfo(version string) *StoreInfo {
	s := StoreInfo{
		Table:   tview.NewTable(),
		version: version,
	}
	s.SetBorderPadding(0, 0, 1, 1)
	s.SetBackgroundColor(tcell.ColorDefault)
	s.SetSelectable(false, false)

	return &s
}

// SetInfo refreshes the panel from the store selection.
func (s *StoreInfo) SetInfo(spec dao.StoreSpec, readOnly bool) {
	s.Clear()

	kind := string(spec.Kind)
	if kind == "" {
		kind = string(dao.StoreMemory)
	}
	rows := [][2]string{{"Store:", kind}}
	switch spec.Kind {
	case dao.StoreFile, dao.StoreSQLite:
		rows = append(rows, [2]string{"Path:", spec.Path})
	case dao.StoreS3:
		rows = append(rows, [2]string{"Bucket:", spec.Bucket + "/" + spec.Prefix})
		rows = append(rows, connRows(spec.Conn)...)
	}
	mode := "[green::b]read/write"
	if readOnly {
		mode = "[red::b]read only"
	}
	rows = append(rows, [2]string{"Mode:", mode}, [2]string{"Rev:", s.version})

	for i, r := range rows {
		s.SetCell(i, 0, tview.NewTableCell(r[0]).SetTextColor(tcell.ColorOrange).SetSelectable(false))
		s.SetCell(i, 1, tview.NewTableCell(r[1]).SetTextColor(tcell.ColorWhite).SetSelectable(false).SetExpansion(1))
	}
}

func connRows(conn aws.Connection) [][2]string {
	if conn == nil {
		return [][2]string{{"Profile:", "n/a"}}
	}
	account := conn.AccountID()
	if account == "" {
		account = "..."
	}

	return [][2]string{
		{"Profile:", "[::b]" + conn.ActiveProfile() + "[-::-]@" + conn.ActiveRegion()},
		{"Account:", account},
	}
}
