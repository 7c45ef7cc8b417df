// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of vdash

package ui

import (
	"sync"

	"github.com/derailed/tcell/v2"

	"github.com/vdash/vdash/internal/dao"
	"github.com/vdash/vdash/internal/model"
)

// RecordAction represents an action that can be performed on a record.
// Route names the record route action navigated to; dangerous actions
// carry none and are handled by the screen after a confirmation.
type RecordAction struct {
	Key         tcell.Key // Key binding
	Name        string    // Display name
	Route       string    // Route action, e.g. details
	Dangerous   bool      // Requires confirmation
	WriteAccess bool      // Hidden in read only mode
}

var (
	actionRegistry = map[dao.ResourceID][]RecordAction{}
	registryMx     sync.RWMutex
)

func init() {
	RegisterActions(dao.InvoiceRID, []RecordAction{
		{Key: KeyV, Name: "View", Route: model.ActionDetails},
		{Key: KeyE, Name: "Edit", Route: model.ActionEdit, WriteAccess: true},
		{Key: tcell.KeyCtrlD, Name: "Delete", Dangerous: true, WriteAccess: true},
	})
	RegisterActions(dao.CustomerRID, []RecordAction{
		{Key: KeyV, Name: "View", Route: model.ActionDetails},
		{Key: KeyE, Name: "Edit", Route: model.ActionEdit, WriteAccess: true},
		{Key: tcell.KeyCtrlD, Name: "Delete", Dangerous: true, WriteAccess: true},
	})
}

// RegisterActions registers actions for a resource type.
func RegisterActions(rid dao.ResourceID, actions []RecordAction) {
	registryMx.Lock()
	defer registryMx.Unlock()

	actionRegistry[rid] = actions
}

// GetActions returns available actions for a resource type. Writes are
// left out when readOnly is set.
func GetActions(rid *dao.ResourceID, readOnly bool) []RecordAction {
	if rid == nil {
		return nil
	}

	registryMx.RLock()
	defer registryMx.RUnlock()

	aa := make([]RecordAction, 0, len(actionRegistry[*rid]))
	for _, a := range actionRegistry[*rid] {
		if readOnly && a.WriteAccess {
			continue
		}
		aa = append(aa, a)
	}
	return aa
}

// GetAction returns a specific action by key for a resource type.
func GetAction(rid *dao.ResourceID, key tcell.Key, readOnly bool) *RecordAction {
	actions := GetActions(rid, readOnly)
	for i := range actions {
		if actions[i].Key == key {
			return &actions[i]
		}
	}
	return nil
}
