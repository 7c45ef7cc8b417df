package view

import (
	"context"

	"github.com/derailed/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/vdash/vdash/internal/dao"
	"github.com/vdash/vdash/internal/model"
	"github.com/vdash/vdash/internal/ui"
)

// CustomerList lists the registered vendors.
type CustomerList struct {
	*Browser
}

// NewCustomerList returns the customer list.
func NewCustomerList(app *App) *CustomerList {
	l := CustomerList{Browser: NewBrowser(app, &dao.CustomerRID, "")}
	l.SetDeletedMsg("Customer deleted successfully.")

	return &l
}

// Init binds the add action on top of the list keys.
func (l *CustomerList) Init(ctx context.Context) error {
	if err := l.Browser.Init(ctx); err != nil {
		return err
	}
	if !l.app.ReadOnly() {
		l.Actions().Add(ui.KeyA, ui.NewKeyAction("Add", l.addCmd, true))
	}

	return nil
}

func (l *CustomerList) addCmd(*tcell.EventKey) *tcell.EventKey {
	target := model.Route{Resource: dao.CustomerRID.Resource, Action: model.ActionCreate}.String()
	if err := l.app.Navigate(target); err != nil {
		log.Warn().Err(err).Msg("Add customer failed")
	}

	return nil
}
