package resource

import (
	"context"
	"errors"
)

// Mode is the editing mode of a Dialog.
type Mode int

const (
	ModeClosed Mode = iota
	ModeCreate
	ModeEdit
)

// Dialog is a transient editing surface bound to zero or one entity.
type Dialog[E any, D any] struct {
	ctrl  *Controller[E, D]
	mode  Mode
	id    string
	draft D
}

// NewDialog returns a closed dialog for ctrl.
func NewDialog[E any, D any](ctrl *Controller[E, D]) *Dialog[E, D] {
	return &Dialog[E, D]{ctrl: ctrl}
}

// OpenCreate starts a blank draft.
func (d *Dialog[E, D]) OpenCreate() {
	d.mode = ModeCreate
	d.id = ""
	d.draft = d.ctrl.def.Blank()
}

// OpenEdit starts a draft copied from the mirrored entity.
func (d *Dialog[E, D]) OpenEdit(id string) error {
	item, ok := d.ctrl.Find(id)
	if !ok {
		return ErrNotFound
	}
	d.mode = ModeEdit
	d.id = id
	d.draft = d.ctrl.def.Edit(item)
	return nil
}

// Mode returns the current mode.
func (d *Dialog[E, D]) Mode() Mode { return d.mode }

// IsOpen reports whether the dialog holds a draft.
func (d *Dialog[E, D]) IsOpen() bool { return d.mode != ModeClosed }

// ID returns the identifier of the entity under edit.
func (d *Dialog[E, D]) ID() string { return d.id }

// Draft returns the current draft.
func (d *Dialog[E, D]) Draft() D { return d.draft }

// SetDraft replaces the draft; the identifier under edit is kept.
func (d *Dialog[E, D]) SetDraft(draft D) { d.draft = draft }

// Submit persists the draft and closes the dialog on success only.
func (d *Dialog[E, D]) Submit(ctx context.Context) error {
	var err error
	switch d.mode {
	case ModeCreate:
		err = d.ctrl.Create(ctx, d.draft)
	case ModeEdit:
		err = d.ctrl.Update(ctx, d.id, d.draft)
	default:
		return errors.New("resource: dialog is not open")
	}
	if err != nil {
		return err
	}
	d.close()
	return nil
}

// Cancel discards the draft without persisting it.
func (d *Dialog[E, D]) Cancel() {
	d.close()
}

func (d *Dialog[E, D]) close() {
	var zero D
	d.mode = ModeClosed
	d.id = ""
	d.draft = zero
}
