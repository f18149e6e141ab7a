// README: Immutable draft value object for the multi-step submission flow.
package parcel

import "errors"

var ErrIncompleteDraft = errors.New("draft is missing required fields")

// Draft is the sender's in-progress package submission. It is a plain value
// threaded through the flow by the caller; there is no shared mutable form
// state. Reset returns a fresh empty draft for the next submission.
type Draft struct {
	Type        string
	WeightLabel string
	Size        Size
	Content     Content
	Description string
	Pickup      Location
	Delivery    Location
	Receiver    Receiver
}

func (d Draft) Reset() Draft { return Draft{} }

// Validate checks the fields the submission screen requires before the
// review step. Content is allowed to be empty here; Submit fills it from
// the description when absent.
func (d Draft) Validate() error {
	switch {
	case d.Type == "",
		d.WeightLabel == "",
		d.Size == "",
		d.Pickup.Address == "",
		d.Delivery.Address == "",
		d.Receiver.Name == "",
		d.Receiver.Phone == "":
		return ErrIncompleteDraft
	}
	return nil
}
