// Package view holds the state of the product edit modal. A Modal is a value:
// every transition returns the next state and leaves the receiver untouched.
package view

import (
	"fmt"

	"github.com/tuanvumaihuynh/product-admin/internal/model"
	"github.com/tuanvumaihuynh/product-admin/pkg/validator"
)

type ModalState uint8

const (
	ModalClosed ModalState = iota
	ModalOpen
)

// Field is a draft field as named by the product form.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "descriptionHtml"
	FieldStatus      Field = "status"
)

// NameRequiredWarning is shown inline when a draft is submitted without a name.
const NameRequiredWarning = "Product name is required."

// Draft is the transient copy of the editable product fields.
type Draft struct {
	Name        string `validate:"notblank"`
	Description string
	Status      model.ProductStatus
}

// NewDraft seeds a draft from selection, or an empty DRAFT product without one.
func NewDraft(selection *model.Product) Draft {
	if selection == nil {
		return Draft{Status: model.ProductStatusDraft}
	}
	return Draft{
		Name:        selection.Title,
		Description: selection.Description,
		Status:      selection.Status,
	}
}

// Submission is what a valid draft sends to the action handler.
type Submission struct {
	ID              string
	Name            string
	DescriptionHTML string
	Status          model.ProductStatus
}

type Modal struct {
	State     ModalState
	Selection *model.Product
	Draft     Draft
	Warning   string
}

var draftValidator = mustValidator()

func mustValidator() validator.Validator {
	v, err := validator.NewDefaultValidator()
	if err != nil {
		panic(fmt.Errorf("create draft validator: %w", err))
	}
	return v
}

func (m Modal) IsOpen() bool {
	return m.State == ModalOpen
}

// IsEdit reports whether the modal edits an existing product.
func (m Modal) IsEdit() bool {
	return m.IsOpen() && m.Selection != nil
}

// Title is the modal heading.
func (m Modal) Title() string {
	switch {
	case m.Selection == nil:
		return "Create new product"
	case m.Selection.Title == "":
		return "Update product"
	default:
		return "Updating | " + m.Selection.Title
	}
}

// Open shows the modal for selection, or for a new product when nil.
func (m Modal) Open(selection *model.Product) Modal {
	next := Modal{State: ModalOpen}
	if selection != nil {
		p := *selection
		next.Selection = &p
	}
	next.Draft = NewDraft(next.Selection)
	return next
}

// Close discards the selection and the draft.
func (m Modal) Close() Modal {
	return Modal{State: ModalClosed}
}

// Edit sets one draft field. Edits on a closed modal or unknown fields are ignored.
func (m Modal) Edit(field Field, value string) Modal {
	if !m.IsOpen() {
		return m
	}

	switch field {
	case FieldName:
		m.Draft.Name = value
	case FieldDescription:
		m.Draft.Description = value
	case FieldStatus:
		m.Draft.Status = model.ProductStatus(value)
	}
	return m
}

// Submit validates the draft. An invalid draft keeps the modal open with a
// warning and ok=false. A valid one returns the submission; the modal stays
// open until Complete is called after the reload.
func (m Modal) Submit() (Modal, Submission, bool) {
	if !m.IsOpen() {
		return m, Submission{}, false
	}

	if warning := draftWarning(m.Draft); warning != "" {
		m.Warning = warning
		return m, Submission{}, false
	}

	m.Warning = ""
	sub := Submission{
		Name:            m.Draft.Name,
		DescriptionHTML: m.Draft.Description,
		Status:          m.Draft.Status,
	}
	if m.Selection != nil {
		sub.ID = m.Selection.ID
	}

	return m, sub, true
}

// Complete closes the modal once the data reload after a submission finished.
func (m Modal) Complete() Modal {
	return m.Close()
}

// draftWarning returns the inline warning for an invalid draft. Only the
// name is checked locally; everything else is left to the Admin API.
func draftWarning(d Draft) string {
	if err := draftValidator.Validate(d); err != nil {
		return NameRequiredWarning
	}
	return ""
}
