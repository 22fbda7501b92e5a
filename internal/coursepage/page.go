// Package coursepage drives the course listing screen: fetch, filter, and
// enroll either directly (free courses) or through a payment dialog.
package coursepage

import (
	"context"
	"errors"
	"fmt"

	"learnhub/internal/catalog"
	"learnhub/internal/enrollment"
	"learnhub/internal/modal"
	"learnhub/internal/model"
	"learnhub/internal/session"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

var (
	ErrLoginRequired  = errors.New("login required to enroll")
	ErrPaymentNotOpen = errors.New("payment dialog is not open")
)

type Page struct {
	session   session.Session
	list      *catalog.List
	filter    catalog.Filter
	modals    *modal.Visibility
	submitter *enrollment.Submitter
	card      model.CardDetails
	validate  *validator.Validate
}

func New(sess session.Session, source catalog.Source, submitter *enrollment.Submitter) *Page {
	return &Page{
		session:   sess,
		list:      catalog.NewList(source),
		modals:    modal.New(0),
		submitter: submitter,
		validate:  validator.New(),
	}
}

// Load fetches the catalog and closes every payment dialog.
func (p *Page) Load(ctx context.Context) error {
	courses, err := p.list.Load(ctx)
	if err != nil {
		return err
	}

	p.modals.Reset(len(courses))
	return nil
}

func (p *Page) State() catalog.State {
	return p.list.State()
}

func (p *Page) SetTitleFilter(title string) {
	p.filter.Title = title
}

func (p *Page) SetTypeFilter(t catalog.Type) {
	p.filter.Type = t
}

// Rows returns the filtered courses, each carrying its fetch position.
func (p *Page) Rows() []catalog.Row {
	return p.filter.Apply(p.list.Courses())
}

// Enroll handles the Enroll button on a row. Free courses are submitted
// straight away; paid ones open the row's payment dialog and report true.
func (p *Page) Enroll(ctx context.Context, row catalog.Row) (bool, error) {
	if !p.session.LoggedIn() {
		return false, ErrLoginRequired
	}

	if row.Course.Price.IsFree() {
		return false, p.submitter.Submit(ctx, row.Course.ID, model.CardDetails{}, true)
	}

	if err := p.modals.Open(row.Index); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Page) PaymentOpen(index int) bool {
	return p.modals.IsOpen(index)
}

func (p *Page) ClosePayment(index int) error {
	return p.modals.Close(index)
}

// SetCard replaces the payment form's contents. The form is shared by every row.
func (p *Page) SetCard(card model.CardDetails) {
	p.card = card
}

func (p *Page) Card() model.CardDetails {
	return p.card
}

// SubmitPayment submits the payment form of the dialog open at index. The
// dialog stays open when a required field is missing or too long, or when
// another enrollment is still in flight.
func (p *Page) SubmitPayment(ctx context.Context, index int) error {
	if !p.modals.IsOpen(index) {
		return fmt.Errorf("%w: row %d", ErrPaymentNotOpen, index)
	}

	courses := p.list.Courses()
	if index >= len(courses) {
		return fmt.Errorf("%w: row %d", modal.ErrOutOfRange, index)
	}

	if err := p.validate.Struct(p.card); err != nil {
		return fmt.Errorf("card details: %w", err)
	}

	if p.submitter.State() == enrollment.Submitting {
		return enrollment.ErrSubmitInProgress
	}

	if err := p.modals.Close(index); err != nil {
		return err
	}

	course := courses[index]
	log.WithField("course_id", course.ID).Debug("submitting payment")
	err := p.submitter.Submit(ctx, course.ID, p.card, false)
	if errors.Is(err, enrollment.ErrSubmitInProgress) {
		// lost the race with another submit; nothing was sent for this row
		if openErr := p.modals.Open(index); openErr != nil {
			log.Errorf("reopening payment dialog: %v", openErr)
		}
	}
	return err
}
