package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

// ErrParcelIsNotConstructed is returned when a Parcel was not created
// through NewParcel or RestoreParcel.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel constructor")

// Party describes the sender or the receiver of a parcel.
type Party struct {
	Name     string
	Contact  string
	Region   string
	District string
	Address  string
}

// Details holds the descriptive part of a parcel booking. None of these
// fields take part in the delivery or payment invariants; sender and
// receiver districts are used to match riders.
type Details struct {
	Title    string
	Kind     string
	WeightKg float64
	Cost     int64
	Sender   Party
	Receiver Party
}

// RiderAssignment is the rider contact data copied onto a parcel when a
// rider is assigned to it.
type RiderAssignment struct {
	RiderID kernel.UUID
	Name    string
	Email   string
	Phone   string
}

// Parcel is the aggregate root for a shipped parcel.
//
// Parcel follows these invariants:
//   - deliveryStatus only moves forward along the DeliveryStatus table
//   - an assigned rider is present exactly when the status is past created
//   - paymentStatus moves unpaid → paid at most once, stamping paidAt
//   - cashout moves false → true at most once, stamping cashoutAt
//   - pickedAt is set on entering in-transit, deliveredAt on entering delivered
//
// The in-memory guards on this type reject transitions that are invalid
// against the state the parcel was loaded with. Repositories repeat the same
// guards as conditional updates so that concurrent writers cannot both win.
type Parcel struct {
	id             kernel.UUID
	createdBy      string
	createdAt      time.Time
	details        Details
	deliveryStatus DeliveryStatus
	paymentStatus  PaymentStatus
	paidAt         *time.Time
	cashout        bool
	cashoutAt      *time.Time
	rider          *RiderAssignment
	pickedAt       *time.Time
	deliveredAt    *time.Time

	guard guard.ConstructorGuard
}

// NewParcel books a new parcel in created / unpaid state.
//
// Parameters:
//   - id: identifier of the new parcel
//   - createdBy: sender's email; normalized like user emails
//   - details: descriptive booking data; weight and cost must not be negative
//   - now: creation time
//
// Example:
//
//	p, err := parcel.NewParcel(kernel.NewUUID(), "a@x.com", parcel.Details{
//	    Title: "Documents",
//	    Sender:   parcel.Party{District: "Dhaka"},
//	    Receiver: parcel.Party{District: "Khulna"},
//	}, clock.Now())
func NewParcel(id kernel.UUID, createdBy string, details Details, now time.Time) (*Parcel, error) {
	p := &Parcel{
		createdAt:      now,
		deliveryStatus: Created,
		paymentStatus:  Unpaid,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setCreatedBy(createdBy),
		p.setDetails(details),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// State is the full persisted state of a parcel, used by RestoreParcel.
type State struct {
	ID             kernel.UUID
	CreatedBy      string
	CreatedAt      time.Time
	Details        Details
	DeliveryStatus DeliveryStatus
	PaymentStatus  PaymentStatus
	PaidAt         *time.Time
	Cashout        bool
	CashoutAt      *time.Time
	Rider          *RiderAssignment
	PickedAt       *time.Time
	DeliveredAt    *time.Time
}

// RestoreParcel rebuilds a parcel loaded from storage and checks that the
// stored combination of fields is consistent.
func RestoreParcel(s State) (*Parcel, error) {
	p := &Parcel{
		createdAt:   s.CreatedAt,
		paidAt:      s.PaidAt,
		cashout:     s.Cashout,
		cashoutAt:   s.CashoutAt,
		pickedAt:    s.PickedAt,
		deliveredAt: s.DeliveredAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(s.ID),
		p.setCreatedBy(s.CreatedBy),
		p.setDetails(s.Details),
		p.setDeliveryStatus(s.DeliveryStatus, s.Rider),
		p.setPaymentStatus(s.PaymentStatus),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the parcel was built by a constructor.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p *Parcel) ID() kernel.UUID                { return p.id }
func (p *Parcel) CreatedBy() string              { return p.createdBy }
func (p *Parcel) CreatedAt() time.Time           { return p.createdAt }
func (p *Parcel) Details() Details               { return p.details }
func (p *Parcel) DeliveryStatus() DeliveryStatus { return p.deliveryStatus }
func (p *Parcel) PaymentStatus() PaymentStatus   { return p.paymentStatus }
func (p *Parcel) PaidAt() *time.Time             { return p.paidAt }
func (p *Parcel) IsCashedOut() bool              { return p.cashout }
func (p *Parcel) CashoutAt() *time.Time          { return p.cashoutAt }
func (p *Parcel) PickedAt() *time.Time           { return p.pickedAt }
func (p *Parcel) DeliveredAt() *time.Time        { return p.deliveredAt }

// AssignedRider returns the rider bound to the parcel, or nil.
func (p *Parcel) AssignedRider() *RiderAssignment {
	if p.rider == nil {
		return nil
	}
	r := *p.rider
	return &r
}

// IsActive reports whether the assigned rider is still working on the parcel.
func (p *Parcel) IsActive() bool {
	return p.deliveryStatus.IsActive()
}

// IsAssignedTo reports whether the parcel's rider has the given email.
func (p *Parcel) IsAssignedTo(email string) bool {
	return p.rider != nil && email != "" && strings.EqualFold(p.rider.Email, email)
}

// AssignRider binds a rider to the parcel and moves it to riders-assigned.
//
// This method enforces the following business rules:
//   - the parcel must be in created status
//   - the rider id must be valid and the rider email must parse
//
// Returns errs.ErrTransitionIsInvalid when the parcel is past created.
//
// Example:
//
//	err := p.AssignRider(parcel.RiderAssignment{
//	    RiderID: r.ID(), Name: r.Name(), Email: r.Email(), Phone: r.Phone(),
//	})
func (p *Parcel) AssignRider(a RiderAssignment) error {
	if err := p.deliveryStatus.CanTransitionTo(RidersAssigned); err != nil {
		return err
	}
	if err := a.RiderID.Validate(); err != nil {
		return err
	}
	email, err := user.NormalizeEmail(a.Email)
	if err != nil {
		return err
	}
	a.Email = email

	p.rider = &a
	p.deliveryStatus = RidersAssigned
	return nil
}

// MarkStatus advances the delivery pipeline.
//
// Stamps pickedAt on in-transit and deliveredAt on delivered. Moving into
// riders-assigned goes through AssignRider, not through this method.
//
// Returns:
//   - errs.ErrValueIsInvalid if next is not a known status
//   - errs.ErrTransitionIsInvalid if next does not follow the current status
//
// Example:
//
//	if err := p.MarkStatus(parcel.InTransit, clock.Now()); err != nil {
//	    return err
//	}
func (p *Parcel) MarkStatus(next DeliveryStatus, now time.Time) error {
	if next == RidersAssigned {
		return errs.NewTransitionIsInvalidError("parcel", p.deliveryStatus.String(), next.String())
	}
	if err := p.deliveryStatus.CanTransitionTo(next); err != nil {
		return err
	}

	switch next {
	case InTransit:
		p.pickedAt = timePtr(now)
	case Delivered:
		p.deliveredAt = timePtr(now)
	}
	p.deliveryStatus = next
	return nil
}

// MarkPaid moves the parcel from unpaid to paid.
// Returns errs.ErrConflict if the parcel is already paid.
func (p *Parcel) MarkPaid(now time.Time) error {
	if p.paymentStatus == Paid {
		return errs.NewConflictError("parcel", p.id.String(), "already paid")
	}
	p.paymentStatus = Paid
	p.paidAt = timePtr(now)
	return nil
}

// Cashout sets the cashout flag.
// Returns errs.ErrConflict if the parcel is already cashed out.
func (p *Parcel) Cashout(now time.Time) error {
	if p.cashout {
		return errs.NewConflictError("parcel", p.id.String(), "already cashed out")
	}
	p.cashout = true
	p.cashoutAt = timePtr(now)
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setCreatedBy(email string) error {
	normalized, err := user.NormalizeEmail(email)
	if err != nil {
		return fmt.Errorf("created_by: %w", err)
	}
	p.createdBy = normalized
	return nil
}

func (p *Parcel) setDetails(d Details) error {
	var err error
	if d.WeightKg < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("weight", d.WeightKg, 0, "unbounded"))
	}
	if d.Cost < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("cost", d.Cost, 0, "unbounded"))
	}
	if err != nil {
		return err
	}
	p.details = d
	return nil
}

func (p *Parcel) setDeliveryStatus(s DeliveryStatus, rider *RiderAssignment) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s == Created && rider != nil {
		return errs.NewValueIsInvalidErrorWithCause("rider", fmt.Errorf("%s parcel cannot have a rider", s))
	}
	if s != Created && rider == nil {
		return errs.NewValueIsInvalidErrorWithCause("rider", fmt.Errorf("%s parcel must have a rider", s))
	}
	if rider != nil {
		if err := rider.RiderID.Validate(); err != nil {
			return err
		}
		r := *rider
		p.rider = &r
	}
	p.deliveryStatus = s
	return nil
}

func (p *Parcel) setPaymentStatus(s PaymentStatus) error {
	if err := s.Validate(); err != nil {
		return err
	}
	p.paymentStatus = s
	return nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}
