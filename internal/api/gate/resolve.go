package gate

import (
	"context"
	"time"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
)

// subject is a person resolved from a token or id, before eligibility.
type subject struct {
	person types.Person
	// denied is the reason the person may not pass, empty when eligible.
	denied string
	guest  *types.Guest
}

func (s *Service) byToken(ctx context.Context, communityID string, personType types.PersonType, token string) (subject, error) {
	switch personType {
	case types.PersonResident:
		r, err := s.store.GetResidentByToken(ctx, communityID, token)
		if err != nil {
			return subject{}, shared.StoreError(err, "gate token")
		}
		return residentSubject(r), nil
	case types.PersonEmployee:
		e, err := s.store.GetEmployeeByToken(ctx, communityID, token)
		if err != nil {
			return subject{}, shared.StoreError(err, "gate token")
		}
		return employeeSubject(e), nil
	case types.PersonProvider:
		p, err := s.store.GetProviderByToken(ctx, communityID, token)
		if err != nil {
			return subject{}, shared.StoreError(err, "gate token")
		}
		return providerSubject(p, s.now()), nil
	case types.PersonGuest:
		g, err := s.store.GetGuestByToken(ctx, communityID, token)
		if err != nil {
			return subject{}, shared.StoreError(err, "gate token")
		}
		return guestSubject(g, s.now()), nil
	}
	return subject{}, utils.NotFound("gate token")
}

func (s *Service) byID(ctx context.Context, communityID string, personType types.PersonType, id string) (subject, error) {
	switch personType {
	case types.PersonResident:
		r, err := s.store.GetResident(ctx, communityID, id)
		if err != nil {
			return subject{}, shared.StoreError(err, "resident")
		}
		return residentSubject(r), nil
	case types.PersonEmployee:
		e, err := s.store.GetEmployee(ctx, communityID, id)
		if err != nil {
			return subject{}, shared.StoreError(err, "employee")
		}
		return employeeSubject(e), nil
	case types.PersonProvider:
		p, err := s.store.GetProvider(ctx, communityID, id)
		if err != nil {
			return subject{}, shared.StoreError(err, "provider")
		}
		return providerSubject(p, s.now()), nil
	case types.PersonGuest:
		g, err := s.store.GetGuest(ctx, communityID, id)
		if err != nil {
			return subject{}, shared.StoreError(err, "guest")
		}
		return guestSubject(g, s.now()), nil
	}
	return subject{}, utils.BadRequest("unknown person type %q", personType)
}

func residentSubject(r types.Resident) subject {
	sub := subject{person: types.Person{
		Type:   types.PersonResident,
		ID:     r.ID,
		Name:   r.Name,
		Detail: r.Block + "-" + r.FlatNumber,
	}}
	if r.Status != types.ResidentActive {
		sub.denied = "resident is " + string(r.Status)
	}
	return sub
}

func employeeSubject(e types.Employee) subject {
	sub := subject{person: types.Person{
		Type:   types.PersonEmployee,
		ID:     e.ID,
		Name:   e.Name,
		Detail: string(e.Designation),
	}}
	if e.Status != types.EmployeeActive {
		sub.denied = "employee is " + string(e.Status)
	}
	return sub
}

func providerSubject(p types.ServiceProvider, now time.Time) subject {
	detail := string(p.ServiceType)
	if p.Company != "" {
		detail += ", " + p.Company
	}
	sub := subject{person: types.Person{
		Type:   types.PersonProvider,
		ID:     p.ID,
		Name:   p.Name,
		Detail: detail,
	}}
	switch {
	case p.Status != types.ProviderActive:
		sub.denied = "provider is " + string(p.Status)
	case p.Expired(now):
		sub.denied = "provider access has expired"
	}
	return sub
}

func guestSubject(g types.Guest, now time.Time) subject {
	sub := subject{
		person: types.Person{
			Type:   types.PersonGuest,
			ID:     g.ID,
			Name:   g.Name,
			Detail: g.Purpose,
		},
		guest: &g,
	}
	switch {
	case g.Status == types.GuestCancelled:
		sub.denied = "guest pass was cancelled"
	case g.Status == types.GuestCheckedOut:
		sub.denied = "guest pass has already been used"
	case now.After(g.ValidUntil):
		sub.denied = "guest pass has expired"
	}
	return sub
}
