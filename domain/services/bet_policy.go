package services

import (
	"crypto/subtle"
	"slices"

	"partybets/domain/entities"
)

// BetAction is a lifecycle transition a caller asks for
type BetAction string

const (
	BetActionClose  BetAction = "close"
	BetActionSettle BetAction = "settle"
)

// TransitionRequest is everything the policy needs to decide on a transition
type TransitionRequest struct {
	Status          entities.BetStatus
	Action          BetAction
	Credentials     entities.Credentials
	StoredCreator   string
	WinningOptionID int64
	OptionIDs       []int64
}

// BetPolicy decides whether a close or settle transition is allowed
type BetPolicy struct {
	HostPIN string
}

// NewBetPolicy creates a policy that recognizes the given host PIN
func NewBetPolicy(hostPIN string) *BetPolicy {
	return &BetPolicy{HostPIN: hostPIN}
}

// Check returns nil when the transition is allowed. State is checked first, then
// authorization, then the winning option.
func (p *BetPolicy) Check(req TransitionRequest) error {
	bet := &entities.Bet{Status: req.Status}

	switch req.Action {
	case BetActionClose:
		if err := bet.CanClose(); err != nil {
			return err
		}
	case BetActionSettle:
		if err := bet.CanSettle(); err != nil {
			return err
		}
	default:
		return entities.NewValidationError("unknown bet action: " + string(req.Action))
	}

	if !p.IsAuthorized(req.Credentials, req.StoredCreator) {
		return entities.ErrNotHostOrCreator
	}

	if req.Action == BetActionSettle && !slices.Contains(req.OptionIDs, req.WinningOptionID) {
		return entities.ErrInvalidWinningOption
	}

	return nil
}

// IsHost checks the supplied PIN against the host PIN
func (p *BetPolicy) IsHost(pin string) bool {
	if p.HostPIN == "" || pin == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(pin), []byte(p.HostPIN)) == 1
}

// IsAuthorized checks if the caller is the host or the bet's creator
func (p *BetPolicy) IsAuthorized(creds entities.Credentials, storedCreator string) bool {
	if p.IsHost(creds.PIN) {
		return true
	}
	return creds.CreatorName != "" && creds.CreatorName == storedCreator
}

// CheckClose is a shorthand for checking a close transition on a loaded bet
func (p *BetPolicy) CheckClose(bet *entities.Bet, creds entities.Credentials) error {
	return p.Check(TransitionRequest{
		Status:        bet.Status,
		Action:        BetActionClose,
		Credentials:   creds,
		StoredCreator: bet.CreatorName,
	})
}

// CheckSettle is a shorthand for checking a settle transition on a loaded bet
func (p *BetPolicy) CheckSettle(detail *entities.BetDetail, winningOptionID int64, creds entities.Credentials) error {
	return p.Check(TransitionRequest{
		Status:          detail.Bet.Status,
		Action:          BetActionSettle,
		Credentials:     creds,
		StoredCreator:   detail.Bet.CreatorName,
		WinningOptionID: winningOptionID,
		OptionIDs:       detail.OptionIDs(),
	})
}
