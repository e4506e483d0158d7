package entities

import (
	"time"
)

// BetStatus represents the lifecycle state of a bet
type BetStatus string

const (
	BetStatusOpen    BetStatus = "open"
	BetStatusClosed  BetStatus = "closed"
	BetStatusSettled BetStatus = "settled"
)

// Bet is a proposition with two or more mutually exclusive options
type Bet struct {
	ID              int64      `db:"id" json:"id"`
	PartyID         int64      `db:"party_id" json:"partyId"`
	Question        string     `db:"question" json:"question"`
	Status          BetStatus  `db:"status" json:"status"`
	WinningOptionID *int64     `db:"winning_option_id" json:"winningOptionId,omitempty"`
	CreatorName     string     `db:"creator_name" json:"creatorName"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
	ClosedAt        *time.Time `db:"closed_at" json:"closedAt,omitempty"`
	SettledAt       *time.Time `db:"settled_at" json:"settledAt,omitempty"`
}

// BetOption is one possible outcome of a bet
type BetOption struct {
	ID          int64  `db:"id" json:"id"`
	BetID       int64  `db:"bet_id" json:"betId"`
	Label       string `db:"label" json:"label"`
	OptionOrder int16  `db:"option_order" json:"order"`
}

// BetDetail combines a bet with its options and wagers
type BetDetail struct {
	Bet     *Bet         `json:"bet"`
	Options []*BetOption `json:"options"`
	Wagers  []*Wager     `json:"wagers"`
}

// IsOpen checks if the bet still accepts wagers
func (b *Bet) IsOpen() bool {
	return b.Status == BetStatusOpen
}

// IsClosed checks if betting has stopped and the outcome is pending
func (b *Bet) IsClosed() bool {
	return b.Status == BetStatusClosed
}

// IsSettled checks if the bet has a recorded outcome
func (b *Bet) IsSettled() bool {
	return b.Status == BetStatusSettled
}

// CanClose reports the state error that prevents closing, if any
func (b *Bet) CanClose() error {
	switch b.Status {
	case BetStatusOpen:
		return nil
	case BetStatusSettled:
		return ErrBetAlreadySettled
	default:
		return ErrBetNotOpen
	}
}

// CanSettle reports the state error that prevents settling, if any
func (b *Bet) CanSettle() error {
	switch b.Status {
	case BetStatusClosed:
		return nil
	case BetStatusSettled:
		return ErrBetAlreadySettled
	default:
		return ErrBetNotClosed
	}
}

// Close moves an open bet to closed
func (b *Bet) Close(at time.Time) error {
	if err := b.CanClose(); err != nil {
		return err
	}
	b.Status = BetStatusClosed
	b.ClosedAt = &at
	return nil
}

// Settle moves a closed bet to settled and records the winning option
func (b *Bet) Settle(winningOptionID int64, at time.Time) error {
	if err := b.CanSettle(); err != nil {
		return err
	}
	b.Status = BetStatusSettled
	b.WinningOptionID = &winningOptionID
	b.SettledAt = &at
	return nil
}

// HasOption checks if the option belongs to this bet
func (d *BetDetail) HasOption(optionID int64) bool {
	return d.FindOption(optionID) != nil
}

// FindOption returns the option with the given ID, or nil
func (d *BetDetail) FindOption(optionID int64) *BetOption {
	for _, opt := range d.Options {
		if opt.ID == optionID {
			return opt
		}
	}
	return nil
}

// OptionIDs returns the IDs of every option on the bet
func (d *BetDetail) OptionIDs() []int64 {
	ids := make([]int64, 0, len(d.Options))
	for _, opt := range d.Options {
		ids = append(ids, opt.ID)
	}
	return ids
}

// TotalPot returns the sum of all wager amounts on the bet
func (d *BetDetail) TotalPot() int64 {
	return TotalWagered(d.Wagers)
}

// OptionTotals returns the amount staked on each option
func (d *BetDetail) OptionTotals() map[int64]int64 {
	totals := make(map[int64]int64, len(d.Options))
	for _, w := range d.Wagers {
		totals[w.OptionID] += w.Amount
	}
	return totals
}

// Credentials are what a caller presents to close or settle a bet
type Credentials struct {
	PIN         string
	CreatorName string
}

// BetResolution is the outcome of settling a bet
type BetResolution struct {
	Bet           *Bet            `json:"bet"`
	WinningOption *BetOption      `json:"winningOption"`
	TotalPot      int64           `json:"totalPot"`
	Results       []*PayoutResult `json:"results"`
}
