package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// SplitType identifies how an expense total is divided among participants.
type SplitType string

const (
	SplitTypeEqual      SplitType = "EQUAL"
	SplitTypePercentage SplitType = "PERCENTAGE"
	SplitTypeExact      SplitType = "EXACT"
)

var (
	ErrNoParticipants     = errors.New("split has no participants")
	ErrUnknownSplitType   = errors.New("unknown split type")
	ErrMissingPercentage  = errors.New("participant is missing a percentage")
	ErrInvalidPercentage  = errors.New("percentages must sum to 100")
	ErrMissingExactAmount = errors.New("participant is missing an exact amount")
	ErrInvalidExactSum    = errors.New("exact amounts must sum to the expense total")
)

// SplitInput is one participant's entry in a split specification. Percentage
// is set for PERCENTAGE splits, Amount (minor units) for EXACT splits; EQUAL
// splits need neither.
type SplitInput struct {
	UserID     string   `json:"user_id"`
	UserName   string   `json:"user_name,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"`
	Amount     *int64   `json:"amount,omitempty"`
}

var percentageTolerance = decimal.NewFromFloat(0.01)

// ResolveShares turns a split specification into concrete minor-unit shares
// that sum exactly to total. It runs at the system boundary, before expenses
// enter the engine; the engine only ever sees resolved shares.
func ResolveShares(splitType SplitType, total int64, participants []SplitInput) ([]ParticipantShare, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	switch splitType {
	case SplitTypeEqual:
		return resolveEqual(total, participants), nil
	case SplitTypePercentage:
		return resolvePercentage(total, participants)
	case SplitTypeExact:
		return resolveExact(total, participants)
	default:
		return nil, fmt.Errorf("%q: %w", splitType, ErrUnknownSplitType)
	}
}

// resolveEqual divides the total evenly. Remainder minor units go one each
// to the earliest participants, in the order given, so the shares always sum
// exactly to the total.
func resolveEqual(total int64, participants []SplitInput) []ParticipantShare {
	n := int64(len(participants))
	base := total / n
	rem := total % n

	step := int64(1)
	if rem < 0 {
		step = -1
		rem = -rem
	}

	shares := make([]ParticipantShare, len(participants))
	for i, p := range participants {
		share := base
		if int64(i) < rem {
			share += step
		}
		shares[i] = ParticipantShare{UserID: p.UserID, UserName: p.UserName, ShareAmount: share}
	}
	return shares
}

// resolvePercentage assigns each participant round(total * pct / 100), half
// away from zero, and folds the rounding residue into the last participant.
func resolvePercentage(total int64, participants []SplitInput) ([]ParticipantShare, error) {
	totalPct := decimal.Zero
	for _, p := range participants {
		if p.Percentage == nil {
			return nil, fmt.Errorf("user %s: %w", p.UserID, ErrMissingPercentage)
		}
		if *p.Percentage < 0 {
			return nil, fmt.Errorf("user %s: negative percentage %v: %w", p.UserID, *p.Percentage, ErrInvalidPercentage)
		}
		totalPct = totalPct.Add(decimal.NewFromFloat(*p.Percentage))
	}
	if totalPct.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(percentageTolerance) {
		return nil, fmt.Errorf("got %s: %w", totalPct, ErrInvalidPercentage)
	}

	totalDec := decimal.NewFromInt(total)
	hundred := decimal.NewFromInt(100)

	shares := make([]ParticipantShare, len(participants))
	var assigned int64
	for i, p := range participants {
		var share int64
		if i == len(participants)-1 {
			share = total - assigned
		} else {
			share = totalDec.Mul(decimal.NewFromFloat(*p.Percentage)).Div(hundred).Round(0).IntPart()
			assigned += share
		}
		shares[i] = ParticipantShare{UserID: p.UserID, UserName: p.UserName, ShareAmount: share}
	}
	return shares, nil
}

// resolveExact takes the specified amounts as given, but requires them to
// sum to the expense total.
func resolveExact(total int64, participants []SplitInput) ([]ParticipantShare, error) {
	shares := make([]ParticipantShare, len(participants))
	var sum int64
	for i, p := range participants {
		if p.Amount == nil {
			return nil, fmt.Errorf("user %s: %w", p.UserID, ErrMissingExactAmount)
		}
		sum += *p.Amount
		shares[i] = ParticipantShare{UserID: p.UserID, UserName: p.UserName, ShareAmount: *p.Amount}
	}
	if sum != total {
		return nil, fmt.Errorf("got %d, want %d: %w", sum, total, ErrInvalidExactSum)
	}
	return shares, nil
}
