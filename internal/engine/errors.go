package engine

import "errors"

// Error kinds surfaced by the core, per the external interface contract.
// Each is a stable sentinel so the API layer can map it to a wire error code
// without string-matching (mirrors the teacher's pattern of typed,
// stable string identifiers returned in response bodies).
var (
	ErrInvalidRank    = errors.New("invalid_rank")
	ErrEmptyHand      = errors.New("empty_hand")
	ErrBadCounts      = errors.New("bad_counts")
	ErrEmptySlot      = errors.New("empty_slot")
	ErrDealerUpNotAce = errors.New("dealer_up_not_ace")
)
