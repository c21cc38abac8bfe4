package engine

// Decision is the full result of a single decide call (§4.H, §6): the
// chosen action, every EV the chooser had available to compare, and the
// conditioning regime those EVs were computed under.
type Decision struct {
	Action       Action
	EVStand      float64
	EVHit        float64
	EVDouble     *float64
	EVSplit      *float64
	EVSurrender  *float64
	Conditioning string
	DealerBJProb float64
}

// chooseAction applies the sequential override chain from §4.H: first
// pick the best of stand/hit/double (double only wins by more than
// rules.DoubleMargin, ties within rules.TieEps favor standing), then let
// a strictly-better split EV override that choice, then let a strictly-
// better surrender EV override whatever survived.
func chooseAction(stand, hit float64, double, split, surrender *float64, rules Rules) Action {
	best := stand
	action := ActionStand

	if hit > best+rules.TieEps {
		best = hit
		action = ActionHit
	}

	if double != nil {
		margin := *double - best
		if margin > rules.DoubleMargin+rules.TieEps {
			best = *double
			action = ActionDouble
		}
	}

	if split != nil && *split > best+rules.TieEps {
		best = *split
		action = ActionSplit
	}

	if surrender != nil && *surrender > best+rules.TieEps {
		action = ActionSurrender
	}

	return action
}
