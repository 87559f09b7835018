package timeline

import (
	"stagebook/internal/domain/offer"
	"stagebook/internal/domain/proposal"
)

// CanonicalProposals lifts legacy offers into the unified proposal
// shape and deduplicates against proposals that describe the same
// logical bid. Reconciliation happens once, here, by tuple identity
// (date, proposer, counterpart) instead of chasing two different
// foreign-key columns through every consumer.
//
// When both shapes are present the unified record wins: it is the one
// the hold machinery writes its sub-state to.
func CanonicalProposals(offers []*offer.Offer, proposals []*proposal.Proposal) []*proposal.Proposal {
	out := make([]*proposal.Proposal, 0, len(proposals)+len(offers))
	seen := make(map[string]*proposal.Proposal, len(proposals))

	for _, p := range proposals {
		key := p.IdentityKey()
		if prev, ok := seen[key]; ok {
			// Two unified rows with the same identity: keep the
			// live one so a resubmitted bid shadows its cancelled
			// predecessor.
			if !prev.IsLive() && p.IsLive() {
				*prev = *p
			}
			continue
		}
		cp := *p
		seen[key] = &cp
		out = append(out, &cp)
	}

	for _, o := range offers {
		lifted := o.AsProposal()
		if _, ok := seen[lifted.IdentityKey()]; ok {
			// unified shape already covers this bid
			continue
		}
		seen[lifted.IdentityKey()] = lifted
		out = append(out, lifted)
	}

	return out
}
