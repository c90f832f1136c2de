package dynamodb

import (
	"peersphere-backend/domain/core/entities"
)

// voteUpdateExpressions builds the update and condition expressions for
// moving a voter between an item's vote sets. The condition pins the full
// vote-set state the caller's in-memory decision was made against: the
// voter must be absent from the target set, and the opposite set must
// still look the way the preceding read saw it. Without the opposite-set
// clause, one user racing an upvote against a downvote could land in both
// sets, since each update's target-set check passes on its own.
func voteUpdateExpressions(change entities.VoteChange) (update, condition string, names map[string]string) {
	sameAttr, oppAttr := "Upvotes", "Downvotes"
	if change.Direction == entities.VoteDown {
		sameAttr, oppAttr = "Downvotes", "Upvotes"
	}
	names = map[string]string{"#same": sameAttr, "#opp": oppAttr}

	if change.Flipped {
		update = "ADD #same :voterSet DELETE #opp :voterSet SET UpdatedAt = :now"
		condition = "attribute_exists(PK)" +
			" AND (attribute_not_exists(#same) OR NOT contains(#same, :voter))" +
			" AND contains(#opp, :voter)"
		return update, condition, names
	}

	update = "ADD #same :voterSet SET UpdatedAt = :now"
	condition = "attribute_exists(PK)" +
		" AND (attribute_not_exists(#same) OR NOT contains(#same, :voter))" +
		" AND (attribute_not_exists(#opp) OR NOT contains(#opp, :voter))"
	return update, condition, names
}
