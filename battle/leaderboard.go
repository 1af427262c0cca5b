package battle

import "sort"

// updateLeaderboard adds increment to one player's score and recomputes
// every rank. Players are ordered by score descending; equal scores rank
// by earlier position in userOrder (the battle's active user list), which
// makes the assignment deterministic. Players with a nonzero score get
// the ranks 1..k with no gaps; zero-score players keep a nil rank.
func updateLeaderboard(players map[string]PlayerStanding, userOrder []string, userID string, increment float64) map[string]PlayerStanding {
	updated := make(map[string]PlayerStanding, len(players))
	for id, standing := range players {
		updated[id] = standing
	}

	standing := updated[userID]
	standing.Score = roundScore(standing.Score + increment)
	updated[userID] = standing

	// entries seeded in join order so the stable sort breaks score ties
	// by earlier userOrder position
	entries := make([]string, 0, len(updated))
	for _, id := range userOrder {
		if _, ok := updated[id]; ok {
			entries = append(entries, id)
		}
	}
	if len(entries) < len(updated) {
		var leftovers []string
		for id := range updated {
			found := false
			for _, e := range entries {
				if e == id {
					found = true
					break
				}
			}
			if !found {
				leftovers = append(leftovers, id)
			}
		}
		sort.Strings(leftovers)
		entries = append(entries, leftovers...)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return updated[entries[i]].Score > updated[entries[j]].Score
	})

	rankAllocator := 1
	for _, id := range entries {
		standing := updated[id]
		if standing.Score != 0 {
			rank := rankAllocator
			rankAllocator++
			standing.Rank = &rank
		} else {
			standing.Rank = nil
		}
		updated[id] = standing
	}
	return updated
}
