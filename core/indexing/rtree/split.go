package rtree

// splitNode redistributes n's M entries plus one incoming (rect, id) entry
// across n and a freshly allocated sibling, using Guttman's quadratic
// split: linear PickSeeds followed by greatest-preference PickNext. n is
// mutated in place to hold one half; the returned node holds the other.
func (t *tree) splitNode(n *node, incomingRect Rectangle, incomingID int64) (*node, error) {
	candidates := make([]entry, 0, len(n.entries)+1)
	candidates = append(candidates, n.entries...)
	candidates = append(candidates, entry{rect: incomingRect, id: incomingID})

	seedA, seedB := pickSeeds(candidates)

	status := make([]int8, len(candidates)) // 0 unassigned, 1 -> n, 2 -> nn
	status[seedA] = 1
	status[seedB] = 2

	sibling, err := t.allocNode(n.level)
	if err != nil {
		return nil, err
	}

	groupARect := candidates[seedA].rect
	groupBRect := candidates[seedB].rect
	groupAEntries := []entry{candidates[seedA]}
	groupBEntries := []entry{candidates[seedB]}
	assigned := 2

	for assigned < len(candidates) {
		remaining := len(candidates) - assigned

		if len(groupAEntries)+remaining == t.minEntries {
			for i, c := range candidates {
				if status[i] == 0 {
					groupAEntries = append(groupAEntries, c)
					groupARect.Add(c.rect)
				}
			}
			assigned = len(candidates)
			break
		}
		if len(groupBEntries)+remaining == t.minEntries {
			for i, c := range candidates {
				if status[i] == 0 {
					groupBEntries = append(groupBEntries, c)
					groupBRect.Add(c.rect)
				}
			}
			assigned = len(candidates)
			break
		}

		bestIdx := -1
		bestDiff := -1
		var bestEnlA, bestEnlB int
		for i, c := range candidates {
			if status[i] != 0 {
				continue
			}
			enlA := groupARect.Enlargement(c.rect)
			enlB := groupBRect.Enlargement(c.rect)
			diff := enlA - enlB
			if diff < 0 {
				diff = -diff
			}
			if diff > bestDiff {
				bestDiff = diff
				bestIdx = i
				bestEnlA, bestEnlB = enlA, enlB
			}
		}

		c := candidates[bestIdx]
		toA := chooseGroup(bestEnlA, bestEnlB, groupARect.Area(), groupBRect.Area(), len(groupAEntries), len(groupBEntries))
		if toA {
			status[bestIdx] = 1
			groupAEntries = append(groupAEntries, c)
			groupARect.Add(c.rect)
		} else {
			status[bestIdx] = 2
			groupBEntries = append(groupBEntries, c)
			groupBRect.Add(c.rect)
		}
		assigned++
	}

	n.entries = groupAEntries
	n.mbr = groupARect
	n.hasMBR = true

	sibling.entries = groupBEntries
	sibling.mbr = groupBRect
	sibling.hasMBR = true

	return sibling, nil
}

// pickSeeds implements Guttman's linear PickSeeds: for each axis, find the
// candidate with the highest low side and the candidate with the lowest
// high side (a candidate that sets the former is never also considered
// for the latter in the same scan), normalize their separation by the
// axis span of the full candidate set, and keep the axis/pair with the
// greatest normalized separation.
func pickSeeds(candidates []entry) (seedA, seedB int) {
	total := candidates[0].rect
	for _, c := range candidates[1:] {
		total.Add(c.rect)
	}

	bestSeparation := -1.0
	bestA, bestB := 0, 1
	if len(candidates) > 1 {
		bestB = pickDistinct(0, len(candidates))
	}

	axes := [2]struct {
		low, high func(Rectangle) int
		span      int
	}{
		{func(r Rectangle) int { return r.MinX }, func(r Rectangle) int { return r.MaxX }, total.MaxX - total.MinX},
		{func(r Rectangle) int { return r.MinY }, func(r Rectangle) int { return r.MaxY }, total.MaxY - total.MinY},
	}

	for _, axis := range axes {
		if axis.span == 0 {
			continue
		}
		highestLowIdx, lowestHighIdx := 0, 0
		highestLow := axis.low(candidates[0].rect)
		lowestHigh := axis.high(candidates[0].rect)
		for i := 1; i < len(candidates); i++ {
			lo := axis.low(candidates[i].rect)
			hi := axis.high(candidates[i].rect)
			if lo > highestLow {
				highestLow = lo
				highestLowIdx = i
			} else if hi < lowestHigh {
				lowestHigh = hi
				lowestHighIdx = i
			}
		}
		if highestLowIdx == lowestHighIdx {
			lowestHighIdx = pickDistinct(highestLowIdx, len(candidates))
			lowestHigh = axis.high(candidates[lowestHighIdx].rect)
		}
		separation := float64(highestLow-lowestHigh) / float64(axis.span)
		if separation > bestSeparation {
			bestSeparation = separation
			bestA, bestB = lowestHighIdx, highestLowIdx
		}
	}
	return bestA, bestB
}

// pickDistinct returns an index in [0, n) other than avoid.
func pickDistinct(avoid, n int) int {
	for i := 0; i < n; i++ {
		if i != avoid {
			return i
		}
	}
	return avoid
}

// chooseGroup decides which group a PickNext-selected candidate joins:
// the group needing less enlargement; ties broken by smaller current
// area, then fewer current entries, then the original node (group A).
func chooseGroup(enlA, enlB, areaA, areaB, countA, countB int) (toA bool) {
	switch {
	case enlA < enlB:
		return true
	case enlB < enlA:
		return false
	}
	switch {
	case areaA < areaB:
		return true
	case areaB < areaA:
		return false
	}
	switch {
	case countA < countB:
		return true
	case countB < countA:
		return false
	}
	return true
}
