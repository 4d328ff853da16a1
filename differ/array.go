package differ

// diffArrayIdentity pairs each old element with the first unclaimed new
// element of the same identity.
func (d *Differ) diffArrayIdentity(a, b []any, depth int) (Delta, error) {
	id := d.identity()
	positions := make(map[string][]int, len(b))
	for j, elem := range b {
		key := id(elem)
		positions[key] = append(positions[key], j)
	}
	claimed := make([]bool, len(b))

	out := &ArrayDelta{}
	for i, elem := range a {
		j := claim(positions, id(elem), claimed)
		if j < 0 {
			out.add(OldKey(i), &Deleted{Value: elem})
			continue
		}
		child, err := d.diff(elem, b[j], depth+1)
		if err != nil {
			return nil, err
		}
		if j != i {
			out.add(OldKey(i), &Moved{To: j})
		}
		if child != nil {
			out.add(NewKey(j), child)
		}
	}
	for j, elem := range b {
		if !claimed[j] {
			out.add(NewKey(j), &Added{Value: elem})
		}
	}
	return finishArray(out), nil
}

// claim marks and returns the first unclaimed position recorded for key, or -1.
func claim(positions map[string][]int, key string, claimed []bool) int {
	list := positions[key]
	for n, j := range list {
		if !claimed[j] {
			claimed[j] = true
			positions[key] = list[n+1:]
			return j
		}
	}
	return -1
}

// diffArrayLCS trims the common head and tail, keeps the longest common
// subsequence of identities in place, and turns removals that reappear among
// the insertions into moves.
func (d *Differ) diffArrayLCS(a, b []any, depth int) (Delta, error) {
	id := d.identity()
	out := &ArrayDelta{}

	// pair diffs a matched pair and records any change at the new index
	pair := func(i, j int) error {
		child, err := d.diff(a[i], b[j], depth+1)
		if err != nil {
			return err
		}
		if child != nil {
			out.add(NewKey(j), child)
		}
		return nil
	}

	head := 0
	for head < len(a) && head < len(b) && id(a[head]) == id(b[head]) {
		if err := pair(head, head); err != nil {
			return nil, err
		}
		head++
	}
	tail := 0
	for tail < len(a)-head && tail < len(b)-head &&
		id(a[len(a)-1-tail]) == id(b[len(b)-1-tail]) {
		if err := pair(len(a)-1-tail, len(b)-1-tail); err != nil {
			return nil, err
		}
		tail++
	}

	oldKeys := make([]string, len(a)-head-tail)
	for i := range oldKeys {
		oldKeys[i] = id(a[head+i])
	}
	newKeys := make([]string, len(b)-head-tail)
	for j := range newKeys {
		newKeys[j] = id(b[head+j])
	}

	inOld := make([]bool, len(oldKeys))
	inNew := make([]bool, len(newKeys))
	for _, m := range lcs(oldKeys, newKeys) {
		inOld[m[0]] = true
		inNew[m[1]] = true
		if err := pair(head+m[0], head+m[1]); err != nil {
			return nil, err
		}
	}

	var inserted []int
	for j := range newKeys {
		if !inNew[j] {
			inserted = append(inserted, j)
		}
	}
	for i := range oldKeys {
		if inOld[i] {
			continue
		}
		match := -1
		for n, j := range inserted {
			if newKeys[j] == oldKeys[i] {
				match = n
				break
			}
		}
		if match < 0 {
			out.add(OldKey(head+i), &Deleted{Value: a[head+i]})
			continue
		}
		j := inserted[match]
		inserted = append(inserted[:match], inserted[match+1:]...)
		if i != j {
			out.add(OldKey(head+i), &Moved{To: head + j})
		}
		if err := pair(head+i, head+j); err != nil {
			return nil, err
		}
	}
	for _, j := range inserted {
		out.add(NewKey(head+j), &Added{Value: b[head+j]})
	}
	return finishArray(out), nil
}

// lcs returns index pairs of a longest common subsequence of a and b, in order.
func lcs(a, b []string) [][2]int {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	width := len(b) + 1
	table := make([]int, (len(a)+1)*width)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				table[i*width+j] = table[(i-1)*width+j-1] + 1
			case table[(i-1)*width+j] >= table[i*width+j-1]:
				table[i*width+j] = table[(i-1)*width+j]
			default:
				table[i*width+j] = table[i*width+j-1]
			}
		}
	}

	pairs := make([][2]int, table[len(a)*width+len(b)])
	n := len(pairs)
	for i, j := len(a), len(b); i > 0 && j > 0; {
		switch {
		case a[i-1] == b[j-1]:
			n--
			pairs[n] = [2]int{i - 1, j - 1}
			i--
			j--
		case table[(i-1)*width+j] >= table[i*width+j-1]:
			i--
		default:
			j--
		}
	}
	return pairs
}

func finishArray(out *ArrayDelta) Delta {
	if len(out.Entries) == 0 {
		return nil
	}
	out.sort()
	return out
}
