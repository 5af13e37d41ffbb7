package parsimony

import "slices"

// ContainmentMatrix is a sparse boolean relation over group indices:
// Get(i, j) is true when peptides(i) ⊇ peptides(j). Each row is an ascending
// index set; a mirrored column set is kept in lock-step so the lowest
// container of a column can be read without scanning rows.
type ContainmentMatrix struct {
	rows [][]int
	cols [][]int
	bits int
}

// NewContainmentMatrix returns an empty n×n matrix.
func NewContainmentMatrix(n int) *ContainmentMatrix {
	return &ContainmentMatrix{
		rows: make([][]int, n),
		cols: make([][]int, n),
	}
}

// Len returns the matrix dimension.
func (m *ContainmentMatrix) Len() int { return len(m.rows) }

// Count returns the number of set entries.
func (m *ContainmentMatrix) Count() int { return m.bits }

// Set sets or clears (i, j). The diagonal is never stored.
func (m *ContainmentMatrix) Set(i, j int, v bool) {
	if i == j {
		return
	}
	if v {
		var added bool
		if m.rows[i], added = insertSorted(m.rows[i], j); added {
			m.cols[j], _ = insertSorted(m.cols[j], i)
			m.bits++
		}
		return
	}
	var removed bool
	if m.rows[i], removed = removeSorted(m.rows[i], j); removed {
		m.cols[j], _ = removeSorted(m.cols[j], i)
		m.bits--
	}
}

// Get reports whether row i contains column j.
func (m *ContainmentMatrix) Get(i, j int) bool {
	_, ok := slices.BinarySearch(m.rows[i], j)
	return ok
}

// Row returns the ascending columns set in row i. The slice must not be modified.
func (m *ContainmentMatrix) Row(i int) []int { return m.rows[i] }

// FirstContainer returns the lowest row i with Get(i, j), or -1.
func (m *ContainmentMatrix) FirstContainer(j int) int {
	if len(m.cols[j]) == 0 {
		return -1
	}
	return m.cols[j][0]
}

// ClearIndex removes every entry that references k, as row or as column.
func (m *ContainmentMatrix) ClearIndex(k int) {
	for _, j := range m.rows[k] {
		m.cols[j], _ = removeSorted(m.cols[j], k)
	}
	for _, i := range m.cols[k] {
		m.rows[i], _ = removeSorted(m.rows[i], k)
	}
	m.bits -= len(m.rows[k]) + len(m.cols[k])
	m.rows[k] = nil
	m.cols[k] = nil
}

// BuildContainment tests every ordered pair within one taxonomy partition
// (all pairs when taxa is nil) and records peptides(i) ⊇ peptides(j).
// Each peptide list must be ascending.
func BuildContainment(peptides [][]string, taxa []string) *ContainmentMatrix {
	m := NewContainmentMatrix(len(peptides))
	for _, part := range partitions(len(peptides), taxa) {
		for _, i := range part {
			for _, j := range part {
				if i != j && Contains(peptides[i], peptides[j]) {
					m.Set(i, j, true)
				}
			}
		}
	}
	return m
}

// Contains reports whether every element of sub is in super. super must be
// ascending; sub may be in any order.
func Contains(super, sub []string) bool {
	if len(sub) > len(super) {
		return false
	}
	for _, p := range sub {
		if _, ok := slices.BinarySearch(super, p); !ok {
			return false
		}
	}
	return true
}

// partitions groups indices 0..n-1 by taxon, each partition ascending,
// partitions in order of first appearance.
func partitions(n int, taxa []string) [][]int {
	if taxa == nil {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return [][]int{all}
	}
	slot := make(map[string]int)
	var parts [][]int
	for i := 0; i < n; i++ {
		s, ok := slot[taxa[i]]
		if !ok {
			s = len(parts)
			slot[taxa[i]] = s
			parts = append(parts, nil)
		}
		parts[s] = append(parts[s], i)
	}
	return parts
}

func insertSorted(s []int, v int) ([]int, bool) {
	i, found := slices.BinarySearch(s, v)
	if found {
		return s, false
	}
	return slices.Insert(s, i, v), true
}

func removeSorted(s []int, v int) ([]int, bool) {
	i, found := slices.BinarySearch(s, v)
	if !found {
		return s, false
	}
	return slices.Delete(s, i, i+1), true
}
