// internal/taxonomy/tree.go
package taxonomy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"protgroup/internal/fileio"
	"protgroup/internal/parsimony"
)

var (
	// ErrUnknownRank is returned for ranks outside parsimony.Ranks.
	ErrUnknownRank = errors.New("unknown taxonomy rank")
	// ErrMalformed marks an unparseable taxonomy or organism line.
	ErrMalformed = errors.New("malformed taxonomy line")
)

// ParseRank converts a user-supplied rank name (case-insensitive).
func ParseRank(s string) (parsimony.Rank, error) {
	r := parsimony.Rank(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRank, s)
	}
	return r, nil
}

type node struct {
	parent string
	rank   string
}

type ancestorKey struct {
	org  string
	rank parsimony.Rank
}

// Tree is an in-memory taxonomy: each id has a parent and a rank name.
// The root is its own parent. It implements parsimony.TaxonomyResolver.
type Tree struct {
	nodes map[string]node
	cache *lru[ancestorKey, string]
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{nodes: map[string]node{}, cache: newLRU[ancestorKey, string](0)}
}

// Add inserts or replaces id. It must not run concurrently with lookups.
func (t *Tree) Add(id, parent, rank string) {
	t.nodes[id] = node{parent: parent, rank: strings.ToLower(rank)}
	if t.cache.len() > 0 {
		t.cache = newLRU[ancestorKey, string](0)
	}
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// AncestorAtRank walks from org towards the root and returns the first id
// whose rank is rank (org itself included). It returns "" when org is
// unknown or no ancestor has that rank.
func (t *Tree) AncestorAtRank(org string, rank parsimony.Rank) (string, error) {
	if !rank.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRank, rank)
	}
	key := ancestorKey{org, rank}
	if v, ok := t.cache.get(key); ok {
		return v, nil
	}
	anc := t.walk(org, string(rank))
	t.cache.put(key, anc)
	return anc, nil
}

func (t *Tree) walk(org, rank string) string {
	cur := org
	// bounded by the node count so a cyclic file cannot loop forever
	for steps := 0; steps <= len(t.nodes); steps++ {
		n, ok := t.nodes[cur]
		if !ok {
			return ""
		}
		if n.rank == rank {
			return cur
		}
		if n.parent == "" || n.parent == cur {
			return ""
		}
		cur = n.parent
	}
	return ""
}

// Load reads a nodes file (see Read). "-" is stdin; ".gz" is decompressed.
func Load(path string) (*Tree, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Read(rc, path)
}

// Read parses NCBI nodes.dmp style lines ("id\t|\tparent\t|\trank\t|...") or
// plain tab-separated "id parent rank" lines. Blank lines and '#' comments are skipped.
func Read(r io.Reader, name string) (*Tree, error) {
	t := NewTree()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), 1<<20)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := splitFields(line)
		if len(f) < 3 || f[0] == "" || f[1] == "" || !parsimony.ValidToken(f[0]) || !parsimony.ValidToken(f[1]) {
			return nil, fmt.Errorf("%s:%d: %w", name, ln, ErrMalformed)
		}
		t.Add(f[0], f[1], f[2])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}

// LoadOrganisms reads "protein<TAB>organism" lines into a map.
func LoadOrganisms(path string) (map[string]string, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadOrganisms(rc, path)
}

// ReadOrganisms is LoadOrganisms over an io.Reader.
func ReadOrganisms(r io.Reader, name string) (map[string]string, error) {
	out := map[string]string{}
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 2 {
			return nil, fmt.Errorf("%s:%d: %w: want protein and organism", name, ln, ErrMalformed)
		}
		out[f[0]] = f[1]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func splitFields(line string) []string {
	var f []string
	if strings.Contains(line, "|") {
		f = strings.Split(line, "|")
	} else {
		f = strings.Split(line, "\t")
	}
	for i := range f {
		f[i] = strings.TrimSpace(f[i])
	}
	return f
}

var _ parsimony.TaxonomyResolver = (*Tree)(nil)
