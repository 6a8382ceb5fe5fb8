package lemmatizer

import (
	"duygu.io/sentiment/utils"
	"fmt"
	"sort"
	"unicode/utf8"
)

const (
	minRootLength  = 2
	maxSuffixDepth = 4
)

type SuffixRules struct {
	Roots    map[string]bool
	Suffixes []string
}

// LoadSuffixRules reads optional roots and suffixes files. An empty suffixes path selects the default suffixes.
func LoadSuffixRules(opener Opener, rootsPath string, suffixesPath string) (*SuffixRules, error) {
	rules := &SuffixRules{Roots: make(map[string]bool)}

	if rootsPath != "" {
		rc, err := opener.Open(rootsPath)
		if err != nil {
			return nil, fmt.Errorf("open roots file: %w", err)
		}
		defer rc.Close()
		if rules.Roots, err = utils.ReadSet(rc); err != nil {
			return nil, fmt.Errorf("read roots file: %w", err)
		}
	}

	suffixes := getDefaultSuffixes()
	if suffixesPath != "" {
		rc, err := opener.Open(suffixesPath)
		if err != nil {
			return nil, fmt.Errorf("open suffixes file: %w", err)
		}
		defer rc.Close()
		if suffixes, err = utils.ReadList(rc); err != nil {
			return nil, fmt.Errorf("read suffixes file: %w", err)
		}
	}
	rules.setSuffixes(suffixes)

	return rules, nil
}

func (rules *SuffixRules) AddRoots(roots []string) {
	if rules.Roots == nil {
		rules.Roots = make(map[string]bool, len(roots))
	}
	for _, root := range roots {
		rules.Roots[root] = true
	}
}

// setSuffixes keeps unique suffixes, longest first.
func (rules *SuffixRules) setSuffixes(suffixes []string) {
	seen := make(map[string]bool, len(suffixes))
	rules.Suffixes = rules.Suffixes[:0]
	for _, s := range suffixes {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		rules.Suffixes = append(rules.Suffixes, s)
	}
	sort.SliceStable(rules.Suffixes, func(i, j int) bool {
		return utf8.RuneCountInString(rules.Suffixes[i]) > utf8.RuneCountInString(rules.Suffixes[j])
	})
}
