package core

import (
	"path/filepath"
	"regexp"
	"sort"

	"github.com/teampulse/teampulse/schema"
)

// reviewTrailerRe recognizes the commit-message trailer conventions that
// stand in for review participation. Raw change history carries no explicit
// review data, so coverage derived from this is an approximation, not an
// exact review metric.
var reviewTrailerRe = regexp.MustCompile(`(?im)^\s*(reviewed-by|co-authored-by):`)

// uncategorized is the category for files without an extension.
const uncategorized = "(no extension)"

// analyzeCollaboration computes co-authorship strength, knowledge silos,
// the review-participation proxy and team connectivity. Pure function of
// the snapshot and config; empty snapshots yield neutral defaults.
func analyzeCollaboration(snap *schema.RangeSnapshot, cfg schema.AnalyzerConfig) *schema.CollaborationInsights {
	ins := &schema.CollaborationInsights{KnowledgeRisk: schema.RiskLow}
	if snap.Empty() {
		return ins
	}

	fileAuthors, authorFiles := buildTouchMaps(snap)

	ins.TopPairs = computeAuthorPairs(fileAuthors, authorFiles, cfg.TopPairLimit)
	ins.Silos, ins.CategoryCount = computeKnowledgeSilos(snap, cfg)
	ins.ReviewedCommits, ins.ReviewCoverage = computeReviewCoverage(snap)
	ins.Connectivity = computeConnectivity(fileAuthors, authorFiles, cfg.PairMinShared)
	ins.Balance = computeBalance(snap)
	ins.KnowledgeRisk = gradeKnowledgeRisk(len(ins.Silos), ins.CategoryCount, ins.Connectivity, cfg)
	return ins
}

// buildTouchMaps indexes which authors touched which files and vice versa.
func buildTouchMaps(snap *schema.RangeSnapshot) (map[string]map[string]struct{}, map[string]map[string]struct{}) {
	fileAuthors := make(map[string]map[string]struct{})
	authorFiles := make(map[string]map[string]struct{})
	for _, rec := range snap.Records {
		for _, fc := range rec.Files {
			if fileAuthors[fc.Path] == nil {
				fileAuthors[fc.Path] = make(map[string]struct{})
			}
			fileAuthors[fc.Path][rec.Author] = struct{}{}
			if authorFiles[rec.Author] == nil {
				authorFiles[rec.Author] = make(map[string]struct{})
			}
			authorFiles[rec.Author][fc.Path] = struct{}{}
		}
	}
	return fileAuthors, authorFiles
}

// pairKey is an unordered author pair with a canonical ordering.
type pairKey struct {
	a, b string
}

func makePairKey(x, y string) pairKey {
	if x < y {
		return pairKey{x, y}
	}
	return pairKey{y, x}
}

// sharedFileCounts counts, per unordered author pair, the distinct files
// both touched within the window.
func sharedFileCounts(fileAuthors map[string]map[string]struct{}) map[pairKey]int {
	shared := make(map[pairKey]int)
	for _, authors := range fileAuthors {
		names := make([]string, 0, len(authors))
		for a := range authors {
			names = append(names, a)
		}
		sort.Strings(names)
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				shared[makePairKey(names[i], names[j])]++
			}
		}
	}
	return shared
}

// computeAuthorPairs derives normalized pair strength from shared files:
// strength = 2*shared / (filesA + filesB), which lands in [0,1]. Pairs are
// ranked by strength descending with name tie-breaking for determinism.
func computeAuthorPairs(fileAuthors, authorFiles map[string]map[string]struct{}, limit int) []schema.AuthorPair {
	shared := sharedFileCounts(fileAuthors)
	pairs := make([]schema.AuthorPair, 0, len(shared))
	for key, n := range shared {
		denom := float64(len(authorFiles[key.a]) + len(authorFiles[key.b]))
		if denom == 0 {
			continue
		}
		pairs = append(pairs, schema.AuthorPair{
			AuthorA:     key.a,
			AuthorB:     key.b,
			SharedFiles: n,
			Strength:    clamp01(2 * float64(n) / denom),
		})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Strength != pairs[j].Strength {
			return pairs[i].Strength > pairs[j].Strength
		}
		if pairs[i].AuthorA != pairs[j].AuthorA {
			return pairs[i].AuthorA < pairs[j].AuthorA
		}
		return pairs[i].AuthorB < pairs[j].AuthorB
	})
	if len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}

// fileCategory maps a path to its knowledge category by extension.
func fileCategory(path string) string {
	if ext := filepath.Ext(path); ext != "" {
		return ext
	}
	return uncategorized
}

// computeKnowledgeSilos tallies touches per category per author. A category
// becomes a silo when exactly one author's share reaches the ownership
// threshold and the category's total touches clear the activity floor, so
// near-untouched files are never flagged.
func computeKnowledgeSilos(snap *schema.RangeSnapshot, cfg schema.AnalyzerConfig) ([]schema.KnowledgeSilo, int) {
	touches := make(map[string]map[string]int) // category -> author -> touches
	for _, rec := range snap.Records {
		for _, fc := range rec.Files {
			cat := fileCategory(fc.Path)
			if touches[cat] == nil {
				touches[cat] = make(map[string]int)
			}
			touches[cat][rec.Author]++
		}
	}

	var silos []schema.KnowledgeSilo
	for cat, byAuthor := range touches {
		total := 0
		for _, n := range byAuthor {
			total += n
		}
		if total < cfg.SiloMinTouches {
			continue
		}
		owner := ""
		ownerTouches := 0
		owners := 0
		for author, n := range byAuthor {
			share := float64(n) / float64(total)
			if share >= cfg.OwnershipThreshold {
				owners++
				// Name tie-break keeps the output deterministic should two
				// authors ever clear the threshold in the same category.
				if n > ownerTouches || (n == ownerTouches && author < owner) {
					owner = author
					ownerTouches = n
				}
			}
		}
		if owners == 1 {
			silos = append(silos, schema.KnowledgeSilo{
				Category: cat,
				Owner:    owner,
				Share:    float64(ownerTouches) / float64(total),
				Touches:  total,
			})
		}
	}
	sort.Slice(silos, func(i, j int) bool { return silos[i].Category < silos[j].Category })
	return silos, len(touches)
}

// computeReviewCoverage counts commits carrying a recognized review trailer.
func computeReviewCoverage(snap *schema.RangeSnapshot) (int, float64) {
	if len(snap.Records) == 0 {
		return 0, 0
	}
	reviewed := 0
	for _, rec := range snap.Records {
		if reviewTrailerRe.MatchString(rec.Message) {
			reviewed++
		}
	}
	return reviewed, float64(reviewed) / float64(len(snap.Records))
}

// computeConnectivity is the ratio of collaborating pairs (shared files at
// or above the activity floor) to the theoretical maximum pair count for
// the observed author set. Fewer than two authors yields 0.
func computeConnectivity(fileAuthors, authorFiles map[string]map[string]struct{}, minShared int) float64 {
	n := len(authorFiles)
	if n < 2 {
		return 0
	}
	qualifying := 0
	for _, count := range sharedFileCounts(fileAuthors) {
		if count >= minShared {
			qualifying++
		}
	}
	maxPairs := n * (n - 1) / 2
	return clamp01(float64(qualifying) / float64(maxPairs))
}

// computeBalance is the inverse of the coefficient of variation of
// per-author commit counts, clamped to [0,1]. Perfectly even teams score 1.
func computeBalance(snap *schema.RangeSnapshot) float64 {
	if len(snap.CommitsByAuthor) == 0 {
		return 0
	}
	counts := make([]float64, 0, len(snap.CommitsByAuthor))
	for _, n := range snap.CommitsByAuthor {
		counts = append(counts, float64(n))
	}
	return clamp01(1 - coefficientOfVariation(counts))
}

// gradeKnowledgeRisk applies the documented silo-ratio and connectivity
// thresholds, with a half-threshold band for the medium grade.
func gradeKnowledgeRisk(siloCount, categoryCount int, connectivity float64, cfg schema.AnalyzerConfig) schema.RiskLevel {
	siloRatio := 0.0
	if categoryCount > 0 {
		siloRatio = float64(siloCount) / float64(categoryCount)
	}
	switch {
	case siloRatio > cfg.SiloRatioHigh || connectivity < cfg.ConnectivityFloor:
		return schema.RiskHigh
	case siloRatio > cfg.SiloRatioHigh/2 || connectivity < 2*cfg.ConnectivityFloor:
		return schema.RiskMedium
	default:
		return schema.RiskLow
	}
}
