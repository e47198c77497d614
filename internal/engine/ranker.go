package engine

import (
	"context"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"scheme-eligibility-engine/internal/models"
)

// Rank evaluates the profile against every scheme in the catalog, applies
// the requested filter, and returns results in the requested order.
// Schemes are evaluated independently and in parallel; results are
// recombined in catalog order before filtering, and all sorts are stable
// with ties kept in catalog order, so the scheme list and the comparison
// tool always agree for identical inputs. An empty catalog yields an
// empty slice, never an error.
func (e *Evaluator) Rank(ctx context.Context, profile models.UserProfile, schemes []models.Scheme, filter models.RankFilter, sortBy models.RankSort) []models.EligibilityResult {
	results := make([]models.EligibilityResult, len(schemes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range schemes {
		i := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = e.EvaluateScheme(profile, schemes[i])
			return nil
		})
	}

	// Evaluation itself never fails; the only error here is caller
	// cancellation, in which case the partial results are discarded anyway.
	_ = g.Wait()

	filtered := applyFilter(results, filter)
	sortResults(filtered, sortBy)
	return filtered
}

func applyFilter(results []models.EligibilityResult, filter models.RankFilter) []models.EligibilityResult {
	filtered := make([]models.EligibilityResult, 0, len(results))

	for _, r := range results {
		switch filter.Kind {
		case models.FilterEligible:
			if !r.IsEligible {
				continue
			}
		case models.FilterIneligible:
			if r.IsEligible {
				continue
			}
		case models.FilterMinScore:
			if r.EligibilityScore < filter.MinScore {
				continue
			}
		}
		filtered = append(filtered, r)
	}

	return filtered
}

func sortResults(results []models.EligibilityResult, sortBy models.RankSort) {
	switch sortBy {
	case models.SortName:
		sort.SliceStable(results, func(i, j int) bool {
			return strings.ToLower(results[i].SchemeName) < strings.ToLower(results[j].SchemeName)
		})
	case models.SortCategory:
		sort.SliceStable(results, func(i, j int) bool {
			return strings.ToLower(results[i].Category) < strings.ToLower(results[j].Category)
		})
	default:
		// Score descending is the portal default.
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].EligibilityScore > results[j].EligibilityScore
		})
	}
}
