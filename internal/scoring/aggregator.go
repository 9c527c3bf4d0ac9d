// Package scoring aggregates judging scores into weighted results and the
// results CSV.
package scoring

import (
	"sort"

	"github.com/scovillecup/backend-scoville/internal/common"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
	"github.com/scovillecup/backend-scoville/internal/rules"
)

// GroupStat is the per-judge-type summary for one sauce.
type GroupStat struct {
	Mean  float64
	Count int
}

// SauceResult is the aggregated outcome for one sauce.
type SauceResult struct {
	SauceID   string
	Sauce     string
	Brand     string
	Final     float64
	HasScores bool
	Pro       GroupStat
	Community GroupStat
	Supplier  GroupStat
}

// Aggregate groups score rows by sauce and judge type, computes the
// unweighted mean per group and combines the groups into one final score.
// Each judge type's influence scales with both its fixed weight and how many
// scores it contributed; empty groups contribute nothing. The result is
// sorted descending by final score.
func Aggregate(rows []dbgen.ListScoresForExportRow, weights rules.Weights) []SauceResult {
	type bucket struct {
		sauce  string
		brand  string
		scores map[dbgen.JudgeType][]int32
	}
	buckets := map[string]*bucket{}
	order := []string{}
	for _, row := range rows {
		id := common.UUIDString(row.SauceID)
		b, ok := buckets[id]
		if !ok {
			b = &bucket{sauce: row.SauceName, brand: row.BrandName, scores: map[dbgen.JudgeType][]int32{}}
			buckets[id] = b
			order = append(order, id)
		}
		b.scores[row.JudgeType] = append(b.scores[row.JudgeType], row.Score)
	}

	results := make([]SauceResult, 0, len(order))
	for _, id := range order {
		b := buckets[id]
		result := SauceResult{
			SauceID:   id,
			Sauce:     b.sauce,
			Brand:     b.brand,
			Pro:       groupStat(b.scores[dbgen.JudgeTypePro]),
			Community: groupStat(b.scores[dbgen.JudgeTypeCommunity]),
			Supplier:  groupStat(b.scores[dbgen.JudgeTypeSupplier]),
		}
		var weightedSum, weightTotal float64
		for _, group := range []struct {
			stat   GroupStat
			weight float64
		}{
			{result.Pro, weights.Pro},
			{result.Community, weights.Community},
			{result.Supplier, weights.Supplier},
		} {
			if group.stat.Count == 0 {
				continue
			}
			weightedSum += group.stat.Mean * float64(group.stat.Count) * group.weight
			weightTotal += float64(group.stat.Count) * group.weight
		}
		if weightTotal > 0 {
			result.Final = weightedSum / weightTotal
			result.HasScores = true
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Final > results[j].Final
	})
	return results
}

func groupStat(scores []int32) GroupStat {
	if len(scores) == 0 {
		return GroupStat{}
	}
	var sum int64
	for _, score := range scores {
		sum += int64(score)
	}
	return GroupStat{
		Mean:  float64(sum) / float64(len(scores)),
		Count: len(scores),
	}
}
