package processors

import (
	"github.com/username/sheetfolio/src/models"
)

type statusProcessor struct{}

func NewStatusProcessor() StatusProcessor {
	return &statusProcessor{}
}

// Distribution counts normalized statuses in the order they are first seen.
// Transactions without a status are not counted.
func (p *statusProcessor) Distribution(transactions []models.Transaction) models.StatusDistribution {
	out := models.StatusDistribution{
		Labels:      []string{},
		Values:      []int{},
		Percentages: []float64{},
	}

	index := make(map[string]int)
	total := 0
	for _, tx := range transactions {
		status := tx.NormalizedStatus()
		if status == "" {
			continue
		}
		i, ok := index[status]
		if !ok {
			i = len(out.Labels)
			index[status] = i
			out.Labels = append(out.Labels, status)
			out.Values = append(out.Values, 0)
		}
		out.Values[i]++
		total++
	}

	if total == 0 {
		return out
	}
	for _, v := range out.Values {
		out.Percentages = append(out.Percentages, float64(v)/float64(total)*100)
	}
	return out
}
