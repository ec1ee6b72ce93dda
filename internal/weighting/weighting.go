// Package weighting implements category-weighted stakeholder selection.
package weighting

import (
	"github.com/lokvaani/commentengine/internal/models"
	"github.com/lokvaani/commentengine/internal/random"
)

// DefaultWeight applies to categories missing from the table
const DefaultWeight = 1.0

var weights = map[models.Category]float64{
	models.CategoryInsolvencyProfessional:       4.5,
	models.CategoryInsolvencyProfessionalAgency: 4.2,
	models.CategoryInsolvencyProfessionalEntity: 4.0,
	models.CategoryCorporateDebtor:              3.8,
	models.CategoryCreditor:                     3.5,
	models.CategoryPersonalGuarantor:            3.2,
	models.CategoryAcademics:                    3.0,
	models.CategoryPartnershipFirms:             2.8,
	models.CategoryProprietorshipFirms:          2.5,
	models.CategoryInvestors:                    2.2,
	models.CategoryUser:                         1.8,
	models.CategoryOthers:                       1.5,
	models.CategoryGeneral:                      1.0,
}

// Weight returns the relevance weight of a category
func Weight(category models.Category) float64 {
	if w, ok := weights[category]; ok {
		return w
	}
	return DefaultWeight
}

// Select draws one company with probability proportional to its
// category weight. Companies are walked in input order, so the result
// is reproducible for a seeded source.
func Select(companies []models.Company, rng random.Source) models.Company {
	if len(companies) == 0 {
		return models.AnonymousCompany()
	}

	total := 0.0
	for _, c := range companies {
		total += Weight(c.Category)
	}

	r := rng.Float64() * total
	cumulative := 0.0
	for _, c := range companies {
		cumulative += Weight(c.Category)
		if cumulative >= r {
			return c
		}
	}
	// Float rounding can leave r just above the final cumulative sum
	return companies[len(companies)-1]
}
