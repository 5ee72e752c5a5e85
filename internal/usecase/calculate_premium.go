package usecase

import (
	"math"
	"sort"

	"golang.org/x/text/language"

	"github.com/sinedis-soft/dionis-next-level-sub001/internal/i18n"
)

// The calculator behind the public quote widget. Rates are indicative broker
// rates, not binding offers; the form above the widget is the real funnel.

type CalculatePremiumInput struct {
	Product    string  `json:"product"`
	InsuredSum float64 `json:"insuredSum"`
	TermMonths int     `json:"termMonths,omitempty"`
}

type CalculatePremiumOutput struct {
	Product      string  `json:"product"`
	ProductLabel string  `json:"productLabel"`
	InsuredSum   float64 `json:"insuredSum"`
	TermMonths   int     `json:"termMonths"`
	RateApplied  float64 `json:"rateApplied"`
	Premium      float64 `json:"premium"`
	Currency     string  `json:"currency"`
}

type product struct {
	annualRate float64
	labels     map[language.Tag]string
}

// minPremium is the floor in tenge below which no policy is written.
const minPremium = 5000

var products = map[string]product{
	"casco": {
		annualRate: 0.045,
		labels: map[language.Tag]string{
			language.Russian: "КАСКО",
			language.Kazakh:  "КАСКО",
			language.English: "Motor hull (CASCO)",
		},
	},
	"property": {
		annualRate: 0.0025,
		labels: map[language.Tag]string{
			language.Russian: "Страхование имущества",
			language.Kazakh:  "Мүлікті сақтандыру",
			language.English: "Property insurance",
		},
	},
	"health": {
		annualRate: 0.03,
		labels: map[language.Tag]string{
			language.Russian: "Добровольное медицинское страхование",
			language.Kazakh:  "Ерікті медициналық сақтандыру",
			language.English: "Voluntary health insurance",
		},
	},
	"travel": {
		annualRate: 0.01,
		labels: map[language.Tag]string{
			language.Russian: "Страхование туристов",
			language.Kazakh:  "Туристерді сақтандыру",
			language.English: "Travel insurance",
		},
	},
}

// ProductCodes lists the known calculator products, sorted for stable output.
func ProductCodes() []string {
	codes := make([]string, 0, len(products))
	for code := range products {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

type CalculatePremiumUseCase struct{}

func NewCalculatePremiumUseCase() *CalculatePremiumUseCase {
	return &CalculatePremiumUseCase{}
}

// Execute computes an indicative premium: insured sum times the annual
// product rate, scaled to the term, floored at the minimum premium and
// rounded to whole tenge.
func (uc *CalculatePremiumUseCase) Execute(input CalculatePremiumInput, locale language.Tag) (CalculatePremiumOutput, error) {
	p, ok := products[input.Product]
	if !ok {
		return CalculatePremiumOutput{}, &DomainError{
			Code:       "UNKNOWN_PRODUCT",
			MessageKey: i18n.KeyUnknownProduct,
		}
	}

	if input.InsuredSum <= 0 {
		return CalculatePremiumOutput{}, &DomainError{
			Code:       "INVALID_SUM",
			MessageKey: i18n.KeyInvalidSum,
		}
	}

	term := input.TermMonths
	if term <= 0 || term > 12 {
		term = 12
	}

	premium := input.InsuredSum * p.annualRate * float64(term) / 12
	premium = math.Round(premium)
	if premium < minPremium {
		premium = minPremium
	}

	label := p.labels[locale]
	if label == "" {
		label = p.labels[language.Russian]
	}

	return CalculatePremiumOutput{
		Product:      input.Product,
		ProductLabel: label,
		InsuredSum:   input.InsuredSum,
		TermMonths:   term,
		RateApplied:  p.annualRate,
		Premium:      premium,
		Currency:     "KZT",
	}, nil
}
