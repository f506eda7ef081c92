package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/salamene/horoscope-backend/internal/models"
)

// currencyByCountry maps ISO 3166-1 alpha-2 codes to billing currency.
// Anything missing falls through to USD.
var currencyByCountry = map[string]string{
	"GE": "GEL",
	"AT": "EUR", "BE": "EUR", "BG": "EUR", "CY": "EUR", "CZ": "EUR",
	"DE": "EUR", "DK": "EUR", "EE": "EUR", "ES": "EUR", "FI": "EUR",
	"FR": "EUR", "GR": "EUR", "HR": "EUR", "HU": "EUR", "IE": "EUR",
	"IT": "EUR", "LT": "EUR", "LU": "EUR", "LV": "EUR", "MT": "EUR",
	"NL": "EUR", "PL": "EUR", "PT": "EUR", "RO": "EUR", "SE": "EUR",
	"SI": "EUR", "SK": "EUR",
	"US": "USD",
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GEL": "₾",
}

// planPrices is the same across supported currencies for now; the per-plan
// structure allows diverging later without changing the resolver.
var planPrices = map[models.PlanType]float64{
	models.PlanTypeWeekly:  2.49,
	models.PlanTypeMonthly: 5.00,
	models.PlanTypeYearly:  49.00,
}

// PlanPrice is one plan's amount in the resolved currency plus its
// ready-to-render display string.
type PlanPrice struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Display  string  `json:"display"`
}

// Pricing is the regional price sheet for one request.
type Pricing struct {
	Country        string                        `json:"country"`
	Currency       string                        `json:"currency"`
	Plans          map[models.PlanType]PlanPrice `json:"pricing"`
	MonthlyDisplay string                        `json:"monthly_display"`
}

// ResolveCountry picks the caller's country: an explicit two-letter
// X-Country-Code header wins, otherwise the client IP is geolocated with a
// US fallback.
func (s *Service) ResolveCountry(ctx context.Context, countryHeader, clientIP string) string {
	if len(countryHeader) == 2 {
		return strings.ToUpper(countryHeader)
	}
	return s.geoip.CountryForIP(ctx, clientIP)
}

// CurrencyForCountry maps a country code to its billing currency.
func CurrencyForCountry(country string) string {
	if cur, ok := currencyByCountry[country]; ok {
		return cur
	}
	return "USD"
}

// PriceForPlan returns the amount charged for a plan in a currency.
func PriceForPlan(planType models.PlanType, currency string) float64 {
	if price, ok := planPrices[planType]; ok {
		return price
	}
	return planPrices[models.PlanTypeMonthly]
}

// displayPrice renders "$2.49", "$5", "€49". Whole amounts drop the cents.
func displayPrice(symbol string, amount float64) string {
	s := fmt.Sprintf("%s%.2f", symbol, amount)
	return strings.TrimSuffix(s, ".00")
}

// PricingForCountry builds the full regional price sheet.
func PricingForCountry(country string) Pricing {
	currency := CurrencyForCountry(country)
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = "$"
	}

	plans := make(map[models.PlanType]PlanPrice, len(planPrices))
	for planType, amount := range planPrices {
		plans[planType] = PlanPrice{
			Amount:   amount,
			Currency: currency,
			Display:  displayPrice(symbol, amount),
		}
	}

	return Pricing{
		Country:        country,
		Currency:       currency,
		Plans:          plans,
		MonthlyDisplay: plans[models.PlanTypeMonthly].Display,
	}
}
