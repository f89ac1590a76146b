package listing

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"EstateView/models"
)

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders a price as "$1,250,000", or "$2,400/mo" for rentals.
func FormatPrice(price float64, status string) string {
	whole := int64(math.Round(price))
	if status == models.StatusForRent {
		return pricePrinter.Sprintf("$%d/mo", whole)
	}
	return pricePrinter.Sprintf("$%d", whole)
}
