package dto

import "github.com/expensly/expensly_backend/internal/core/domain"

// CreateCurrencyRequest defines data for registering a currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,iso4217"`
	Symbol       string `json:"symbol" binding:"required,max=5"`
	Name         string `json:"name" binding:"required,max=50"`
}

// CurrencyResponse defines the currency fields exposed over the API.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
}

// ToCurrencyResponse converts a domain.Currency to its API representation.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: c.CurrencyCode,
		Symbol:       c.Symbol,
		Name:         c.Name,
	}
}

// ListCurrenciesResponse wraps the list of supported currencies.
type ListCurrenciesResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
}

// ToListCurrenciesResponse converts a slice of domain.Currency to the list DTO.
func ToListCurrenciesResponse(currencies []domain.Currency) ListCurrenciesResponse {
	list := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		list[i] = ToCurrencyResponse(&currencies[i])
	}
	return ListCurrenciesResponse{Currencies: list}
}
