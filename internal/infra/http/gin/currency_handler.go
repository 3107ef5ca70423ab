package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"balilove/internal/app/commands"
	"balilove/internal/app/dto"
	ratesapp "balilove/internal/app/handlers/rates"
	"balilove/internal/app/queries"
	"balilove/internal/domain/shared/money"
)

// CurrencyHandler wires rate queries and the refresh command to HTTP.
type CurrencyHandler struct {
	Queries  queries.Bus
	Commands commands.Bus
}

func (h CurrencyHandler) Convert(c *gin.Context) {
	amount, err := parseAmount(c.Query("amount"))
	if err != nil {
		writeError(c, err)
		return
	}
	currencies, err := money.ParseCurrencies(splitCSV(c.Query("currencies")))
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := queries.Ask[ratesapp.ConvertQuery, dto.ConversionSet](c.Request.Context(), h.Queries, ratesapp.ConvertQuery{
		Amount:     amount,
		Currencies: currencies,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CurrencyHandler) RateInfo(c *gin.Context) {
	result, err := queries.Ask[ratesapp.RateInfoQuery, dto.RateInfo](c.Request.Context(), h.Queries, ratesapp.RateInfoQuery{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CurrencyHandler) Rates(c *gin.Context) {
	result, err := queries.Ask[ratesapp.RatesTableQuery, dto.RatesTable](c.Request.Context(), h.Queries, ratesapp.RatesTableQuery{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CurrencyHandler) Refresh(c *gin.Context) {
	result, err := commands.Dispatch[ratesapp.RefreshRatesCommand, dto.RatesTable](c.Request.Context(), h.Commands, ratesapp.RefreshRatesCommand{Reason: "api"})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ CurrencyHTTP = CurrencyHandler{}
