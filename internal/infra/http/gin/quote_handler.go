package ginserver

import (
	"fmt"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"balilove/internal/app/dto"
	quotesapp "balilove/internal/app/handlers/quotes"
	"balilove/internal/app/queries"
	"balilove/internal/domain/catalog"
	"balilove/internal/domain/shared/money"
)

// QuoteHandler wires quote queries to HTTP.
type QuoteHandler struct {
	Queries queries.Bus
}

type quoteRequest struct {
	Items        []catalog.LineItemDocument `json:"items"`
	Adults       int                        `json:"adults"`
	Children     int                        `json:"children"`
	Nights       int                        `json:"nights"`
	SelectedDate string                     `json:"selectedDate"`
	Currencies   []string                   `json:"currencies"`
	Archive      bool                       `json:"archive"`
}

// Quote prices an ad hoc list of line items posted as JSON.
func (h QuoteHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	date, err := parseDate(req.SelectedDate)
	if err != nil {
		writeError(c, err)
		return
	}
	currencies, err := money.ParseCurrencies(req.Currencies)
	if err != nil {
		writeError(c, err)
		return
	}
	query := quotesapp.QuotePackageQuery{
		Items: req.Items,
		Inputs: quotesapp.Inputs{
			Adults:       req.Adults,
			Children:     req.Children,
			Nights:       req.Nights,
			SelectedDate: date,
		},
		Currencies: currencies,
		Archive:    req.Archive,
	}
	result, err := queries.Ask[quotesapp.QuotePackageQuery, dto.Quote](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Packages lists the stored package templates.
func (h QuoteHandler) Packages(c *gin.Context) {
	result, err := queries.Ask[quotesapp.ListTemplatesQuery, []dto.PackageTemplateSummary](c.Request.Context(), h.Queries, quotesapp.ListTemplatesQuery{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": result})
}

// PackageQuote prices a stored template for the guest context in the query string.
func (h QuoteHandler) PackageQuote(c *gin.Context) {
	var (
		in  quotesapp.Inputs
		err error
	)
	if in.Adults, err = parseIntParam("adults", c.Query("adults")); err != nil {
		writeError(c, err)
		return
	}
	if in.Children, err = parseIntParam("children", c.Query("children")); err != nil {
		writeError(c, err)
		return
	}
	if in.Nights, err = parseIntParam("nights", c.Query("nights")); err != nil {
		writeError(c, err)
		return
	}
	if in.SelectedDate, err = parseDate(c.Query("date")); err != nil {
		writeError(c, err)
		return
	}
	archive, err := parseBoolParam("archive", c.Query("archive"))
	if err != nil {
		writeError(c, err)
		return
	}
	currencies, err := money.ParseCurrencies(splitCSV(c.Query("currencies")))
	if err != nil {
		writeError(c, err)
		return
	}

	query := quotesapp.QuoteTemplateQuery{
		TemplateID: c.Param("id"),
		Inputs:     in,
		Currencies: currencies,
		Archive:    archive,
	}
	result, err := queries.Ask[quotesapp.QuoteTemplateQuery, dto.Quote](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ QuoteHTTP = QuoteHandler{}
