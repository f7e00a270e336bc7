// Package api serves one immutable rate snapshot over HTTP: the listing, the
// summary cards and the net-return calculator.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ytoklu/mevduat-compare/internal/pkg/calc"
	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

// Reference principal for listing and summary when the caller supplies none.
var defaultPrincipal = decimal.NewFromInt(100000)

type Server struct {
	snap   model.Snapshot
	logger *zap.Logger
}

// New builds a server over a snapshot loaded once per session.
func New(snap model.Snapshot, logger *zap.Logger) *Server {
	return &Server{snap: snap, logger: logger}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/rates", s.handleRates)
	r.GET("/api/summary", s.handleSummary)
	r.GET("/api/banks", s.handleBanks)
	r.POST("/api/calculate", s.handleCalculate)
	return r
}

func (s *Server) handleRates(c *gin.Context) {
	c.JSON(http.StatusOK, s.snap)
}

func (s *Server) handleSummary(c *gin.Context) {
	principal, ok := s.principalQuery(c)
	if !ok {
		return
	}

	summary := calc.Summarize(s.snap.Banks, principal, s.snap.DefaultWithholdingRate)
	c.JSON(http.StatusOK, gin.H{
		"principal": principal,
		"summary":   summary,
	})
}

type bankRow struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	ProductName string           `json:"productName"`
	Website     string           `json:"website"`
	Available   bool             `json:"available"`
	AnnualRate  *decimal.Decimal `json:"annualRate,omitempty"`
	NIB         *decimal.Decimal `json:"nib,omitempty"`
	DailyNet    *decimal.Decimal `json:"dailyNet,omitempty"`
}

func (s *Server) handleBanks(c *gin.Context) {
	principal, ok := s.principalQuery(c)
	if !ok {
		return
	}

	field := calc.SortField(c.DefaultQuery("sort", string(calc.ByRate)))
	dir := calc.SortDir(c.Query("dir"))
	if dir == "" {
		dir = calc.Desc
		if field == calc.ByName {
			dir = calc.Asc
		}
	}

	withholding := s.snap.DefaultWithholdingRate
	banks := calc.FilterByName(s.snap.Banks, c.Query("q"))
	banks = calc.SortBanks(banks, field, dir, principal, withholding)

	rows := make([]bankRow, 0, len(banks))
	for _, b := range banks {
		row := bankRow{
			ID:          b.ID,
			Name:        b.Name,
			Type:        b.Type,
			ProductName: b.ProductName,
			Website:     b.Website,
			Available:   b.Usable(),
		}
		// Failed sources stay listed but never show up as a zero-rate offer.
		if row.Available {
			rate := calc.RateForPrincipal(b, principal)
			nib := calc.NIBForPrincipal(b, principal)
			daily := calc.DailyNetForBank(b, principal, withholding)
			row.AnnualRate, row.NIB, row.DailyNet = &rate, &nib, &daily
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"principal": principal,
		"banks":     rows,
	})
}

type calculateRequest struct {
	BankID          string           `json:"bankId"`
	Principal       decimal.Decimal  `json:"principal" binding:"required"`
	WithholdingRate *decimal.Decimal `json:"withholdingRate"`
	CustomRate      decimal.Decimal  `json:"customRate"`
	CustomNIB       decimal.Decimal  `json:"customNib"`
}

func (s *Server) handleCalculate(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	withholding := s.snap.DefaultWithholdingRate
	if req.WithholdingRate != nil {
		withholding = *req.WithholdingRate
	}

	var (
		result model.CalculationResult
		err    error
	)
	switch {
	case req.CustomRate.IsPositive():
		result, err = calc.CalculateWithNIB(req.Principal, req.CustomNIB, req.CustomRate, withholding)
	case req.BankID != "":
		bank, found := s.findBank(req.BankID)
		if !found || !bank.Usable() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "bank data unavailable"})
			return
		}
		result, err = calc.CalculateForBank(bank, req.Principal, withholding)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "either bankId or customRate is required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) findBank(id string) (model.Bank, bool) {
	for _, b := range s.snap.Banks {
		if b.ID == id {
			return b, true
		}
	}
	return model.Bank{}, false
}

// principalQuery reads the principal query parameter; a value that is not a
// positive number is rejected with 400.
func (s *Server) principalQuery(c *gin.Context) (decimal.Decimal, bool) {
	v := c.Query("principal")
	if v == "" {
		return defaultPrincipal, true
	}
	principal, err := decimal.NewFromString(v)
	if err != nil || !principal.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "principal must be a positive number"})
		return decimal.Decimal{}, false
	}
	return principal, true
}
