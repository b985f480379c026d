package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"menuboard/api/internal/domain"
	"menuboard/api/internal/search"
	"menuboard/api/internal/service"
	"menuboard/api/internal/sheet"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Health reports liveness.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetMenu serves the current hierarchical menu model.
func (s *Server) GetMenu(c *gin.Context) {
	data, err := s.menu.Get(c.Request.Context())
	if err != nil {
		log.Errorf("Error fetching menu data: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fetchErrorMessage(err)})
		return
	}

	s.setCacheHeaders(c)
	c.JSON(http.StatusOK, data)
}

func (s *Server) setCacheHeaders(c *gin.Context) {
	if s.cacheTTL <= 0 {
		c.Header("Cache-Control", "no-store")
		return
	}
	maxAge := int(s.cacheTTL.Seconds())
	c.Header("Cache-Control",
		"public, s-maxage="+strconv.Itoa(maxAge)+", stale-while-revalidate="+strconv.Itoa(2*maxAge))
}

// RefreshMenu clears the cache and fetches fresh data. GET is supported as an
// alias so the refresh can be triggered from a browser.
func (s *Server) RefreshMenu(c *gin.Context) {
	data, err := s.menu.Refresh(c.Request.Context(), service.TriggerManual)
	if err != nil {
		log.Errorf("Error refreshing menu: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to clear cache and fetch fresh data",
			"details": fetchErrorMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Cache cleared successfully. Fresh data fetched.",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"data":      data,
	})
}

// SearchMenu filters the flattened menu against the q parameter.
func (s *Server) SearchMenu(c *gin.Context) {
	data, err := s.menu.Get(c.Request.Context())
	if err != nil {
		log.Errorf("Error fetching menu data for search: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fetchErrorMessage(err)})
		return
	}

	result := search.Filter(search.BuildIndex(data), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"state":   result.State,
		"count":   len(result.Entries),
		"results": result.Entries,
		"grouped": search.GroupResults(result.Entries),
	})
}

type specialItem struct {
	Item     string             `json:"item"`
	Section  string             `json:"section"`
	Category string             `json:"category"`
	Prices   []domain.PriceTier `json:"prices"`
}

// GetSpecials serves the flagged items used by the specials tables and the
// print templates.
func (s *Server) GetSpecials(c *gin.Context) {
	data, err := s.menu.Get(c.Request.Context())
	if err != nil {
		log.Errorf("Error fetching menu data for specials: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fetchErrorMessage(err)})
		return
	}

	bestSellers := make([]specialItem, 0)
	chefSpecials := make([]specialItem, 0)
	todaysSpecials := make([]specialItem, 0)
	data.Walk(func(section, category string, item domain.MenuItem) {
		entry := specialItem{
			Item:     item.ItemName,
			Section:  section,
			Category: category,
			Prices:   item.PriceTiers(),
		}
		if item.BestSeller {
			bestSellers = append(bestSellers, entry)
		}
		if item.ChefSpecial {
			chefSpecials = append(chefSpecials, entry)
		}
		if item.TodaysSpecial {
			todaysSpecials = append(todaysSpecials, entry)
		}
	})

	c.JSON(http.StatusOK, gin.H{
		"bestSellers":    bestSellers,
		"chefSpecials":   chefSpecials,
		"todaysSpecials": todaysSpecials,
	})
}

// GetHistory serves recent refresh audit events.
func (s *Server) GetHistory(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	events, err := s.menu.History(c.Request.Context(), limit)
	if err != nil {
		log.Errorf("Error listing refresh history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list refresh history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func fetchErrorMessage(err error) string {
	if errors.Is(err, sheet.ErrSheetNotConfigured) {
		return "Google Sheet ID not found"
	}
	return "Failed to fetch menu data"
}
