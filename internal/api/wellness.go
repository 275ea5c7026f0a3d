package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"health_system/internal/aqi"    // Outbound air-quality client
	"health_system/internal/health" // Derived metrics calculator

	"github.com/gin-gonic/gin" // Gin web framework
)

// PhysicalHealthRequest is the payload for the wellness score calculation
type PhysicalHealthRequest struct {
	Age    int     `json:"age" binding:"required"`    // Years
	Weight float64 `json:"weight" binding:"required"` // Kilograms
	Height float64 `json:"height" binding:"required"` // Centimeters
}

// PhysicalHealthHandler validates the vitals and computes the WASI and MLS
// wellness scores. Out-of-range input is a rejected request, never a computed
// result.
func PhysicalHealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUserID(c); !ok {
			return
		}
		var req PhysicalHealthRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "age, weight and height required"})
			return
		}
		// Range-check before any score is computed
		if err := health.ValidateVitals(req.Age, req.Weight, req.Height); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input values"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"wasi": health.WASI(req.Age, req.Weight, req.Height),
			"mls":  health.MLS(req.Age, req.Weight, req.Height),
		})
	}
}

// AQIHandler returns the live air-quality reading for a city. Upstream
// failures surface as 502, a bad city as 404.
func AQIHandler(client *aqi.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		city := c.Query("city")
		if city == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "City required"})
			return
		}
		reading, err := client.FetchByCity(city)
		if errors.Is(err, aqi.ErrCityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "City not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "AQI provider unreachable"})
			return
		}
		c.JSON(http.StatusOK, reading)
	}
}

// DietHandler maps a heart rate to a diet recommendation.
func DietHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		bpm := 72 // Resting default when no reading is supplied
		if raw := c.Query("bpm"); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bpm"})
				return
			}
			bpm = v
		}
		c.JSON(http.StatusOK, gin.H{
			"bpm":            bpm,
			"recommendation": health.DietRecommendation(bpm),
		})
	}
}
