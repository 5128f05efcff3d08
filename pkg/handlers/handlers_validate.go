package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/booth-roster-go/pkg/models"
	"github.com/arnavshah/booth-roster-go/pkg/registry"
)

// ValidateInput checks a roster payload without running the assignment:
// booth configuration and row-level signup validation.
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.RosterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Booths) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one booth is required",
		})
		return
	}

	seen := make(map[string]bool, len(input.Booths))
	for _, name := range input.Booths {
		if seen[name] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate booth name: " + name})
			return
		}
		seen[name] = true
	}

	if len(input.Signups) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one signup row is required",
		})
		return
	}

	// Dry-run the registry to surface row-level problems
	reg := registry.New(h.Logger)
	rowErrs := reg.Ingest("request", input.Signups)
	errStrings := make([]string, 0, len(rowErrs))
	for _, re := range rowErrs {
		errStrings = append(errStrings, re.Error())
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"booth_count":     len(input.Booths),
			"signup_rows":     len(input.Signups),
			"volunteer_count": reg.UniqueCount(),
			"rejected_rows":   len(rowErrs),
		},
		"row_errors": errStrings,
	})
}
