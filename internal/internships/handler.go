package internships

import (
	"github.com/gin-gonic/gin"

	"career-advisor/internal/shared/server/respond"
)

// Handler serves the internships tab. The tab is a demo: no job-board
// integration exists, the payload just describes what a full version would do.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches internship routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/internships", h.list)
	rg.POST("/internships/search", h.search)
}

func (h *Handler) list(c *gin.Context) {
	respond.OK(c, gin.H{
		"demo": true,
		"description": "This section would integrate with job boards to find relevant " +
			"opportunities based on your profile and roadmap.",
	})
}

func (h *Handler) search(c *gin.Context) {
	respond.OK(c, gin.H{
		"demo":    true,
		"message": "Searching for opportunities... (This is a demo action)",
		"note":    "In a full application, this would link to real job listings.",
	})
}
